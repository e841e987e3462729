package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/compassx/pkg"
	"github.com/lintang-b-s/compassx/pkg/util"
)

/*
WriteGraph. bzip2-compressed text file:

	<numVertices> <numEdges>
	<id> <lat> <lon>                         (numVertices lines)
	<id> <src> <dst> <dist> <grade> <hwType> (numEdges lines)
*/
func (g *MemoryGraph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)
	defer w.Flush()

	fmt.Fprintf(w, "%d %d\n", len(g.vertices), len(g.edges))

	for _, v := range g.vertices {
		latF := strconv.FormatFloat(v.GetLat(), 'f', -1, 64)
		lonF := strconv.FormatFloat(v.GetLon(), 'f', -1, 64)
		fmt.Fprintf(w, "%d %s %s\n", v.GetID(), latF, lonF)
	}

	for _, e := range g.edges {
		distF := strconv.FormatFloat(e.GetLength(), 'f', -1, 64)
		gradeF := strconv.FormatFloat(e.GetGrade(), 'f', -1, 64)
		fmt.Fprintf(w, "%d %d %d %s %s %d\n", e.GetEdgeId(), e.GetSrc(), e.GetDst(), distF, gradeF, e.GetHighwayType())
	}

	return nil
}

func ReadGraph(filename string) (*MemoryGraph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	tokens := util.Fields(line)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("graph header: expected 2 fields, got %d", len(tokens))
	}
	numVertices, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, err
	}
	numEdges, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, err
	}

	vertices := make([]Vertex, numVertices)
	for i := 0; i < numVertices; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		vertices[i], err = parseVertex(line)
		if err != nil {
			return nil, err
		}
	}

	edges := make([]Edge, numEdges)
	for i := 0; i < numEdges; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		edges[i], err = parseEdge(line)
		if err != nil {
			return nil, err
		}
	}

	return NewMemoryGraph(vertices, edges)
}

func parseVertex(line string) (Vertex, error) {
	tokens := util.Fields(line)
	if len(tokens) != 3 {
		return Vertex{}, fmt.Errorf("vertex line %q: expected 3 fields", line)
	}
	id, err := strconv.ParseUint(tokens[0], 10, 32)
	if err != nil {
		return Vertex{}, err
	}
	lat, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return Vertex{}, err
	}
	lon, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return Vertex{}, err
	}
	return NewVertex(lat, lon, Index(id)), nil
}

func parseEdge(line string) (Edge, error) {
	tokens := util.Fields(line)
	if len(tokens) != 6 {
		return Edge{}, fmt.Errorf("edge line %q: expected 6 fields", line)
	}
	ids := make([]Index, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(tokens[i], 10, 32)
		if err != nil {
			return Edge{}, err
		}
		ids[i] = Index(v)
	}
	dist, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return Edge{}, err
	}
	grade, err := strconv.ParseFloat(tokens[4], 64)
	if err != nil {
		return Edge{}, err
	}
	hwType, err := strconv.ParseUint(tokens[5], 10, 8)
	if err != nil {
		return Edge{}, err
	}
	return NewEdge(ids[0], ids[1], ids[2], dist, grade, pkg.OsmHighwayType(hwType)), nil
}
