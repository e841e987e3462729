package datastructure

import (
	"github.com/lintang-b-s/compassx/pkg"
	"github.com/lintang-b-s/compassx/pkg/geo"
)

type Index uint32

type Vertex struct {
	id         Index
	coordinate geo.Coordinate
}

func NewVertex(lat, lon float64, id Index) Vertex {
	return Vertex{
		id:         id,
		coordinate: geo.NewCoordinate(lat, lon),
	}
}

func (v Vertex) GetID() Index {
	return v.id
}

func (v Vertex) GetLat() float64 {
	return v.coordinate.Lat
}

func (v Vertex) GetLon() float64 {
	return v.coordinate.Lon
}

func (v Vertex) GetCoordinate() geo.Coordinate {
	return v.coordinate
}

// Edge is a directed road segment from src to dst.
type Edge struct {
	id       Index
	src, dst Index
	dist     float64 // meter
	grade    float64 // decimal, rise over run
	hwType   pkg.OsmHighwayType
}

func NewEdge(id, src, dst Index, dist, grade float64, hwType pkg.OsmHighwayType) Edge {
	return Edge{
		id:     id,
		src:    src,
		dst:    dst,
		dist:   dist,
		grade:  grade,
		hwType: hwType,
	}
}

func (e Edge) GetEdgeId() Index {
	return e.id
}

func (e Edge) GetSrc() Index {
	return e.src
}

func (e Edge) GetDst() Index {
	return e.dst
}

// GetLength. meter
func (e Edge) GetLength() float64 {
	return e.dist
}

func (e Edge) GetGrade() float64 {
	return e.grade
}

func (e Edge) GetHighwayType() pkg.OsmHighwayType {
	return e.hwType
}
