package prediction

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/lintang-b-s/compassx/pkg/util"
	"golang.org/x/exp/constraints"
)

type Precision string

const (
	Float32 Precision = "float32"
	Float64 Precision = "float64"
)

type Activation string

const (
	Identity Activation = "identity"
	ReLU     Activation = "relu"
	Tanh     Activation = "tanh"
	Sigmoid  Activation = "sigmoid"
)

func parseActivation(s string) (Activation, error) {
	switch Activation(s) {
	case Identity, ReLU, Tanh, Sigmoid:
		return Activation(s), nil
	default:
		return "", fmt.Errorf("unknown activation %q", s)
	}
}

// Layer is a dense layer y = activation(W x + b). Weights is row-major with Out rows of In columns.
type Layer struct {
	In         int
	Out        int
	Activation Activation
	Weights    []float64
	Bias       []float64
}

// NetworkGraph is the static inference graph of a feed-forward network over the [speed, grade] input.
type NetworkGraph struct {
	Precision Precision
	Layers    []Layer
}

const inputWidth = 2

func (g *NetworkGraph) validate() error {
	if g.Precision != Float32 && g.Precision != Float64 {
		return fmt.Errorf("unsupported precision %q", g.Precision)
	}
	if len(g.Layers) == 0 {
		return fmt.Errorf("network has no layers")
	}
	width := inputWidth
	for i, l := range g.Layers {
		if l.In != width {
			return fmt.Errorf("layer %d expects %d inputs, previous width is %d", i, l.In, width)
		}
		if l.Out <= 0 {
			return fmt.Errorf("layer %d has %d outputs", i, l.Out)
		}
		if len(l.Weights) != l.In*l.Out || len(l.Bias) != l.Out {
			return fmt.Errorf("layer %d has %d weights and %d biases, expected %d and %d",
				i, len(l.Weights), len(l.Bias), l.In*l.Out, l.Out)
		}
		if _, err := parseActivation(string(l.Activation)); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		width = l.Out
	}
	return nil
}

type tensor[T constraints.Float] struct {
	shape [2]int
	data  []T
}

type denseLayer[T constraints.Float] struct {
	in, out    int
	activation Activation
	weights    []T
	bias       []T
}

func (l *denseLayer[T]) forward(x, y []T) {
	for j := 0; j < l.out; j++ {
		acc := l.bias[j]
		row := l.weights[j*l.in : (j+1)*l.in]
		for k, w := range row {
			acc += w * x[k]
		}
		y[j] = activate(l.activation, acc)
	}
}

func activate[T constraints.Float](a Activation, v T) T {
	switch a {
	case ReLU:
		if v < 0 {
			return 0
		}
		return v
	case Tanh:
		return T(math.Tanh(float64(v)))
	case Sigmoid:
		return T(1.0 / (1.0 + math.Exp(-float64(v))))
	default:
		return v
	}
}

type sessionBuffers[T constraints.Float] struct {
	a, b []T
}

// session runs the network in precision T. layers are never written after construction; every
// call borrows its own scratch buffers, so concurrent calls share nothing mutable.
type session[T constraints.Float] struct {
	layers  []denseLayer[T]
	buffers sync.Pool
}

func newSession[T constraints.Float](g *NetworkGraph) *session[T] {
	s := &session[T]{layers: make([]denseLayer[T], len(g.Layers))}
	maxWidth := inputWidth
	for i, l := range g.Layers {
		dl := denseLayer[T]{
			in:         l.In,
			out:        l.Out,
			activation: l.Activation,
			weights:    make([]T, len(l.Weights)),
			bias:       make([]T, len(l.Bias)),
		}
		for k, w := range l.Weights {
			dl.weights[k] = T(w)
		}
		for k, b := range l.Bias {
			dl.bias[k] = T(b)
		}
		s.layers[i] = dl
		maxWidth = max(maxWidth, l.Out)
	}
	s.buffers = sync.Pool{
		New: func() any {
			return &sessionBuffers[T]{a: make([]T, maxWidth), b: make([]T, maxWidth)}
		},
	}
	return s
}

func (s *session[T]) run(speed, grade float64) (float64, error) {
	bufs := s.buffers.Get().(*sessionBuffers[T])
	defer s.buffers.Put(bufs)

	cur, next := bufs.a, bufs.b
	input := tensor[T]{shape: [2]int{1, inputWidth}, data: cur[:inputWidth]}
	input.data[0] = T(speed)
	input.data[1] = T(grade)

	for i := range s.layers {
		l := &s.layers[i]
		if input.shape[1] != l.in {
			return 0, fmt.Errorf("layer %d expects shape [1 %d], got %v", i, l.in, input.shape)
		}
		out := next[:l.out]
		l.forward(input.data, out)
		input = tensor[T]{shape: [2]int{1, l.out}, data: out}
		cur, next = next, cur
	}

	if input.shape != [2]int{1, 1} {
		return 0, fmt.Errorf("expected output shape [1 1], got %v", input.shape)
	}
	return float64(input.data[0]), nil
}

type inferenceSession interface {
	run(speed, grade float64) (float64, error)
}

// NeuralNetworkModel. feed-forward regressor over a [1,2] tensor of (speed, grade).
type NeuralNetworkModel struct {
	session   inferenceSession
	precision Precision
	units     Units
}

func NewNeuralNetworkModel(g *NetworkGraph, units Units) (*NeuralNetworkModel, error) {
	if err := units.validate(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBuild, "invalid neural network units")
	}
	if err := g.validate(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBuild, "invalid neural network graph")
	}

	m := &NeuralNetworkModel{precision: g.Precision, units: units}
	switch g.Precision {
	case Float32:
		m.session = newSession[float32](g)
	default:
		m.session = newSession[float64](g)
	}
	return m, nil
}

func (m *NeuralNetworkModel) Predict(speed float64, speedUnit unit.SpeedUnit, grade float64) (float64, unit.EnergyRateUnit, error) {
	start := time.Now()
	rate, err := m.predict(speed, speedUnit, grade)
	observePrediction(NeuralNetwork.String(), start, err)
	if err != nil {
		return 0, "", err
	}
	return rate, m.units.EnergyRateUnit, nil
}

func (m *NeuralNetworkModel) predict(speed float64, speedUnit unit.SpeedUnit, grade float64) (float64, error) {
	s, g, err := m.units.features(speed, speedUnit, grade)
	if err != nil {
		return 0, util.WrapErrorf(err, util.ErrPrediction, "neural network input conversion failed")
	}
	rate, err := m.session.run(s, g)
	if err != nil {
		return 0, util.WrapErrorf(err, util.ErrPrediction, "neural network inference failed")
	}
	if !util.IsFinite(rate) {
		return 0, util.WrapErrorf(nil, util.ErrPrediction, "neural network produced non-finite rate %v", rate)
	}
	return rate, nil
}

func (m *NeuralNetworkModel) Precision() Precision {
	return m.precision
}

/*
LoadNeuralNetworkModel. artifact format (optionally bzip2-compressed, name ends with .bz2):

	neural_network <precision> <numLayers>
	layer <in> <out> <activation>
	<in weights>        (out lines)
	<out biases>
	...
*/
func LoadNeuralNetworkModel(path string, units Units) (*NeuralNetworkModel, error) {
	ar, err := openArtifact(path)
	if err != nil {
		return nil, err
	}
	defer ar.Close()

	header, err := nextFields(ar.Reader)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBuild, "cannot read neural network header from %s", path)
	}
	if len(header) != 3 || header[0] != "neural_network" {
		return nil, util.WrapErrorf(nil, util.ErrBuild, "%s is not a neural network artifact", path)
	}
	numLayers, err := strconv.Atoi(header[2])
	if err != nil || numLayers <= 0 {
		return nil, util.WrapErrorf(err, util.ErrBuild, "invalid layer count %q in %s", header[2], path)
	}

	g := &NetworkGraph{Precision: Precision(header[1]), Layers: make([]Layer, 0, numLayers)}
	for li := 0; li < numLayers; li++ {
		l, err := readLayer(ar, li)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBuild, "invalid layer %d in %s", li, path)
		}
		g.Layers = append(g.Layers, l)
	}

	return NewNeuralNetworkModel(g, units)
}

func readLayer(ar *artifactReader, li int) (Layer, error) {
	fields, err := nextFields(ar.Reader)
	if err != nil {
		return Layer{}, err
	}
	if len(fields) != 4 || fields[0] != "layer" {
		return Layer{}, fmt.Errorf("expected layer header for layer %d", li)
	}
	in, err := strconv.Atoi(fields[1])
	if err != nil || in <= 0 {
		return Layer{}, fmt.Errorf("invalid input width %q", fields[1])
	}
	out, err := strconv.Atoi(fields[2])
	if err != nil || out <= 0 {
		return Layer{}, fmt.Errorf("invalid output width %q", fields[2])
	}
	activation, err := parseActivation(fields[3])
	if err != nil {
		return Layer{}, err
	}

	l := Layer{In: in, Out: out, Activation: activation, Weights: make([]float64, 0, in*out)}
	for j := 0; j < out; j++ {
		row, err := readFloats(ar, in)
		if err != nil {
			return Layer{}, fmt.Errorf("weights row %d: %w", j, err)
		}
		l.Weights = append(l.Weights, row...)
	}
	l.Bias, err = readFloats(ar, out)
	if err != nil {
		return Layer{}, fmt.Errorf("bias: %w", err)
	}
	return l, nil
}

func readFloats(ar *artifactReader, n int) ([]float64, error) {
	fields, err := nextFields(ar.Reader)
	if err != nil {
		return nil, err
	}
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	vals := make([]float64, n)
	for i, f := range fields {
		vals[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
	}
	return vals, nil
}

// WriteNeuralNetwork writes g in the format read by LoadNeuralNetworkModel.
func WriteNeuralNetwork(path string, g *NetworkGraph) error {
	w, closeFn, err := createArtifact(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "neural_network %s %d\n", g.Precision, len(g.Layers))
	for _, l := range g.Layers {
		fmt.Fprintf(w, "layer %d %d %s\n", l.In, l.Out, l.Activation)
		for j := 0; j < l.Out; j++ {
			writeFloats(w, l.Weights[j*l.In:(j+1)*l.In])
		}
		writeFloats(w, l.Bias)
	}
	return closeFn()
}

func writeFloats(w interface{ WriteString(string) (int, error) }, vals []float64) {
	for i, v := range vals {
		if i > 0 {
			w.WriteString(" ")
		}
		w.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	w.WriteString("\n")
}
