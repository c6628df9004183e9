package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// scriptedSampler replays a fixed sequence of values, cycling when exhausted
type scriptedSampler struct {
	values []float32
	next   int
}

func newScriptedSampler(values ...float32) *scriptedSampler {
	return &scriptedSampler{values: values}
}

func (s *scriptedSampler) Float32() float32 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// centerSampler makes RandomInUnitSphere return the origin
var centerSampler = func() core.Sampler { return newScriptedSampler(0.5) }
