package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adas-hsim/adas-hsim/hsim"
)

func TestGenerateWindows_RootIsAlwaysOmitted(t *testing.T) {
	root := &hsim.Component{ID: "r", IsRoot: true, Alpha: 1, Delta: 0}
	var seq int64
	events := generateWindows(root, 100, func() int64 { seq++; return seq })
	assert.Nil(t, events)
}

func TestGenerateWindows_DedicatedAlpha_IsOmitted(t *testing.T) {
	c := &hsim.Component{ID: "c", Alpha: 1, Delta: 0}
	var seq int64
	events := generateWindows(c, 100, func() int64 { seq++; return seq })
	assert.Nil(t, events)
}

func TestGenerateWindows_ZeroDeltaPartialAlpha_StillGeneratesWindows(t *testing.T) {
	c := &hsim.Component{ID: "c", Alpha: 0.5, Delta: 0} // Q=0.5, P=1
	var seq int64
	events := generateWindows(c, 3, func() int64 { seq++; return seq })
	require.NotEmpty(t, events)

	var starts, ends []float64
	for _, e := range events {
		switch ev := e.(type) {
		case *supplyStartEvent:
			starts = append(starts, ev.Time())
		case *supplyEndEvent:
			ends = append(ends, ev.Time())
		}
	}
	assert.Equal(t, []float64{0, 1, 2}, starts)
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, ends)
}

func TestGenerateWindows_GeneratesCyclicStartEndPairs(t *testing.T) {
	c := &hsim.Component{ID: "c", Alpha: 0.4, Delta: 50} // Q=40, P=100
	var seq int64
	events := generateWindows(c, 250, func() int64 { seq++; return seq })
	require.NotEmpty(t, events)

	var starts, ends []float64
	for _, e := range events {
		switch ev := e.(type) {
		case *supplyStartEvent:
			starts = append(starts, ev.Time())
		case *supplyEndEvent:
			ends = append(ends, ev.Time())
		}
	}
	assert.Equal(t, []float64{0, 100, 200}, starts)
	assert.Equal(t, []float64{40, 140, 240}, ends)
}
