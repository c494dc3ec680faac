package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/wildsnap/internal/engine/viewport"
	"github.com/Faultbox/wildsnap/internal/scene"
	"github.com/Faultbox/wildsnap/pkg/math"
)

func positioned(x, y, r float64) *scene.Object {
	return &scene.Object{Name: "obj", X: x, Y: y, Radius: r, Positioned: true}
}

func TestIsInView(t *testing.T) {
	vp := viewport.New(1000, 1000, 100, 100)
	vp.SetPosition(0, 0)
	aim := AimAssist{Tolerance: DefaultTolerance}

	tests := []struct {
		name string
		obj  *scene.Object
		want bool
	}{
		{"nil", nil, false},
		{"unpositioned", &scene.Object{X: 50, Y: 50, Radius: 20}, false},
		{"center", positioned(50, 50, 20), true},
		{"overlaps right edge", positioned(110, 50, 20), true},
		{"touches right edge", positioned(120, 50, 20), true},
		{"past right edge", positioned(121, 50, 20), false},
		{"diagonal corner", positioned(115, 115, 20), true},
		{"far away", positioned(500, 500, 20), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aim.IsInView(vp, tt.obj))
		})
	}
}

func TestComputeNudge_ToleranceBoundary(t *testing.T) {
	vp := viewport.New(1000, 1000, 100, 100)
	vp.SetPosition(0, 0) // center (50, 50)
	aim := AimAssist{Tolerance: 50}

	assert.Equal(t, math.Vec2{}, aim.ComputeNudge(vp, positioned(100, 100, 10)))
	assert.Equal(t, math.Vec2{}, aim.ComputeNudge(vp, positioned(0, 0, 10)))

	assert.Equal(t, math.Vec2{X: 25.5, Y: 25.5}, aim.ComputeNudge(vp, positioned(101, 101, 10)))
	assert.Equal(t, math.Vec2{X: -25.5, Y: -25.5}, aim.ComputeNudge(vp, positioned(-1, -1, 10)))
}

func TestComputeNudge_IndependentAxes(t *testing.T) {
	vp := viewport.New(1000, 1000, 100, 100)
	vp.SetPosition(0, 0)
	aim := AimAssist{Tolerance: 50}

	got := aim.ComputeNudge(vp, positioned(60, 250, 10))
	assert.Equal(t, math.Vec2{X: 0, Y: 100}, got)
}

func TestComputeNudge_Unpositioned(t *testing.T) {
	vp := viewport.New(1000, 1000, 100, 100)
	aim := AimAssist{Tolerance: 50}

	assert.True(t, aim.ComputeNudge(vp, &scene.Object{X: 900, Y: 900}).IsZero())
}

func TestCentered(t *testing.T) {
	aim := AimAssist{Tolerance: 10}

	assert.True(t, aim.Centered(math.Vec2{X: 10, Y: -10}))
	assert.False(t, aim.Centered(math.Vec2{X: 10.5, Y: 0}))
	assert.False(t, aim.Centered(math.Vec2{X: 0, Y: -11}))
}
