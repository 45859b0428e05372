package meadow

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPointerNDC_MapsWindowCorners(t *testing.T) {
	input := &Input{WindowWidth: 800, WindowHeight: 600}

	cases := []struct {
		name   string
		mx, my float64
		want   mgl32.Vec2
	}{
		{"top left", 0, 0, mgl32.Vec2{-1, 1}},
		{"bottom right", 800, 600, mgl32.Vec2{1, -1}},
		{"center", 400, 300, mgl32.Vec2{0, 0}},
		{"right edge middle", 800, 300, mgl32.Vec2{1, 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input.MouseX, input.MouseY = tc.mx, tc.my

			ndc := input.PointerNDC()
			assert.InDelta(t, tc.want.X(), ndc.X(), 1e-6)
			assert.InDelta(t, tc.want.Y(), ndc.Y(), 1e-6)
		})
	}
}

func TestPointerNDC_ImmersiveCentersTheGaze(t *testing.T) {
	input := &Input{
		Immersive:    true,
		MouseX:       123,
		MouseY:       456,
		WindowWidth:  800,
		WindowHeight: 600,
	}

	assert.Equal(t, mgl32.Vec2{0, 0}, input.PointerNDC())
}

func TestPointerNDC_CapturedCursorCentersTheGaze(t *testing.T) {
	input := &Input{
		MouseCaptured: true,
		MouseX:        700,
		MouseY:        20,
		WindowWidth:   800,
		WindowHeight:  600,
	}

	assert.Equal(t, mgl32.Vec2{0, 0}, input.PointerNDC())
}

func TestPointerNDC_ZeroSizeWindow(t *testing.T) {
	input := &Input{MouseX: 50, MouseY: 50}

	// Minimized windows report zero size; center beats dividing by it.
	assert.Equal(t, mgl32.Vec2{0, 0}, input.PointerNDC())
}
