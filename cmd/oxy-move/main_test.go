package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrientationTintInRange(t *testing.T) {
	for yaw := -2 * math.Pi; yaw <= 2*math.Pi; yaw += 0.3 {
		for phi := 0.0; phi <= math.Pi; phi += 0.2 {
			r, g, b, a := orientationTint(yaw, phi, yaw*3, phi*7)
			for _, c := range []float64{r, g, b} {
				assert.GreaterOrEqual(t, c, 0.0)
				assert.LessOrEqual(t, c, 1.0)
			}
			assert.Equal(t, 1.0, a)
		}
	}
}

func TestOrientationTintFollowsPitch(t *testing.T) {
	_, _, up, _ := orientationTint(0, 0.2, 0.5, 0.5)
	_, _, down, _ := orientationTint(0, math.Pi-0.2, 0.5, 0.5)
	assert.Greater(t, up, down)
}

func TestOrientationTintFollowsYaw(t *testing.T) {
	r0, g0, _, _ := orientationTint(0, math.Pi/2, 0.5, 0.5)
	r1, g1, _, _ := orientationTint(math.Pi/2, math.Pi/2, 0.5, 0.5)
	assert.Greater(t, r0, r1)
	assert.Less(t, g0, g1)
}
