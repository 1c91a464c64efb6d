package systems

import "math"

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp32 linearly interpolates between a and b by t.
func lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Angle functions

// normalizeAngle wraps an angle to [-Pi, Pi].
func normalizeAngle(angle float32) float32 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// rotateToward blends heading toward target along the shortest arc by
// factor t. The result stays in [-Pi, Pi].
func rotateToward(heading, target, t float32) float32 {
	delta := normalizeAngle(target - heading)
	return normalizeAngle(heading + delta*t)
}

// Distance functions

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float32) float32 {
	return float32(math.Sqrt(float64(distanceSq(x1, y1, x2, y2))))
}

// normalizeVec returns the unit vector of (x, y), or the zero vector when
// the input is too short to carry a direction.
func normalizeVec(x, y float32) (float32, float32) {
	lenSq := x*x + y*y
	if lenSq < 1e-12 {
		return 0, 0
	}
	inv := 1 / float32(math.Sqrt(float64(lenSq)))
	return x * inv, y * inv
}

// sin32 and cos32 are float32 wrappers over math.

func sin32(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32 { return float32(math.Cos(float64(x))) }

// atan232 returns the angle of the vector (x, y).
func atan232(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }
