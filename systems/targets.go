package systems

import (
	"math"

	"github.com/pthm-cable/brood/components"
)

// TargetInfo describes the nearest target for one agent. When no target
// exists, Found is false and Dist is +Inf so distance comparisons fail
// closed: the agent never sees anything.
type TargetInfo struct {
	X, Y  float32
	Dist  float32
	Found bool
}

// NearestTarget scans the per-tick target snapshot and returns the
// closest position. Ties break to the first-encountered target. The
// comparison loop works on squared distances; the square root is taken
// once at the end.
func NearestTarget(x, y float32, targets []components.Position) TargetInfo {
	if len(targets) == 0 {
		return TargetInfo{Dist: float32(math.Inf(1))}
	}

	best := 0
	bestSq := distanceSq(x, y, targets[0].X, targets[0].Y)
	for i := 1; i < len(targets); i++ {
		if dSq := distanceSq(x, y, targets[i].X, targets[i].Y); dSq < bestSq {
			bestSq = dSq
			best = i
		}
	}

	return TargetInfo{
		X:     targets[best].X,
		Y:     targets[best].Y,
		Dist:  float32(math.Sqrt(float64(bestSq))),
		Found: true,
	}
}
