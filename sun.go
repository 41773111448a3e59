package isovox

import "math"

// Vec3 is a direction in voxel space.
type Vec3 struct {
	X, Y, Z float64
}

// SunDirection is the fixed direction from a surface towards the sun:
// one unit along x and z and half a unit up per unit of ray parameter.
var SunDirection = Vec3{X: 1, Y: 0.5, Z: 1}

// Default sun-ray sampling parameters.
const (
	DefaultSunMaxDistance = 20.0
	DefaultSunStepSize    = 0.25
)

// SunRay tests whether a point has a clear line to the sun.
//
// The ray is sampled, not traversed: each sample is rounded to the
// nearest voxel and looked up in the set. Thin gaps can let the ray slip
// between voxels and the same voxel can be sampled twice. Both effects
// are part of the look and are kept on purpose.
type SunRay struct {
	Direction   Vec3
	MaxDistance float64
	StepSize    float64
}

// DefaultSunRay returns a SunRay with SunDirection and the default
// sampling parameters.
func DefaultSunRay() SunRay {
	return SunRay{
		Direction:   SunDirection,
		MaxDistance: DefaultSunMaxDistance,
		StepSize:    DefaultSunStepSize,
	}
}

// Occluded walks the ray from the voxel position from in steps of
// StepSize up to MaxDistance and reports true at the first sample that
// lands on a voxel of set. The first sample rounds back onto from, so
// an occupied start reports occluded; callers start one unit outside.
func (r SunRay) Occluded(set *VoxelSet, from Voxel) bool {
	return r.OccludedAt(set, float64(from.X()), float64(from.Y()), float64(from.Z()))
}

// OccludedAt is Occluded for an arbitrary start position.
func (r SunRay) OccludedAt(set *VoxelSet, x, y, z float64) bool {
	if set == nil || set.Len() == 0 {
		return false
	}
	step := r.StepSize
	if step <= 0 {
		step = DefaultSunStepSize
	}

	for t := step; t <= r.MaxDistance; t += step {
		px := int(math.Round(x + r.Direction.X*t))
		py := int(math.Round(y + r.Direction.Y*t))
		pz := int(math.Round(z + r.Direction.Z*t))
		if set.Has(px, py, pz) {
			return true
		}
	}
	return false
}
