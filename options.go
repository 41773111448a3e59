package isovox

import "math/rand/v2"

// Option configures a Renderer during creation.
//
// Example:
//
//	// Seeded noise from the config
//	r := isovox.NewRenderer(isovox.DefaultConfig())
//
//	// Caller-owned random source (dependency injection)
//	r := isovox.NewRenderer(cfg, isovox.WithRand(rand.New(rand.NewPCG(7, 7))))
type Option func(*rendererOptions)

// rendererOptions holds optional collaborators for Renderer creation.
type rendererOptions struct {
	rng *rand.Rand
	sun *SunRay
}

// WithRand sets the random source used for color jitter and blade
// placement. Without it the renderer seeds a PCG source from
// Config.Shading.Seed.
func WithRand(r *rand.Rand) Option {
	return func(o *rendererOptions) {
		o.rng = r
	}
}

// WithSunRay replaces the shadow caster built from Config.Sun, e.g. to
// try a different sun direction.
func WithSunRay(s SunRay) Option {
	return func(o *rendererOptions) {
		o.sun = &s
	}
}
