package isovox

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the named constants of a render. The zero value is not
// useful; start from DefaultConfig.
type Config struct {
	Projection ProjectionConfig `toml:"projection"`
	Sun        SunConfig        `toml:"sun"`
	Shading    ShadingConfig    `toml:"shading"`
	Effects    EffectsConfig    `toml:"effects"`
}

// ProjectionConfig configures the isometric projection.
type ProjectionConfig struct {
	Scale   float64 `toml:"scale"`
	OriginX float64 `toml:"origin_x"`
	OriginY float64 `toml:"origin_y"`
}

// Projection returns the configured projection.
func (c ProjectionConfig) Projection() Projection {
	return Projection{Origin: Point{X: c.OriginX, Y: c.OriginY}, Scale: c.Scale}
}

// SunConfig configures ray sampling. The direction is fixed to
// SunDirection.
type SunConfig struct {
	MaxDistance float64 `toml:"max_distance"`
	StepSize    float64 `toml:"step_size"`
}

// ShadingConfig controls face lightness and color noise.
//
// lightness = y/HeightDivisor + face offset + (lit ? ShadowBonus : 0)
type ShadingConfig struct {
	HeightDivisor float64 `toml:"height_divisor"`
	ShadowBonus   float64 `toml:"shadow_bonus"`
	UpOffset      float64 `toml:"up_offset"`
	LeftOffset    float64 `toml:"left_offset"`
	RightOffset   float64 `toml:"right_offset"`
	DepthSkew     float64 `toml:"depth_skew"`
	// Jitter is the bound of the uniform noise added to each channel.
	// Zero disables noise and no random numbers are drawn.
	Jitter float64 `toml:"jitter"`
	Seed   uint64  `toml:"seed"`
}

// Offset returns the lightness offset of a face.
func (c ShadingConfig) Offset(f Face) float64 {
	switch f {
	case FaceLeft:
		return c.LeftOffset
	case FaceRight:
		return c.RightOffset
	default:
		return c.UpOffset
	}
}

// EffectsConfig controls the blade overlay drawn on StyleTuft triangles.
type EffectsConfig struct {
	Enabled bool `toml:"enabled"`
	// Shapes is the number of blades per decorated edge.
	Shapes int `toml:"shapes"`
	// Size is the blade height in surface units.
	Size float64 `toml:"size"`
	// DepthBias moves the overlay nearer than its triangle.
	DepthBias float64 `toml:"depth_bias"`
	// Shade multiplies the triangle color to obtain the blade color.
	Shade float64 `toml:"shade"`
}

// DefaultConfig returns the constants the renderer ships with.
func DefaultConfig() Config {
	return Config{
		Projection: ProjectionConfig{
			Scale:   12,
			OriginX: 400,
			OriginY: 400,
		},
		Sun: SunConfig{
			MaxDistance: DefaultSunMaxDistance,
			StepSize:    DefaultSunStepSize,
		},
		Shading: ShadingConfig{
			HeightDivisor: 20,
			ShadowBonus:   0.3,
			UpOffset:      0.2,
			LeftOffset:    0.1,
			RightOffset:   0,
			DepthSkew:     DefaultDepthSkew,
			Jitter:        0.05,
			Seed:          1,
		},
		Effects: EffectsConfig{
			Enabled:   true,
			Shapes:    3,
			Size:      3,
			DepthBias: 0.001,
			Shade:     0.8,
		},
	}
}

// ParseConfig decodes TOML on top of DefaultConfig. Keys that are not
// part of Config are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("isovox: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return Config{}, fmt.Errorf("isovox: load config: %w", err)
	}
	return ParseConfig(data)
}

// Marshal encodes the config as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate rejects values that would make a render meaningless.
func (c Config) Validate() error {
	switch {
	case c.Projection.Scale <= 0:
		return fmt.Errorf("isovox: invalid config: projection.scale=%v (must be > 0)", c.Projection.Scale)
	case c.Sun.StepSize <= 0:
		return fmt.Errorf("isovox: invalid config: sun.step_size=%v (must be > 0)", c.Sun.StepSize)
	case c.Sun.MaxDistance < 0:
		return fmt.Errorf("isovox: invalid config: sun.max_distance=%v (must be >= 0)", c.Sun.MaxDistance)
	case c.Shading.HeightDivisor == 0:
		return fmt.Errorf("isovox: invalid config: shading.height_divisor must not be 0")
	case c.Shading.Jitter < 0:
		return fmt.Errorf("isovox: invalid config: shading.jitter=%v (must be >= 0)", c.Shading.Jitter)
	case c.Effects.Shapes < 0:
		return fmt.Errorf("isovox: invalid config: effects.shapes=%d (must be >= 0)", c.Effects.Shapes)
	}
	return nil
}
