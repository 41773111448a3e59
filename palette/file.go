package palette

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/isovox"
)

type fileSpec struct {
	Palettes []paletteSpec `yaml:"palettes"`
}

type paletteSpec struct {
	Name     string   `yaml:"name"`
	TopStyle string   `yaml:"top_style,omitempty"`
	Linear   bool     `yaml:"linear,omitempty"`
	Top      rampSpec `yaml:"top"`
	Left     rampSpec `yaml:"left"`
	Right    rampSpec `yaml:"right"`
}

type stopSpec struct {
	Offset float64 `yaml:"offset"`
	Color  string  `yaml:"color"`
}

// rampSpec accepts a scalar hex color, a list of hex colors or a list of
// stops.
type rampSpec struct {
	stops []stopSpec
	set   bool
}

func (r *rampSpec) UnmarshalYAML(n *yaml.Node) error {
	r.set = true
	switch n.Kind {
	case yaml.ScalarNode:
		r.stops = []stopSpec{{Offset: 0, Color: n.Value}}
		return nil
	case yaml.SequenceNode:
	default:
		return fmt.Errorf("line %d: ramp must be a color or a list", n.Line)
	}

	r.stops = make([]stopSpec, 0, len(n.Content))
	for i, item := range n.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			off := 0.0
			if len(n.Content) > 1 {
				off = float64(i) / float64(len(n.Content)-1)
			}
			r.stops = append(r.stops, stopSpec{Offset: off, Color: item.Value})
		case yaml.MappingNode:
			var s stopSpec
			if err := item.Decode(&s); err != nil {
				return err
			}
			r.stops = append(r.stops, s)
		default:
			return fmt.Errorf("line %d: unsupported stop", item.Line)
		}
	}
	return nil
}

func (r rampSpec) MarshalYAML() (any, error) {
	return r.stops, nil
}

func (r rampSpec) gradient(linear bool) (*isovox.Gradient, error) {
	if !r.set || len(r.stops) == 0 {
		return nil, isovox.ErrNoColorStops
	}
	stops := make([]isovox.ColorStop, 0, len(r.stops))
	for _, s := range r.stops {
		c, ok := isovox.Hex(s.Color)
		if !ok {
			return nil, fmt.Errorf("bad color %q", s.Color)
		}
		if s.Offset < 0 || s.Offset > 1 {
			return nil, fmt.Errorf("stop offset %g outside [0, 1]", s.Offset)
		}
		stops = append(stops, isovox.ColorStop{Offset: s.Offset, Color: c})
	}
	return isovox.NewGradient(stops...).SetLinearBlend(linear), nil
}

func parseStyle(s string) (isovox.Style, error) {
	switch s {
	case "", "flat":
		return isovox.StyleFlat, nil
	case "tuft":
		return isovox.StyleTuft, nil
	}
	return 0, fmt.Errorf("unknown top_style %q", s)
}

func (ps paletteSpec) palette() (isovox.Palette, error) {
	if ps.Name == "" {
		return isovox.Palette{}, errors.New("palette without a name")
	}
	style, err := parseStyle(ps.TopStyle)
	if err != nil {
		return isovox.Palette{}, fmt.Errorf("%s: %w", ps.Name, err)
	}
	p := isovox.Palette{Name: ps.Name, TopStyle: style}
	for _, r := range []struct {
		face string
		spec rampSpec
		dst  *isovox.Ramp
	}{
		{"top", ps.Top, &p.Top},
		{"left", ps.Left, &p.Left},
		{"right", ps.Right, &p.Right},
	} {
		g, err := r.spec.gradient(ps.Linear)
		if err != nil {
			return isovox.Palette{}, fmt.Errorf("%s: %s ramp: %w", ps.Name, r.face, err)
		}
		*r.dst = g
	}
	return p, nil
}

// Decode reads a palette file from r.
func Decode(r io.Reader) ([]isovox.Palette, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f fileSpec
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("palette: decode: %w", err)
	}

	out := make([]isovox.Palette, 0, len(f.Palettes))
	seen := make(map[string]bool, len(f.Palettes))
	for _, ps := range f.Palettes {
		p, err := ps.palette()
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("palette: %q defined twice", p.Name)
		}
		seen[p.Name] = true
		out = append(out, p)
	}
	return out, nil
}

// Parse is Decode over a byte slice.
func Parse(data []byte) ([]isovox.Palette, error) {
	return Decode(bytes.NewReader(data))
}

// Load reads a palette file from disk.
func Load(path string) ([]isovox.Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// ErrMixedBlend is returned by Encode for a palette whose gradients do not
// agree on linear-light blending; the file format stores one flag per
// palette.
var ErrMixedBlend = errors.New("palette: gradients mix sRGB and linear blending")

// Encode writes palettes in the file format. Only gradient and solid
// ramps can be encoded.
func Encode(w io.Writer, ps ...isovox.Palette) error {
	f := fileSpec{Palettes: make([]paletteSpec, 0, len(ps))}
	for _, p := range ps {
		spec := paletteSpec{Name: p.Name}
		var blend *bool
		if p.TopStyle == isovox.StyleTuft {
			spec.TopStyle = "tuft"
		}
		for _, r := range []struct {
			face string
			src  isovox.Ramp
			dst  *rampSpec
		}{
			{"top", p.Top, &spec.Top},
			{"left", p.Left, &spec.Left},
			{"right", p.Right, &spec.Right},
		} {
			rs, g, err := encodeRamp(r.src)
			if err != nil {
				return fmt.Errorf("palette: %q: %s ramp: %w", p.Name, r.face, err)
			}
			// Solid ramps look the same in either space.
			if g != nil {
				linear := g.LinearBlend()
				if blend != nil && *blend != linear {
					return fmt.Errorf("%w: %q %s ramp", ErrMixedBlend, p.Name, r.face)
				}
				blend = &linear
			}
			*r.dst = rs
		}
		spec.Linear = blend != nil && *blend
		f.Palettes = append(f.Palettes, spec)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}

// encodeRamp also returns the source gradient, or nil for a solid ramp.
func encodeRamp(r isovox.Ramp) (rampSpec, *isovox.Gradient, error) {
	switch r := r.(type) {
	case isovox.Solid:
		return rampSpec{set: true, stops: []stopSpec{{Color: isovox.RGB(r).Hex()}}}, nil, nil
	case *isovox.Gradient:
		if r == nil {
			break
		}
		var rs rampSpec
		rs.set = true
		for _, s := range r.Stops() {
			rs.stops = append(rs.stops, stopSpec{Offset: s.Offset, Color: s.Color.Hex()})
		}
		return rs, r, nil
	}
	return rampSpec{}, nil, fmt.Errorf("cannot encode %T", r)
}
