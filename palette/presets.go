// Package palette provides named isovox palettes and loads additional ones
// from YAML files.
//
// A palette file holds a list of palettes. Each ramp is either a single hex
// color, a list of hex colors spread evenly over [0, 1], or a list of
// explicit stops:
//
//	palettes:
//	  - name: moss
//	    top_style: tuft
//	    linear: true
//	    top: ["#1f3d1a", "#4f8f3a", "#a6d96a"]
//	    left: "#5a4030"
//	    right:
//	      - {offset: 0, color: "#3b2a1e"}
//	      - {offset: 1, color: "#8a6a4a"}
package palette

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/gogpu/isovox"
)

// ErrUnknown is returned when a palette name is not in a Book.
var ErrUnknown = errors.New("palette: unknown palette")

// Grass has green tops decorated with tufts over earthy sides.
func Grass() isovox.Palette {
	return isovox.Palette{
		Name:     "grass",
		Top:      isovox.Even(isovox.MustHex("#1d3b16"), isovox.MustHex("#3f7a2a"), isovox.MustHex("#8cc84b"), isovox.MustHex("#d4f08c")),
		Left:     isovox.Even(isovox.MustHex("#2b1d12"), isovox.MustHex("#6b4a2f"), isovox.MustHex("#a57e55")),
		Right:    isovox.Even(isovox.MustHex("#23170e"), isovox.MustHex("#5a3d26"), isovox.MustHex("#8f6c48")),
		TopStyle: isovox.StyleTuft,
	}
}

// Sand is a warm desert palette.
func Sand() isovox.Palette {
	return isovox.Palette{
		Name:  "sand",
		Top:   isovox.Even(isovox.MustHex("#8a6d3b"), isovox.MustHex("#d8b86a"), isovox.MustHex("#fbe9b7")),
		Left:  isovox.Even(isovox.MustHex("#6e5428"), isovox.MustHex("#b8944f"), isovox.MustHex("#e6cb8a")),
		Right: isovox.Even(isovox.MustHex("#5c4420"), isovox.MustHex("#a07f40"), isovox.MustHex("#d4b56f")),
	}
}

// Stone is a cool gray palette interpolated in linear light.
func Stone() isovox.Palette {
	return isovox.Palette{
		Name:  "stone",
		Top:   isovox.Even(isovox.MustHex("#3a3d42"), isovox.MustHex("#9aa0a8")).SetLinearBlend(true),
		Left:  isovox.Even(isovox.MustHex("#2b2e33"), isovox.MustHex("#7c828a")).SetLinearBlend(true),
		Right: isovox.Even(isovox.MustHex("#202328"), isovox.MustHex("#646a72")).SetLinearBlend(true),
	}
}

// Snow has white tops with blue shadowed sides.
func Snow() isovox.Palette {
	return isovox.Palette{
		Name: "snow",
		Top: isovox.NewGradient(
			isovox.ColorStop{Offset: 0, Color: isovox.MustHex("#7f93b5")},
			isovox.ColorStop{Offset: 0.6, Color: isovox.MustHex("#e3ecf7")},
			isovox.ColorStop{Offset: 1, Color: isovox.White},
		),
		Left:  isovox.Even(isovox.MustHex("#5c6f92"), isovox.MustHex("#c7d5ea")),
		Right: isovox.Even(isovox.MustHex("#4a5a7a"), isovox.MustHex("#aebfd9")),
	}
}

// Book maps palette names to palettes.
type Book map[string]isovox.Palette

// Presets returns a fresh Book holding the built-in palettes.
func Presets() Book {
	b := Book{}
	for _, p := range []isovox.Palette{Grass(), Sand(), Stone(), Snow()} {
		b[p.Name] = p
	}
	return b
}

// Get returns the palette called name.
func (b Book) Get(name string) (isovox.Palette, error) {
	p, ok := b[name]
	if !ok {
		return isovox.Palette{}, fmt.Errorf("%w %q (have %v)", ErrUnknown, name, b.Names())
	}
	return p, nil
}

// Add stores each palette under its name, replacing existing entries.
func (b Book) Add(ps ...isovox.Palette) {
	for _, p := range ps {
		b[p.Name] = p
	}
}

// Names returns the palette names in sorted order.
func (b Book) Names() []string {
	return slices.Sorted(maps.Keys(b))
}
