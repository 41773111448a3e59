// Package svg renders recordings to SVG documents. Every polygon becomes a
// <polygon> element in paint order, so later elements cover earlier ones
// the same way the raster backend composites them.
//
//	import _ "github.com/gogpu/isovox/recording/backends/svg"
//
//	backend, _ := recording.NewBackend("svg")
package svg

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/isovox"
	"github.com/gogpu/isovox/recording"
)

func init() {
	recording.Register("svg", func() recording.Backend {
		return NewBackend()
	})
}

// EffectClass is the class attribute given to overlay shapes.
const EffectClass = "effect"

type element struct {
	pts    [3]isovox.Point
	fill   string
	effect bool
}

// Backend collects polygons and serializes them on End.
type Backend struct {
	width, height int
	background    string
	elems         []element
	doc           bytes.Buffer
	ended         bool

	// Indent pretty-prints the document when set before End.
	Indent bool
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a new SVG backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin starts a new document.
func (b *Backend) Begin(width, height int) error {
	b.width, b.height = width, height
	b.background = ""
	b.elems = b.elems[:0]
	b.doc.Reset()
	b.ended = false
	return nil
}

// Clear paints the background. Anything drawn before is hidden, so it is
// dropped from the document.
func (b *Backend) Clear(c isovox.RGB) {
	b.background = c.Clamp().Hex()
	b.elems = b.elems[:0]
}

// FillPolygon adds a mesh triangle.
func (b *Backend) FillPolygon(pts [3]isovox.Point, c isovox.RGB) {
	b.elems = append(b.elems, element{pts: pts, fill: c.Clamp().Hex()})
}

// FillSmallPolygon adds an overlay shape tagged with EffectClass.
func (b *Backend) FillSmallPolygon(pts [3]isovox.Point, c isovox.RGB) {
	b.elems = append(b.elems, element{pts: pts, fill: c.Clamp().Hex(), effect: true})
}

// Len returns the number of polygons in the document.
func (b *Backend) Len() int {
	return len(b.elems)
}

// End serializes the document.
func (b *Backend) End() error {
	b.doc.Reset()
	enc := xml.NewEncoder(&b.doc)
	if b.Indent {
		enc.Indent("", "  ")
	}

	root := xml.StartElement{Name: xml.Name{Local: "svg"}}
	addAttr(&root.Attr, "xmlns", "http://www.w3.org/2000/svg")
	addAttr(&root.Attr, "width", strconv.Itoa(b.width))
	addAttr(&root.Attr, "height", strconv.Itoa(b.height))
	addAttr(&root.Attr, "viewBox", "0 0 "+strconv.Itoa(b.width)+" "+strconv.Itoa(b.height))
	addAttr(&root.Attr, "shape-rendering", "crispEdges")
	if err := enc.EncodeToken(root); err != nil {
		return err
	}

	if b.background != "" {
		rect := xml.StartElement{Name: xml.Name{Local: "rect"}}
		addAttr(&rect.Attr, "width", "100%")
		addAttr(&rect.Attr, "height", "100%")
		addAttr(&rect.Attr, "fill", b.background)
		if err := encodeEmpty(enc, rect); err != nil {
			return err
		}
	}

	for _, e := range b.elems {
		poly := xml.StartElement{Name: xml.Name{Local: "polygon"}}
		addAttr(&poly.Attr, "points", pointsAttr(e.pts))
		addAttr(&poly.Attr, "fill", e.fill)
		if e.effect {
			addAttr(&poly.Attr, "class", EffectClass)
		}
		if err := encodeEmpty(enc, poly); err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	b.doc.WriteByte('\n')
	b.ended = true
	return nil
}

// Bytes returns the serialized document, or nil before End.
func (b *Backend) Bytes() []byte {
	if !b.ended {
		return nil
	}
	return b.doc.Bytes()
}

// WriteTo writes the document to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.ended {
		return 0, recording.ErrNotEnded
	}
	n, err := w.Write(b.doc.Bytes())
	return int64(n), err
}

// SaveToFile writes the document to path.
func (b *Backend) SaveToFile(path string) error {
	if !b.ended {
		return recording.ErrNotEnded
	}
	return os.WriteFile(path, b.doc.Bytes(), 0o644)
}

// Ext implements recording.FileBackend.
func (b *Backend) Ext() string {
	return ".svg"
}

func addAttr(attr *[]xml.Attr, name, val string) {
	*attr = append(*attr, xml.Attr{Name: xml.Name{Local: name}, Value: val})
}

func encodeEmpty(enc *xml.Encoder, se xml.StartElement) error {
	if err := enc.EncodeToken(se); err != nil {
		return err
	}
	return enc.EncodeToken(se.End())
}

// pointsAttr formats a triangle as "x,y x,y x,y" with two decimals.
func pointsAttr(pts [3]isovox.Point) string {
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(p.X, 'f', 2, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(p.Y, 'f', 2, 64))
	}
	return sb.String()
}
