package isovox

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

// Renderer turns a VoxelSet into painter-ordered Surface calls.
//
// A render is one synchronous pass: compute face colors, stamp them into
// a fresh Mesh, sort the triangles back to front and paint them. A
// Renderer may be reused; it is not safe for concurrent Render calls when
// a shared random source was injected with WithRand.
type Renderer struct {
	cfg     Config
	proj    Projection
	sun     SunRay
	stamper Stamper
	rng     *rand.Rand // injected; nil means reseed from cfg per render
}

// Stats summarizes one render.
type Stats struct {
	Voxels        int
	Triangles     int
	Effects       int
	Polygons      int
	SmallPolygons int
	ShadowedFaces int
}

// NewRenderer creates a renderer for cfg.
// cfg is expected to pass Config.Validate.
func NewRenderer(cfg Config, opts ...Option) *Renderer {
	var o rendererOptions
	for _, opt := range opts {
		opt(&o)
	}

	sun := SunRay{
		Direction:   SunDirection,
		MaxDistance: cfg.Sun.MaxDistance,
		StepSize:    cfg.Sun.StepSize,
	}
	if o.sun != nil {
		sun = *o.sun
	}

	return &Renderer{
		cfg:     cfg,
		proj:    cfg.Projection.Projection(),
		sun:     sun,
		stamper: Stamper{DepthSkew: cfg.Shading.DepthSkew},
		rng:     o.rng,
	}
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config { return r.cfg }

// Projection returns the projection used for painting.
func (r *Renderer) Projection() Projection { return r.proj }

// Render paints set with palette p onto s.
//
// The palette is validated before anything is painted; a gradient without
// color stops aborts the render with an error wrapping ErrNoColorStops.
// An empty set produces no Surface calls and no error.
//
// Without WithRand every call reseeds from Config.Shading.Seed, so equal
// inputs give identical paint sequences.
func (r *Renderer) Render(s Surface, set *VoxelSet, p Palette) (Stats, error) {
	rng := r.random()

	mesh, stats, err := r.build(set, p, rng)
	if err != nil {
		return Stats{}, err
	}
	ps := r.paint(s, mesh, rng)
	ps.Voxels = stats.Voxels
	ps.ShadowedFaces = stats.ShadowedFaces

	Logger().Debug("isovox: render complete",
		"palette", p.Name,
		"voxels", ps.Voxels,
		"triangles", ps.Triangles,
		"effects", ps.Effects,
		"shadowed_faces", ps.ShadowedFaces)
	return ps, nil
}

// Build computes face colors for every voxel and stamps them into a new
// Mesh without painting.
func (r *Renderer) Build(set *VoxelSet, p Palette) (*Mesh, error) {
	m, _, err := r.build(set, p, r.random())
	return m, err
}

// Paint sorts the triangles of m back to front and paints them onto s.
func (r *Renderer) Paint(s Surface, m *Mesh) Stats {
	return r.paint(s, m, r.random())
}

// random returns the injected source or a fresh one seeded from config.
func (r *Renderer) random() *rand.Rand {
	if r.rng != nil {
		return r.rng
	}
	seed := r.cfg.Shading.Seed
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Lightness returns the lightness of face f of v and whether the face is
// in shadow. The shadow ray starts one unit outside the face.
func (r *Renderer) Lightness(set *VoxelSet, v Voxel, f Face) (float64, bool) {
	sh := r.cfg.Shading
	l := float64(v.Y())/sh.HeightDivisor + sh.Offset(f)

	dx, dy, dz := f.Normal()
	shadowed := r.sun.OccludedAt(set,
		float64(v.X()+dx), float64(v.Y()+dy), float64(v.Z()+dz))
	if !shadowed {
		l += sh.ShadowBonus
	}
	return l, shadowed
}

func (r *Renderer) build(set *VoxelSet, p Palette, rng *rand.Rand) (*Mesh, Stats, error) {
	if err := p.Validate(); err != nil {
		return nil, Stats{}, err
	}

	m := NewMesh()
	var stats Stats
	if set == nil {
		return m, stats, nil
	}

	for v := range set.All() {
		stats.Voxels++
		for _, f := range Faces {
			l, shadowed := r.Lightness(set, v, f)
			if shadowed {
				stats.ShadowedFaces++
			}
			c := r.jitter(p.Ramp(f).At(l), rng)

			style := StyleFlat
			if f == FaceUp {
				style = p.TopStyle
			}
			r.stamper.Stamp(m, v, f, style, func() RGB { return c })
		}
	}
	return m, stats, nil
}

// jitter adds bounded uniform noise to each channel.
func (r *Renderer) jitter(c RGB, rng *rand.Rand) RGB {
	j := r.cfg.Shading.Jitter
	if j <= 0 {
		return c
	}
	return RGB{
		R: c.R + (rng.Float64()*2-1)*j,
		G: c.G + (rng.Float64()*2-1)*j,
		B: c.B + (rng.Float64()*2-1)*j,
	}
}

// paintEntry is a mesh triangle or its decorative overlay.
type paintEntry struct {
	tri    Triangle
	depth  float64
	effect bool
}

func (r *Renderer) paint(s Surface, m *Mesh, rng *rand.Rand) Stats {
	stats := Stats{Triangles: m.Len()}
	entries := r.gather(m)
	sortEntries(entries)

	for _, e := range entries {
		pts := r.proj.Triangle(e.tri.Key)
		if !e.effect {
			s.FillPolygon(pts, e.tri.Cell.Color.Clamp())
			stats.Polygons++
			continue
		}
		stats.Effects++
		stats.SmallPolygons += r.paintBlades(s, pts, e.tri.Cell.Color, rng)
	}
	return stats
}

// gather collects the mesh triangles and, when effects are enabled, one
// overlay entry per decorated triangle.
func (r *Renderer) gather(m *Mesh) []paintEntry {
	fx := r.cfg.Effects
	entries := make([]paintEntry, 0, m.Len())
	for t := range m.All() {
		entries = append(entries, paintEntry{tri: t, depth: t.Cell.Depth})
		if fx.Enabled && fx.Shapes > 0 && t.Cell.Style == StyleTuft {
			entries = append(entries, paintEntry{tri: t, depth: t.Cell.Depth - fx.DepthBias, effect: true})
		}
	}
	return entries
}

// sortEntries orders entries farthest first. Ties fall back to base
// triangles before overlays and then to the lattice key, so the order
// never depends on map iteration.
func sortEntries(entries []paintEntry) {
	slices.SortStableFunc(entries, func(a, b paintEntry) int {
		if c := cmp.Compare(b.depth, a.depth); c != 0 {
			return c
		}
		if a.effect != b.effect {
			if a.effect {
				return 1
			}
			return -1
		}
		ka, kb := a.tri.Key, b.tri.Key
		if c := cmp.Compare(ka.Corner.TY(), kb.Corner.TY()); c != 0 {
			return c
		}
		if c := cmp.Compare(ka.Corner.TX(), kb.Corner.TX()); c != 0 {
			return c
		}
		return cmp.Compare(ka.Orient, kb.Orient)
	})
}

// paintBlades draws Effects.Shapes thin upright triangles along each of
// the two edges leaving the lower apex, inset towards the centroid.
func (r *Renderer) paintBlades(s Surface, pts [3]Point, base RGB, rng *rand.Rand) int {
	fx := r.cfg.Effects
	color := base.Scale(fx.Shade).Clamp()
	center := Centroid(pts)

	n := 0
	for _, edge := range [2][2]Point{{pts[0], pts[1]}, {pts[0], pts[2]}} {
		a, b := edge[0], edge[1]
		dir := b.Sub(a).Normalize()
		inward := dir.Perp()
		if inward.Dot(center.Sub(a)) < 0 {
			inward = inward.Mul(-1)
		}
		half := dir.Mul(fx.Size * 0.25)

		for range fx.Shapes {
			t := 0.2 + 0.6*rng.Float64()
			foot := a.Lerp(b, t).Add(inward.Mul(fx.Size * 0.5))
			tip := foot.Add(Point{Y: -fx.Size})
			s.FillSmallPolygon([3]Point{foot.Sub(half), foot.Add(half), tip}, color)
			n++
		}
	}
	return n
}
