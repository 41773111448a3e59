// Package isovox renders isometric voxel scenes as flat-shaded triangles.
//
// # Overview
//
// A scene is a VoxelSet of unit cubes. Each cube shows three faces to the
// fixed isometric camera (up, left and right), and each face covers two
// triangles of a triangular lattice. The renderer stamps those triangles
// into a sparse Mesh where the nearest voxel wins, then paints the mesh
// back to front onto a Surface.
//
// # Coordinates
//
// Voxels live at integer (x, y, z) with y pointing up. A voxel's center
// line projects through lattice corner (x+z, y-z). Lattice corners (tx, ty)
// are projected with
//
//	x = X0 + s·cos30°·tx
//	y = Y0 − s·ty − s·sin30°·tx
//
// Corners and voxels are canonical handles obtained from a Lattice, so
// equal coordinates always compare equal with ==.
//
// # Shading
//
// Face lightness combines the voxel height, a per-face offset and a bonus
// when a coarse ray towards the sun (SunRay) escapes the scene. A Palette
// maps each face's lightness to a color through a Ramp, usually a
// Gradient. Optional bounded noise breaks up banding.
//
// # Quick Start
//
//	lat := isovox.NewLattice()
//	set := isovox.NewVoxelSet(lat)
//	set.Add(0, 0, 0)
//
//	rec := recording.NewRecorder(800, 600)
//	r := isovox.NewRenderer(isovox.DefaultConfig())
//	if _, err := r.Render(rec, set, palette.Grass()); err != nil {
//	    log.Fatal(err)
//	}
//	_ = rec.FinishRecording().Playback(raster.NewBackend())
//
// # Determinism
//
// Randomness (color noise, blade placement) comes from an explicit
// math/rand/v2 source: either injected with WithRand or seeded per render
// from Config.Shading.Seed. Set Shading.Jitter to 0 and disable Effects
// for fully noise-free output.
//
// # Approximations
//
// The depth key (Voxel.Depth) and the sun ray are deliberately rough:
// the key only orders voxels that project near the same corner and the
// ray samples rather than traverses. The output style depends on both.
package isovox
