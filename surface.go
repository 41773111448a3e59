package isovox

// Surface receives the paint commands of a render in painter's order.
// Colors passed to a Surface are already clamped to [0, 1].
//
// recording.Recorder and the recording backends implement Surface.
type Surface interface {
	// FillPolygon fills a flat-colored mesh triangle.
	FillPolygon(pts [3]Point, c RGB)
	// FillSmallPolygon fills one shape of a decorative overlay.
	FillSmallPolygon(pts [3]Point, c RGB)
}
