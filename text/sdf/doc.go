// Package sdf rasterizes glyph outlines into single-channel signed distance
// fields.
//
// A field stores, for every pixel center, the distance to the nearest edge
// of the outline mapped into [0, 1]: 0.5 lies on the edge, larger values
// are inside. The inside/outside decision uses the non-zero winding rule,
// so overlapping contours of composite glyphs render correctly.
//
// # Usage
//
//	shape := sdf.FromOutline(outline)
//	if err := shape.Validate(); err != nil {
//	    return err
//	}
//	shape.Normalize()
//
//	gen := sdf.NewGenerator(sdf.DefaultConfig())
//	p := gen.Place(shape)
//	field := gen.Generate(shape, p.TranslateX, p.TranslateY)
//	pixels := field.Crop(p.Box)
//
// Outlines are expected in pixels with y growing downward, as produced by
// text.Face.GlyphOutline.
package sdf
