// Package text loads outline fonts and turns glyphs into coverage masks
// for the framebuffer canvas.
//
// Two parsing backends are available:
//
//   - "ximage" (default): golang.org/x/image/font/sfnt
//   - "gotext": github.com/go-text/typesetting/font
//
// Both produce a [Face], which is immutable after parsing and safe for
// concurrent use. Sizes are given in pixels per em.
//
// # Example
//
//	face, err := text.Parse(goregular.TTF)
//	if err != nil {
//	    return err
//	}
//	m := face.Metrics(24)
//	gid, _ := face.GlyphIndex('A')
//	o, _ := face.Outline(gid, 24)
//	mask := text.Rasterize(o, 10, 10+m.Ascent)
//
// Glyphs are not cached between calls.
package text
