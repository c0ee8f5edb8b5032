// Package cache provides a bounded least-recently-used cache.
//
// The canvas keeps rasterized glyph masks in it so text redrawn every
// frame is rasterized once.
//
//	c := cache.New[glyphKey, *image.Alpha](512)
//	mask, ok := c.Get(key)
//	if !ok {
//		mask = rasterize(key)
//		c.Put(key, mask)
//	}
package cache
