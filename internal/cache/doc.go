// Package cache provides a small generic LRU cache.
//
//	c := cache.New[int, color.LUT](8)
//	lut := c.GetOrCreate(250, func() color.LUT { return color.NewLUT(nil, 250) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
