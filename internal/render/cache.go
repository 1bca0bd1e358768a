// Package render memoizes layout for the document on screen.
package render

import (
	"github.com/zhubert/erwindb/internal/layout"
	"github.com/zhubert/erwindb/internal/logger"
	"github.com/zhubert/erwindb/internal/markup"
)

// LayoutFunc lays out a document; layout.Layout in production.
type LayoutFunc func(doc markup.Document, width int, mode layout.PaneMode) layout.Result

// Key identifies one layout of one document.
type Key struct {
	ContentID uint64
	Width     int
	Mode      layout.PaneMode
}

// Entry is a cached layout. It is never modified after creation.
type Entry struct {
	Key     Key
	Lines   []layout.Line
	Links   []layout.Link
	Anchors map[string]int
}

// Cache is a single-slot memo: only one document is displayed at a time, so
// a miss replaces the entry wholesale. It is not safe for concurrent use.
type Cache struct {
	layout LayoutFunc
	entry  *Entry
}

// NewCache returns an empty cache. A nil fn uses layout.Layout.
func NewCache(fn LayoutFunc) *Cache {
	if fn == nil {
		fn = layout.Layout
	}
	return &Cache{layout: fn}
}

// GetOrRender returns the entry for (id, width, mode), laying doc out only
// when the key differs from the cached one. Callers detect replacement by
// comparing the returned pointer with the previous one.
func (c *Cache) GetOrRender(id uint64, width int, mode layout.PaneMode, doc markup.Document) *Entry {
	key := Key{ContentID: id, Width: width, Mode: mode}
	if c.entry != nil && c.entry.Key == key {
		return c.entry
	}

	log := logger.WithComponent("render")
	log.Debug("layout miss", "content", id, "width", width, "mode", mode.String())

	res := c.layout(doc, width, mode)
	c.entry = &Entry{
		Key:     key,
		Lines:   res.Lines,
		Links:   res.Links,
		Anchors: res.Anchors,
	}
	return c.entry
}

// Current returns the cached entry, or nil when nothing has been rendered.
func (c *Cache) Current() *Entry {
	return c.entry
}

// Invalidate drops the cached entry.
func (c *Cache) Invalidate() {
	c.entry = nil
}
