package vlist

// Renderable is an item the list knows how to display. Render returns the
// item's full content, possibly spanning multiple lines; the list wraps or
// truncates it to the current width. Key returns a stable unique identifier
// used to maintain selection when the underlying items change
type Renderable interface {
	Render() string
	Key() string
}

type RenderableString struct {
	Content string
}

func (r RenderableString) Render() string {
	return r.Content
}

func (r RenderableString) Key() string {
	return r.Content
}

var _ Renderable = RenderableString{}
