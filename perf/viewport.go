package perf

// Rect is an element's bounding box in viewport coordinates.
type Rect struct {
	Top, Left, Bottom, Right float64
}

// BoundingRect lets a Rect stand in for an Element.
func (r Rect) BoundingRect() Rect { return r }

// Element is anything with a bounding box.
type Element interface {
	BoundingRect() Rect
}

// Viewport is the visible area, anchored at the origin.
type Viewport struct {
	Width, Height float64
}

// IsInViewport reports whether el lies entirely inside vp. Edges touching
// the viewport bounds count as inside.
func IsInViewport(el Element, vp Viewport) bool {
	if el == nil {
		return false
	}
	r := el.BoundingRect()
	return r.Top >= 0 &&
		r.Left >= 0 &&
		r.Bottom <= vp.Height &&
		r.Right <= vp.Width
}
