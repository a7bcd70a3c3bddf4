package perf

import "testing"

func TestIsInViewport(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}

	tests := []struct {
		name string
		el   Element
		want bool
	}{
		{"inside", Rect{Top: 10, Left: 10, Bottom: 100, Right: 100}, true},
		{"exact bounds", Rect{Top: 0, Left: 0, Bottom: 600, Right: 800}, true},
		{"above", Rect{Top: -1, Left: 10, Bottom: 50, Right: 50}, false},
		{"left of", Rect{Top: 10, Left: -5, Bottom: 50, Right: 50}, false},
		{"below", Rect{Top: 500, Left: 10, Bottom: 601, Right: 50}, false},
		{"right of", Rect{Top: 10, Left: 700, Bottom: 50, Right: 801}, false},
		{"nil element", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInViewport(tt.el, vp); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
