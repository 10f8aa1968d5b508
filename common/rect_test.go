package common

import "testing"

func TestRectIntersects(t *testing.T) {
	cases := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, true},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{20, 0, 10, 10}, false},
		{"touching_edge", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, true},
		{"contained", Rect{0, 0, 40, 40}, Rect{10, 10, 5, 5}, true},
		{"empty", Rect{0, 0, 0, 10}, Rect{0, 0, 10, 10}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Intersects(c.b); got != c.want {
				t.Fatalf("Intersects = %v, want %v", got, c.want)
			}
			if got := c.b.Intersects(c.a); got != c.want {
				t.Fatalf("Intersects (swapped) = %v, want %v", got, c.want)
			}
		})
	}
}

func TestRectMirrorX(t *testing.T) {
	r := Rect{X: 5, Y: -30, Width: 40, Height: 25}
	m := r.MirrorX()
	if m.X != -45 || m.Width != 40 || m.Y != -30 {
		t.Fatalf("MirrorX = %+v", m)
	}
	if back := m.MirrorX(); back != r {
		t.Fatalf("double mirror = %+v, want %+v", back, r)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(120, 0, 100) != 100 || Clamp(-3, 0, 100) != 0 || Clamp(42, 0, 100) != 42 {
		t.Fatalf("Clamp out of range")
	}
}
