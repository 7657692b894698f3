// Package geom holds the rectangle algebra shared by the stacking engine and
// the X backend.
package geom

import (
	"fmt"
	"sort"
)

// Rect is a window rectangle in root coordinates.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func R(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// Right is the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlapping part of r and o, or an empty Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Intersects reports a positive-area overlap.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).Empty()
}

// Translate moves the rectangle by dx, dy.
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// UnionArea returns the area covered by the union of rects. Overlapping parts
// are counted once.
func UnionArea(rects []Rect) int {
	xs := make([]int, 0, len(rects)*2)
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		xs = append(xs, r.X, r.Right())
	}
	if len(xs) == 0 {
		return 0
	}
	sort.Ints(xs)

	area := 0
	for i := 0; i+1 < len(xs); i++ {
		x0, x1 := xs[i], xs[i+1]
		if x0 == x1 {
			continue
		}

		// Vertical coverage of this column strip.
		var spans [][2]int
		for _, r := range rects {
			if r.Empty() || r.X > x0 || r.Right() < x1 {
				continue
			}
			spans = append(spans, [2]int{r.Y, r.Bottom()})
		}
		sort.Slice(spans, func(a, b int) bool { return spans[a][0] < spans[b][0] })

		covered, top, bottom := 0, 0, 0
		for j, s := range spans {
			if j == 0 || s[0] > bottom {
				covered += bottom - top
				top, bottom = s[0], s[1]
			} else if s[1] > bottom {
				bottom = s[1]
			}
		}
		covered += bottom - top

		area += covered * (x1 - x0)
	}

	return area
}
