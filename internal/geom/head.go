package geom

// Strut is space reserved at the screen edges by dock windows.
type Strut struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

func (s Strut) IsZero() bool {
	return s == Strut{}
}

// Add combines two struts by taking the largest reservation per edge.
func (s Strut) Add(o Strut) Strut {
	return Strut{
		Left:   max(s.Left, o.Left),
		Right:  max(s.Right, o.Right),
		Top:    max(s.Top, o.Top),
		Bottom: max(s.Bottom, o.Bottom),
	}
}

// Head is one physical display area.
type Head struct {
	Rect Rect `json:"rect"`
	// Usable is Rect minus the strut space reserved on the screen edges this
	// head touches.
	Usable Rect `json:"usable"`
}

// NewHeads computes the usable area of each head. A strut edge is applied
// only to the heads lying on the matching edge of the screen.
func NewHeads(rects []Rect, strut Strut) []Head {
	if len(rects) == 0 {
		return nil
	}

	screen := Bounds(rects)
	heads := make([]Head, len(rects))
	for i, r := range rects {
		u := r
		if r.X == screen.X && strut.Left > 0 {
			u.X += strut.Left
			u.W -= strut.Left
		}
		if r.Right() == screen.Right() && strut.Right > 0 {
			u.W -= strut.Right
		}
		if r.Y == screen.Y && strut.Top > 0 {
			u.Y += strut.Top
			u.H -= strut.Top
		}
		if r.Bottom() == screen.Bottom() && strut.Bottom > 0 {
			u.H -= strut.Bottom
		}
		if u.W < 1 {
			u.W = 1
		}
		if u.H < 1 {
			u.H = 1
		}
		heads[i] = Head{Rect: r, Usable: u}
	}

	return heads
}

// Bounds returns the smallest rectangle containing all rects.
func Bounds(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	x0, y0 := rects[0].X, rects[0].Y
	x1, y1 := rects[0].Right(), rects[0].Bottom()
	for _, r := range rects[1:] {
		x0, y0 = min(x0, r.X), min(y0, r.Y)
		x1, y1 = max(x1, r.Right()), max(y1, r.Bottom())
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// HeadFor picks the head containing the center of r, falling back to the
// head with the largest overlap and then to the first head.
func HeadFor(heads []Head, r Rect) int {
	if len(heads) == 0 {
		return -1
	}

	cx, cy := r.Center()
	for i, h := range heads {
		if h.Rect.Contains(cx, cy) {
			return i
		}
	}

	best, bestArea := 0, 0
	for i, h := range heads {
		if a := h.Rect.Intersect(r).Area(); a > bestArea {
			best, bestArea = i, a
		}
	}
	return best
}
