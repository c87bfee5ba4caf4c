package component

import "github.com/jakecoffman/cp"

// Body is an axis-aligned box anchored at the Transform.
type Body struct {
	Width  float64
	Height float64
}

// BB returns the box in arena space. B is the top edge because y grows
// downward on screen.
func (b *Body) BB(t *Transform) cp.BB {
	return cp.BB{L: t.X, B: t.Y, R: t.X + b.Width, T: t.Y + b.Height}
}

var BodyComponent = NewComponent[Body]()
