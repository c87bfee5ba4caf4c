package common

import "github.com/jakecoffman/cp"

// InsetBB shrinks bb by d on every side.
func InsetBB(bb cp.BB, d float64) cp.BB {
	return cp.BB{L: bb.L + d, B: bb.B + d, R: bb.R - d, T: bb.T - d}
}

// Overlaps is a strict AABB test: boxes that only touch do not overlap,
// unlike cp.BB.Intersects.
func Overlaps(a, b cp.BB) bool {
	return a.R > b.L && a.L < b.R && a.T > b.B && a.B < b.T
}
