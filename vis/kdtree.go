package vis

import (
	"cmp"
	"slices"

	"github.com/chewxy/math32"
)

// Below this size a linear scan beats the tree and is trivially correct.
const linearCutoff = 8

// Index answers nearest-point queries over a fixed set of projected points
// via a 2-d tree. It must be rebuilt whenever the drawn point set or any
// of its coordinates change; querying an index built from points that are
// no longer on screen gives wrong answers.
type Index struct {
	pts  []Point
	root *kdNode
}

type kdNode struct {
	idx         int
	left, right *kdNode
}

// NewIndex builds an index over pts in O(n log n). The slice is retained,
// not copied.
func NewIndex(pts []Point) *Index {
	ix := &Index{pts: pts}
	if len(pts) > linearCutoff {
		order := make([]int, len(pts))
		for i := range order {
			order[i] = i
		}
		ix.root = buildKD(pts, order, 0)
	}
	return ix
}

func buildKD(pts []Point, order []int, depth int) *kdNode {
	if len(order) == 0 {
		return nil
	}
	if depth%2 == 0 {
		slices.SortFunc(order, func(a, b int) int {
			return cmp.Compare(pts[a].X, pts[b].X)
		})
	} else {
		slices.SortFunc(order, func(a, b int) int {
			return cmp.Compare(pts[a].Y, pts[b].Y)
		})
	}
	mid := len(order) / 2
	return &kdNode{
		idx:   order[mid],
		left:  buildKD(pts, order[:mid], depth+1),
		right: buildKD(pts, order[mid+1:], depth+1),
	}
}

// Len returns the number of indexed points.
func (ix *Index) Len() int {
	return len(ix.pts)
}

// At returns the indexed point at i.
func (ix *Index) At(i int) Point {
	return ix.pts[i]
}

// Nearest returns the index of the point closest to (x, y) in Euclidean
// distance. Ties resolve to the lowest input index. ok is false only for
// an empty point set.
func (ix *Index) Nearest(x, y float32) (idx int, ok bool) {
	if len(ix.pts) == 0 {
		return 0, false
	}
	best := -1
	bestDist := math32.Inf(1)
	if ix.root == nil {
		for i := range ix.pts {
			ix.consider(i, x, y, &best, &bestDist)
		}
		return best, true
	}
	ix.search(ix.root, x, y, 0, &best, &bestDist)
	return best, true
}

func (ix *Index) consider(i int, x, y float32, best *int, bestDist *float32) {
	p := ix.pts[i]
	d := math32.Hypot(p.X-x, p.Y-y)
	if d < *bestDist || (d == *bestDist && i < *best) {
		*best, *bestDist = i, d
	}
}

func (ix *Index) search(n *kdNode, x, y float32, depth int, best *int, bestDist *float32) {
	if n == nil {
		return
	}
	ix.consider(n.idx, x, y, best, bestDist)
	p := ix.pts[n.idx]
	var delta float32
	if depth%2 == 0 {
		delta = x - p.X
	} else {
		delta = y - p.Y
	}
	near, far := n.left, n.right
	if delta > 0 {
		near, far = n.right, n.left
	}
	ix.search(near, x, y, depth+1, best, bestDist)
	// A non-strict bound keeps equidistant points on the far side visible,
	// which the lowest-index tie break depends on.
	if math32.Abs(delta) <= *bestDist {
		ix.search(far, x, y, depth+1, best, bestDist)
	}
}
