package rain

// RectF is an axis-aligned rectangle in screen-pixel space.
type RectF struct {
	X0, Y0 float64
	X1, Y1 float64
}

func (r RectF) Intersects(o RectF) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Y0 < o.Y1 && r.Y1 > o.Y0
}

func (r RectF) ContainsPoint(x, y float64) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

type quadItem struct {
	id   int
	x, y float64
}

// QuadNode is a point quadtree over live symbol positions, rebuilt per tick
// while explosions are in flight so collision queries stay inside a bounded
// neighborhood instead of scanning the whole population.
type QuadNode struct {
	bounds RectF
	depth  int
	items  []quadItem
	child  [4]*QuadNode
}

func NewQuadNode(bounds RectF, depth int) *QuadNode {
	return &QuadNode{
		bounds: bounds,
		depth:  depth,
		items:  make([]quadItem, 0, QuadCapacity),
	}
}

func (n *QuadNode) Insert(id int, x, y float64) {
	if n.child[0] != nil {
		if c := n.childThatContains(x, y); c != nil {
			c.Insert(id, x, y)
			return
		}
	}

	n.items = append(n.items, quadItem{id: id, x: x, y: y})

	if len(n.items) > QuadCapacity && n.depth < QuadMaxDepth {
		n.subdivide()
		kept := n.items[:0]
		for _, it := range n.items {
			if c := n.childThatContains(it.x, it.y); c != nil {
				c.Insert(it.id, it.x, it.y)
			} else {
				kept = append(kept, it)
			}
		}
		n.items = kept
	}
}

// Query appends the ids of all points inside r to out.
func (n *QuadNode) Query(r RectF, out *[]int) {
	if !n.bounds.Intersects(r) {
		return
	}
	for _, it := range n.items {
		if r.ContainsPoint(it.x, it.y) {
			*out = append(*out, it.id)
		}
	}
	if n.child[0] == nil {
		return
	}
	for i := 0; i < 4; i++ {
		n.child[i].Query(r, out)
	}
}

func (n *QuadNode) subdivide() {
	if n.child[0] != nil {
		return
	}
	mx := (n.bounds.X0 + n.bounds.X1) * 0.5
	my := (n.bounds.Y0 + n.bounds.Y1) * 0.5
	n.child[0] = NewQuadNode(RectF{X0: n.bounds.X0, Y0: n.bounds.Y0, X1: mx, Y1: my}, n.depth+1)
	n.child[1] = NewQuadNode(RectF{X0: mx, Y0: n.bounds.Y0, X1: n.bounds.X1, Y1: my}, n.depth+1)
	n.child[2] = NewQuadNode(RectF{X0: n.bounds.X0, Y0: my, X1: mx, Y1: n.bounds.Y1}, n.depth+1)
	n.child[3] = NewQuadNode(RectF{X0: mx, Y0: my, X1: n.bounds.X1, Y1: n.bounds.Y1}, n.depth+1)
}

func (n *QuadNode) childThatContains(x, y float64) *QuadNode {
	for i := 0; i < 4; i++ {
		c := n.child[i]
		if c != nil && c.bounds.ContainsPoint(x, y) {
			return c
		}
	}
	return nil
}

// SymbolIndex wraps the quadtree with arena-aware build and query helpers.
type SymbolIndex struct {
	root    *QuadNode
	scratch []int
}

// Build rebuilds the index over all live symbols. Bounds are padded so
// symbols drifting slightly offscreen are still found.
func (ix *SymbolIndex) Build(arena *SymbolArena, cfg Config) {
	pad := OffscreenMargin * 2
	ix.root = NewQuadNode(RectF{
		X0: -pad, Y0: -pad,
		X1: cfg.ScreenW + pad, Y1: cfg.ScreenH + pad,
	}, 0)
	slots := arena.Slots()
	for i := range slots {
		s := &slots[i]
		if !s.Alive {
			continue
		}
		if !ix.root.bounds.ContainsPoint(s.X, s.Y) {
			continue
		}
		ix.root.Insert(i, s.X, s.Y)
	}
}

// Near returns ids of live symbols within the square neighborhood of
// (x, y) with the given half-extent. The returned slice is reused across
// calls.
func (ix *SymbolIndex) Near(x, y, halfExtent float64) []int {
	ix.scratch = ix.scratch[:0]
	if ix.root == nil {
		return ix.scratch
	}
	ix.root.Query(RectF{
		X0: x - halfExtent, Y0: y - halfExtent,
		X1: x + halfExtent, Y1: y + halfExtent,
	}, &ix.scratch)
	return ix.scratch
}
