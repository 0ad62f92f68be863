// Package barneshut implements the Barnes-Hut quadtree: an index-addressed
// spatial aggregate of bodies supporting an O(n log n) approximation of the
// pairwise gravitational force query.
//
// The tree's shape is gonum.org/v1/gonum/spatial/barneshut's tile, adapted
// from a pointer tree into the index-addressed, alias-free structure of
// original_source's physics/barneshut.rs: nodes live in a map keyed by a
// position computed from their parent (4*parent+1 .. 4*parent+4), and
// insertion is driven by an explicit Action rather than recursion, so that a
// newly internalized leaf's body can be carried down without the tree ever
// holding two live references to the same node.
package barneshut

import (
	"github.com/johnxnguyen/newton/body"
	"github.com/johnxnguyen/newton/quad"
)

// Index addresses a Node within a BHTree. The root is index 0; the four
// children of node i are 4i+1 (NW), 4i+2 (NE), 4i+3 (SW), 4i+4 (SE).
type Index uint32

// Node is one cell of the tree: the square region it covers, and the
// mass-weighted aggregate of every body that has been inserted beneath it
// (or, for a leaf, directly into it).
type Node struct {
	ID    Index
	Space quad.Square
	Body  body.VirtualBody
}

func (n Node) isEmpty() bool {
	return n.Body == (body.VirtualBody{})
}

// childIndex returns the index of node i's child in quadrant q.
func childIndex(i Index, q quad.Quadrant) Index {
	return 4*i + 1 + Index(q)
}

// childIndices returns the indices of node i's four children, ordered
// NW, NE, SW, SE.
func childIndices(i Index) [4]Index {
	return [4]Index{4*i + 1, 4*i + 2, 4*i + 3, 4*i + 4}
}

// parentIndex returns the index of i's parent. It is only meaningful for
// i > 0.
func parentIndex(i Index) Index {
	return (i - 1) / 4
}

// ancestors returns the indices of i's ancestors, from its immediate parent
// up to and including the root (0).
func ancestors(i Index) []Index {
	var out []Index
	for i > 0 {
		i = parentIndex(i)
		out = append(out, i)
	}
	return out
}

// childFromSelf returns the child node that would hold n's own aggregate
// body, chosen by the quadrant of n's space containing n's center of mass.
// It is used to push an occupied leaf's body down a level when the leaf is
// internalized.
func (n Node) childFromSelf() Node {
	c := n.Body.Centered()
	q, sub, err := n.Space.Quadrant(c.Position)
	if err != nil {
		panic("barneshut: node's own center of mass lies outside its space: " + err.Error())
	}
	return Node{ID: childIndex(n.ID, q), Space: sub, Body: n.Body}
}

// BHTree is a Barnes-Hut quadtree rooted at a fixed square. Nodes are
// addressed by Index rather than pointer, so a node is never aliased: at
// any time there is exactly one Node value for a given Index, held in the
// tree's internal map.
type BHTree struct {
	root  quad.Square
	nodes map[Index]Node
}

// New returns an empty tree rooted at root.
func New(root quad.Square) *BHTree {
	t := &BHTree{root: root, nodes: make(map[Index]Node)}
	t.nodes[0] = Node{ID: 0, Space: root}
	return t
}

// Root returns the tree's root square.
func (t *BHTree) Root() quad.Square { return t.root }

// Node returns the node at index i, if one exists.
func (t *BHTree) Node(i Index) (Node, bool) {
	n, ok := t.nodes[i]
	return n, ok
}

// Add inserts b into the tree. Bodies that fall outside the root square are
// silently dropped: the tree never grows or clamps to accommodate them.
func (t *BHTree) Add(b *body.Body) {
	if !t.root.Contains(b.Position) {
		return
	}
	t.insert(pending{id: 0, body: b})
}

// pending is a body waiting to be placed at a specific node.
type pending struct {
	id   Index
	body *body.Body
}

// action is the outcome of inspecting a node against a pending body: either
// the body (and any body it displaces) can be placed directly (insert), or
// an occupied leaf must be pushed one level deeper first (internalize).
// This stands in for the payload-carrying enum original_source's Rust
// expresses as Action::Insert(Node) / Action::Internalize(Index, Pending);
// Go's closest idiom is a small tagged struct rather than an interface,
// since there are exactly two variants and no behavior attached to them.
type action struct {
	insert       *Node
	contribution body.VirtualBody
	internalize  Index
	pending      pending
	isInsert     bool
}

func (t *BHTree) insert(p pending) {
	for {
		node, ok := t.nodes[p.id]
		if !ok {
			panic("barneshut: insert target node does not exist")
		}
		act := t.actionFor(node, p.body)
		if act.isInsert {
			t.applyInsert(*act.insert, act.contribution)
			return
		}
		t.internalize(act.internalize)
		p = act.pending
	}
}

func (t *BHTree) actionFor(node Node, b *body.Body) action {
	if !node.Space.Contains(b.Position) {
		panic("barneshut: body does not lie within the node's space")
	}
	if t.isLeaf(node) {
		if node.isEmpty() || node.Space.IsUnit() {
			contribution := body.FromBody(b)
			updated := node
			updated.Body = node.Body.Add(contribution)
			return action{isInsert: true, insert: &updated, contribution: contribution}
		}
		return action{internalize: node.ID, pending: pending{id: node.ID, body: b}}
	}
	q, sub, err := node.Space.Quadrant(b.Position)
	if err != nil {
		panic("barneshut: " + err.Error())
	}
	childID := childIndex(node.ID, q)
	if child, ok := t.nodes[childID]; ok {
		return t.actionFor(child, b)
	}
	contribution := body.FromBody(b)
	return action{isInsert: true, insert: &Node{ID: childID, Space: sub, Body: contribution}, contribution: contribution}
}

// applyInsert places node into the tree and adds contribution — the newly
// inserted body's own (mass, mass*position), not node's full aggregate — into
// every ancestor. Node.Body and contribution coincide except when node is an
// already-occupied unit-square leaf merging in another body: there, node.Body
// is the full merged aggregate but the prior occupants' contributions were
// already added to these same ancestors when they were inserted, so only the
// new body's share may be added again.
func (t *BHTree) applyInsert(node Node, contribution body.VirtualBody) {
	for _, a := range ancestors(node.ID) {
		ancestor := t.nodes[a]
		ancestor.Body = ancestor.Body.Add(contribution)
		t.nodes[a] = ancestor
	}
	t.nodes[node.ID] = node
}

// internalize converts an occupied leaf into an internal node by pushing its
// aggregate body down into the appropriate child.
func (t *BHTree) internalize(id Index) {
	leaf := t.nodes[id]
	child := leaf.childFromSelf()
	t.nodes[child.ID] = child
}

// isLeaf reports whether node has no children in the tree.
func (t *BHTree) isLeaf(node Node) bool {
	for _, c := range childIndices(node.ID) {
		if _, ok := t.nodes[c]; ok {
			return false
		}
	}
	return true
}

// VirtualBodies returns the set of aggregate bodies that should contribute
// to the gravitational force on b, selected by descending the tree and
// treating any node whose diameter-to-distance ratio is smaller than
// 1/theta as a single distant mass (theta == 0.5, the standard opening
// angle, gives the classic threshold of 2.0). b itself (or its contribution
// to a shared leaf) is excluded from the result.
//
// Self-exclusion only happens at leaves: if an internal node passes the
// ratio test while its subtree still encloses b (a small or skewed root can
// make this happen), its aggregate is emitted uncorrected and b contributes
// to its own force.
func (t *BHTree) VirtualBodies(b *body.Body, theta float64) []body.Centered {
	threshold := 1 / theta
	var result []body.Centered
	trav := t.Preorder()
	for {
		node, ok := trav.Next()
		if !ok {
			break
		}
		if node.isEmpty() {
			continue
		}
		c := node.Body.Centered()
		dist := b.Position.Distance(c.Position)
		ratio := node.Space.Diameter() / dist
		switch {
		case ratio < threshold:
			trav.SkipChildren()
			result = append(result, c)
		case t.isLeaf(node):
			remainder := node.Body.Sub(body.FromBody(b))
			if remainder.Mass > 0 {
				result = append(result, remainder.Centered())
			}
		}
	}
	return result
}

// childIter walks a node's four child indices in NW, NE, SW, SE order.
type childIter struct {
	ids  [4]Index
	next int
}

func (c *childIter) advance() (Index, bool) {
	if c.next >= len(c.ids) {
		return 0, false
	}
	id := c.ids[c.next]
	c.next++
	return id, true
}

// Preorder walks the tree in preorder (a node before its children), in
// NW, NE, SW, SE order among siblings. Nodes with no aggregate (empty
// quadrants that were never allocated) are never visited, since they do not
// exist in the tree's node map.
type Preorder struct {
	tree  *BHTree
	first *Node
	stack []*childIter
}

// Preorder returns a preorder traversal of t starting at the root.
func (t *BHTree) Preorder() *Preorder {
	root := t.nodes[0]
	return &Preorder{tree: t, first: &root}
}

// Next advances the traversal and returns the next node, or ok == false when
// the traversal is exhausted.
func (p *Preorder) Next() (Node, bool) {
	if p.first != nil {
		node := *p.first
		p.first = nil
		ids := childIndices(node.ID)
		p.stack = append(p.stack, &childIter{ids: ids})
		return node, true
	}
	for len(p.stack) > 0 {
		it := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		for {
			id, ok := it.advance()
			if !ok {
				break
			}
			if node, ok := p.tree.nodes[id]; ok {
				p.stack = append(p.stack, it)
				p.stack = append(p.stack, &childIter{ids: childIndices(node.ID)})
				return node, true
			}
		}
	}
	return Node{}, false
}

// SkipChildren prevents the traversal from descending into the children of
// the node most recently returned by Next.
func (p *Preorder) SkipChildren() {
	if len(p.stack) > 0 {
		p.stack = p.stack[:len(p.stack)-1]
	}
}
