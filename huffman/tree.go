package huffman

import (
	"container/heap"
	"fmt"
)

// NodeID identifies a node within a Tree.
type NodeID int32

// noChild marks the child slots of a leaf.
const noChild NodeID = -1

type node struct {
	freq        uint64
	symbol      byte
	left, right NodeID
}

// Tree is a Huffman tree stored as an arena of nodes.
//
// Leaves occupy the first Len() slots in ascending symbol order, internal
// nodes follow in creation order. The tree is immutable once built.
type Tree struct {
	nodes []node
	root  NodeID
}

// BuildTree builds the Huffman tree for ft by repeatedly merging the two
// lowest-frequency nodes. The first node extracted becomes the left child.
//
// Nodes with equal frequency are ordered by arena position: leaves by symbol
// value, internal nodes by creation order, and leaves before internal nodes.
// The resulting tree depends only on the contents of ft.
func BuildTree(ft *FrequencyTable) (*Tree, error) {
	if ft.Len() == 0 {
		return nil, ErrEmptyInput
	}

	t := &Tree{nodes: make([]node, 0, 2*ft.Len()-1)}
	for _, sym := range ft.Symbols() {
		freq, _ := ft.Count(sym)
		t.nodes = append(t.nodes, node{freq: freq, symbol: sym, left: noChild, right: noChild})
	}

	pq := &nodeQueue{tree: t, items: make([]NodeID, len(t.nodes))}
	for i := range pq.items {
		pq.items[i] = NodeID(i)
	}
	heap.Init(pq)

	for pq.Len() > 1 {
		left := heap.Pop(pq).(NodeID)
		right := heap.Pop(pq).(NodeID)

		t.nodes = append(t.nodes, node{
			freq:  t.nodes[left].freq + t.nodes[right].freq,
			left:  left,
			right: right,
		})
		heap.Push(pq, NodeID(len(t.nodes)-1))
	}
	t.root = heap.Pop(pq).(NodeID)

	return t, nil
}

// nodeQueue is a min-heap of node ids keyed by (frequency, id).
type nodeQueue struct {
	tree  *Tree
	items []NodeID
}

func (q *nodeQueue) Len() int { return len(q.items) }

func (q *nodeQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	fa, fb := q.tree.nodes[a].freq, q.tree.nodes[b].freq
	if fa != fb {
		return fa < fb
	}
	return a < b
}

func (q *nodeQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *nodeQueue) Push(x any)    { q.items = append(q.items, x.(NodeID)) }

func (q *nodeQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

// Root returns the root node.
func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of leaves.
func (t *Tree) Len() int { return (len(t.nodes) + 1) / 2 }

// IsLeaf reports whether id is a leaf.
func (t *Tree) IsLeaf(id NodeID) bool { return t.nodes[id].left == noChild }

// Symbol returns the symbol of a leaf.
func (t *Tree) Symbol(id NodeID) byte { return t.nodes[id].symbol }

// Freq returns the frequency of a node; for internal nodes the sum of its children.
func (t *Tree) Freq(id NodeID) uint64 { return t.nodes[id].freq }

// Children returns the left and right child of an internal node.
func (t *Tree) Children(id NodeID) (left, right NodeID) {
	n := t.nodes[id]
	return n.left, n.right
}

// Child returns the left child for bit 0 and the right child for bit 1.
func (t *Tree) Child(id NodeID, bit byte) NodeID {
	if bit == 0 {
		return t.nodes[id].left
	}
	return t.nodes[id].right
}

// Depths returns the depth of every leaf symbol. The single leaf of a
// one-symbol tree is reported at depth 1, matching its one-bit code.
func (t *Tree) Depths() map[byte]int {
	depths := make(map[byte]int, t.Len())
	if t.IsLeaf(t.root) {
		depths[t.Symbol(t.root)] = 1
		return depths
	}

	type frame struct {
		id    NodeID
		depth int
	}
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.IsLeaf(f.id) {
			depths[t.Symbol(f.id)] = f.depth
			continue
		}
		left, right := t.Children(f.id)
		stack = append(stack, frame{right, f.depth + 1}, frame{left, f.depth + 1})
	}
	return depths
}

// String formats the tree in the nested form "(left right)".
func (t *Tree) String() string {
	var format func(id NodeID) string
	format = func(id NodeID) string {
		if t.IsLeaf(id) {
			return fmt.Sprintf("%q:%d", t.Symbol(id), t.Freq(id))
		}
		left, right := t.Children(id)
		return "(" + format(left) + " " + format(right) + ")"
	}
	return format(t.root)
}
