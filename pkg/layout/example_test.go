package layout_test

import (
	"fmt"

	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/tree"
)

func ExampleEngine_Recalculate() {
	t := tree.New()
	a, _ := t.AddNode(t.Root())
	b, _ := t.AddNode(t.Root())

	engine := layout.New(10, 20)
	engine.Recalculate(t)

	// Leaves are placed left to right; the parent is centered over them
	na, _ := t.Node(a)
	nb, _ := t.Node(b)
	root, _ := t.Node(t.Root())
	fmt.Printf("a: (%.0f, %.0f)\n", na.X, na.Y)
	fmt.Printf("b: (%.0f, %.0f)\n", nb.X, nb.Y)
	fmt.Printf("root: (%.0f, %.0f)\n", root.X, root.Y)
	// Output:
	// a: (0, 20)
	// b: (10, 20)
	// root: (5, 0)
}

func ExampleLeftUncle() {
	// root has children a and b; c sits under a, d under b
	t := tree.New()
	a, _ := t.AddNode(t.Root())
	b, _ := t.AddNode(t.Root())
	c, _ := t.AddNode(a)
	d, _ := t.AddNode(b)

	// d has no left sibling, so the walk ascends to b and finds a
	uncle, ok := layout.LeftUncle(t, d)
	fmt.Println(uncle, ok)

	// c's right aunt is b, found one level up
	aunt, ok := layout.RightAunt(t, c)
	fmt.Println(aunt, ok)

	// the leftmost node at any depth has no left uncle
	_, ok = layout.LeftUncle(t, c)
	fmt.Println(ok)
	// Output:
	// 2 true
	// 3 true
	// false
}

func ExampleLeftmostDescendant() {
	t := tree.New()
	a, _ := t.AddNode(t.Root())
	b, _ := t.AddNode(t.Root())
	t.AddNode(a)
	t.AddNode(b)

	// Follow first children down from the root: root -> a -> 4
	left, _ := layout.LeftmostDescendant(t, t.Root())
	right, _ := layout.RightmostDescendant(t, t.Root())
	fmt.Println(left, right)
	// Output:
	// 4 5
}
