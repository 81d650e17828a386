// Package editor ties a tree to the layout engine and turns the pair
// into an interactively editable document: every mutation recomputes
// the full layout and notifies subscribed listeners synchronously, so
// renderers know to re-read state and redraw.
//
// Listeners receive no payload beyond the event kind and the affected
// node id - they always re-read full state through [Editor.Snapshot].
// This replaces a framework-specific observable base type with plain
// callbacks invoked on the mutating goroutine.
//
// The editor serializes access with a mutex so the HTTP server and the
// TUI can share one instance; pkg/tree and pkg/layout themselves stay
// single-threaded.
package editor

import (
	"sync"
	"time"

	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/tree"
)

// EventKind identifies which mutation triggered a change notification.
type EventKind string

// Mutation kinds carried by change events.
const (
	EventAdd    EventKind = "add"
	EventRemove EventKind = "remove"
	EventSelect EventKind = "select"
	EventReset  EventKind = "reset"
)

// Event describes a completed mutation. Node is the new node for adds,
// the removed node for removes, and the selected node for selects.
type Event struct {
	Kind EventKind   `json:"kind"`
	Node tree.NodeID `json:"node,omitempty"`
}

// Listener receives change events synchronously after each mutation.
// Listeners must not mutate the editor from within the callback.
type Listener func(Event)

// Editor owns a tree and its layout engine. All mutations and reads go
// through the editor, which keeps positions and colors current and
// fans out change notifications.
type Editor struct {
	mu        sync.Mutex
	tree      *tree.Tree
	engine    layout.Engine
	listeners []Listener
}

// New creates an editor over a fresh single-root tree.
func New(engine layout.Engine) *Editor {
	return adopt(tree.New(), engine)
}

// NewWithEndpoints creates an editor over a tree seeded with the fixed
// start and goal children.
func NewWithEndpoints(engine layout.Engine) *Editor {
	return adopt(tree.NewWithEndpoints(), engine)
}

// FromTree wraps an existing tree (typically restored from a document)
// and recomputes its layout immediately.
func FromTree(t *tree.Tree, engine layout.Engine) *Editor {
	return adopt(t, engine)
}

func adopt(t *tree.Tree, engine layout.Engine) *Editor {
	e := &Editor{tree: t, engine: engine}
	e.recalculate()
	return e
}

// Subscribe registers a listener for change events. There is no
// unsubscribe: listeners live as long as the editor.
func (e *Editor) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

// AddNode creates a new leaf under parent, recomputes the layout, and
// notifies listeners. Returns tree.ErrUnknownParent unchanged.
func (e *Editor) AddNode(parent tree.NodeID) (tree.NodeID, error) {
	e.mu.Lock()
	id, err := e.tree.AddNode(parent)
	if err != nil {
		e.mu.Unlock()
		return tree.None, err
	}
	e.recalculate()
	e.mu.Unlock()

	observability.Engine().OnMutation(string(EventAdd), int(id))
	e.notify(Event{Kind: EventAdd, Node: id})
	return id, nil
}

// RemoveNode removes the node and its subtree, recomputing layout and
// notifying listeners. The root and unknown ids are no-ops and produce
// no notification. Returns the number of nodes removed.
func (e *Editor) RemoveNode(id tree.NodeID) int {
	e.mu.Lock()
	removed := e.tree.RemoveNode(id)
	if removed == 0 {
		e.mu.Unlock()
		return 0
	}
	e.recalculate()
	e.mu.Unlock()

	observability.Engine().OnMutation(string(EventRemove), int(id))
	e.notify(Event{Kind: EventRemove, Node: id})
	return removed
}

// Select stores the selection and notifies listeners. Selection is not
// structural, so no layout recompute happens.
func (e *Editor) Select(id tree.NodeID) {
	e.mu.Lock()
	e.tree.Select(id)
	e.mu.Unlock()

	observability.Engine().OnMutation(string(EventSelect), int(id))
	e.notify(Event{Kind: EventSelect, Node: id})
}

// Reset replaces the tree with a fresh one (endpoints preserved if the
// current root was seeded with them) and notifies listeners.
func (e *Editor) Reset() {
	e.mu.Lock()
	seeded := false
	if root, ok := e.tree.Node(e.tree.Root()); ok {
		for _, c := range root.Children {
			if n, ok := e.tree.Node(c); ok && n.Kind != tree.KindRegular {
				seeded = true
				break
			}
		}
	}
	if seeded {
		e.tree = tree.NewWithEndpoints()
	} else {
		e.tree = tree.New()
	}
	e.recalculate()
	e.mu.Unlock()

	observability.Engine().OnMutation(string(EventReset), 0)
	e.notify(Event{Kind: EventReset})
}

// Replace swaps in a different tree (typically loaded from a stored
// document), recomputes its layout, and notifies listeners with a
// reset event.
func (e *Editor) Replace(t *tree.Tree) {
	if t == nil {
		return
	}
	e.mu.Lock()
	e.tree = t
	e.recalculate()
	e.mu.Unlock()

	observability.Engine().OnMutation(string(EventReset), 0)
	e.notify(Event{Kind: EventReset})
}

// Selected returns the validated selection (None for stale ids).
func (e *Editor) Selected() tree.NodeID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Selected()
}

// Len returns the current node count.
func (e *Editor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Len()
}

// Engine returns the layout spacing in use.
func (e *Editor) Engine() layout.Engine { return e.engine }

// Snapshot returns a deep copy of the tree with current positions and
// colors. Renderers run their queries against the copy, outside the
// editor lock.
func (e *Editor) Snapshot() *tree.Tree {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Clone()
}

// recalculate must be called with the mutex held.
func (e *Editor) recalculate() {
	n := e.tree.Len()
	observability.Engine().OnLayoutStart(n)
	start := time.Now()
	e.engine.Recalculate(e.tree)
	observability.Engine().OnLayoutComplete(n, time.Since(start))
}

// notify is called without the mutex so listeners can read snapshots.
func (e *Editor) notify(ev Event) {
	e.mu.Lock()
	listeners := make([]Listener, len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()
	for _, fn := range listeners {
		fn(ev)
	}
}
