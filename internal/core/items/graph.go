package items

import (
	"cmp"
	"slices"
)

// Predicate selects items for a view.
type Predicate func(Item) bool

// Common predicates.
var (
	Any      Predicate = func(Item) bool { return true }
	Open     Predicate = Item.IsOpen
	Done     Predicate = Item.IsDone
	Waiting  Predicate = Item.IsWaiting
	Ready    Predicate = func(i Item) bool { return i.IsOpen() && !i.IsWaiting() }
	Outcomes Predicate = Item.IsOutcome
	Actions  Predicate = Item.IsAction
)

// And combines predicates; every one must hold.
func And(ps ...Predicate) Predicate {
	return func(i Item) bool {
		for _, p := range ps {
			if !p(i) {
				return false
			}
		}
		return true
	}
}

// Selection chooses which items of a set enter a Graph.
type Selection struct {
	Outcomes Predicate // outcomes to show
	Children Predicate // actions grouped under a shown outcome
	Orphans  Predicate // actions with no shown outcome to group under
}

// Active returns a Selection that applies p to every role.
func Active(p Predicate) Selection {
	return Selection{Outcomes: p, Children: p, Orphans: p}
}

// Graph is the outcome/action grouping of an item set.
type Graph struct {
	Outcomes []Item
	Children map[string][]Item
	Orphans  []Item
	Waiting  []Item
}

// ChildrenOf returns the grouped actions of an outcome.
func (g Graph) ChildrenOf(outcomeID string) []Item {
	return g.Children[outcomeID]
}

// Actions returns every action in the graph: grouped children in outcome
// order, then orphans.
func (g Graph) Actions() []Item {
	var out []Item
	for _, o := range g.Outcomes {
		out = append(out, g.Children[o.ID]...)
	}
	return append(out, g.Orphans...)
}

// IsEmpty reports whether the graph has nothing to show.
func (g Graph) IsEmpty() bool {
	return len(g.Outcomes) == 0 && len(g.Orphans) == 0
}

// Build groups the selected items of s into outcomes and their actions.
//
// Parent references are resolved as a lookup against the selected outcomes
// only: an action whose parent is missing, is not an outcome, or is an
// outcome the selection excluded becomes an orphan.
func Build(s *Set, sel Selection) Graph {
	if sel.Orphans == nil {
		sel.Orphans = sel.Children
	}

	g := Graph{Children: make(map[string][]Item)}

	shown := make(map[string]bool)
	for _, item := range s.Items() {
		if item.IsOutcome() && sel.Outcomes(item) {
			g.Outcomes = append(g.Outcomes, item)
			shown[item.ID] = true
		}
	}

	for _, item := range s.Items() {
		if !item.IsAction() {
			continue
		}
		if item.Parent != "" && shown[item.Parent] {
			if sel.Children(item) {
				g.Children[item.Parent] = append(g.Children[item.Parent], item)
			}
			continue
		}
		if sel.Orphans(item) {
			g.Orphans = append(g.Orphans, item)
		}
	}

	byOrder := func(a, b Item) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(s.Seq(a.ID), s.Seq(b.ID))
	}

	slices.SortStableFunc(g.Outcomes, byOrder)
	slices.SortStableFunc(g.Orphans, byOrder)
	for id := range g.Children {
		slices.SortStableFunc(g.Children[id], byOrder)
	}

	for _, o := range g.Outcomes {
		if o.IsWaiting() {
			g.Waiting = append(g.Waiting, o)
		}
	}
	for _, a := range g.Actions() {
		if a.IsWaiting() {
			g.Waiting = append(g.Waiting, a)
		}
	}

	return g
}
