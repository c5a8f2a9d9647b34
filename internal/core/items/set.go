package items

// Event is one parsed line of an item log.
type Event struct {
	Line int
	Item Item
}

// Set is the current state of an item log: the latest record per ID.
//
// Each ID keeps the sequence number of its first appearance, which is the
// stable tie-breaker wherever items with equal order are sorted.
type Set struct {
	items map[string]Item
	seq   map[string]int
	ids   []string
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{
		items: make(map[string]Item),
		seq:   make(map[string]int),
	}
}

// Fold collapses an ordered sequence of events into a Set. A later event for
// an ID replaces the earlier record entirely; fields are never merged.
func Fold(events []Event) *Set {
	s := NewSet()
	for _, e := range events {
		s.Apply(e)
	}
	return s
}

// Apply folds a single event into the set.
func (s *Set) Apply(e Event) {
	id := e.Item.ID
	if _, ok := s.seq[id]; !ok {
		s.seq[id] = len(s.ids)
		s.ids = append(s.ids, id)
	}
	s.items[id] = e.Item
}

// Get returns the current record for id.
func (s *Set) Get(id string) (Item, bool) {
	if s == nil {
		return Item{}, false
	}
	item, ok := s.items[id]
	return item, ok
}

// Seq returns the first-appearance sequence number for id, or -1.
func (s *Set) Seq(id string) int {
	if s == nil {
		return -1
	}
	if n, ok := s.seq[id]; ok {
		return n
	}
	return -1
}

// Len returns the number of distinct IDs.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Items returns the current records in first-appearance order.
func (s *Set) Items() []Item {
	if s == nil {
		return nil
	}
	out := make([]Item, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.items[id])
	}
	return out
}

// Filter returns the current records matching keep, in first-appearance order.
func (s *Set) Filter(keep func(Item) bool) []Item {
	var out []Item
	for _, item := range s.Items() {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Count returns the number of current records matching keep.
func (s *Set) Count(keep func(Item) bool) int {
	n := 0
	for _, item := range s.Items() {
		if keep(item) {
			n++
		}
	}
	return n
}
