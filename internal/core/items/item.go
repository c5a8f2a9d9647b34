// Package items defines the Bon work-item model and folds append-only item
// logs into the current item set.
package items

// Type classifies an item as a top-level goal or a unit of work.
type Type string

const (
	TypeOutcome Type = "outcome"
	TypeAction  Type = "action"
)

// Status represents the lifecycle state of an item.
type Status string

const (
	StatusOpen Status = "open"
	StatusDone Status = "done"
)

// Brief holds the free-text notes an agent attaches to an item.
type Brief struct {
	Why  string `json:"why,omitempty"`
	What string `json:"what,omitempty"`
	Done string `json:"done,omitempty"`
}

// IsZero reports whether every field of the brief is empty.
func (b *Brief) IsZero() bool {
	return b == nil || (b.Why == "" && b.What == "" && b.Done == "")
}

// Tactical is the in-progress checklist of an action. Steps before Current
// are complete, the step at Current is in progress.
type Tactical struct {
	Steps   []string `json:"steps"`
	Current int      `json:"current"`
}

// Item is a single record in an item log.
type Item struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Title      string    `json:"title"`
	Status     Status    `json:"status,omitempty"`
	Parent     string    `json:"parent,omitempty"`
	Order      int       `json:"order,omitempty"`
	WaitingFor string    `json:"waiting_for,omitempty"`
	CreatedAt  string    `json:"created_at,omitempty"`
	Brief      *Brief    `json:"brief,omitempty"`
	Tactical   *Tactical `json:"tactical,omitempty"`
}

// EffectiveStatus returns the item status, treating an absent status as open.
func (i Item) EffectiveStatus() Status {
	if i.Status == "" {
		return StatusOpen
	}
	return i.Status
}

func (i Item) IsOpen() bool { return i.EffectiveStatus() == StatusOpen }
func (i Item) IsDone() bool { return i.EffectiveStatus() == StatusDone }

func (i Item) IsOutcome() bool { return i.Type == TypeOutcome }
func (i Item) IsAction() bool  { return i.Type == TypeAction }

// IsWaiting reports whether the item is blocked on an external dependency.
func (i Item) IsWaiting() bool {
	return i.WaitingFor != ""
}

// ActiveSteps returns the tactical checklist of an open item. Done items and
// items without steps return nil, so leftover tactical data is never shown.
func (i Item) ActiveSteps() *Tactical {
	if !i.IsOpen() || i.Tactical == nil || len(i.Tactical.Steps) == 0 {
		return nil
	}
	return i.Tactical
}
