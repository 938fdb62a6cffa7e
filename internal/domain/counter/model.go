package counter

// ActionKind names a rate-limited client action.
type ActionKind string

const (
	KindView ActionKind = "view"
	KindLike ActionKind = "like"
)

// Aggregate is the singleton counters record.
type Aggregate struct {
	Views uint64 `json:"views"`
	Likes uint64 `json:"likes"`
}

// Decision is the outcome of a gate attempt.
type Decision int

const (
	Blocked Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "blocked"
}
