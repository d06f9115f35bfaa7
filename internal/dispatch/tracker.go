package dispatch

// RequestKind groups requests whose responses supersede each other.
type RequestKind int

const (
	RequestBrowse RequestKind = iota
	RequestConfig
	RequestSave
)

func (k RequestKind) String() string {
	switch k {
	case RequestBrowse:
		return "browse"
	case RequestConfig:
		return "config"
	case RequestSave:
		return "save"
	default:
		return "unknown"
	}
}

// Ticket identifies one outstanding request.
type Ticket struct {
	Kind       RequestKind
	Generation uint64
}

// Tracker hands out request generations. Only the most recent ticket of each
// kind is current; responses carrying an older ticket are stale.
type Tracker struct {
	latest map[RequestKind]uint64
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{latest: make(map[RequestKind]uint64)}
}

// Begin starts a request of the given kind, superseding any earlier one.
func (t *Tracker) Begin(kind RequestKind) Ticket {
	t.latest[kind]++
	return Ticket{Kind: kind, Generation: t.latest[kind]}
}

// Current reports whether ticket is still the latest of its kind.
func (t *Tracker) Current(ticket Ticket) bool {
	return t.latest[ticket.Kind] == ticket.Generation
}

// Latest returns the newest generation issued for kind.
func (t *Tracker) Latest(kind RequestKind) uint64 {
	return t.latest[kind]
}
