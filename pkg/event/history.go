package event

// historyRing keeps the most recent published events in a fixed-size ring.
// Oldest entries are evicted on overflow.
type historyRing struct {
	entries []Event
	start   int
	size    int
}

func newHistoryRing(capacity int) *historyRing {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &historyRing{entries: make([]Event, capacity)}
}

func (r *historyRing) append(evt Event) {
	if r.size < len(r.entries) {
		r.entries[(r.start+r.size)%len(r.entries)] = evt
		r.size++
		return
	}
	r.entries[r.start] = evt
	r.start = (r.start + 1) % len(r.entries)
}

// snapshot returns the buffered events oldest first.
func (r *historyRing) snapshot() []Event {
	out := make([]Event, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.entries[(r.start+i)%len(r.entries)]
	}
	return out
}
