package kinetics

// Entry is one redosing line: an hour of day paired with an additive
// dose amount.
type Entry struct {
	Hour   int
	Amount float64
}

// Schedule maps hour-of-day (0..23) to an additive dose amount applied
// every day at that hour. A dose is additive on top of the decayed
// concentration, never a replacement, and no ceiling is enforced.
//
// Keys outside 0..23 are representable but can never fire, because the
// simulator matches on time mod 24.
type Schedule map[int]float64

// NewSchedule builds a Schedule from entries in order. Entries sharing
// an hour collapse to one, last-defined wins.
func NewSchedule(entries []Entry) Schedule {
	s := make(Schedule, len(entries))
	for _, e := range entries {
		s[e.Hour] = e.Amount
	}
	return s
}

// Clone returns an independent copy of the schedule.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for h, a := range s {
		out[h] = a
	}
	return out
}
