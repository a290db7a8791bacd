package domain

// Clock is the monotonically increasing tick counter shared by the focus
// stack and the search engines. One tick is one input-processing pass.
type Clock struct {
	now uint64
}

// NewClock creates a clock starting at tick zero
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current tick
func (c *Clock) Now() uint64 {
	if c == nil {
		return 0
	}
	return c.now
}

// Advance moves the clock forward one tick and returns the new tick
func (c *Clock) Advance() uint64 {
	c.now++
	return c.now
}

// Since returns the number of ticks elapsed since stamp
func (c *Clock) Since(stamp uint64) uint64 {
	now := c.Now()
	if stamp > now {
		return 0
	}
	return now - stamp
}

// SameRef reports whether two backing references denote the same element.
// Uncomparable values (slices, maps) never match instead of panicking.
func SameRef(a, b any) (same bool) {
	if a == nil || b == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
