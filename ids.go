package pricegraph

import "time"

// IDGenerator is the source of new graph ids.
type IDGenerator interface {
	NextID() int64
}

// ClockIDs derives ids from the clock, in milliseconds since the Unix epoch.
//
// Ids are strictly increasing: when the clock did not move since the last
// call (or went backward) the previous id plus one is returned.
type ClockIDs struct {
	Now  func() time.Time // defaults to time.Now
	last int64
}

func (c *ClockIDs) NextID() int64 {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	id := now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

// Counter returns Next, Next+1, ... It makes ids predictable in tests.
type Counter struct {
	Next int64
}

func (c *Counter) NextID() int64 {
	id := c.Next
	c.Next++
	return id
}
