package pricegraph

import "time"

// DefaultNoticeTTL is how long a notice stays visible.
const DefaultNoticeTTL = 3 * time.Second

// Notice is a message shown to the user for a limited time, typically a
// validation error next to the form that caused it.
//
// The time is always passed in, so there is no timer to cancel.
type Notice struct {
	Message string
	Expires time.Time
}

// NewNotice returns a notice for err, visible from now and for ttl.
// A nil err gives an empty notice.
func NewNotice(err error, now time.Time, ttl time.Duration) Notice {
	if err == nil {
		return Notice{}
	}
	return Notice{Message: err.Error(), Expires: now.Add(ttl)}
}

// Active reports whether the notice is still visible at now.
func (n Notice) Active(now time.Time) bool {
	return n.Message != "" && now.Before(n.Expires)
}

// Text returns the message if visible at now, "" otherwise.
func (n Notice) Text(now time.Time) string {
	if !n.Active(now) {
		return ""
	}
	return n.Message
}
