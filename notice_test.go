package pricegraph

import (
	"testing"
	"time"
)

func TestNotice(t *testing.T) {
	n := NewNotice(ErrMissingField, frozen, DefaultNoticeTTL)

	tests := []struct {
		after time.Duration
		want  string
	}{
		{0, ErrMissingField.Error()},
		{2999 * time.Millisecond, ErrMissingField.Error()},
		{3 * time.Second, ""},
		{time.Minute, ""},
	}
	for _, tt := range tests {
		if got := n.Text(frozen.Add(tt.after)); got != tt.want {
			t.Errorf("Text(+%v) = %q want %q", tt.after, got, tt.want)
		}
	}
}

func TestNoticeWithoutError(t *testing.T) {
	n := NewNotice(nil, frozen, DefaultNoticeTTL)
	if n.Active(frozen) {
		t.Errorf("NewNotice(nil) is active: %v", n)
	}
}
