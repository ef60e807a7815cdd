package redis

import (
	"testing"
	"time"
)

func TestNewLoginLimiter_Defaults(t *testing.T) {
	l := NewLoginLimiter(nil, 5, 0)
	if l.window != time.Minute || l.limit != 5 {
		t.Fatalf("unexpected limiter: window=%v limit=%d", l.window, l.limit)
	}
	if got := l.key("10.0.0.1"); got != "ratelimit:login:10.0.0.1" {
		t.Fatalf("unexpected key %q", got)
	}
}
