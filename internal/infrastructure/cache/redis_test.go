package cache

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRedis_BypassWhenUnreachable(t *testing.T) {
	r := NewRedis(Options{Host: "127.0.0.1", Port: "1"}, quietLogger())
	ctx := context.Background()

	if r.Available() {
		t.Fatalf("expected cache to be bypassed")
	}
	if err := r.SetJSON(ctx, "k", map[string]int{"a": 1}, 0); err != nil {
		t.Fatalf("bypassed set must not fail, got %v", err)
	}
	var out map[string]int
	hit, err := r.GetJSON(ctx, "k", &out)
	if err != nil || hit {
		t.Fatalf("bypassed get must miss, got hit=%v err=%v", hit, err)
	}
	if err := r.DeleteByPattern(ctx, "jobs:search:*"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := r.Ping(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	if r.Available() {
		t.Fatalf("nil cache is never available")
	}
	if hit, err := r.GetJSON(context.Background(), "k", new(int)); hit || err != nil {
		t.Fatalf("unexpected hit=%v err=%v", hit, err)
	}
}

func TestAttemptCounter_FailsWithoutRedis(t *testing.T) {
	c := NewAttemptCounter(&Redis{logger: quietLogger()}, "", 0)
	ctx := context.Background()

	if c.key != DefaultAttemptKey || c.ttl != DefaultAttemptTTL {
		t.Fatalf("expected defaults, got key=%q ttl=%s", c.key, c.ttl)
	}
	if _, err := c.Count(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, err := c.Increment(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := c.Reset(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestAttemptKey_PerInstance(t *testing.T) {
	a, b := AttemptKey("one"), AttemptKey("two")
	if a == b {
		t.Fatalf("instances must not share a counter key")
	}
	if !strings.HasPrefix(a, DefaultAttemptKey+":") {
		t.Fatalf("unexpected key %q", a)
	}
	if AttemptKey("  ") != DefaultAttemptKey {
		t.Fatalf("blank instance should fall back to the default key")
	}
}
