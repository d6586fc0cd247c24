package utils

import (
	"errors"
	"testing"
	"time"
)

func TestRetrySucceedsFirstTry(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, Delay: time.Millisecond, Logger: NewLogger()}

	calls := 0
	err := r.Do("op", func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("err=%v calls=%d; want nil err and 1 call", err, calls)
	}
}

func TestRetryExhaustsAttemptsWithFixedDelay(t *testing.T) {
	const delay = 20 * time.Millisecond
	r := &RetryConfig{MaxAttempts: 3, Delay: delay, Logger: NewLogger()}

	boom := errors.New("boom")
	calls := 0

	start := time.Now()
	err := r.Do("op", func() error {
		calls++
		return boom
	})
	elapsed := time.Since(start)

	if calls != 3 {
		t.Errorf("calls = %d; want 3", calls)
	}
	if !errors.Is(err, boom) {
		t.Errorf("err = %v; want wrapped boom", err)
	}
	// Two sleeps between three attempts, none after the last.
	if elapsed < 2*delay {
		t.Errorf("elapsed %v; want at least %v", elapsed, 2*delay)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, Delay: time.Millisecond, Logger: NewLogger()}

	calls := 0
	err := r.Do("op", func() error {
		calls++
		return Permanent(errors.New("status 404"))
	})

	if calls != 1 {
		t.Errorf("calls = %d; want 1 (no retry on permanent errors)", calls)
	}
	if !IsPermanent(err) {
		t.Errorf("err = %v; want a permanent error", err)
	}
}

func TestPermanentNil(t *testing.T) {
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should stay nil")
	}
	if IsPermanent(errors.New("plain")) {
		t.Error("plain errors must not be permanent")
	}
}
