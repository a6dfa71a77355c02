package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 3, Constant(0), func(attempt int) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Do(context.Background(), 3, Constant(0), func(attempt int) error {
		calls++
		if attempt != calls {
			t.Errorf("attempt %d delivered on call %d", attempt, calls)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoRecoversMidway(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 5, Constant(0), func(attempt int) error {
		calls++
		if attempt < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoPolicyReceivesAttemptAndError(t *testing.T) {
	boom := errors.New("boom")
	var gotAttempts []int
	policy := func(attempt int, err error) time.Duration {
		if !errors.Is(err, boom) {
			t.Errorf("policy got error %v, want boom", err)
		}
		gotAttempts = append(gotAttempts, attempt)
		return 0
	}
	_ = Do(context.Background(), 3, policy, func(int) error { return boom })
	if len(gotAttempts) != 2 || gotAttempts[0] != 1 || gotAttempts[1] != 2 {
		t.Errorf("policy called with attempts %v, want [1 2]", gotAttempts)
	}
}

func TestDoCanceledWhileSleeping(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := Do(ctx, 3, Constant(time.Minute), func(int) error { return errors.New("transient") })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLinearPolicy(t *testing.T) {
	p := Linear(2 * time.Second)
	if d := p(1, nil); d != 2*time.Second {
		t.Errorf("attempt 1 delay = %v, want 2s", d)
	}
	if d := p(3, nil); d != 6*time.Second {
		t.Errorf("attempt 3 delay = %v, want 6s", d)
	}
}

func TestSleepZeroReturnsImmediately(t *testing.T) {
	start := time.Now()
	if err := Sleep(context.Background(), 0); err != nil {
		t.Fatalf("Sleep returned error: %v", err)
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Errorf("Sleep(0) blocked")
	}
}
