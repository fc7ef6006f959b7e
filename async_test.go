package idgen

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeSnowflakeShell replays a scripted sequence of IDResults, repeating
// the last entry once exhausted.
type fakeSnowflakeShell struct {
	results []IDResult
	calls   int
}

func (f *fakeSnowflakeShell) NextID() IDResult {
	i := f.calls
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	f.calls++
	return f.results[i]
}

// instantSleeper counts how many times it was asked to sleep but never
// actually blocks, keeping these tests fast.
type instantSleeper struct {
	calls int
}

func (s *instantSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.calls++
	return ctx.Err()
}

func TestAsyncSnowflakeAdapterReadyImmediately(t *testing.T) {
	shell := &fakeSnowflakeShell{results: []IDResult{{Status: Ready, ID: 42}}}
	sleeper := &instantSleeper{}
	adapter := NewAsyncSnowflakeAdapter(shell, sleeper)

	id, err := adapter.NextID(context.Background())
	if err != nil || id != 42 {
		t.Fatalf("NextID() = (%d,%v), want (42,nil)", id, err)
	}
	if sleeper.calls != 0 {
		t.Errorf("sleeper called %d times, want 0 for an immediately-Ready shell", sleeper.calls)
	}
}

func TestAsyncSnowflakeAdapterRetriesUntilReady(t *testing.T) {
	shell := &fakeSnowflakeShell{results: []IDResult{
		{Status: Pending, YieldFor: 1},
		{Status: Pending, YieldFor: 1},
		{Status: Ready, ID: 7},
	}}
	sleeper := &instantSleeper{}
	adapter := NewAsyncSnowflakeAdapter(shell, sleeper)

	id, err := adapter.NextID(context.Background())
	if err != nil || id != 7 {
		t.Fatalf("NextID() = (%d,%v), want (7,nil)", id, err)
	}
	if sleeper.calls != 2 {
		t.Errorf("sleeper called %d times, want 2", sleeper.calls)
	}
}

func TestAsyncSnowflakeAdapterRespectsCancellation(t *testing.T) {
	shell := &fakeSnowflakeShell{results: []IDResult{{Status: Pending, YieldFor: 1000}}}
	sleeper := &instantSleeper{}
	adapter := NewAsyncSnowflakeAdapter(shell, sleeper)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	id, err := adapter.NextID(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("NextID() error = %v, want context.Canceled", err)
	}
	if id != 0 {
		t.Errorf("NextID() id = %d, want 0 on cancellation", id)
	}
}

func TestAsyncSnowflakeAdapterNilSleeperUsesDefault(t *testing.T) {
	shell := &fakeSnowflakeShell{results: []IDResult{{Status: Ready, ID: 1}}}
	adapter := NewAsyncSnowflakeAdapter(shell, nil)
	if adapter.sleeper != DefaultSleeper {
		t.Error("nil sleeper should resolve to DefaultSleeper")
	}
}

// fakeUlidShell is the ULID analog of fakeSnowflakeShell.
type fakeUlidShell struct {
	results []UlidIDResult
	calls   int
}

func (f *fakeUlidShell) NextID() UlidIDResult {
	i := f.calls
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	f.calls++
	return f.results[i]
}

func TestAsyncUlidAdapterRetriesUntilReady(t *testing.T) {
	want := UlidID{Lo: 99}
	shell := &fakeUlidShell{results: []UlidIDResult{
		{Status: Pending, YieldFor: 1},
		{Status: Ready, ID: want},
	}}
	adapter := NewAsyncUlidAdapter(shell, &instantSleeper{})

	id, err := adapter.NextID(context.Background())
	if err != nil || !id.Equal(want) {
		t.Fatalf("NextID() = (%s,%v), want (%s,nil)", id, err, want)
	}
}

func TestAsyncUlidAdapterRespectsCancellation(t *testing.T) {
	shell := &fakeUlidShell{results: []UlidIDResult{{Status: Pending, YieldFor: 1000}}}
	adapter := NewAsyncUlidAdapter(shell, &instantSleeper{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	id, err := adapter.NextID(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("NextID() error = %v, want context.Canceled", err)
	}
	if !id.Equal(UlidID{}) {
		t.Errorf("NextID() id = %s, want zero value on cancellation", id)
	}
}
