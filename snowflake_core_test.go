package idgen

import "testing"

// Scenario A: Twitter layout, clock [100,100,100], machine_id 1.
func TestSnowflakeTransitionScenarioA(t *testing.T) {
	state := InitialSnowflakeState(LayoutTwitter, 1)
	wantSeq := []uint64{0, 1, 2}
	for i, clk := range []int64{100, 100, 100} {
		res := snowflakeTransition(LayoutTwitter, 1, state, clk)
		if res.Status != Ready {
			t.Fatalf("call %d: status = %v, want Ready", i, res.Status)
		}
		ts, mid, seq, _ := LayoutTwitter.Unpack(res.ID)
		if ts != 100 || mid != 1 || seq != wantSeq[i] {
			t.Errorf("call %d: got (%d,%d,%d), want (100,1,%d)", i, ts, mid, seq, wantSeq[i])
		}
		state = res.NewState
	}
}

// Scenario B: Twitter layout, clock [100,101], machine_id 1.
func TestSnowflakeTransitionScenarioB(t *testing.T) {
	state := InitialSnowflakeState(LayoutTwitter, 1)
	want := [][2]uint64{{100, 0}, {101, 0}}
	for i, clk := range []int64{100, 101} {
		res := snowflakeTransition(LayoutTwitter, 1, state, clk)
		if res.Status != Ready {
			t.Fatalf("call %d: status = %v, want Ready", i, res.Status)
		}
		ts, _, seq, _ := LayoutTwitter.Unpack(res.ID)
		if ts != want[i][0] || seq != want[i][1] {
			t.Errorf("call %d: got (%d,%d), want %v", i, ts, seq, want[i])
		}
		state = res.NewState
	}
}

// Scenario C: Twitter layout, clock [100,99], machine_id 1 — clock regression.
func TestSnowflakeTransitionScenarioC(t *testing.T) {
	state := InitialSnowflakeState(LayoutTwitter, 1)

	res := snowflakeTransition(LayoutTwitter, 1, state, 100)
	if res.Status != Ready {
		t.Fatalf("first call: status = %v, want Ready", res.Status)
	}
	ts, _, seq, _ := LayoutTwitter.Unpack(res.ID)
	if ts != 100 || seq != 0 {
		t.Fatalf("first call: got (%d,%d), want (100,0)", ts, seq)
	}
	state = res.NewState

	res = snowflakeTransition(LayoutTwitter, 1, state, 99)
	if res.Status != Pending {
		t.Fatalf("second call: status = %v, want Pending", res.Status)
	}
	if res.YieldFor != 1 {
		t.Errorf("second call: YieldFor = %d, want 1", res.YieldFor)
	}
	if !res.ClockRegression {
		t.Error("second call: ClockRegression = false, want true")
	}
	if res.NewState != state {
		t.Error("second call: Pending must not mutate state")
	}
}

// Scenario D: Mastodon layout, constant clock 7, 65538 calls, machine_id 0.
func TestSnowflakeTransitionScenarioD(t *testing.T) {
	state := InitialSnowflakeState(LayoutMastodon, 0)
	const clk = 7

	for i := uint64(0); i <= LayoutMastodon.Sequence.Max(); i++ {
		res := snowflakeTransition(LayoutMastodon, 0, state, clk)
		if res.Status != Ready {
			t.Fatalf("call %d: status = %v, want Ready", i, res.Status)
		}
		ts, _, seq, _ := LayoutMastodon.Unpack(res.ID)
		if ts != clk || seq != i {
			t.Errorf("call %d: got (%d,%d), want (%d,%d)", i, ts, seq, clk, i)
		}
		state = res.NewState
	}

	for i := 0; i < 2; i++ {
		res := snowflakeTransition(LayoutMastodon, 0, state, clk)
		if res.Status != Pending {
			t.Fatalf("overflow call %d: status = %v, want Pending", i, res.Status)
		}
		if res.YieldFor != 1 {
			t.Errorf("overflow call %d: YieldFor = %d, want 1", i, res.YieldFor)
		}
		if res.ClockRegression {
			t.Errorf("overflow call %d: ClockRegression = true, want false (sequence exhaustion)", i)
		}
	}
}

// Property 1 & 2: monotonicity and uniqueness within a single generator.
func TestSnowflakeTransitionMonotonicAndUnique(t *testing.T) {
	ts := NewSequenceTimeSource([]int64{100, 100, 100, 101, 101, 200})
	state := InitialSnowflakeState(LayoutTwitter, 5)
	seen := make(map[uint64]bool)
	var prev uint64
	for i := 0; i < 6; i++ {
		now := ts.CurrentMillis()
		res := snowflakeTransition(LayoutTwitter, 5, state, now)
		if res.Status != Ready {
			t.Fatalf("call %d unexpectedly Pending", i)
		}
		if res.ID <= prev && i > 0 {
			t.Fatalf("call %d: id %d not strictly greater than prev %d", i, res.ID, prev)
		}
		if seen[res.ID] {
			t.Fatalf("call %d: duplicate id %d", i, res.ID)
		}
		seen[res.ID] = true
		prev = res.ID
		state = res.NewState
	}
}

// Property 3: distinct machine_ids never collide for identical clock sequences.
func TestSnowflakeTransitionUniqueAcrossMachines(t *testing.T) {
	stateA := InitialSnowflakeState(LayoutTwitter, 1)
	stateB := InitialSnowflakeState(LayoutTwitter, 2)
	seen := make(map[uint64]bool)
	for _, now := range []int64{100, 100, 101} {
		resA := snowflakeTransition(LayoutTwitter, 1, stateA, now)
		resB := snowflakeTransition(LayoutTwitter, 2, stateB, now)
		stateA, stateB = resA.NewState, resB.NewState
		if resA.ID == resB.ID {
			t.Fatalf("collision between machine 1 and machine 2 at id %d", resA.ID)
		}
		seen[resA.ID], seen[resB.ID] = true, true
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 unique ids, got %d", len(seen))
	}
}

// Property 4: every Ready id has zero reserved bits.
func TestSnowflakeTransitionReservedBitsAlwaysZero(t *testing.T) {
	state := InitialSnowflakeState(LayoutTwitter, LayoutTwitter.MachineID.Max())
	for _, now := range []int64{1, 1, 1, 2, 3} {
		res := snowflakeTransition(LayoutTwitter, LayoutTwitter.MachineID.Max(), state, now)
		if res.Status == Ready && res.ID&LayoutTwitter.ReservedMask() != 0 {
			t.Fatalf("id %d sets reserved bits", res.ID)
		}
		state = res.NewState
	}
}

// Property 6: clock regression never mutates state, regardless of layout.
func TestSnowflakeTransitionClockRegressionDoesNotMutate(t *testing.T) {
	state := InitialSnowflakeState(LayoutDiscord, 3)
	res := snowflakeTransition(LayoutDiscord, 3, state, 1000)
	state = res.NewState

	res = snowflakeTransition(LayoutDiscord, 3, state, 500)
	if res.Status != Pending || res.NewState != state {
		t.Fatalf("clock regression must return Pending and leave state unchanged: %+v", res)
	}
	if res.YieldFor != 500 {
		t.Errorf("YieldFor = %d, want 500 (prior_ts - now)", res.YieldFor)
	}
}
