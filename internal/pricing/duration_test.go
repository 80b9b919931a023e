package pricing

import "testing"

func TestEstimateDurationMinutes_FloorsAtTwoHours(t *testing.T) {
	hours := DefaultRateBook().LaborHours

	if got := EstimateDurationMinutes(RunCounts{}, ServiceCounts{}, hours); got != MinimumDurationMinutes {
		t.Fatalf("expected empty selection to floor at %d, got %d", MinimumDurationMinutes, got)
	}
	// 0.2h + 1h buffer rounds to 2h, still at the floor.
	if got := EstimateDurationMinutes(RunCounts{}, ServiceCounts{APMounts: 1}, hours); got != 120 {
		t.Fatalf("expected 120 for a single AP mount, got %d", got)
	}
}

func TestEstimateDurationMinutes_RoundsUpToWholeHours(t *testing.T) {
	hours := DefaultRateBook().LaborHours

	// 2 cat6 runs = 1.6h + 1h buffer = 2.6h -> 3h.
	if got := EstimateDurationMinutes(RunCounts{Cat6: 2}, ServiceCounts{}, hours); got != 180 {
		t.Fatalf("expected 180 for two cat6 runs, got %d", got)
	}
	// 3 fiber runs = 4.2h + 1h = 5.2h -> 6h.
	if got := EstimateDurationMinutes(RunCounts{Fiber: 3}, ServiceCounts{}, hours); got != 360 {
		t.Fatalf("expected 360 for three fiber runs, got %d", got)
	}
	// Exact hour boundary must not round up an extra hour: 2 coax = 2h + 1h = 3h.
	if got := EstimateDurationMinutes(RunCounts{Coax: 2}, ServiceCounts{}, hours); got != 180 {
		t.Fatalf("expected 180 for two coax runs, got %d", got)
	}
}

func TestEstimateDurationMinutes_MonotonicNonDecreasing(t *testing.T) {
	hours := DefaultRateBook().LaborHours

	prev := 0
	for n := 0; n <= 10; n++ {
		got := EstimateDurationMinutes(RunCounts{Cat6: n}, ServiceCounts{}, hours)
		if got < prev {
			t.Fatalf("duration decreased from %d to %d at cat6=%d", prev, got, n)
		}
		if got < MinimumDurationMinutes {
			t.Fatalf("duration %d below floor at cat6=%d", got, n)
		}
		prev = got
	}

	prev = 0
	for n := 0; n <= 20; n++ {
		got := EstimateDurationMinutes(RunCounts{}, ServiceCounts{EthRelocations: n}, hours)
		if got < prev {
			t.Fatalf("duration decreased from %d to %d at ethRelocations=%d", prev, got, n)
		}
		prev = got
	}
}

func TestWholeHomeDurationIsFixedFullDay(t *testing.T) {
	if WholeHomeDurationMinutes != 720 {
		t.Fatalf("whole-home bookings must block a 720-minute day, got %d", WholeHomeDurationMinutes)
	}
}
