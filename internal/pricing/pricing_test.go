package pricing

import "testing"

func TestCalculateDropsOnly_TwoCat6RunsLooseTermination(t *testing.T) {
	result := CalculateDropsOnly(DropsOnlyInput{
		Runs:           RunCounts{Cat6: 2},
		Centralization: &Centralization{Type: CentralizationLooseTermination},
	}, DefaultRateBook())

	if result.TotalCents != 20000 {
		t.Fatalf("expected total 20000, got %d", result.TotalCents)
	}
	if result.DepositCents != 2000 {
		t.Fatalf("expected deposit 2000 above threshold, got %d", result.DepositCents)
	}
}

func TestCalculateDropsOnly_MediaPanelNewInstallRequiresDeposit(t *testing.T) {
	result := CalculateDropsOnly(DropsOnlyInput{
		Runs:           RunCounts{Cat6: 2},
		Centralization: &Centralization{Type: CentralizationMediaPanel, HasExistingPanel: false},
	}, DefaultRateBook())

	if result.TotalCents != 30000 {
		t.Fatalf("expected total 30000, got %d", result.TotalCents)
	}
	if result.DepositCents != 2000 {
		t.Fatalf("expected deposit 2000, got %d", result.DepositCents)
	}
}

func TestCalculateDropsOnly_ExistingMediaPanelWaivesFee(t *testing.T) {
	result := CalculateDropsOnly(DropsOnlyInput{
		Runs:           RunCounts{Cat6: 2},
		Centralization: &Centralization{Type: CentralizationMediaPanel, HasExistingPanel: true},
	}, DefaultRateBook())

	if result.TotalCents != 20000 {
		t.Fatalf("expected total 20000 with existing panel, got %d", result.TotalCents)
	}
}

func TestCalculateDropsOnly_AllZeroSelectionIsFree(t *testing.T) {
	result := CalculateDropsOnly(DropsOnlyInput{}, DefaultRateBook())

	if result.TotalCents != 0 || result.DepositCents != 0 {
		t.Fatalf("expected {0, 0} for empty selection, got {%d, %d}", result.TotalCents, result.DepositCents)
	}
	if !NothingSelected(RunCounts{}, ServiceCounts{}) {
		t.Fatal("expected empty selection to report nothing selected")
	}
	if NothingSelected(RunCounts{Fiber: 1}, ServiceCounts{}) {
		t.Fatal("expected a fiber run to count as a selection")
	}
}

func TestCalculateDropsOnly_MonotonicInEveryCount(t *testing.T) {
	rates := DefaultRateBook()
	base := DropsOnlyInput{
		Runs:           RunCounts{Coax: 1, Cat6: 1, Fiber: 1},
		Services:       ServiceCounts{APMounts: 1, EthRelocations: 1},
		Centralization: &Centralization{Type: CentralizationPatchPanel},
	}
	baseTotal := CalculateDropsOnly(base, rates).TotalCents

	bumps := []DropsOnlyInput{
		{Runs: RunCounts{Coax: 2, Cat6: 1, Fiber: 1}, Services: base.Services, Centralization: base.Centralization},
		{Runs: RunCounts{Coax: 1, Cat6: 2, Fiber: 1}, Services: base.Services, Centralization: base.Centralization},
		{Runs: RunCounts{Coax: 1, Cat6: 1, Fiber: 2}, Services: base.Services, Centralization: base.Centralization},
		{Runs: base.Runs, Services: ServiceCounts{APMounts: 2, EthRelocations: 1}, Centralization: base.Centralization},
		{Runs: base.Runs, Services: ServiceCounts{APMounts: 1, EthRelocations: 2}, Centralization: base.Centralization},
	}

	for i, bumped := range bumps {
		total := CalculateDropsOnly(bumped, rates).TotalCents
		if total < baseTotal {
			t.Fatalf("bump %d: total decreased from %d to %d", i, baseTotal, total)
		}
	}
}

func TestCalculateDropsOnly_DiscountScalesTotal(t *testing.T) {
	rates := DefaultRateBook()
	base := DropsOnlyInput{
		Runs:     RunCounts{Coax: 3, Cat6: 5, Fiber: 2},
		Services: ServiceCounts{APMounts: 4, EthRelocations: 1},
	}
	undiscounted := CalculateDropsOnly(base, rates).TotalCents

	for d := 0; d <= 100; d++ {
		in := base
		in.DiscountPercent = d
		got := CalculateDropsOnly(in, rates).TotalCents
		want := roundCents(float64(undiscounted) * (1.0 - float64(d)/100.0))

		if diff := got - want; diff < -1 || diff > 1 {
			t.Fatalf("discount %d%%: expected ~%d, got %d", d, want, got)
		}
		if got < 0 {
			t.Fatalf("discount %d%%: negative total %d", d, got)
		}
	}

	full := base
	full.DiscountPercent = 100
	if total := CalculateDropsOnly(full, rates).TotalCents; total != 0 {
		t.Fatalf("expected zero total at 100%% discount, got %d", total)
	}
}

func TestCalculateDropsOnly_DepositExactlyAtThreshold(t *testing.T) {
	rates := DefaultRateBook()

	// One cat6 run lands exactly on the 10000-cent threshold: no deposit.
	atThreshold := CalculateDropsOnly(DropsOnlyInput{Runs: RunCounts{Cat6: 1}}, rates)
	if atThreshold.TotalCents != 10000 {
		t.Fatalf("expected total 10000, got %d", atThreshold.TotalCents)
	}
	if atThreshold.DepositCents != 0 {
		t.Fatalf("deposit must require total strictly above threshold, got %d", atThreshold.DepositCents)
	}

	overThreshold := CalculateDropsOnly(DropsOnlyInput{
		Runs:     RunCounts{Cat6: 1},
		Services: ServiceCounts{EthRelocations: 1},
	}, rates)
	if overThreshold.DepositCents != 2000 {
		t.Fatalf("expected deposit 2000 above threshold, got %d", overThreshold.DepositCents)
	}
}

func TestCalculateWholeHome_FlatDeposit(t *testing.T) {
	result := CalculateWholeHome(DefaultRateBook())
	if result.DepositCents != 20000 {
		t.Fatalf("expected whole-home deposit 20000, got %d", result.DepositCents)
	}
}

func TestRateBook_ApplyItemRateOverridesKnownCodes(t *testing.T) {
	rates := DefaultRateBook()
	rates.ApplyItemRate(CodeCat6Run, 12500, 0.9)
	rates.ApplyItemRate("custom-conduit", 99999, 2.0)

	if rates.Cat6RunCents != 12500 {
		t.Fatalf("expected cat6 rate override 12500, got %d", rates.Cat6RunCents)
	}
	if rates.LaborHours.Cat6Run != 0.9 {
		t.Fatalf("expected cat6 labor override 0.9, got %v", rates.LaborHours.Cat6Run)
	}
	// Unknown codes must leave the table untouched.
	if rates.CoaxRunCents != 15000 {
		t.Fatalf("unknown code changed coax rate to %d", rates.CoaxRunCents)
	}
}
