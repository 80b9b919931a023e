package pricing

import "math"

// Input bounds enforced at the transport boundary before these functions run.
const (
	MaxRunsPerType     = 50
	MaxServicesPerType = 20
)

// RunCounts is the number of requested cable runs per medium.
type RunCounts struct {
	Coax  int
	Cat6  int
	Fiber int
}

// ServiceCounts is the number of requested add-on services.
type ServiceCounts struct {
	APMounts       int
	EthRelocations int
}

// Centralization describes how runs are terminated at the head end.
type Centralization struct {
	Type             CentralizationType
	HasExistingPanel bool
}

// DropsOnlyInput is the strictly-typed input for a drops-only price calculation.
type DropsOnlyInput struct {
	Runs            RunCounts
	Services        ServiceCounts
	DiscountPercent int
	Centralization  *Centralization
}

// DropsOnlyResult is the deterministic price for a drops-only quote.
type DropsOnlyResult struct {
	TotalCents   int64
	DepositCents int64
}

// WholeHomeResult carries the flat deposit for a whole-home quote. The final
// price is set after an on-site survey, so this intentionally has no total.
type WholeHomeResult struct {
	DepositCents int64
}

func roundCents(v float64) int64 {
	return int64(math.Round(v))
}

// centralizationCents prices the termination method. Loose termination is
// free; an existing media panel waives the new-install fee.
func centralizationCents(c *Centralization, rates RateBook) int64 {
	if c == nil {
		return 0
	}
	switch c.Type {
	case CentralizationPatchPanel:
		return rates.PatchPanelCents
	case CentralizationMediaPanel:
		if c.HasExistingPanel {
			return 0
		}
		return rates.MediaPanelNewCents
	default:
		return 0
	}
}

// CalculateDropsOnly computes the total and required deposit for a drops-only
// quote. Pure function of the input and rate book; an all-zero selection
// yields {0, 0} and it is the submission path's job to reject it as
// "nothing selected".
func CalculateDropsOnly(in DropsOnlyInput, rates RateBook) DropsOnlyResult {
	runsCents := int64(in.Runs.Coax)*rates.CoaxRunCents +
		int64(in.Runs.Cat6)*rates.Cat6RunCents +
		int64(in.Runs.Fiber)*rates.FiberRunCents

	servicesCents := int64(in.Services.APMounts)*rates.APMountCents +
		int64(in.Services.EthRelocations)*rates.EthRelocationCents

	subtotal := runsCents + servicesCents + centralizationCents(in.Centralization, rates)

	total := roundCents(float64(subtotal) * (1.0 - float64(in.DiscountPercent)/100.0))

	var deposit int64
	if total > rates.DepositThresholdCents {
		deposit = rates.DropsDepositCents
	}

	return DropsOnlyResult{TotalCents: total, DepositCents: deposit}
}

// CalculateWholeHome returns the flat whole-home deposit from the rate book.
func CalculateWholeHome(rates RateBook) WholeHomeResult {
	return WholeHomeResult{DepositCents: rates.WholeHomeDepositCents}
}

// NothingSelected reports whether a selection contains no billable work.
func NothingSelected(runs RunCounts, services ServiceCounts) bool {
	return runs.Coax == 0 && runs.Cat6 == 0 && runs.Fiber == 0 &&
		services.APMounts == 0 && services.EthRelocations == 0
}
