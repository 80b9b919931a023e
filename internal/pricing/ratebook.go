// Package pricing implements the pure pricing and duration rules for
// installation quotes. All functions are deterministic over their inputs and
// an explicitly passed RateBook; nothing here touches the database.
package pricing

// Cost item codes recognized when assembling a RateBook from the catalog.
// Items with other codes price admin-defined extras and are ignored here.
const (
	CodeCoaxRun          = "coax-run"
	CodeCat6Run          = "cat6-run"
	CodeFiberRun         = "fiber-run"
	CodeAPMount          = "ap-mount"
	CodeEthRelocation    = "eth-relocation"
	CodePatchPanel       = "patch-panel"
	CodeMediaPanelNew    = "media-panel-new"
	CodeDropsDeposit     = "drops-deposit"
	CodeDepositThreshold = "deposit-threshold"
	CodeWholeHomeDeposit = "whole-home-deposit"
)

// CentralizationType is the method by which cable runs are terminated.
type CentralizationType string

const (
	CentralizationMediaPanel       CentralizationType = "media-panel"
	CentralizationPatchPanel       CentralizationType = "patch-panel"
	CentralizationLooseTermination CentralizationType = "loose-termination"
)

// LaborHoursTable maps each line item to its estimated labor hours.
type LaborHoursTable struct {
	CoaxRun       float64
	Cat6Run       float64
	FiberRun      float64
	APMount       float64
	EthRelocation float64
}

// RateBook is the per-request snapshot of unit costs used by the pricers.
// It is assembled from active catalog cost items plus the labor-rate setting,
// with compiled defaults filling any gap, then threaded through the pure
// pricing functions.
type RateBook struct {
	CoaxRunCents       int64
	Cat6RunCents       int64
	FiberRunCents      int64
	APMountCents       int64
	EthRelocationCents int64

	PatchPanelCents    int64
	MediaPanelNewCents int64

	DropsDepositCents     int64
	DepositThresholdCents int64
	WholeHomeDepositCents int64

	LaborRateCents int64
	LaborHours     LaborHoursTable
}

// DefaultRateBook returns the compiled-in rates used when the catalog has no
// override for a code.
func DefaultRateBook() RateBook {
	return RateBook{
		CoaxRunCents:       15000,
		Cat6RunCents:       10000,
		FiberRunCents:      20000,
		APMountCents:       2500,
		EthRelocationCents: 2000,

		PatchPanelCents:    5000,
		MediaPanelNewCents: 10000,

		DropsDepositCents:     2000,
		DepositThresholdCents: 10000,
		WholeHomeDepositCents: 20000,

		LaborRateCents: 10000,
		LaborHours: LaborHoursTable{
			CoaxRun:       1.0,
			Cat6Run:       0.8,
			FiberRun:      1.4,
			APMount:       0.2,
			EthRelocation: 0.3,
		},
	}
}

// ApplyItemRate overrides the rate for a known item code. Unknown codes are
// ignored so admin-defined extras don't disturb the core table.
func (r *RateBook) ApplyItemRate(code string, priceCents int64, laborHours float64) {
	switch code {
	case CodeCoaxRun:
		r.CoaxRunCents = priceCents
		r.LaborHours.CoaxRun = laborHours
	case CodeCat6Run:
		r.Cat6RunCents = priceCents
		r.LaborHours.Cat6Run = laborHours
	case CodeFiberRun:
		r.FiberRunCents = priceCents
		r.LaborHours.FiberRun = laborHours
	case CodeAPMount:
		r.APMountCents = priceCents
		r.LaborHours.APMount = laborHours
	case CodeEthRelocation:
		r.EthRelocationCents = priceCents
		r.LaborHours.EthRelocation = laborHours
	case CodePatchPanel:
		r.PatchPanelCents = priceCents
	case CodeMediaPanelNew:
		r.MediaPanelNewCents = priceCents
	case CodeDropsDeposit:
		r.DropsDepositCents = priceCents
	case CodeDepositThreshold:
		r.DepositThresholdCents = priceCents
	case CodeWholeHomeDeposit:
		r.WholeHomeDepositCents = priceCents
	}
}
