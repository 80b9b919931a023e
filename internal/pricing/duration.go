package pricing

import "math"

const (
	// MinimumDurationMinutes is the floor applied to every computed estimate.
	MinimumDurationMinutes = 120
	// WholeHomeDurationMinutes is the fixed full-day block for whole-home
	// installs; they bypass the estimator entirely.
	WholeHomeDurationMinutes = 720
	// durationBufferHours is added to every estimate before rounding up.
	durationBufferHours = 1.0
)

// EstimateDurationMinutes converts selected line items into an installation
// duration: summed labor hours plus a one-hour buffer, rounded up to the next
// whole hour, floored at two hours. Monotonic non-decreasing in every count.
func EstimateDurationMinutes(runs RunCounts, services ServiceCounts, hours LaborHoursTable) int {
	totalHours := float64(runs.Coax)*hours.CoaxRun +
		float64(runs.Cat6)*hours.Cat6Run +
		float64(runs.Fiber)*hours.FiberRun +
		float64(services.APMounts)*hours.APMount +
		float64(services.EthRelocations)*hours.EthRelocation

	totalHours += durationBufferHours

	minutes := int(math.Ceil(totalHours)) * 60
	if minutes < MinimumDurationMinutes {
		return MinimumDurationMinutes
	}
	return minutes
}
