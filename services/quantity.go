package services

import "math"

// round2 rounds to two decimal places, half away from zero. This is the
// single rounding policy for every computed quantity in the app; cost
// rollups downstream assume it, so it must not vary between call sites.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeGross derives the wastage and gross quantities for a net quantity
// and a wastage percentage.
//
//	wastageQty = round2(netQty * wastagePercent / 100)
//	grossQty   = netQty + wastageQty
//
// Callers are expected to pass netQty >= 0; negative or unparsable input is
// clamped to zero before this function is reached. A wastage percentage of
// zero always yields a zero wastage quantity.
func ComputeGross(netQty, wastagePercent float64) (wastageQty, grossQty float64) {
	wastageQty = round2(netQty * wastagePercent / 100)
	return wastageQty, netQty + wastageQty
}
