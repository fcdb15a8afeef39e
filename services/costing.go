package services

// CalcMaterialAmount returns the budgeted amount for a material line: the
// gross (ordered) quantity priced at the combined supply and install rates.
// The authoritative per-circuit cost rollup lives outside this app; these
// figures feed the schedule reports only.
func CalcMaterialAmount(grossQty, supplyRate, installRate float64) float64 {
	return grossQty * (supplyRate + installRate)
}

// ScheduleTotals summarises a material schedule for report footers.
type ScheduleTotals struct {
	TotalSupply  float64
	TotalInstall float64
	Total        float64
}

// MaterialForTotals carries the fields CalcScheduleTotals needs.
type MaterialForTotals struct {
	GrossQty    float64
	SupplyRate  float64
	InstallRate float64
}

// CalcScheduleTotals sums supply, install and combined amounts over a
// schedule's materials.
func CalcScheduleTotals(materials []MaterialForTotals) ScheduleTotals {
	var totals ScheduleTotals
	for _, m := range materials {
		totals.TotalSupply += m.GrossQty * m.SupplyRate
		totals.TotalInstall += m.GrossQty * m.InstallRate
	}
	totals.Total = totals.TotalSupply + totals.TotalInstall
	return totals
}
