package services

import (
	"fmt"
	"strings"
)

// FormatINR formats an amount into Indian Rupee notation with the Indian
// digit grouping: the rightmost three digits form one group, then pairs
// (e.g. ₹1,23,45,678.90). Always two decimal places.
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := fmt.Sprintf("%.2f", amount)
	dot := strings.IndexByte(whole, '.')
	intPart, decPart := whole[:dot], whole[dot+1:]

	var groups []string
	if len(intPart) > 3 {
		groups = append(groups, intPart[len(intPart)-3:])
		intPart = intPart[:len(intPart)-3]
		for len(intPart) > 2 {
			groups = append([]string{intPart[len(intPart)-2:]}, groups...)
			intPart = intPart[:len(intPart)-2]
		}
	}
	groups = append([]string{intPart}, groups...)

	return sign + "₹" + strings.Join(groups, ",") + "." + decPart
}

// FormatQty renders a quantity as a whole number when it has no fractional
// part, otherwise with two decimals, matching how the editors display it.
func FormatQty(qty float64) string {
	if qty == float64(int64(qty)) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
