// Package money formats amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RupeeSymbol prefixes every displayed amount.
const RupeeSymbol = "₹"

func init() {
	// The API reads amounts as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// INR renders d the way the en-IN locale does: lakh/crore digit grouping and
// at most three fraction digits without trailing zeros.
func INR(d decimal.Decimal) string {
	return RupeeSymbol + Group(d)
}

// INRPtr renders a nullable amount; nil renders as zero.
func INRPtr(d *decimal.Decimal) string {
	return INR(OrZero(d))
}

// OrZero dereferences a nullable amount.
func OrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// Group returns d with Indian digit grouping (1,50,000) and no currency symbol.
func Group(d decimal.Decimal) string {
	s := d.Round(3).String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(groupIndian(whole))
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// groupIndian groups the last three digits, then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
