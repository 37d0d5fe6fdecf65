package scoring

import (
	"fmt"
	"math"
)

// DisplayStatus renders the short status string a scoreboard shows for a
// segment. It is the segment's computed status label except for the dormie
// case, which is called out explicitly because it is the moment a match can
// no longer be lost by the leader.
func DisplayStatus(seg SegmentState) string {
	if seg.Dormie {
		return "DORMIE"
	}
	return seg.Status
}

// FormatMoney renders a dollar amount for display: "$5" for whole amounts,
// "$12.50" otherwise, with the sign ahead of the dollar symbol ("-$7.50").
func FormatMoney(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	if amount == math.Trunc(amount) {
		return fmt.Sprintf("%s$%.0f", sign, amount)
	}
	return fmt.Sprintf("%s$%.2f", sign, amount)
}
