package report

import (
	"fmt"
	"strconv"
)

// Group formats n with Indian digit grouping: 17999280 -> 1,79,99,280.
func Group(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var out []byte
		for i, c := range []byte(head) {
			if i > 0 && (len(head)-i)%2 == 0 {
				out = append(out, ',')
			}
			out = append(out, c)
		}
		s = string(out) + "," + tail
	}
	if neg {
		return "-" + s
	}
	return s
}

// Rupees renders an amount as ₹ with Indian grouping.
func Rupees(n int64) string { return "₹" + Group(n) }

// Lakhs renders an amount in lakhs with two decimals, as shown for cost per booking.
func Lakhs(n int64) string { return fmt.Sprintf("₹%.2fL", float64(n)/100000) }
