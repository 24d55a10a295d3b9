package pricing

import (
	"strconv"
	"strings"
)

// FormatPrice formats a whole-unit amount like "$ 1,250.00".
// Comma is the thousands separator; prices carry no fractional part.
// Every int, math.MinInt included, formats without overflow.
func FormatPrice(amount int) string {
	neg := amount < 0
	mag := uint64(amount)
	if neg {
		mag = -mag
	}

	s := strconv.FormatUint(mag, 10)

	var b strings.Builder
	// digits + separators + "-$ " + ".00"
	b.Grow(len(s) + len(s)/3 + 6)
	if neg {
		b.WriteString("-$ ")
	} else {
		b.WriteString("$ ")
	}

	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	b.WriteString(".00")

	return b.String()
}
