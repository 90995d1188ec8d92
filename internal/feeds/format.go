package feeds

import (
	"fmt"
	"math"
	"strconv"
)

// FormatCount renders a view count: 950, 12K, 3.4M.
func FormatCount(n uint64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%dK", int64(math.Round(float64(n)/1_000)))
	default:
		return strconv.FormatUint(n, 10)
	}
}

// FormatTraffic renders a search-volume bucket: 500, 340K+, 1.2M+. Providers
// report 0 for low-volume trends, shown as the "10K+" floor.
func FormatTraffic(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM+", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%dK+", int64(math.Round(float64(n)/1_000)))
	case n <= 0:
		return "10K+"
	default:
		return strconv.FormatInt(n, 10)
	}
}
