package timer

import (
	"fmt"
	"time"
)

// FormatRemaining renders a countdown as MM:SS. Negative remaining time
// keeps its sign so overtime reads as e.g. "-02:13".
func FormatRemaining(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := int64(d.Seconds())
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}
