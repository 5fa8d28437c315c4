package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders a run duration at a resolution matched to
// its magnitude: whole microseconds under a millisecond, whole milliseconds
// under a second, and time.Duration's own formatting above that.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}
