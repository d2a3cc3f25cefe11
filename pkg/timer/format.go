package timer

import "fmt"

// FormatClock renders an elapsed-seconds counter as HH:MM:SS. Hours wrap at
// 24 for presentation; the underlying counter does not.
func FormatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600%24, seconds/60%60, seconds%60)
}

// FormatTotalTime renders a total as whole hours and minutes, e.g. "1h 1m".
// Leftover seconds are truncated.
func FormatTotalTime(seconds int) string {
	return fmt.Sprintf("%dh %dm", seconds/3600, seconds%3600/60)
}
