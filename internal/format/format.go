// Package format renders the countdown and limit labels shown next to
// ad-flow triggers.
package format

import "fmt"

// CooldownLabel renders a remaining-seconds value the way the mini app
// displays cooldowns: "m:ss" from one minute up, bare seconds below.
func CooldownLabel(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// DailyLimitLabel renders the used/limit counter for a daily-capped action.
func DailyLimitLabel(used, limit int) string {
	return fmt.Sprintf("daily limit (%d/%d)", used, limit)
}
