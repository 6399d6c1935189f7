package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatAmount formats a monetary amount with thousand separators
func FormatAmount(amount int64) string {
	str := fmt.Sprintf("%d", amount)

	n := len(str)
	negative := false
	if strings.HasPrefix(str, "-") {
		negative = true
		str = str[1:]
		n--
	}
	if n <= 3 {
		if negative {
			return "-" + str
		}
		return str
	}

	var result strings.Builder
	if negative {
		result.WriteRune('-')
	}
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatCoins renders a cash amount with the coin emoji
func FormatCoins(amount int64) string {
	return fmt.Sprintf("**%s** 🪙", FormatAmount(amount))
}

// FormatDiamonds renders a premium amount with the diamond emoji
func FormatDiamonds(amount int64) string {
	return fmt.Sprintf("**%s** 💎", FormatAmount(amount))
}

// FormatDuration renders a duration as a compact human string, e.g.
// "1h 05m" or "42s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
