package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// HumanDuration converts duration to human readable format (e.g., "5d3h", "2m")
func HumanDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 365 {
		return fmt.Sprintf("%dy%dd", days/365, days%365)
	}
	if days > 0 {
		return JoinStrings("", fmt.Sprintf("%dd", days), nonZero(hours, "h"))
	}
	if hours > 0 {
		return JoinStrings("", fmt.Sprintf("%dh", hours), nonZero(minutes, "m"))
	}
	if minutes > 0 {
		return JoinStrings("", fmt.Sprintf("%dm", minutes), nonZero(seconds, "s"))
	}
	return fmt.Sprintf("%ds", seconds)
}

func nonZero(n int, unit string) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d%s", n, unit)
}

// NA returns NAValue if string is empty
func NA(s string) string {
	if s == "" {
		return NAValue
	}
	return s
}

// BoolToStr converts bool to true/false
func BoolToStr(b bool) string {
	if b {
		return TrueValue
	}
	return FalseValue
}

// FormatNumber formats a number with thousands separators, keeping
// fractional digits when present.
func FormatNumber(f float64) string {
	if math.IsInf(f, 0) || math.Abs(f) >= 1e15 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	sign := ""
	if f < 0 {
		sign, f = "-", -f
	}
	_, frac, _ := strings.Cut(strconv.FormatFloat(f, 'f', -1, 64), ".")
	n := printer.Sprintf("%d", int64(math.Trunc(f)))
	if frac != "" {
		n += "." + frac
	}
	return sign + n
}

// FormatCurrency formats an amount with thousands separators and two decimals.
func FormatCurrency(f float64) string {
	return printer.Sprintf("%.2f", f)
}

// FormatDate formats a timestamp as a date, adding the time of day when set.
func FormatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.DateTime)
}

// Truncate truncates a string to max runes
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	rr := []rune(s)
	if max <= 1 {
		return string(rr[:max])
	}
	return string(rr[:max-1]) + "…"
}

// JoinStrings joins strings with separator, skipping empty ones
func JoinStrings(sep string, ss ...string) string {
	var parts []string
	for _, s := range ss {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}
