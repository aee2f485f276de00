package retail

import "github.com/dustin/go-humanize"

// FormatKES renders an amount the way the till shows it, e.g. "KES 12,500.00".
func FormatKES(amount float64) string {
	return "KES " + humanize.FormatFloat("#,###.##", amount)
}
