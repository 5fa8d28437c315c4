package format

import "fmt"

// FormatNumberString inserts thousand separators into a decimal string.
// A leading minus sign is preserved; the empty string passes through.
func FormatNumberString(s string) string {
	if s == "" {
		return s
	}

	sign := ""
	if s[0] == '-' {
		sign = "-"
		s = s[1:]
	}

	n := len(s)
	if n <= 3 {
		return sign + s
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return sign + string(out)
}

// FormatBytes renders a byte count with a binary unit suffix, one decimal
// for KB and above.
func FormatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
