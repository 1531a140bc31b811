package wikitable

import "strconv"

// Ordinal renders a championship position. Podium places use the wiki's
// medal templates; everything else gets its English suffix.
func Ordinal(n int) string {
	switch n {
	case 1:
		return "{{1st}}"
	case 2:
		return "{{2nd}}"
	case 3:
		return "{{3rd}}"
	}
	return strconv.Itoa(n) + ordinalSuffix(n)
}

func ordinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
