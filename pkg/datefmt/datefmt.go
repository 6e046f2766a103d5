package datefmt

import (
	"strconv"
	"strings"
	"time"
)

// Format renders t using the date-fns style pattern.
func Format(pattern string, t time.Time) string {
	var sb strings.Builder

	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		r := runes[i]

		switch {
		case r == '\'':
			n := writeQuoted(&sb, runes[i+1:])
			i += n + 1

		case isLetter(r):
			n := 1
			for i+n < len(runes) && runes[i+n] == r {
				n++
			}

			writeField(&sb, r, n, t)
			i += n

		default:
			sb.WriteRune(r)
			i++
		}
	}

	return sb.String()
}

// writeQuoted copies a quoted literal and returns the number of runes
// consumed, including the closing quote when present.
func writeQuoted(sb *strings.Builder, runes []rune) int {
	if len(runes) > 0 && runes[0] == '\'' {
		sb.WriteRune('\'')

		return 1
	}

	for i := 0; i < len(runes); i++ {
		if runes[i] != '\'' {
			sb.WriteRune(runes[i])

			continue
		}

		if i+1 < len(runes) && runes[i+1] == '\'' {
			sb.WriteRune('\'')
			i++

			continue
		}

		return i + 1
	}

	// Unterminated, the rest of the pattern is literal.
	return len(runes)
}

func writeField(sb *strings.Builder, field rune, n int, t time.Time) {
	switch field {
	case 'y':
		if n == 2 {
			sb.WriteString(pad(t.Year()%100, 2))
		} else {
			sb.WriteString(pad(t.Year(), n))
		}

	case 'M', 'L':
		switch {
		case n >= 4:
			sb.WriteString(t.Month().String())
		case n == 3:
			sb.WriteString(t.Month().String()[:3])
		default:
			sb.WriteString(pad(int(t.Month()), n))
		}

	case 'd':
		sb.WriteString(pad(t.Day(), n))

	case 'D':
		sb.WriteString(pad(t.YearDay(), n))

	case 'E':
		if n >= 4 {
			sb.WriteString(t.Weekday().String())
		} else {
			sb.WriteString(t.Weekday().String()[:3])
		}

	case 'H':
		sb.WriteString(pad(t.Hour(), n))

	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}

		sb.WriteString(pad(h, n))

	case 'a':
		if t.Hour() < 12 {
			sb.WriteString("AM")
		} else {
			sb.WriteString("PM")
		}

	case 'm':
		sb.WriteString(pad(t.Minute(), n))

	case 's':
		sb.WriteString(pad(t.Second(), n))

	case 'S':
		frac := pad(t.Nanosecond(), 9)
		if n > 9 {
			n = 9
		}

		sb.WriteString(frac[:n])

	default:
		sb.WriteString(strings.Repeat(string(field), n))
	}
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	if len(s) >= width {
		return s
	}

	return strings.Repeat("0", width-len(s)) + s
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
