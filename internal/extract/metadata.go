// Package extract pulls the metadata fields (destination and service-day
// category) out of clustered OCR text. The patterns are deliberately tolerant
// of common recognition confusions on the board's header glyphs.
package extract

import (
	"regexp"
	"strings"

	"github.com/metroscan/metroscan/internal/timetable"
)

// destinationRe matches the "departing toward X" header. The leading 开 and 往
// are frequently misread (牙/去 and 住/注), the 站 suffix is optional, and the
// direction marker can be the native 方向 or the English "To".
var destinationRe = regexp.MustCompile(`[开牙去][往住注]?(.+?)站?(方向|To)`)

// latinDigitRe strips Latin letters and digits before matching vertical text,
// where stray numerals otherwise trigger false positives.
var latinDigitRe = regexp.MustCompile(`[a-zA-Z0-9]+`)

// Destination scans clusters in order and returns the first matched
// destination, or "" when none is present.
func Destination(lines [][]string) string {
	for _, line := range lines {
		text := strings.Join(line, "")
		if m := destinationRe.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// OperatingTime scans clusters for service-day markers and returns the
// category of the first cluster containing one, or "" when none matches.
// The combined Monday-to-Thursday phrase is checked before the bare weekend
// marker so the more specific phrase wins when both appear in one cluster.
func OperatingTime(lines [][]string) timetable.OperatingTime {
	for _, line := range lines {
		if ot := operatingTimeOf(strings.Join(line, "")); ot != "" {
			return ot
		}
	}
	return ""
}

func operatingTimeOf(text string) timetable.OperatingTime {
	switch {
	case strings.Contains(text, "周一至周四") && strings.Contains(text, "双休日"):
		return timetable.Ordinary
	case strings.Contains(text, "作日") || strings.Contains(text, "Weekdays"):
		return timetable.Workday
	case strings.Contains(text, "双休日") || strings.Contains(text, "Weekends"):
		return timetable.Weekend
	case strings.Contains(text, "平日") || strings.Contains(text, "Ordinary"):
		return timetable.Ordinary
	case strings.Contains(text, "星期五") || strings.Contains(text, "周五") || strings.Contains(text, "Friday"):
		return timetable.FridayOnly
	}
	return ""
}

// DualMetadata extracts the two destinations and two service-day categories
// of a dual board from column clusters. Vertical glyph runs may be recognized
// bottom-to-top, so every column is scanned forward and reversed. Results are
// padded to exactly two entries: a single destination is duplicated, a single
// category is complemented with its opposite day, and misses stay empty.
func DualMetadata(columns [][]string) (destinations [2]string, operating [2]timetable.OperatingTime) {
	var dests []string
	var ops []timetable.OperatingTime

	for _, column := range columns {
		text := strings.Join(column, "")
		for _, candidate := range []string{text, reverse(text)} {
			clean := latinDigitRe.ReplaceAllString(candidate, "")

			if m := destinationRe.FindStringSubmatch(clean); m != nil {
				dest := strings.TrimSpace(m[1])
				if dest != "" && !contains(dests, dest) {
					dests = append(dests, dest)
				}
			}

			if ot := dualOperatingTimeOf(clean, candidate); ot != "" && !containsOp(ops, ot) {
				ops = append(ops, ot)
			}
		}
	}

	switch len(dests) {
	case 0:
	case 1:
		destinations[0], destinations[1] = dests[0], dests[0]
	default:
		destinations[0], destinations[1] = dests[0], dests[1]
	}

	switch len(ops) {
	case 0:
	case 1:
		operating[0], operating[1] = ops[0], ops[0].Opposite()
	default:
		operating[0], operating[1] = ops[0], ops[1]
	}
	return destinations, operating
}

// dualOperatingTimeOf uses looser markers than the standard layout: vertical
// recognition drops glyphs often enough that the 作日/休日 tails must count.
func dualOperatingTimeOf(clean, raw string) timetable.OperatingTime {
	switch {
	case strings.Contains(clean, "工作日") || strings.Contains(clean, "作日"):
		return timetable.Workday
	case strings.Contains(clean, "双休日") || strings.Contains(clean, "休日"):
		return timetable.Weekend
	case strings.Contains(clean, "平日") || strings.Contains(raw, "Ordinary"):
		return timetable.Ordinary
	}
	return ""
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsOp(list []timetable.OperatingTime, v timetable.OperatingTime) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
