// Package decode reconstructs HH:MM departure times from clustered digit
// lines. Board rows concatenate an hour with its minutes without delimiters,
// so decoding threads a carried hour through the clusters and pairs off the
// remaining digits as minutes.
package decode

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Options carries the decoder heuristics. The literals are tuned against
// observed boards; treat them as configuration, not truths.
type Options struct {
	// StartHourLow/StartHourHigh bound the plausible first hour of service.
	// Until an hour has been carried, clusters whose leading hour falls
	// outside this range are rejected as pre-schedule noise.
	StartHourLow  int
	StartHourHigh int
	// FooterMarkers are glyphs whose presence marks a footer/legend row.
	FooterMarkers []string
	// FooterSignatures are digit strings that identify footer rows even
	// when they look hour/minute shaped.
	FooterSignatures []string
}

// DefaultOptions returns the heuristics used for subway boards.
func DefaultOptions() Options {
	return Options{
		StartHourLow:     4,
		StartHourHigh:    7,
		FooterMarkers:    []string{"表"},
		FooterSignatures: []string{"520"},
	}
}

var circled = strings.NewReplacer(
	"①", "1", "②", "2", "③", "3", "④", "4", "⑤", "5",
	"⑥", "6", "⑦", "7", "⑧", "8", "⑨", "9",
)

// Times decodes ordered clusters into a chronologically sorted list of
// "HH:MM" strings. It is total: malformed input yields an empty list.
func Times(lines [][]string, opts Options) []string {
	var times []string

	lastHour := -1
	for _, line := range lines {
		times = decodeLine(line, opts, &lastHour, times)
	}

	SortServiceDay(times)
	return times
}

// decodeLine decodes one cluster, updating the carried hour only when a valid
// hour token was found.
func decodeLine(line []string, opts Options, lastHour *int, times []string) []string {
	digits := digitString(line)
	if digits == "" {
		return times
	}
	if len(line) == 0 || !numericToken(line[0]) {
		return times
	}
	if isFooter(line, digits, opts) {
		return times
	}

	hour, rest, ok := hourToken(digits, *lastHour, opts)
	if !ok {
		return times
	}
	*lastHour = hour

	for len(rest) >= 2 {
		pair := rest[:2]
		rest = rest[2:]
		minute := int(pair[0]-'0')*10 + int(pair[1]-'0')
		if minute <= 59 {
			times = append(times, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return times
}

// hourToken takes the hour off the front of the digit string. A single digit
// 4-9 is a one-digit hour; "05".."23" and "00" (the midnight bucket) are
// two-digit hours. Before any hour has been carried, only hours in the
// plausible service-start range are accepted.
func hourToken(digits string, lastHour int, opts Options) (hour int, rest string, ok bool) {
	if lastHour < 0 && !plausibleStart(digits, opts) {
		return 0, "", false
	}

	d0 := int(digits[0] - '0')
	if d0 >= 4 && d0 <= 9 {
		return d0, digits[1:], true
	}
	if len(digits) >= 2 {
		h := d0*10 + int(digits[1]-'0')
		if (h >= 5 && h <= 23) || h == 0 {
			return h, digits[2:], true
		}
	}
	return 0, "", false
}

func plausibleStart(digits string, opts Options) bool {
	d0 := int(digits[0] - '0')
	if d0 >= opts.StartHourLow && d0 <= opts.StartHourHigh {
		return true
	}
	if d0 == 0 && len(digits) >= 2 {
		d1 := int(digits[1] - '0')
		return d1 >= opts.StartHourLow && d1 <= opts.StartHourHigh
	}
	return false
}

func isFooter(line []string, digits string, opts Options) bool {
	for _, marker := range opts.FooterMarkers {
		for _, token := range line {
			if strings.Contains(token, marker) {
				return true
			}
		}
	}
	for _, sig := range opts.FooterSignatures {
		if digits == sig {
			return true
		}
	}
	return false
}

// digitString folds each token to halfwidth, normalizes circled-number
// prefixes, and keeps only ASCII digits.
func digitString(line []string) string {
	var b strings.Builder
	for _, token := range line {
		for _, r := range normalize(token) {
			if r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// numericToken reports whether a raw token is entirely numeric. Circled
// digits count: they are numeric glyphs used as prefixes on some boards.
func numericToken(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

func normalize(token string) string {
	return width.Narrow.String(circled.Replace(token))
}

// SortServiceDay sorts times in service-day order: the day starts at 04:00
// and the midnight hour continues the previous evening, so "00:xx" sorts
// after "23:xx".
func SortServiceDay(times []string) {
	sort.SliceStable(times, func(i, j int) bool {
		return serviceKey(times[i]) < serviceKey(times[j])
	})
}

func serviceKey(t string) string {
	if strings.HasPrefix(t, "00:") {
		return "24:" + t[3:]
	}
	return t
}
