// Package timetable defines the decoded schedule record, its JSONL encoding,
// and the consistency checks applied to decoded departure sequences.
package timetable

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// OperatingTime is the service-day category printed on a timetable board.
// The literal values are the board's own category strings; downstream data
// consumers key on them.
type OperatingTime string

const (
	Workday    OperatingTime = "工作日"
	Weekend    OperatingTime = "双休日"
	Ordinary   OperatingTime = "平日"
	FridayOnly OperatingTime = "星期五"
)

// Opposite returns the complementary weekday/weekend category, used when a
// dual board only exposes the category of one side.
func (o OperatingTime) Opposite() OperatingTime {
	if o == Workday {
		return Weekend
	}
	return Workday
}

// Record is one decoded timetable: the platform/direction of a single board
// (or board half). Nullable fields stay nil when extraction found nothing;
// that is a valid, partially populated record rather than an error.
type Record struct {
	Filename      string         `json:"filename"`
	Route         *string        `json:"route"`
	Station       *string        `json:"station"`
	Destination   *string        `json:"destination"`
	OperatingTime *OperatingTime `json:"operating_time"`
	ScheduleTimes []string       `json:"schedule_times"`
	Error         string         `json:"error,omitempty"`
}

// ErrorRecord builds the substitute record emitted when an image fails to
// decode entirely. All fields are null except the filename and the message.
func ErrorRecord(filename string, err error) Record {
	return Record{
		Filename:      filename,
		ScheduleTimes: []string{},
		Error:         err.Error(),
	}
}

// WriteJSONL writes one JSON object per line.
func WriteJSONL(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode record %s: %w", rec.Filename, err)
		}
	}
	return nil
}

// ReadJSONL reads records line by line, skipping blank lines.
func ReadJSONL(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}
