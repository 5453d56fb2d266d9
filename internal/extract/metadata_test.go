package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metroscan/metroscan/internal/timetable"
)

func TestDestination_Basic(t *testing.T) {
	lines := [][]string{
		{"1号线", "时刻表"},
		{"开往", "天宫院", "方向"},
	}
	assert.Equal(t, "天宫院", Destination(lines))
}

func TestDestination_OCRConfusions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"misread kai", "牙往古城方向", "古城"},
		{"misread wang", "开住古城方向", "古城"},
		{"station suffix dropped", "开往西直门站方向", "西直门"},
		{"english marker", "开往古城To Gucheng", "古城"},
		{"no verb suffix", "去古城方向", "古城"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Destination([][]string{{tt.text}}))
		})
	}
}

func TestDestination_FirstMatchWins(t *testing.T) {
	lines := [][]string{
		{"开往天宫院方向"},
		{"开往古城方向"},
	}
	assert.Equal(t, "天宫院", Destination(lines))
}

func TestDestination_NoMatch(t *testing.T) {
	assert.Equal(t, "", Destination([][]string{{"工作日"}}))
	assert.Equal(t, "", Destination(nil))
}

func TestOperatingTime_Markers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want timetable.OperatingTime
	}{
		{"workday", "工作日时刻表", timetable.Workday},
		{"workday partial", "作日", timetable.Workday},
		{"workday english", "Weekdays", timetable.Workday},
		{"weekend", "双休日", timetable.Weekend},
		{"weekend english", "Weekends", timetable.Weekend},
		{"ordinary", "平日", timetable.Ordinary},
		{"friday", "星期五", timetable.FridayOnly},
		{"friday short", "周五", timetable.FridayOnly},
		{"friday english", "Friday", timetable.FridayOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OperatingTime([][]string{{tt.text}}))
		})
	}
}

func TestOperatingTime_SpecificPhraseBeatsBareMarker(t *testing.T) {
	// 周一至周四 together with 双休日 identifies an ordinary-day table even
	// though the bare weekend marker is present in the same cluster.
	lines := [][]string{{"周一至周四", "及双休日"}}
	assert.Equal(t, timetable.Ordinary, OperatingTime(lines))
}

func TestOperatingTime_NoMatch(t *testing.T) {
	assert.Equal(t, timetable.OperatingTime(""), OperatingTime([][]string{{"开往古城方向"}}))
}

func TestDualMetadata_TwoSides(t *testing.T) {
	columns := [][]string{
		{"开往太平湖方向", "工作日"},
		{"6", "05", "12"},
		{"开往亦庄同仁医院方向", "双休日"},
	}
	dests, ops := DualMetadata(columns)
	assert.Equal(t, [2]string{"太平湖", "亦庄同仁医院"}, dests)
	assert.Equal(t, [2]timetable.OperatingTime{timetable.Workday, timetable.Weekend}, ops)
}

func TestDualMetadata_ReversedColumnText(t *testing.T) {
	// Vertical glyph runs may be recognized bottom to top.
	columns := [][]string{
		{"向方湖平太往开"},
	}
	dests, _ := DualMetadata(columns)
	assert.Equal(t, [2]string{"太平湖", "太平湖"}, dests)
}

func TestDualMetadata_StripsLatinAndDigits(t *testing.T) {
	// Stray numerals inside the header column must not break the pattern.
	columns := [][]string{
		{"开往", "12", "太平湖", "方向", "工作日"},
	}
	dests, _ := DualMetadata(columns)
	assert.Equal(t, "太平湖", dests[0])
}

func TestDualMetadata_SingleDestinationDuplicated(t *testing.T) {
	columns := [][]string{{"开往太平湖方向"}}
	dests, ops := DualMetadata(columns)
	assert.Equal(t, [2]string{"太平湖", "太平湖"}, dests)
	assert.Equal(t, [2]timetable.OperatingTime{"", ""}, ops)
}

func TestDualMetadata_SingleCategoryComplemented(t *testing.T) {
	columns := [][]string{{"双休日"}}
	_, ops := DualMetadata(columns)
	assert.Equal(t, [2]timetable.OperatingTime{timetable.Weekend, timetable.Workday}, ops)
}

func TestDualMetadata_Empty(t *testing.T) {
	dests, ops := DualMetadata(nil)
	assert.Equal(t, [2]string{"", ""}, dests)
	assert.Equal(t, [2]timetable.OperatingTime{"", ""}, ops)
}
