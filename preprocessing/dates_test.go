package preprocessing

import (
	"math"
	"testing"
	"time"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

func TestExpandDateCalendarFeatures(t *testing.T) {
	col := table.NewTimeColumn("ts", []time.Time{
		time.Date(2021, time.August, 23, 14, 30, 0, 0, time.UTC),  // 月曜の平日
		time.Date(2021, time.November, 25, 9, 0, 0, 0, time.UTC),  // 感謝祭（木曜）
		time.Date(2021, time.July, 4, 0, 0, 0, 0, time.UTC),       // 日曜、観測日は翌日
		time.Date(2021, time.July, 5, 8, 0, 0, 0, time.UTC),       // 独立記念日の振替観測日
		{}, // 欠損
	})

	out, err := ExpandDate(col)
	if err != nil {
		t.Fatalf("ExpandDate() failed: %v", err)
	}

	assertNames(t, out, []string{"hour", "year", "month", "day", "weekday", "holiday", "workingday"})
	assertFloats(t, out, "hour", []float64{14, 9, 0, 8, math.NaN()})
	assertFloats(t, out, "year", []float64{2021, 2021, 2021, 2021, math.NaN()})
	assertFloats(t, out, "month", []float64{8, 11, 7, 7, math.NaN()})
	assertFloats(t, out, "day", []float64{23, 25, 4, 5, math.NaN()})
	assertFloats(t, out, "weekday", []float64{0, 3, 6, 0, math.NaN()})
	assertFloats(t, out, "holiday", []float64{0, 1, 0, 1, math.NaN()})
	assertFloats(t, out, "workingday", []float64{1, 0, 0, 0, math.NaN()})
}

func TestExpandDateObservedAcrossYearBoundary(t *testing.T) {
	// 2022-01-01は土曜のため、元日は2021-12-31に観測される
	col := table.NewTimeColumn("ts", []time.Time{
		time.Date(2021, time.December, 31, 12, 0, 0, 0, time.UTC),
		time.Date(2022, time.January, 1, 12, 0, 0, 0, time.UTC),
	})

	out, err := ExpandDate(col)
	if err != nil {
		t.Fatalf("ExpandDate() failed: %v", err)
	}

	assertFloats(t, out, "holiday", []float64{1, 0})
	assertFloats(t, out, "workingday", []float64{0, 0})
}

func TestExpandDateRejectsNonTimestamp(t *testing.T) {
	col := table.NewFloatColumn("ts", []float64{1, 2})

	_, err := ExpandDate(col)
	if err == nil {
		t.Fatal("expected error for non-timestamp column")
	}
	var typeErr *errors.TypeMismatchError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected TypeMismatchError, got %T", err)
	}
}

func TestUSFederalHolidayRules(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{name: "MLK day 2021", date: time.Date(2021, time.January, 18, 0, 0, 0, 0, time.UTC), want: true},
		{name: "memorial day 2021", date: time.Date(2021, time.May, 31, 0, 0, 0, 0, time.UTC), want: true},
		{name: "labor day 2021", date: time.Date(2021, time.September, 6, 0, 0, 0, 0, time.UTC), want: true},
		{name: "christmas 2021 observed friday", date: time.Date(2021, time.December, 24, 0, 0, 0, 0, time.UTC), want: true},
		{name: "christmas day 2021 saturday not observed", date: time.Date(2021, time.December, 25, 0, 0, 0, 0, time.UTC), want: false},
		{name: "juneteenth 2021 observed friday", date: time.Date(2021, time.June, 18, 0, 0, 0, 0, time.UTC), want: true},
		{name: "juneteenth before enactment", date: time.Date(2019, time.June, 19, 0, 0, 0, 0, time.UTC), want: false},
		{name: "ordinary weekday", date: time.Date(2021, time.March, 10, 0, 0, 0, 0, time.UTC), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUSFederalHoliday(tt.date); got != tt.want {
				t.Errorf("isUSFederalHoliday(%v) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}
