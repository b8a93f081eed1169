package preprocessing

import (
	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

// ExpandDate はタイムスタンプ列をカレンダー特徴量のテーブルに展開する。
//
// ステートレスな純粋関数であり、fit/applyの区別はない。出力テーブルは
// 次の数値列を持つ:
//   - hour: 0〜23
//   - year
//   - month: 1〜12
//   - day: 1〜31
//   - weekday: 0=月曜〜6=日曜
//   - holiday: 米国連邦祝日（振替観測日）なら1
//   - workingday: weekday < 5 かつ祝日でないなら1
//
// 入力がTime型の列でない場合はTypeMismatchErrorを返す。
// 欠損タイムスタンプの行は全特徴量が欠損になる。
func ExpandDate(col *table.Column) (*table.Table, error) {
	const op = "ExpandDate"

	if col.DType() != table.Time {
		return nil, errors.NewTypeMismatchError(op, col.Name(),
			table.Time.String(), col.DType().String())
	}

	n := col.Len()
	hour := make([]float64, n)
	year := make([]float64, n)
	month := make([]float64, n)
	day := make([]float64, n)
	weekday := make([]float64, n)
	holiday := make([]float64, n)
	workingday := make([]float64, n)

	for i := 0; i < n; i++ {
		if col.IsMissing(i) {
			hour[i] = nan()
			year[i] = nan()
			month[i] = nan()
			day[i] = nan()
			weekday[i] = nan()
			holiday[i] = nan()
			workingday[i] = nan()
			continue
		}
		ts := col.TimeAt(i)
		hour[i] = float64(ts.Hour())
		year[i] = float64(ts.Year())
		month[i] = float64(ts.Month())
		day[i] = float64(ts.Day())
		// time.Weekdayは0=日曜なので0=月曜に変換する
		wd := (int(ts.Weekday()) + 6) % 7
		weekday[i] = float64(wd)
		hol := isUSFederalHoliday(ts)
		if hol {
			holiday[i] = 1
		}
		if wd < 5 && !hol {
			workingday[i] = 1
		}
	}

	return table.New(
		table.NewFloatColumn("hour", hour),
		table.NewFloatColumn("year", year),
		table.NewFloatColumn("month", month),
		table.NewFloatColumn("day", day),
		table.NewFloatColumn("weekday", weekday),
		table.NewFloatColumn("holiday", holiday),
		table.NewFloatColumn("workingday", workingday),
	)
}
