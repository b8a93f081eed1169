package preprocessing

import "time"

// nearestWorkday は土曜を前日の金曜、日曜を翌日の月曜に振り替える
func nearestWorkday(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, -1)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	default:
		return t
	}
}

// nthWeekday は指定した月のn番目の曜日を返す（n=1が最初）
func nthWeekday(year int, month time.Month, wd time.Weekday, n int) time.Time {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(wd) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekday は指定した月の最後の曜日を返す
func lastWeekday(year int, month time.Month, wd time.Weekday) time.Time {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	offset := (int(t.Weekday()) - int(wd) + 7) % 7
	return t.AddDate(0, 0, -offset)
}

// usFederalHolidays は指定年の米国連邦祝日（振替済み）の観測日を返す。
// 固定日の祝日は最寄りの平日に振り替えられる（土曜→金曜、日曜→月曜）。
// 元日の振替は前年の12月31日になることがある。
func usFederalHolidays(year int) []time.Time {
	days := []time.Time{
		nearestWorkday(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)),
		nthWeekday(year, time.January, time.Monday, 3),  // MLK
		nthWeekday(year, time.February, time.Monday, 3), // ワシントン誕生日
		lastWeekday(year, time.May, time.Monday),        // メモリアルデー
		nearestWorkday(time.Date(year, time.July, 4, 0, 0, 0, 0, time.UTC)),
		nthWeekday(year, time.September, time.Monday, 1), // レイバーデー
		nthWeekday(year, time.October, time.Monday, 2),   // コロンブスデー
		nearestWorkday(time.Date(year, time.November, 11, 0, 0, 0, 0, time.UTC)),
		nthWeekday(year, time.November, time.Thursday, 4), // 感謝祭
		nearestWorkday(time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC)),
	}
	if year >= 2021 {
		// ジューンティーンス（2021年制定）
		days = append(days, nearestWorkday(time.Date(year, time.June, 19, 0, 0, 0, 0, time.UTC)))
	}
	return days
}

// isUSFederalHoliday は日付（時刻部分は無視）が連邦祝日の観測日かを判定する。
// 振替により観測日が年をまたぐことがあるため、前後の年の祝日も照合する。
func isUSFederalHoliday(t time.Time) bool {
	y, m, d := t.Date()
	for _, year := range [3]int{y - 1, y, y + 1} {
		for _, h := range usFederalHolidays(year) {
			hy, hm, hd := h.Date()
			if hy == y && hm == m && hd == d {
				return true
			}
		}
	}
	return false
}
