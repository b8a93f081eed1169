// Package preprocessing はテーブルデータの前処理変換を提供します。
//
// すべての変換はfit/applyの分離に従います。fitは学習用テーブルから統計を捕捉し、
// applyは捕捉済みのパラメータのみを使って未知のテーブルを変換します。
// applyは変換対象テーブル自身の統計を決して観測しません。
//
// 各変換はデフォルトで入力テーブルのコピーを返します。WithXxxInPlaceオプションを
// 指定した場合のみ、呼び出し元のテーブルを直接変更します。
package preprocessing

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/tabprep/pkg/log"
)

var globalProvider log.LoggerProvider

// SetLoggerProvider はパッケージ全体のロガープロバイダを設定します。
// 未設定の場合はzerologベースのプロバイダが遅延初期化されます。
func SetLoggerProvider(provider log.LoggerProvider) {
	globalProvider = provider
}

func loggerFor(name string) log.Logger {
	if globalProvider == nil {
		globalProvider = log.NewZerologProvider(log.ToLogLevel("info"))
	}
	return globalProvider.GetLoggerWithName(name)
}

// median はpandasと同じ定義の中央値を返す（偶数長は中央2値の平均）
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func nan() float64 {
	return math.NaN()
}

// safeDenom はゼロ除算を避けるための分母を返す。
// fitとapplyの両方で同じ関数を通すことで、再生の一貫性を保つ。
func safeDenom(d float64) float64 {
	if d == 0 {
		return 1
	}
	return d
}
