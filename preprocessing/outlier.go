package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
	"github.com/YuminosukeSato/tabprep/pkg/log"
)

// OutlierFilter は標準偏差バンドの外にある数値セルを欠損にする単一パスの変換器。
//
// fit/applyの分離を持たないステートレスな操作であり、平均と標準偏差は
// 渡されたテーブルからその都度計算される。行が丸ごと削除されることはなく、
// 該当する数値セルだけが欠損になる。
//
// 注意: 統計を毎回再計算するため、この操作は学習用テーブルに対してのみ
// 使用すること。検証・テスト用テーブルに適用すると、そのテーブル自身の
// 統計が漏洩する。呼び出し元の責任で学習時にのみ使用する。
type OutlierFilter struct {
	sigma   float64
	inPlace bool
	logger  log.Logger
}

// OutlierOption はOutlierFilterの設定オプション
type OutlierOption func(*OutlierFilter)

// WithSigma は外れ値判定の標準偏差係数を設定する（デフォルト: 3）
func WithSigma(sigma float64) OutlierOption {
	return func(f *OutlierFilter) { f.sigma = sigma }
}

// WithOutlierInPlace は入力テーブルを直接変更するかどうかを設定する
func WithOutlierInPlace(inPlace bool) OutlierOption {
	return func(f *OutlierFilter) { f.inPlace = inPlace }
}

// NewOutlierFilter は新しいOutlierFilterを作成する
func NewOutlierFilter(opts ...OutlierOption) *OutlierFilter {
	f := &OutlierFilter{sigma: 3}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = loggerFor("OutlierFilter")
	return f
}

// Transform は |x - mean| > sigma × std を満たす数値セルを欠損にする。
// 列ごとに独立して判定され、ターゲット列は対象外。
func (f *OutlierFilter) Transform(t *table.Table) (*table.Table, error) {
	const op = "OutlierFilter.Transform"

	out := t
	if !f.inPlace {
		out = t.Clone()
	}

	cols := out.FloatColumns(true)
	if len(cols) == 0 {
		errors.Warn(errors.NewEmptyResultWarning(op, "numerical"))
		return out, nil
	}

	blanked := 0
	for _, col := range cols {
		valid := col.ValidFloats()
		if len(valid) < 2 {
			continue
		}
		mean := stat.Mean(valid, nil)
		std := stat.StdDev(valid, nil)
		if std == 0 || math.IsNaN(std) {
			continue
		}
		band := f.sigma * std
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				continue
			}
			if math.Abs(col.Float(i)-mean) > band {
				col.SetMissing(i)
				blanked++
			}
		}
	}

	f.logger.Info("outliers blanked",
		log.OperationKey, log.OperationTransform,
		log.NumericalKey, len(cols),
		log.MissingCellsKey, blanked,
	)
	return out, nil
}

// Fit はステートレスな変換のため何もしない
func (f *OutlierFilter) Fit(t *table.Table) error {
	return nil
}

// FitTransform はTransformと同じ
func (f *OutlierFilter) FitTransform(t *table.Table) (*table.Table, error) {
	return f.Transform(t)
}
