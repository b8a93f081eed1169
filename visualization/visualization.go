// Package visualization はテーブルと学習履歴の図をPNGファイルとして描画します。
//
// すべての関数は明示的な出力先を受け取り、呼び出し元が要求したときにのみ
// 描画します。暗黙のスタイル設定やグローバルな状態は持ちません。
package visualization

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/tabprep/benchmark"
	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

const (
	defaultWidth  = 6 * vg.Inch
	defaultHeight = 4 * vg.Inch
)

// Histograms はターゲットを除く各数値列のヒストグラムをdirに1枚ずつ描画する。
// ファイル名は hist_<列名>.png となる。
func Histograms(t *table.Table, dir string, bins int) error {
	const op = "visualization.Histograms"

	cols := t.FloatColumns(true)
	if len(cols) == 0 {
		errors.Warn(errors.NewEmptyResultWarning(op, "numerical"))
		return nil
	}
	if bins <= 0 {
		bins = 16
	}

	for _, col := range cols {
		valid := col.ValidFloats()
		if len(valid) == 0 {
			continue
		}
		p := plot.New()
		p.Title.Text = col.Name()
		p.Y.Label.Text = "count"

		h, err := plotter.NewHist(plotter.Values(valid), bins)
		if err != nil {
			return errors.Wrapf(err, "%s: column '%s'", op, col.Name())
		}
		p.Add(h)

		out := filepath.Join(dir, "hist_"+col.Name()+".png")
		if err := p.Save(defaultWidth, defaultHeight, out); err != nil {
			return errors.Wrapf(err, "%s: column '%s'", op, col.Name())
		}
	}
	return nil
}

// CategoryBars はターゲットを除く各カテゴリ列の頻度棒グラフをdirに1枚ずつ描画する。
// ファイル名は bars_<列名>.png となり、棒はラベルの初出順に並ぶ。
func CategoryBars(t *table.Table, dir string) error {
	const op = "visualization.CategoryBars"

	cols := t.CategoryColumns(true)
	if len(cols) == 0 {
		errors.Warn(errors.NewEmptyResultWarning(op, "categorical"))
		return nil
	}

	for _, col := range cols {
		counts := col.ValueCounts()
		if len(counts) == 0 {
			continue
		}
		values := make(plotter.Values, len(counts))
		labels := make([]string, len(counts))
		for i, vc := range counts {
			values[i] = float64(vc.Count)
			labels[i] = vc.Label
		}

		p := plot.New()
		p.Title.Text = col.Name()
		p.Y.Label.Text = "count"

		bars, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return errors.Wrapf(err, "%s: column '%s'", op, col.Name())
		}
		p.Add(bars)
		p.NominalX(labels...)

		out := filepath.Join(dir, "bars_"+col.Name()+".png")
		if err := p.Save(defaultWidth, defaultHeight, out); err != nil {
			return errors.Wrapf(err, "%s: column '%s'", op, col.Name())
		}
	}
	return nil
}

// MissingRatios は欠損値を含む列の欠損率棒グラフを描画する。
// limitが正の場合、許容上限を示す水平線を重ねる。
func MissingRatios(t *table.Table, path string, limit float64) error {
	const op = "visualization.MissingRatios"

	stats := t.MissingReport()
	if len(stats) == 0 {
		errors.Warn(errors.NewEmptyResultWarning(op, "missing"))
		return nil
	}

	values := make(plotter.Values, len(stats))
	labels := make([]string, len(stats))
	for i, s := range stats {
		values[i] = s.Ratio
		labels[i] = s.Column
	}

	p := plot.New()
	p.Title.Text = "missing ratio"
	p.Y.Label.Text = "ratio"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return errors.Wrap(err, op)
	}
	p.Add(bars)
	p.NominalX(labels...)

	if limit > 0 {
		line, err := plotter.NewLine(plotter.XYs{
			{X: -0.5, Y: limit},
			{X: float64(len(stats)) - 0.5, Y: limit},
		})
		if err != nil {
			return errors.Wrap(err, op)
		}
		p.Add(line)
	}

	return errors.Wrap(p.Save(defaultWidth, defaultHeight, path), op)
}

// Correlations はターゲット列と各数値特徴量のピアソン相関の棒グラフを描画する。
// 相関は両方のセルが欠損でない行からのみ計算される。
func Correlations(t *table.Table, target string, path string) error {
	const op = "visualization.Correlations"

	targetCol, err := t.Column(target)
	if err != nil {
		return errors.Wrap(err, op)
	}
	if targetCol.DType() != table.Float {
		return errors.NewTypeMismatchError(op, target, table.Float.String(), targetCol.DType().String())
	}

	cols := t.FloatColumns(true)
	values := make(plotter.Values, 0, len(cols))
	labels := make([]string, 0, len(cols))
	for _, col := range cols {
		if col.Name() == target {
			continue
		}
		x := make([]float64, 0, col.Len())
		y := make([]float64, 0, col.Len())
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) || targetCol.IsMissing(i) {
				continue
			}
			x = append(x, col.Float(i))
			y = append(y, targetCol.Float(i))
		}
		if len(x) < 2 {
			continue
		}
		values = append(values, stat.Correlation(x, y, nil))
		labels = append(labels, col.Name())
	}
	if len(values) == 0 {
		errors.Warn(errors.NewEmptyResultWarning(op, "numerical"))
		return nil
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("correlation with %s", target)
	p.Y.Label.Text = "pearson r"
	p.Y.Min, p.Y.Max = -1, 1

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return errors.Wrap(err, op)
	}
	p.Add(bars)
	p.NominalX(labels...)

	return errors.Wrap(p.Save(defaultWidth, defaultHeight, path), op)
}

// TrainingCurves は学習履歴の損失曲線（あれば検証損失も）を描画する
func TrainingCurves(h *benchmark.History, path string) error {
	const op = "visualization.TrainingCurves"

	if h == nil || h.Epochs() == 0 {
		return errors.NewValueError(op, "empty history")
	}

	p := plot.New()
	p.Title.Text = "training curves"
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "loss"

	loss, err := plotter.NewLine(series(h.Loss))
	if err != nil {
		return errors.Wrap(err, op)
	}
	p.Add(loss)
	p.Legend.Add("loss", loss)

	if len(h.ValLoss) > 0 {
		valLoss, err := plotter.NewLine(series(h.ValLoss))
		if err != nil {
			return errors.Wrap(err, op)
		}
		valLoss.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(valLoss)
		p.Legend.Add("val_loss", valLoss)
	}

	return errors.Wrap(p.Save(defaultWidth, defaultHeight, path), op)
}

func series(values []float64) plotter.XYs {
	xys := make(plotter.XYs, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: float64(i), Y: v}
	}
	return xys
}
