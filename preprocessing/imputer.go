package preprocessing

import (
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/tabprep/core/model"
	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
	"github.com/YuminosukeSato/tabprep/pkg/log"
)

// NumericalPolicy は数値列の欠損値補完ポリシー
type NumericalPolicy string

const (
	// NumericalMedian は中央値で補完する（デフォルト）
	NumericalMedian NumericalPolicy = "median"
	// NumericalMean は平均値で補完する
	NumericalMean NumericalPolicy = "mean"
)

// ImputationParams は列名から補完値へのマッピング。
// fit時のテーブルからのみ計算され、変換対象のテーブルから再計算されることはない。
type ImputationParams struct {
	// Numerical は数値列の補完値
	Numerical map[string]float64
	// Categorical はカテゴリ列の補完ラベル
	Categorical map[string]string
}

func (p ImputationParams) clone() ImputationParams {
	out := ImputationParams{
		Numerical:   make(map[string]float64, len(p.Numerical)),
		Categorical: make(map[string]string, len(p.Categorical)),
	}
	for k, v := range p.Numerical {
		out.Numerical[k] = v
	}
	for k, v := range p.Categorical {
		out.Categorical[k] = v
	}
	return out
}

// MissingValueFiller は中心傾向による欠損値補完の変換器。
//
// 数値列（ターゲットを除く）は列の中央値または平均値で補完される。
// カテゴリ列（ターゲットを除く）は最頻値または呼び出し元指定の固定ラベルで
// 補完される。最頻値のタイブレークは初出順に従う。
// ターゲット列は決して変更されない。
type MissingValueFiller struct {
	state              *model.StateManager
	numericalPolicy    NumericalPolicy
	fixedLabel         string // 空ならモード補完
	includeNumerical   bool
	includeCategorical bool
	inPlace            bool
	params             ImputationParams
	logger             log.Logger
}

// FillerOption はMissingValueFillerの設定オプション
type FillerOption func(*MissingValueFiller)

// WithNumericalPolicy は数値列の補完ポリシーを設定する（デフォルト: median）
func WithNumericalPolicy(policy NumericalPolicy) FillerOption {
	return func(f *MissingValueFiller) { f.numericalPolicy = policy }
}

// WithCategoricalFill はカテゴリ列を固定ラベルで補完する。
// ラベルが列の語彙に含まれない場合は先に追加される。
func WithCategoricalFill(label string) FillerOption {
	return func(f *MissingValueFiller) { f.fixedLabel = label }
}

// WithoutNumerical は数値列の補完を無効にする
func WithoutNumerical() FillerOption {
	return func(f *MissingValueFiller) { f.includeNumerical = false }
}

// WithoutCategorical はカテゴリ列の補完を無効にする
func WithoutCategorical() FillerOption {
	return func(f *MissingValueFiller) { f.includeCategorical = false }
}

// WithFillerInPlace は入力テーブルを直接変更するかどうかを設定する
func WithFillerInPlace(inPlace bool) FillerOption {
	return func(f *MissingValueFiller) { f.inPlace = inPlace }
}

// NewMissingValueFiller は新しいMissingValueFillerを作成する
//
// 使用例:
//
//	filler := preprocessing.NewMissingValueFiller(
//	    preprocessing.WithNumericalPolicy(preprocessing.NumericalMedian),
//	)
//	train, err := filler.FitTransform(trainTable)
//	test, err := preprocessing.NewMissingValueFillerFromParams(filler.Params()).Transform(testTable)
func NewMissingValueFiller(opts ...FillerOption) *MissingValueFiller {
	f := &MissingValueFiller{
		state:              model.NewStateManager(),
		numericalPolicy:    NumericalMedian,
		includeNumerical:   true,
		includeCategorical: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = loggerFor("MissingValueFiller")
	return f
}

// NewMissingValueFillerFromParams は既存のImputationParamsを再生するFillerを作成する。
// 返される変換器は学習済み状態であり、Transformを直接呼び出せる。
func NewMissingValueFillerFromParams(params ImputationParams, opts ...FillerOption) *MissingValueFiller {
	f := NewMissingValueFiller(opts...)
	f.params = params.clone()
	f.state.SetFitted()
	return f
}

// Fit は学習用テーブルから補完値を計算する。
// 補完値はこのテーブルからのみ計算され、Transformで再計算されることはない。
func (f *MissingValueFiller) Fit(t *table.Table) error {
	const op = "MissingValueFiller.Fit"

	if f.numericalPolicy != NumericalMedian && f.numericalPolicy != NumericalMean {
		return errors.NewConfigurationError(op, "numericalPolicy",
			"must be 'median' or 'mean', got '"+string(f.numericalPolicy)+"'")
	}

	numCols := t.FloatColumns(true)
	catCols := t.CategoryColumns(true)
	candidates := 0
	if f.includeNumerical {
		candidates += len(numCols)
	}
	if f.includeCategorical {
		candidates += len(catCols)
	}
	if candidates == 0 {
		errors.Warn(errors.NewEmptyResultWarning(op, "feature"))
	}

	params := ImputationParams{
		Numerical:   make(map[string]float64),
		Categorical: make(map[string]string),
	}

	if f.includeNumerical {
		for _, col := range numCols {
			valid := col.ValidFloats()
			if len(valid) == 0 {
				continue
			}
			switch f.numericalPolicy {
			case NumericalMean:
				params.Numerical[col.Name()] = stat.Mean(valid, nil)
			default:
				params.Numerical[col.Name()] = median(valid)
			}
		}
	}

	if f.includeCategorical {
		for _, col := range catCols {
			if f.fixedLabel != table.MissingLabel {
				params.Categorical[col.Name()] = f.fixedLabel
				continue
			}
			// 最頻値: タイブレークは初出順
			counts := col.ValueCounts()
			best := -1
			for _, vc := range counts {
				if vc.Count > best {
					best = vc.Count
					params.Categorical[col.Name()] = vc.Label
				}
			}
		}
	}

	f.params = params
	f.state.SetFitted()
	f.state.SetDimensions(t.NumColumns(), t.NumRows())
	f.logger.Info("imputation params fitted",
		log.OperationKey, log.OperationFit,
		log.NumericalKey, len(params.Numerical),
		log.CategoricalKey, len(params.Categorical),
	)
	return nil
}

// Transform は学習済みの補完値のみを使って欠損セルを埋める
func (f *MissingValueFiller) Transform(t *table.Table) (*table.Table, error) {
	if !f.state.IsFitted() {
		return nil, errors.NewNotFittedError("MissingValueFiller", "Transform")
	}

	out := t
	if !f.inPlace {
		out = t.Clone()
	}

	filled := 0
	if f.includeNumerical {
		for _, col := range out.FloatColumns(true) {
			fill, ok := f.params.Numerical[col.Name()]
			if !ok {
				continue
			}
			for i := 0; i < col.Len(); i++ {
				if col.IsMissing(i) {
					col.SetFloat(i, fill)
					filled++
				}
			}
		}
	}
	if f.includeCategorical {
		for _, col := range out.CategoryColumns(true) {
			fill, ok := f.params.Categorical[col.Name()]
			if !ok {
				continue
			}
			for i := 0; i < col.Len(); i++ {
				if col.IsMissing(i) {
					col.SetLabel(i, fill)
					filled++
				}
			}
		}
	}

	f.logger.Debug("missing cells filled",
		log.OperationKey, log.OperationTransform,
		log.MissingCellsKey, filled,
	)
	return out, nil
}

// FitTransform は渡されたテーブルから補完値を計算し、同じテーブルを補完する
func (f *MissingValueFiller) FitTransform(t *table.Table) (*table.Table, error) {
	if err := f.Fit(t); err != nil {
		return nil, err
	}
	return f.Transform(t)
}

// Params は学習済みImputationParamsのコピーを返す
func (f *MissingValueFiller) Params() ImputationParams {
	return f.params.clone()
}
