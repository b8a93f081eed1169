package preprocessing

import (
	"github.com/YuminosukeSato/tabprep/core/model"
	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
	"github.com/YuminosukeSato/tabprep/pkg/log"
)

// CategoryVocabulary はカテゴリ列名から保持ラベルの順序付き集合へのマッピング。
// 一度fitされたら不変であり、語彙に含まれないラベルはapply時に欠損へ写像される。
type CategoryVocabulary map[string][]string

// clone は語彙の深いコピーを返す
func (v CategoryVocabulary) clone() CategoryVocabulary {
	out := make(CategoryVocabulary, len(v))
	for name, labels := range v {
		copied := make([]string, len(labels))
		copy(copied, labels)
		out[name] = copied
	}
	return out
}

// CategoryLeveler は低頻度カテゴリを欠損に統合する変換器。
//
// Fitモード: ターゲットを除く各カテゴリ列について値の出現回数を計算し、
// 頻度が ratio × 行数 を下回るラベルを欠損へ写像する。残ったラベル集合が
// その列の語彙となる。閾値比較は厳密な `<` を使う。出現回数が閾値と
// ちょうど等しいカテゴリは保持される。
//
// Applyモード: 新しいテーブル自身の頻度を一切観測せず、各値を与えられた
// 語彙へ強制する。語彙外の値は欠損となる。
type CategoryLeveler struct {
	state   *model.StateManager
	ratio   float64
	inPlace bool
	vocab   CategoryVocabulary
	logger  log.Logger
}

// LevelerOption はCategoryLevelerの設定オプション
type LevelerOption func(*CategoryLeveler)

// WithRatio は低頻度判定の比率閾値を設定する（デフォルト: 0.01）
func WithRatio(ratio float64) LevelerOption {
	return func(l *CategoryLeveler) { l.ratio = ratio }
}

// WithLevelerInPlace は入力テーブルを直接変更するかどうかを設定する
func WithLevelerInPlace(inPlace bool) LevelerOption {
	return func(l *CategoryLeveler) { l.inPlace = inPlace }
}

// NewCategoryLeveler は新しいCategoryLevelerを作成する
//
// 使用例:
//
//	leveler := preprocessing.NewCategoryLeveler(preprocessing.WithRatio(0.01))
//	train, err := leveler.FitTransform(trainTable)
//	test, err := preprocessing.NewCategoryLevelerFromVocabulary(leveler.Vocabulary()).Transform(testTable)
func NewCategoryLeveler(opts ...LevelerOption) *CategoryLeveler {
	l := &CategoryLeveler{
		state: model.NewStateManager(),
		ratio: 0.01,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = loggerFor("CategoryLeveler")
	return l
}

// NewCategoryLevelerFromVocabulary は既存の語彙を再生するCategoryLevelerを作成する。
// 返される変換器は学習済み状態であり、Transformを直接呼び出せる。
func NewCategoryLevelerFromVocabulary(vocab CategoryVocabulary, opts ...LevelerOption) *CategoryLeveler {
	l := NewCategoryLeveler(opts...)
	l.vocab = vocab.clone()
	l.state.SetFitted()
	return l
}

// Fit は学習用テーブルから各カテゴリ列の語彙を計算する
func (l *CategoryLeveler) Fit(t *table.Table) error {
	const op = "CategoryLeveler.Fit"

	cols := t.CategoryColumns(true)
	if len(cols) == 0 {
		errors.Warn(errors.NewEmptyResultWarning(op, "categorical"))
		l.vocab = CategoryVocabulary{}
		l.state.SetFitted()
		return nil
	}

	threshold := l.ratio * float64(t.NumRows())
	vocab := make(CategoryVocabulary, len(cols))
	for _, col := range cols {
		retained := make([]string, 0)
		for _, vc := range col.ValueCounts() {
			// 厳密な<判定: 閾値と等しい頻度は保持
			if float64(vc.Count) < threshold {
				continue
			}
			retained = append(retained, vc.Label)
		}
		vocab[col.Name()] = retained
	}

	l.vocab = vocab
	l.state.SetFitted()
	l.state.SetDimensions(len(cols), t.NumRows())
	l.logger.Info("vocabulary fitted",
		log.OperationKey, log.OperationFit,
		log.CategoricalKey, len(cols),
		log.RowsKey, t.NumRows(),
	)
	return nil
}

// Transform は学習済みの語彙のみを使ってテーブルを変換する。
// 語彙に含まれないラベルは欠損へ写像される。
func (l *CategoryLeveler) Transform(t *table.Table) (*table.Table, error) {
	if !l.state.IsFitted() {
		return nil, errors.NewNotFittedError("CategoryLeveler", "Transform")
	}

	out := t
	if !l.inPlace {
		out = t.Clone()
	}

	collapsed := 0
	for _, col := range out.CategoryColumns(true) {
		labels, ok := l.vocab[col.Name()]
		if !ok {
			continue
		}
		retained := toSet(labels)
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				continue
			}
			if _, keep := retained[col.Label(i)]; !keep {
				col.SetMissing(i)
				collapsed++
			}
		}
	}

	l.logger.Debug("vocabulary applied",
		log.OperationKey, log.OperationTransform,
		log.MissingCellsKey, collapsed,
	)
	return out, nil
}

// FitTransform は学習用テーブルで語彙を計算し、同じテーブルを変換する
func (l *CategoryLeveler) FitTransform(t *table.Table) (*table.Table, error) {
	if err := l.Fit(t); err != nil {
		return nil, err
	}
	return l.Transform(t)
}

// Vocabulary は学習済み語彙のコピーを返す
func (l *CategoryLeveler) Vocabulary() CategoryVocabulary {
	return l.vocab.clone()
}
