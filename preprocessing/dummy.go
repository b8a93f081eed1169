package preprocessing

import (
	"github.com/YuminosukeSato/tabprep/core/model"
	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
	"github.com/YuminosukeSato/tabprep/pkg/log"
)

// DummyVocabulary は指標列名の順序付きリスト。
// 各指標名は「列名_ラベル」の形式で、fit時のテーブルの列順とラベルの初出順に
// 従って並ぶ。apply後のテーブルが持つ指標列の集合は、この語彙と完全に一致する。
type DummyVocabulary []string

func (v DummyVocabulary) clone() DummyVocabulary {
	out := make(DummyVocabulary, len(v))
	copy(out, v)
	return out
}

// DummyEncoder はカテゴリ列をone-hotの指標列へ展開する変換器。
//
// Fitモード: ターゲットを除く各カテゴリ列をラベルごとの指標列に展開し、
// 生成された指標名の順序付きリストを語彙として記録する。
//
// Applyモード: 新しいテーブルを展開した後、語彙と照合する。語彙に含まれない
// 指標列は削除され、語彙にあるが生成されなかった指標列は全ゼロで追加される。
// 結果の指標列集合は常にfit時の語彙と一致し、下流の推定器は学習時と同じ
// 列構造を受け取る。
type DummyEncoder struct {
	state     *model.StateManager
	dropFirst bool
	inPlace   bool
	vocab     DummyVocabulary
	logger    log.Logger
}

// DummyOption はDummyEncoderの設定オプション
type DummyOption func(*DummyEncoder)

// WithDropFirst は各カテゴリ列の最初のラベルの指標を省略する。
// 線形モデルでの多重共線性を避けたい場合に使う。
func WithDropFirst(drop bool) DummyOption {
	return func(e *DummyEncoder) { e.dropFirst = drop }
}

// WithDummyInPlace は入力テーブルを直接変更するかどうかを設定する
func WithDummyInPlace(inPlace bool) DummyOption {
	return func(e *DummyEncoder) { e.inPlace = inPlace }
}

// NewDummyEncoder は新しいDummyEncoderを作成する
//
// 使用例:
//
//	encoder := preprocessing.NewDummyEncoder()
//	train, err := encoder.FitTransform(trainTable)
//	test, err := preprocessing.NewDummyEncoderFromVocabulary(encoder.Vocabulary()).Transform(testTable)
func NewDummyEncoder(opts ...DummyOption) *DummyEncoder {
	e := &DummyEncoder{
		state: model.NewStateManager(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = loggerFor("DummyEncoder")
	return e
}

// NewDummyEncoderFromVocabulary は既存の語彙を再生するDummyEncoderを作成する。
// 返される変換器は学習済み状態であり、Transformを直接呼び出せる。
func NewDummyEncoderFromVocabulary(vocab DummyVocabulary, opts ...DummyOption) *DummyEncoder {
	e := NewDummyEncoder(opts...)
	e.vocab = vocab.clone()
	e.state.SetFitted()
	return e
}

// Fit は学習用テーブルから指標列の語彙を記録する。
// 指標名は列順とラベルの初出順に従って並ぶ。
func (e *DummyEncoder) Fit(t *table.Table) error {
	const op = "DummyEncoder.Fit"

	cols := t.CategoryColumns(true)
	if len(cols) == 0 {
		errors.Warn(errors.NewEmptyResultWarning(op, "categorical"))
		e.vocab = DummyVocabulary{}
		e.state.SetFitted()
		return nil
	}

	vocab := make(DummyVocabulary, 0)
	for _, col := range cols {
		labels := col.Categories()
		if e.dropFirst && len(labels) > 0 {
			labels = labels[1:]
		}
		for _, label := range labels {
			vocab = append(vocab, indicatorName(col.Name(), label))
		}
	}

	e.vocab = vocab
	e.state.SetFitted()
	e.state.SetDimensions(len(cols), t.NumRows())
	e.logger.Info("dummy vocabulary fitted",
		log.OperationKey, log.OperationFit,
		log.CategoricalKey, len(cols),
		log.VocabularySizeKey, len(vocab),
	)
	return nil
}

// Transform はカテゴリ列を指標列へ展開し、語彙と照合する。
//
// 語彙に含まれない指標は削除され、生成されなかった語彙の指標は全ゼロで
// 追加される。元のカテゴリ列は削除され、指標列は語彙の順でテーブル末尾に
// 追加される。欠損セルの行はその列のすべての指標が0になる。
func (e *DummyEncoder) Transform(t *table.Table) (*table.Table, error) {
	if !e.state.IsFitted() {
		return nil, errors.NewNotFittedError("DummyEncoder", "Transform")
	}

	out := t
	if !e.inPlace {
		out = t.Clone()
	}

	rows := out.NumRows()
	candidates := make(map[string][]string)
	sources := out.CategoryColumns(true)
	for _, col := range sources {
		for _, label := range col.Categories() {
			values := make([]string, rows)
			for i := range values {
				values[i] = "0"
			}
			candidates[indicatorName(col.Name(), label)] = values
		}
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				continue
			}
			name := indicatorName(col.Name(), col.Label(i))
			candidates[name][i] = "1"
		}
	}

	for _, col := range sources {
		if err := out.Drop(col.Name()); err != nil {
			return nil, errors.Wrap(err, "DummyEncoder.Transform")
		}
	}

	added := 0
	for _, name := range e.vocab {
		values, ok := candidates[name]
		if !ok {
			// fit時には存在したがこのテーブルでは観測されなかった指標
			values = make([]string, rows)
			for i := range values {
				values[i] = "0"
			}
			added++
		}
		if err := out.Append(table.NewCategoryColumn(name, values)); err != nil {
			return nil, errors.Wrap(err, "DummyEncoder.Transform")
		}
	}

	e.logger.Debug("dummies reconciled",
		log.OperationKey, log.OperationTransform,
		log.VocabularySizeKey, len(e.vocab),
		log.ColumnsKey, added,
	)
	return out, nil
}

// FitTransform は学習用テーブルで語彙を記録し、同じテーブルを展開する
func (e *DummyEncoder) FitTransform(t *table.Table) (*table.Table, error) {
	if err := e.Fit(t); err != nil {
		return nil, err
	}
	return e.Transform(t)
}

// Vocabulary は学習済み語彙のコピーを返す
func (e *DummyEncoder) Vocabulary() DummyVocabulary {
	return e.vocab.clone()
}

func indicatorName(column, label string) string {
	return column + "_" + label
}
