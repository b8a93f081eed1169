package preprocessing

import (
	"strconv"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
	"github.com/YuminosukeSato/tabprep/pkg/log"
)

// TypeClassifier は列を数値・カテゴリに分類し、正規の列順を課す変換器。
//
// 数値リスト・カテゴリリストの少なくとも一方が必須。片方だけ与えられた場合、
// もう一方は残りの列すべてとなる。どちらのリストにも含まれずターゲットでもない
// 列は出力から除外される。
//
// 出力テーブルの列順は [数値特徴量][カテゴリ特徴量][ターゲット] となり、
// 数値列は32ビット浮動小数点表現に、カテゴリ列はカテゴリ表現にキャストされる。
type TypeClassifier struct {
	numerical   []string
	categorical []string
	target      []string
	inPlace     bool
	logger      log.Logger
}

// ClassifierOption はTypeClassifierの設定オプション
type ClassifierOption func(*TypeClassifier)

// WithNumerical は数値列名のリストを指定する
func WithNumerical(names ...string) ClassifierOption {
	return func(c *TypeClassifier) { c.numerical = names }
}

// WithCategorical はカテゴリ列名のリストを指定する
func WithCategorical(names ...string) ClassifierOption {
	return func(c *TypeClassifier) { c.categorical = names }
}

// WithTarget はターゲット列名のリストを指定する
func WithTarget(names ...string) ClassifierOption {
	return func(c *TypeClassifier) { c.target = names }
}

// WithClassifierInPlace は入力テーブルを直接変更するかどうかを設定する
func WithClassifierInPlace(inPlace bool) ClassifierOption {
	return func(c *TypeClassifier) { c.inPlace = inPlace }
}

// NewTypeClassifier は新しいTypeClassifierを作成する
//
// 使用例:
//
//	classifier := preprocessing.NewTypeClassifier(
//	    preprocessing.WithNumerical("age", "income"),
//	    preprocessing.WithTarget("label"),
//	)
//	classified, err := classifier.Transform(tbl)
func NewTypeClassifier(opts ...ClassifierOption) *TypeClassifier {
	c := &TypeClassifier{}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = loggerFor("TypeClassifier")
	return c
}

// Transform は列を分類・キャストし、正規順に並べ替えたテーブルを返す
//
// 戻り値:
//   - *table.Table: 分類済みテーブル（in-placeの場合は入力と同一）
//   - error: 数値・カテゴリリストが両方とも空の場合はConfigurationError
func (c *TypeClassifier) Transform(t *table.Table) (*table.Table, error) {
	const op = "TypeClassifier.Transform"

	if len(c.numerical) == 0 && len(c.categorical) == 0 {
		return nil, errors.NewConfigurationError(op, "numerical/categorical",
			"at least one column list must be provided")
	}

	// 片方のリストだけ与えられた場合、もう一方はターゲットを除く残りの列
	numerical := c.numerical
	categorical := c.categorical
	if len(categorical) == 0 {
		categorical = complement(t.Names(), append(append([]string{}, numerical...), c.target...))
	}
	if len(numerical) == 0 {
		numerical = complement(t.Names(), append(append([]string{}, categorical...), c.target...))
	}

	targetSet := toSet(c.target)
	numericalF := exclude(numerical, targetSet)
	categoricalF := exclude(categorical, targetSet)

	out := t
	if !c.inPlace {
		out = t.Clone()
	}

	for _, name := range numerical {
		col, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		casted, err := castToFloat(col)
		if err != nil {
			return nil, err
		}
		if err := out.Replace(casted); err != nil {
			return nil, err
		}
	}
	for _, name := range categorical {
		col, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		casted, err := castToCategory(col)
		if err != nil {
			return nil, err
		}
		if err := out.Replace(casted); err != nil {
			return nil, err
		}
	}

	for _, name := range c.target {
		col, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		col.SetRole(table.RoleTarget)
	}

	// どのリストにも含まれない列を落とし、正規順に並べる
	keep := make([]string, 0, len(numericalF)+len(categoricalF)+len(c.target))
	keep = append(keep, numericalF...)
	keep = append(keep, categoricalF...)
	keep = append(keep, c.target...)
	keepSet := toSet(keep)
	for _, name := range out.Names() {
		if _, ok := keepSet[name]; !ok {
			if err := out.Drop(name); err != nil {
				return nil, err
			}
		}
	}
	if err := out.Reorder(keep); err != nil {
		return nil, err
	}

	c.logger.Info("columns classified",
		log.OperationKey, log.OperationTransform,
		log.NumericalKey, len(numericalF),
		log.CategoricalKey, len(categoricalF),
		log.TargetsKey, len(c.target),
		log.RowsKey, out.NumRows(),
	)
	return out, nil
}

// Fit はステートレスな変換のため何もしない
func (c *TypeClassifier) Fit(t *table.Table) error {
	return nil
}

// FitTransform はTransformと同じ
func (c *TypeClassifier) FitTransform(t *table.Table) (*table.Table, error) {
	return c.Transform(t)
}

// castToFloat は列を32ビット浮動小数点表現にキャストする。
// 実際に表現が変わった場合はDataConversionWarningを発行する。
func castToFloat(col *table.Column) (*table.Column, error) {
	const op = "TypeClassifier.Transform"
	switch col.DType() {
	case table.Float:
		return col, nil
	case table.Category:
		values := make([]float64, col.Len())
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				values[i] = nan()
				continue
			}
			v, err := strconv.ParseFloat(col.Label(i), 64)
			if err != nil {
				return nil, errors.NewTypeMismatchError(op, col.Name(), "numeric labels", "category")
			}
			values[i] = v
		}
		out := table.NewFloatColumn(col.Name(), values)
		out.SetRole(col.Role())
		errors.Warn(errors.NewDataConversionWarning(col.Name(), "category", "float32"))
		return out, nil
	default:
		return nil, errors.NewTypeMismatchError(op, col.Name(), "float32 or category", col.DType().String())
	}
}

// castToCategory は列をカテゴリ表現にキャストする。
// 実際に表現が変わった場合はDataConversionWarningを発行する。
func castToCategory(col *table.Column) (*table.Column, error) {
	const op = "TypeClassifier.Transform"
	switch col.DType() {
	case table.Category:
		return col, nil
	case table.Float:
		labels := make([]string, col.Len())
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				labels[i] = table.MissingLabel
				continue
			}
			labels[i] = strconv.FormatFloat(col.Float(i), 'g', -1, 32)
		}
		out := table.NewCategoryColumn(col.Name(), labels)
		out.SetRole(col.Role())
		errors.Warn(errors.NewDataConversionWarning(col.Name(), "float32", "category"))
		return out, nil
	default:
		return nil, errors.NewTypeMismatchError(op, col.Name(), "category or float32", col.DType().String())
	}
}

func complement(all, listed []string) []string {
	set := toSet(listed)
	out := make([]string, 0, len(all))
	for _, name := range all {
		if _, ok := set[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

func exclude(names []string, set map[string]struct{}) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := set[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
