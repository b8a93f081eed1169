// Package table はtabprepの中核となるインメモリ表形式データ構造を提供します。
//
// Tableは名前付きの型付き列の順序付き集合で、すべての列は同じ長さを持ちます。
// 列の順序は下流の利用者にとって意味を持ち、正規の並び
// [数値特徴量][カテゴリ特徴量][ターゲット] に従う必要があります。
package table

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

// Table は名前付き列の順序付き集合
type Table struct {
	columns []*Column
	index   map[string]int
}

// New は与えられた列からテーブルを作成する。
// すべての列は同じ長さでなければならず、列名は一意でなければならない。
func New(cols ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	for _, col := range cols {
		if err := t.Append(col); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NumRows は行数を返す
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// NumColumns は列数を返す
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Column は名前で列を取得する
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrColumnNotFound, "column '%s'", name)
	}
	return t.columns[i], nil
}

// ColumnAt は位置で列を取得する
func (t *Table) ColumnAt(i int) *Column {
	return t.columns[i]
}

// Columns はテーブル順の列スライスを返す
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Names はテーブル順の列名を返す
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}

// Has は列が存在するかどうかを返す
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Append は列をテーブルの末尾に追加する
func (t *Table) Append(col *Column) error {
	if _, ok := t.index[col.name]; ok {
		return errors.NewValueError("table.Append", "duplicate column name '"+col.name+"'")
	}
	if len(t.columns) > 0 && col.Len() != t.NumRows() {
		return errors.NewDimensionError("table.Append", t.NumRows(), col.Len(), 0)
	}
	t.index[col.name] = len(t.columns)
	t.columns = append(t.columns, col)
	return nil
}

// Replace は同名の既存列を位置を保ったまま置き換える
func (t *Table) Replace(col *Column) error {
	i, ok := t.index[col.name]
	if !ok {
		return errors.Wrapf(errors.ErrColumnNotFound, "column '%s'", col.name)
	}
	if len(t.columns) > 1 && col.Len() != t.NumRows() {
		return errors.NewDimensionError("table.Replace", t.NumRows(), col.Len(), 0)
	}
	t.columns[i] = col
	return nil
}

// Drop は列をテーブルから取り除く
func (t *Table) Drop(name string) error {
	i, ok := t.index[name]
	if !ok {
		return errors.Wrapf(errors.ErrColumnNotFound, "column '%s'", name)
	}
	t.columns = append(t.columns[:i], t.columns[i+1:]...)
	delete(t.index, name)
	for j := i; j < len(t.columns); j++ {
		t.index[t.columns[j].name] = j
	}
	return nil
}

// Reorder は列を与えられた名前の順に並べ替える。
// namesは既存の列名の置換（完全な並び替え）でなければならない。
func (t *Table) Reorder(names []string) error {
	if len(names) != len(t.columns) {
		return errors.NewDimensionError("table.Reorder", len(t.columns), len(names), 1)
	}
	reordered := make([]*Column, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return errors.NewValueError("table.Reorder", "duplicate column name '"+name+"'")
		}
		seen[name] = struct{}{}
		i, ok := t.index[name]
		if !ok {
			return errors.Wrapf(errors.ErrColumnNotFound, "column '%s'", name)
		}
		reordered = append(reordered, t.columns[i])
	}
	t.columns = reordered
	for i, c := range t.columns {
		t.index[c.name] = i
	}
	return nil
}

// Clone はテーブルの深いコピーを返す。
// 変換はデフォルトで呼び出し元のデータをエイリアスせず、このコピーに対して動作する。
func (t *Table) Clone() *Table {
	clone := &Table{
		columns: make([]*Column, len(t.columns)),
		index:   make(map[string]int, len(t.index)),
	}
	for i, c := range t.columns {
		clone.columns[i] = c.Clone()
		clone.index[c.name] = i
	}
	return clone
}

// FloatColumns は数値列をテーブル順で返す。
// excludeTargetがtrueの場合、ターゲット列は除外される。
func (t *Table) FloatColumns(excludeTarget bool) []*Column {
	out := make([]*Column, 0)
	for _, c := range t.columns {
		if c.dtype != Float {
			continue
		}
		if excludeTarget && c.role == RoleTarget {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CategoryColumns はカテゴリ列をテーブル順で返す。
// excludeTargetがtrueの場合、ターゲット列は除外される。
func (t *Table) CategoryColumns(excludeTarget bool) []*Column {
	out := make([]*Column, 0)
	for _, c := range t.columns {
		if c.dtype != Category {
			continue
		}
		if excludeTarget && c.role == RoleTarget {
			continue
		}
		out = append(out, c)
	}
	return out
}

// TargetNames はターゲット列の名前をテーブル順で返す
func (t *Table) TargetNames() []string {
	out := make([]string, 0)
	for _, c := range t.columns {
		if c.role == RoleTarget {
			out = append(out, c.name)
		}
	}
	return out
}

// MissingStat は列ごとの欠損統計
type MissingStat struct {
	Column string
	Count  int
	Ratio  float64
}

// MissingReport は欠損値を含む列の欠損率レポートを欠損数の昇順で返す。
// 欠損のない列は含まれない。
func (t *Table) MissingReport() []MissingStat {
	rows := t.NumRows()
	if rows == 0 {
		return nil
	}
	stats := make([]MissingStat, 0)
	for _, c := range t.columns {
		n := c.MissingCount()
		if n > 0 {
			stats = append(stats, MissingStat{
				Column: c.name,
				Count:  n,
				Ratio:  float64(n) / float64(rows),
			})
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count < stats[j].Count
	})
	return stats
}

// Matrix は指定された列（省略時は全列）をgonumの密行列に変換する。
// 数値列はそのまま、カテゴリ列はラベルを数値として解釈する
// （ダミー指標列の "0"/"1" など）。タイムスタンプ列は変換できない。
func (t *Table) Matrix(names ...string) (*mat.Dense, error) {
	cols := t.columns
	if len(names) > 0 {
		cols = make([]*Column, 0, len(names))
		for _, name := range names {
			c, err := t.Column(name)
			if err != nil {
				return nil, err
			}
			cols = append(cols, c)
		}
	}
	rows := t.NumRows()
	if rows == 0 || len(cols) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "table.Matrix")
	}

	m := mat.NewDense(rows, len(cols), nil)
	for j, c := range cols {
		switch c.dtype {
		case Float:
			for i := 0; i < rows; i++ {
				m.Set(i, j, c.Float(i))
			}
		case Category:
			for i := 0; i < rows; i++ {
				if c.IsMissing(i) {
					m.Set(i, j, math.NaN())
					continue
				}
				v, err := strconv.ParseFloat(c.Label(i), 64)
				if err != nil {
					return nil, errors.NewTypeMismatchError("table.Matrix", c.name, "numeric labels", "category")
				}
				m.Set(i, j, v)
			}
		default:
			return nil, errors.NewTypeMismatchError("table.Matrix", c.name, "float32 or category", c.dtype.String())
		}
	}
	return m, nil
}
