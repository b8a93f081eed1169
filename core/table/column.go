package table

import (
	"math"
	"time"
)

// DType は列のセマンティック型を表す
type DType int

const (
	// Float は32ビット浮動小数点の数値列（NaN = 欠損）
	Float DType = iota
	// Category は文字列ラベルのカテゴリ列（空ラベル = 欠損）
	Category
	// Time はタイムスタンプ列（ゼロ値 = 欠損）
	Time
)

// String はDTypeの文字列表現を返す
func (d DType) String() string {
	switch d {
	case Float:
		return "float32"
	case Category:
		return "category"
	case Time:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Role は列の役割を表すタグ。列ごとに必ず一つの役割を持つ。
// ターゲット列は他のすべての変換の候補集合から除外される。
type Role int

const (
	// RoleFeature は特徴量列
	RoleFeature Role = iota
	// RoleTarget はターゲット列
	RoleTarget
)

// MissingLabel はカテゴリ列の欠損値を表すセンチネルラベル
const MissingLabel = ""

// ValueCount はカテゴリ列の値とその出現回数のペア。
// 順序は列内の初出順を保持する。
type ValueCount struct {
	Label string
	Count int
}

// Column は名前付きの型付きセル列。
// セルは数値（float32）、カテゴリラベル、またはタイムスタンプのいずれかで、
// 欠損マーカーを持つことができる。
type Column struct {
	name   string
	role   Role
	dtype  DType
	floats []float32
	labels []string
	times  []time.Time
}

// NewFloatColumn は数値列を作成する。値は32ビット浮動小数点表現に変換され、
// NaNが欠損マーカーとして扱われる。
func NewFloatColumn(name string, values []float64) *Column {
	floats := make([]float32, len(values))
	for i, v := range values {
		floats[i] = float32(v)
	}
	return &Column{name: name, dtype: Float, floats: floats}
}

// NewCategoryColumn はカテゴリ列を作成する。空文字列が欠損マーカーとして扱われる。
func NewCategoryColumn(name string, labels []string) *Column {
	copied := make([]string, len(labels))
	copy(copied, labels)
	return &Column{name: name, dtype: Category, labels: copied}
}

// NewTimeColumn はタイムスタンプ列を作成する。ゼロ値が欠損マーカーとして扱われる。
func NewTimeColumn(name string, times []time.Time) *Column {
	copied := make([]time.Time, len(times))
	copy(copied, times)
	return &Column{name: name, dtype: Time, times: copied}
}

// Name は列名を返す
func (c *Column) Name() string { return c.name }

// DType は列の型を返す
func (c *Column) DType() DType { return c.dtype }

// Role は列の役割を返す
func (c *Column) Role() Role { return c.role }

// SetRole は列の役割を設定する
func (c *Column) SetRole(role Role) { c.role = role }

// Len は列のセル数を返す
func (c *Column) Len() int {
	switch c.dtype {
	case Float:
		return len(c.floats)
	case Category:
		return len(c.labels)
	default:
		return len(c.times)
	}
}

// IsMissing はi番目のセルが欠損かどうかを返す
func (c *Column) IsMissing(i int) bool {
	switch c.dtype {
	case Float:
		return math.IsNaN(float64(c.floats[i]))
	case Category:
		return c.labels[i] == MissingLabel
	default:
		return c.times[i].IsZero()
	}
}

// SetMissing はi番目のセルを欠損にする
func (c *Column) SetMissing(i int) {
	switch c.dtype {
	case Float:
		c.floats[i] = float32(math.NaN())
	case Category:
		c.labels[i] = MissingLabel
	default:
		c.times[i] = time.Time{}
	}
}

// Float はi番目の数値セルを返す（欠損時はNaN）
func (c *Column) Float(i int) float64 {
	return float64(c.floats[i])
}

// SetFloat はi番目の数値セルを設定する
func (c *Column) SetFloat(i int, v float64) {
	c.floats[i] = float32(v)
}

// Label はi番目のカテゴリセルを返す（欠損時はMissingLabel）
func (c *Column) Label(i int) string {
	return c.labels[i]
}

// SetLabel はi番目のカテゴリセルを設定する
func (c *Column) SetLabel(i int, label string) {
	c.labels[i] = label
}

// TimeAt はi番目のタイムスタンプセルを返す
func (c *Column) TimeAt(i int) time.Time {
	return c.times[i]
}

// Floats は数値セルのコピーを返す（欠損はNaN）
func (c *Column) Floats() []float64 {
	out := make([]float64, len(c.floats))
	for i, v := range c.floats {
		out[i] = float64(v)
	}
	return out
}

// ValidFloats は欠損を除いた数値セルのコピーを返す
func (c *Column) ValidFloats() []float64 {
	out := make([]float64, 0, len(c.floats))
	for _, v := range c.floats {
		if !math.IsNaN(float64(v)) {
			out = append(out, float64(v))
		}
	}
	return out
}

// Labels はカテゴリセルのコピーを返す
func (c *Column) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Categories は欠損を除いたユニークなラベル集合を初出順で返す
func (c *Column) Categories() []string {
	seen := make(map[string]struct{}, len(c.labels))
	out := make([]string, 0)
	for _, l := range c.labels {
		if l == MissingLabel {
			continue
		}
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}

// ValueCounts は欠損を除いたラベルごとの出現回数を初出順で返す。
// 最頻値のタイブレークはこの初出順に従う。
func (c *Column) ValueCounts() []ValueCount {
	index := make(map[string]int, len(c.labels))
	counts := make([]ValueCount, 0)
	for _, l := range c.labels {
		if l == MissingLabel {
			continue
		}
		if i, ok := index[l]; ok {
			counts[i].Count++
		} else {
			index[l] = len(counts)
			counts = append(counts, ValueCount{Label: l, Count: 1})
		}
	}
	return counts
}

// MissingCount は欠損セルの数を返す
func (c *Column) MissingCount() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			n++
		}
	}
	return n
}

// Clone は列の深いコピーを返す
func (c *Column) Clone() *Column {
	clone := &Column{name: c.name, role: c.role, dtype: c.dtype}
	if c.floats != nil {
		clone.floats = make([]float32, len(c.floats))
		copy(clone.floats, c.floats)
	}
	if c.labels != nil {
		clone.labels = make([]string, len(c.labels))
		copy(clone.labels, c.labels)
	}
	if c.times != nil {
		clone.times = make([]time.Time, len(c.times))
		copy(clone.times, c.times)
	}
	return clone
}
