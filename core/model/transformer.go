package model

import "github.com/YuminosukeSato/tabprep/core/table"

// TableTransformer はテーブル変換のインターフェース。
// Fitは参照テーブルからパラメータを捕捉し、Transformは捕捉済みのパラメータのみを
// 使って別のテーブルを変換する。Transformは変換対象のテーブル自身の統計を
// 決して観測してはならない。
type TableTransformer interface {
	// Fit は変換に必要なパラメータを参照テーブルから学習する
	Fit(t *table.Table) error

	// Transform は学習済みパラメータのみを使ってテーブルを変換する
	Transform(t *table.Table) (*table.Table, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(t *table.Table) (*table.Table, error)
}
