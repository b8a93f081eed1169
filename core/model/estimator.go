package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Regressor は回帰モデルのインターフェース。
// ベンチマークハーネスが外部コラボレータとして消費する。
type Regressor interface {
	Fitter
	Predictor
}

// Classifier は分類モデルのインターフェース。
// PredictProba はクラスごとの確率推定値を返す（行ごとに1クラス1列）。
type Classifier interface {
	Fitter
	Predictor

	// PredictProba はクラスごとの確率推定値を返す
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}
