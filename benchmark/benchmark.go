// Package benchmark は前処理済みテーブルに対する推定器の一括評価を提供します。
//
// 推定器はcore/modelのインターフェースを介したブラックボックスとして扱われ、
// このパッケージ自体は学習アルゴリズムを実装しません。
package benchmark

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tabprep/core/model"
	"github.com/YuminosukeSato/tabprep/metrics"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
	"github.com/YuminosukeSato/tabprep/pkg/log"
)

var globalProvider log.LoggerProvider

// SetLoggerProvider はパッケージ全体のロガープロバイダを設定します。
func SetLoggerProvider(provider log.LoggerProvider) {
	globalProvider = provider
}

func benchLogger() log.Logger {
	if globalProvider == nil {
		globalProvider = log.NewZerologProvider(log.ToLogLevel("info"))
	}
	return globalProvider.GetLoggerWithName("Benchmark")
}

// ClassifierCandidate は評価対象の分類器とその表示名
type ClassifierCandidate struct {
	Name  string
	Model model.Classifier
}

// RegressorCandidate は評価対象の回帰器とその表示名
type RegressorCandidate struct {
	Name  string
	Model model.Regressor
}

// ClassifierResult は1つの分類器の評価結果
type ClassifierResult struct {
	Name       string
	FitSeconds float64
	Accuracy   float64
	LogLoss    float64
	ROCAUC     float64
}

// RegressorResult は1つの回帰器の評価結果
type RegressorResult struct {
	Name       string
	FitSeconds float64
	MSE        float64
	R2         float64
}

// EvaluateClassifiers は候補の分類器を順に学習・評価し、
// 正解率の降順で結果を返す。
//
// 各候補について学習時間を計測し、テストデータに対する正解率・対数損失・
// ROC-AUCを計算する。1つの候補の失敗は全体を中断する。
func EvaluateClassifiers(candidates []ClassifierCandidate, xTrain, yTrain, xTest, yTest mat.Matrix) ([]ClassifierResult, error) {
	const op = "benchmark.EvaluateClassifiers"
	if len(candidates) == 0 {
		return nil, errors.NewValueError(op, "no candidates given")
	}

	logger := benchLogger()
	yTestVec, err := metrics.FirstColumn(yTest)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	results := make([]ClassifierResult, 0, len(candidates))
	for _, c := range candidates {
		start := time.Now()
		if err := c.Model.Fit(xTrain, yTrain); err != nil {
			return nil, errors.Wrapf(err, "%s: failed to fit '%s'", op, c.Name)
		}
		elapsed := time.Since(start).Seconds()

		yPred, err := c.Model.Predict(xTest)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: failed to predict with '%s'", op, c.Name)
		}
		yPredVec, err := metrics.FirstColumn(yPred)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}

		accuracy, err := metrics.Accuracy(yTestVec, yPredVec)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}

		// 陽性クラスの確率は2列目（クラス1）、1列しかない場合はその列
		proba, err := c.Model.PredictProba(xTest)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: failed to predict probabilities with '%s'", op, c.Name)
		}
		posProba, err := positiveProba(proba)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}
		logLoss, err := metrics.LogLoss(yTestVec, posProba)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}
		rocAUC, err := metrics.AUC(yTestVec, posProba)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}

		logger.Info("classifier evaluated",
			log.EstimatorKey, c.Name,
			log.DurationSecondsKey, elapsed,
			log.AccuracyKey, accuracy,
			log.LossKey, logLoss,
			log.ROCAUCKey, rocAUC,
		)
		results = append(results, ClassifierResult{
			Name:       c.Name,
			FitSeconds: elapsed,
			Accuracy:   accuracy,
			LogLoss:    logLoss,
			ROCAUC:     rocAUC,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Accuracy > results[j].Accuracy
	})
	return results, nil
}

// EvaluateRegressors は候補の回帰器を順に学習・評価し、
// MSEの昇順で結果を返す。
func EvaluateRegressors(candidates []RegressorCandidate, xTrain, yTrain, xTest, yTest mat.Matrix) ([]RegressorResult, error) {
	const op = "benchmark.EvaluateRegressors"
	if len(candidates) == 0 {
		return nil, errors.NewValueError(op, "no candidates given")
	}

	logger := benchLogger()
	yTestVec, err := metrics.FirstColumn(yTest)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	results := make([]RegressorResult, 0, len(candidates))
	for _, c := range candidates {
		start := time.Now()
		if err := c.Model.Fit(xTrain, yTrain); err != nil {
			return nil, errors.Wrapf(err, "%s: failed to fit '%s'", op, c.Name)
		}
		elapsed := time.Since(start).Seconds()

		yPred, err := c.Model.Predict(xTest)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: failed to predict with '%s'", op, c.Name)
		}
		yPredVec, err := metrics.FirstColumn(yPred)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}

		mse, err := metrics.MSE(yTestVec, yPredVec)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}
		r2, err := metrics.R2Score(yTestVec, yPredVec)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}

		logger.Info("regressor evaluated",
			log.EstimatorKey, c.Name,
			log.DurationSecondsKey, elapsed,
			log.LossKey, mse,
			log.R2ScoreKey, r2,
		)
		results = append(results, RegressorResult{
			Name:       c.Name,
			FitSeconds: elapsed,
			MSE:        mse,
			R2:         r2,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MSE < results[j].MSE
	})
	return results, nil
}

// positiveProba は確率行列から陽性クラスの列を取り出す。
// 2列以上の場合は2列目（クラス1）、1列の場合はその列を使う。
func positiveProba(proba mat.Matrix) (*mat.VecDense, error) {
	if proba == nil {
		return nil, errors.NewValueError("benchmark.positiveProba", "nil probability matrix")
	}
	rows, cols := proba.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.NewValueError("benchmark.positiveProba", "empty probability matrix")
	}
	col := 0
	if cols > 1 {
		col = 1
	}
	v := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		v.SetVec(i, proba.At(i, col))
	}
	return v, nil
}
