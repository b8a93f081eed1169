package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

// logLossEps は対数損失の確率クリッピング下限
const logLossEps = 1e-15

// Accuracy は正解率を計算する。ラベルは厳密一致で比較される。
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validatePair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// LogLoss は二値分類の対数損失を計算する。
// yTrueは0/1のラベル、yPredは陽性クラスの予測確率。
// 確率は[eps, 1-eps]にクリップされ、log(0)を避ける。
func LogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validatePair("LogLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		label := yTrue.AtVec(i)
		if label != 0 && label != 1 {
			return 0, errors.NewValueError("LogLoss", "labels must be binary (0 or 1)")
		}
		p := yPred.AtVec(i)
		if p < logLossEps {
			p = logLossEps
		}
		if p > 1-logLossEps {
			p = 1 - logLossEps
		}
		sum += label*math.Log(p) + (1-label)*math.Log(1-p)
	}
	return -sum / float64(n), nil
}

// AUC はROC曲線下面積を計算する。
// yTrueは0/1のラベル、yPredはスコア（大きいほど陽性）。
// 同点スコアには中央順位（midrank）を使い、片方のクラスしか存在しない場合は
// 未定義のため0.5を返す。
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validatePair("AUC", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	nPos := 0
	for i := 0; i < n; i++ {
		label := yTrue.AtVec(i)
		if label != 0 && label != 1 {
			return 0, errors.NewValueError("AUC", "labels must be binary (0 or 1)")
		}
		if label == 1 {
			nPos++
		}
	}
	nNeg := n - nPos
	if nPos == 0 || nNeg == 0 {
		return 0.5, nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return yPred.AtVec(order[a]) < yPred.AtVec(order[b])
	})

	// 同点グループごとに中央順位を割り当て、陽性の順位和を取る
	var posRankSum float64
	i := 0
	for i < n {
		j := i
		for j < n && yPred.AtVec(order[j]) == yPred.AtVec(order[i]) {
			j++
		}
		midrank := float64(i+j+1) / 2 // 1始まりの順位の平均
		for k := i; k < j; k++ {
			if yTrue.AtVec(order[k]) == 1 {
				posRankSum += midrank
			}
		}
		i = j
	}

	auc := (posRankSum - float64(nPos)*float64(nPos+1)/2) / (float64(nPos) * float64(nNeg))
	return auc, nil
}

// AUCMatrix は行列形式の入力（最初の列を使用）に対してAUCを計算する
func AUCMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	trueVec, err := FirstColumn(yTrue)
	if err != nil {
		return 0, err
	}
	predVec, err := FirstColumn(yPred)
	if err != nil {
		return 0, err
	}
	return AUC(trueVec, predVec)
}
