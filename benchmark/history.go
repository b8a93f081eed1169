package benchmark

import "github.com/YuminosukeSato/tabprep/pkg/errors"

// History はエポックごとの学習曲線。
// 反復学習する推定器が記録し、可視化パッケージが消費する。
type History struct {
	Loss    []float64
	ValLoss []float64
	Acc     []float64
	ValAcc  []float64
}

// Record は1エポック分の学習損失と検証損失を追加する
func (h *History) Record(loss, valLoss float64) {
	h.Loss = append(h.Loss, loss)
	h.ValLoss = append(h.ValLoss, valLoss)
}

// RecordWithAccuracy は1エポック分の損失と正解率を追加する
func (h *History) RecordWithAccuracy(loss, valLoss, acc, valAcc float64) {
	h.Record(loss, valLoss)
	h.Acc = append(h.Acc, acc)
	h.ValAcc = append(h.ValAcc, valAcc)
}

// Epochs は記録済みのエポック数を返す
func (h *History) Epochs() int {
	return len(h.Loss)
}

// Final は最終エポックの学習損失と検証損失を返す
func (h *History) Final() (loss, valLoss float64, err error) {
	if len(h.Loss) == 0 {
		return 0, 0, errors.NewValueError("History.Final", "no epochs recorded")
	}
	last := len(h.Loss) - 1
	loss = h.Loss[last]
	valLoss = loss
	if len(h.ValLoss) > last {
		valLoss = h.ValLoss[last]
	}
	return loss, valLoss, nil
}

// BestEpoch は検証損失が最小のエポック番号（0始まり)を返す
func (h *History) BestEpoch() (int, error) {
	if len(h.ValLoss) == 0 {
		return 0, errors.NewValueError("History.BestEpoch", "no validation loss recorded")
	}
	best := 0
	for i, v := range h.ValLoss {
		if v < h.ValLoss[best] {
			best = i
		}
	}
	return best, nil
}
