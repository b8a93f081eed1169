package preprocessing

import (
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/tabprep/core/model"
	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
	"github.com/YuminosukeSato/tabprep/pkg/log"
)

// ScalingMethod は数値列のスケーリング手法
type ScalingMethod string

const (
	// MethodStandard は標準化（平均0、標準偏差1）
	MethodStandard ScalingMethod = "std"
	// MethodMinMax は[0,1]へのmin-maxスケーリング
	MethodMinMax ScalingMethod = "minmax"
	// MethodMaxAbs はmin/maxを使った[-1,1]へのスケーリング
	MethodMaxAbs ScalingMethod = "maxabs"
)

// ScaleParams は数値列名からfit時統計の2要素タプルへのマッピング。
// stdでは [mean, std]、minmax/maxabsでは [min, max]。
// fit後は不変であり、applyはこの2つの数値と新しいテーブルの生の値だけの
// 純粋なアフィン変換でなければならない。
type ScaleParams map[string][2]float64

func (p ScaleParams) clone() ScaleParams {
	out := make(ScaleParams, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Scaler は数値列の再スケーリングを行うfit/apply変換器
//
// Fitモード: 各数値列の統計を列自身から計算して記録する。
// Applyモード: 記録済みの統計のみを使って変換する。新しい列から統計を
// 再計算することは決してない。
type Scaler struct {
	state   *model.StateManager
	method  ScalingMethod
	params  ScaleParams
	inPlace bool
	logger  log.Logger
}

// ScalerOption はScalerの設定オプション
type ScalerOption func(*Scaler)

// WithScalerInPlace は入力テーブルを直接変更するかどうかを設定する
func WithScalerInPlace(inPlace bool) ScalerOption {
	return func(s *Scaler) { s.inPlace = inPlace }
}

// NewScaler は新しいScalerを作成する
//
// パラメータ:
//   - method: スケーリング手法（std, minmax, maxabs のいずれか）
//
// 使用例:
//
//	scaler := preprocessing.NewScaler(preprocessing.MethodStandard)
//	train, err := scaler.FitTransform(trainTable)
//	test, err := preprocessing.NewScalerFromParams(preprocessing.MethodStandard, scaler.Params()).Transform(testTable)
func NewScaler(method ScalingMethod, opts ...ScalerOption) *Scaler {
	s := &Scaler{
		state:  model.NewStateManager(),
		method: method,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = loggerFor("Scaler")
	return s
}

// NewScalerFromParams は既存のScaleParamsを再生するScalerを作成する。
// 返される変換器は学習済み状態であり、Transformを直接呼び出せる。
func NewScalerFromParams(method ScalingMethod, params ScaleParams, opts ...ScalerOption) *Scaler {
	s := NewScaler(method, opts...)
	s.params = params.clone()
	s.state.SetFitted()
	return s
}

func (s *Scaler) validateMethod(op string) error {
	switch s.method {
	case MethodStandard, MethodMinMax, MethodMaxAbs:
		return nil
	default:
		return errors.NewConfigurationError(op, "method",
			"unknown method '"+string(s.method)+"'")
	}
}

// Fit は学習用テーブルから各数値列の統計を計算して記録する
func (s *Scaler) Fit(t *table.Table) error {
	const op = "Scaler.Fit"

	if err := s.validateMethod(op); err != nil {
		return err
	}

	cols := t.FloatColumns(true)
	if len(cols) == 0 {
		errors.Warn(errors.NewEmptyResultWarning(op, "numerical"))
		s.params = ScaleParams{}
		s.state.SetFitted()
		return nil
	}

	params := make(ScaleParams, len(cols))
	for _, col := range cols {
		valid := col.ValidFloats()
		if len(valid) == 0 {
			continue
		}
		switch s.method {
		case MethodStandard:
			mean := stat.Mean(valid, nil)
			std := 0.0
			if len(valid) > 1 {
				std = stat.StdDev(valid, nil)
			}
			params[col.Name()] = [2]float64{mean, std}
		default:
			min, max := valid[0], valid[0]
			for _, v := range valid[1:] {
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
			params[col.Name()] = [2]float64{min, max}
		}
	}

	s.params = params
	s.state.SetFitted()
	s.state.SetDimensions(len(cols), t.NumRows())
	s.logger.Info("scale params fitted",
		log.OperationKey, log.OperationFit,
		log.MethodKey, string(s.method),
		log.NumericalKey, len(params),
	)
	return nil
}

// Transform は記録済みの統計のみを使って数値列をスケーリングする。
// 統計を新しいテーブルから再計算することは決してない。
func (s *Scaler) Transform(t *table.Table) (*table.Table, error) {
	const op = "Scaler.Transform"

	if err := s.validateMethod(op); err != nil {
		return nil, err
	}
	if !s.state.IsFitted() {
		return nil, errors.NewNotFittedError("Scaler", "Transform")
	}

	out := t
	if !s.inPlace {
		out = t.Clone()
	}

	for _, col := range out.FloatColumns(true) {
		p, ok := s.params[col.Name()]
		if !ok {
			continue
		}
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				continue
			}
			col.SetFloat(i, s.scale(col.Float(i), p))
		}
	}

	s.logger.Debug("table scaled",
		log.OperationKey, log.OperationTransform,
		log.MethodKey, string(s.method),
	)
	return out, nil
}

// FitTransform は学習用テーブルで統計を記録し、同じテーブルを変換する
func (s *Scaler) FitTransform(t *table.Table) (*table.Table, error) {
	if err := s.Fit(t); err != nil {
		return nil, err
	}
	return s.Transform(t)
}

// InverseTransform はスケーリング済みのテーブルを元のスケールに戻す
func (s *Scaler) InverseTransform(t *table.Table) (*table.Table, error) {
	const op = "Scaler.InverseTransform"

	if err := s.validateMethod(op); err != nil {
		return nil, err
	}
	if !s.state.IsFitted() {
		return nil, errors.NewNotFittedError("Scaler", "InverseTransform")
	}

	out := t
	if !s.inPlace {
		out = t.Clone()
	}

	for _, col := range out.FloatColumns(true) {
		p, ok := s.params[col.Name()]
		if !ok {
			continue
		}
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				continue
			}
			col.SetFloat(i, s.unscale(col.Float(i), p))
		}
	}
	return out, nil
}

// scale は記録済み統計の純粋なアフィン変換として1セルをスケーリングする
func (s *Scaler) scale(x float64, p [2]float64) float64 {
	switch s.method {
	case MethodStandard:
		return (x - p[0]) / safeDenom(p[1])
	case MethodMinMax:
		return (x - p[0]) / safeDenom(p[1]-p[0])
	default: // MethodMaxAbs
		return 2*(x-p[0])/safeDenom(p[1]-p[0]) - 1
	}
}

// unscale はscaleの逆アフィン変換
func (s *Scaler) unscale(x float64, p [2]float64) float64 {
	switch s.method {
	case MethodStandard:
		return x*safeDenom(p[1]) + p[0]
	case MethodMinMax:
		return x*safeDenom(p[1]-p[0]) + p[0]
	default: // MethodMaxAbs
		return 0.5 * (x*safeDenom(p[1]-p[0]) + p[1] + p[0])
	}
}

// Params は学習済みScaleParamsのコピーを返す
func (s *Scaler) Params() ScaleParams {
	return s.params.clone()
}

// Method はスケーリング手法を返す
func (s *Scaler) Method() ScalingMethod {
	return s.method
}
