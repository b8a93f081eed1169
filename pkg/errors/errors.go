// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// pandasやscikit-learnの警告・例外システムにインスパイアされており、構造化されたエラー情報を提供します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("tabprep-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// これにより、EmptyResultWarningなどの回復可能な警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
// 警告は呼び出しを中断しません。変換はno-opとして処理を継続します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	// zerologが設定されている場合は優先的に使用
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	// フォールバック: 従来のハンドラ
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	回復可能な警告型
//
// ===========================================================================

// EmptyResultWarning は変換対象のロールに一致する列が見つからなかった場合に発生する警告です。
// この警告は致命的ではなく、変換はno-opとなりパイプラインの処理は継続されます。
type EmptyResultWarning struct {
	Op   string
	Role string
}

func (w *EmptyResultWarning) Error() string {
	return fmt.Sprintf("%s: no %s columns found, transform is a no-op", w.Op, w.Role)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *EmptyResultWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Str("role", w.Role).
		Str("type", "EmptyResultWarning")
}

// NewEmptyResultWarning は新しいEmptyResultWarningを作成します。
func NewEmptyResultWarning(op, role string) *EmptyResultWarning {
	return &EmptyResultWarning{Op: op, Role: role}
}

// DataConversionWarning はデータの型が暗黙的に変換された場合に発生する警告です。
type DataConversionWarning struct {
	Column   string
	FromType string
	ToType   string
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("column '%s' converted from %s to %s", w.Column, w.FromType, w.ToType)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DataConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("column", w.Column).
		Str("from_type", w.FromType).
		Str("to_type", w.ToType).
		Str("type", "DataConversionWarning")
}

// NewDataConversionWarning は新しいDataConversionWarningを作成します。
func NewDataConversionWarning(column, from, to string) *DataConversionWarning {
	return &DataConversionWarning{Column: column, FromType: from, ToType: to}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// ConfigurationError は引数の組み合わせが不正または必須引数が欠けている場合のエラーです。
// 例えば、数値列リストもカテゴリ列リストも与えられなかった場合や、
// 未知のスケーリング手法名が指定された場合など。このエラーは呼び出しを即座に中断します。
type ConfigurationError struct {
	Op     string
	Param  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tabprep: %s: invalid configuration for '%s': %s", e.Op, e.Param, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("param", e.Param).
		Str("reason", e.Reason).
		Str("type", "ConfigurationError")
}

// NewConfigurationError は新しいConfigurationErrorを作成し、スタックトレースを付与します。
func NewConfigurationError(op, param, reason string) error {
	err := &ConfigurationError{Op: op, Param: param, Reason: reason}
	return errors.WithStack(err)
}

// TypeMismatchError は入力列が期待されるセマンティック型でない場合のエラーです。
// 例えば、タイムスタンプ展開に非タイムスタンプ列が渡された場合など。
type TypeMismatchError struct {
	Op       string
	Column   string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("tabprep: %s: column '%s' must be %s, got %s", e.Op, e.Column, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *TypeMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Str("expected", e.Expected).
		Str("got", e.Got).
		Str("type", "TypeMismatchError")
}

// NewTypeMismatchError は新しいTypeMismatchErrorを作成し、スタックトレースを付与します。
func NewTypeMismatchError(op, column, expected, got string) error {
	err := &TypeMismatchError{Op: op, Column: column, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// NotFittedError は変換器が未学習の状態で `Transform` を呼び出した場合のエラーです。
type NotFittedError struct {
	TransformerName string
	Method          string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("tabprep: %s: this transformer is not fitted yet. Call Fit() before using %s()", e.TransformerName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("transformer_name", e.TransformerName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(transformerName, method string) error {
	err := &NotFittedError{TransformerName: transformerName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("tabprep: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("tabprep: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のテーブルが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrColumnNotFound は指定された列名がテーブルに存在しない場合のエラーです。
	ErrColumnNotFound = New("column not found")
)
