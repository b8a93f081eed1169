// Package log defines standard attribute keys for tabular preprocessing operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in tabprep. Using these standard keys enables better
// log analysis, monitoring, and debugging of preprocessing workflows.
//
// The keys follow a hierarchical naming convention (e.g., "transform.name",
// "table.rows") to enable structured log analysis and filtering.

package log

// Transform and Operation Context
// These attributes identify the transform and operation being performed.
const (
	// TransformKey identifies the type of preprocessing transform.
	// Examples: "TypeClassifier", "CategoryLeveler", "Scaler", "DummyEncoder"
	TransformKey = "transform.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform", "inverse_transform"
	OperationKey = "transform.operation"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "preprocessing", "pipeline", "benchmark"
	ComponentKey = "component"

	// MethodKey records the configured method of a transform.
	// Examples: "std", "minmax", "maxabs", "median", "mode"
	MethodKey = "transform.method"

	// StepKey identifies a named step inside a pipeline.
	StepKey = "pipeline.step"
)

// Table Shape and Characteristics
// These attributes describe the structure of the table being processed.
const (
	// RowsKey indicates the number of rows in the table.
	RowsKey = "table.rows"

	// ColumnsKey indicates the total number of columns in the table.
	ColumnsKey = "table.columns"

	// NumericalKey indicates the number of numerical feature columns.
	NumericalKey = "table.numerical_features"

	// CategoricalKey indicates the number of categorical feature columns.
	CategoricalKey = "table.categorical_features"

	// TargetsKey indicates the number of target columns.
	TargetsKey = "table.targets"

	// VocabularySizeKey indicates the size of a fitted vocabulary
	// (retained category labels or indicator columns).
	VocabularySizeKey = "transform.vocabulary_size"

	// MissingCellsKey indicates the number of cells blanked or filled by a transform.
	MissingCellsKey = "table.missing_cells"
)

// Performance and Metrics
// These attributes capture timing and evaluation information.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// DurationSecondsKey records the execution time in seconds for longer operations.
	DurationSecondsKey = "perf.duration_seconds"

	// AccuracyKey records model accuracy for evaluation operations.
	AccuracyKey = "metrics.accuracy"

	// LossKey records loss value during training or evaluation.
	LossKey = "metrics.loss"

	// R2ScoreKey records R² coefficient of determination for regression.
	R2ScoreKey = "metrics.r2_score"

	// ROCAUCKey records the area under the ROC curve for binary classification.
	ROCAUCKey = "metrics.roc_auc"

	// EstimatorKey identifies the estimator being benchmarked.
	EstimatorKey = "benchmark.estimator"

	// EpochKey records the epoch number in a training history.
	EpochKey = "training.epoch"
)

// Error and Warning Context
// These attributes provide additional context for error and warning messages.
const (
	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ConfigurationError", "TypeMismatchError", "NotFittedError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by the error logging functions.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard operations
	OperationFit              = "fit"
	OperationTransform        = "transform"
	OperationFitTransform     = "fit_transform"
	OperationInverseTransform = "inverse_transform"
	OperationScore            = "score"
)
