// Package tabprep provides tabular-data preprocessing utilities for
// machine learning pipelines in Go.
//
// tabprep turns a raw table of mixed-type columns into a model-ready
// table through a sequence of fit/apply transforms: type classification,
// low-frequency category leveling, missing-value imputation, outlier
// removal, scaling, one-hot encoding, and timestamp expansion.
//
// # Fit/apply separation
//
// Every stateful transform captures its parameters from a training
// table (fit) and later replays exactly those parameters on validation,
// test, or production tables (apply) without observing the new table's
// statistics:
//
//	leveler := preprocessing.NewCategoryLeveler(preprocessing.WithRatio(0.01))
//	train, err := leveler.FitTransform(trainTable)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	replay := preprocessing.NewCategoryLevelerFromVocabulary(leveler.Vocabulary())
//	test, err := replay.Transform(testTable)
//
// # Quick Start
//
//	package main
//
//	import (
//	    "log"
//
//	    "github.com/YuminosukeSato/tabprep/core/table"
//	    "github.com/YuminosukeSato/tabprep/pipeline"
//	    "github.com/YuminosukeSato/tabprep/preprocessing"
//	)
//
//	func main() {
//	    tbl, err := table.New(
//	        table.NewFloatColumn("age", []float64{25, 32, 47}),
//	        table.NewCategoryColumn("city", []string{"NY", "LA", "NY"}),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    p := pipeline.New(
//	        pipeline.Step{Name: "fill", Transformer: preprocessing.NewMissingValueFiller()},
//	        pipeline.Step{Name: "encode", Transformer: preprocessing.NewDummyEncoder()},
//	        pipeline.Step{Name: "scale", Transformer: preprocessing.NewScaler(preprocessing.MethodStandard)},
//	    )
//	    ready, err := p.FitTransform(tbl)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = ready
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - core/table: the in-memory table of typed columns
//   - core/model: transformer and estimator interfaces, fitted-state management
//   - preprocessing: the fit/apply transforms
//   - pipeline: chaining transforms into a single fit/apply unit
//   - metrics: evaluation metrics (MSE, RMSE, MAE, R², accuracy, log loss, ROC-AUC)
//   - benchmark: evaluating rosters of estimators on preprocessed tables
//   - visualization: rendering tables and training histories as PNG charts
//
// # License
//
// tabprep is released under the MIT License.
package tabprep
