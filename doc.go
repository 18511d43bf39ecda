// Package framecheck validates tabular datasets at function boundaries.
//
// A guard declares, next to a function, what the dataframes flowing
// through it must look like: which columns exist, their dtypes, whether
// nulls or duplicates are allowed, which value checks hold, and optionally
// a full row-level schema. Violations come back as one structured report
// that names the function and parameter, so a failure reads like the call
// site that produced it.
//
// Key Features:
//
//   - Declarative column rules: names, dtypes, nullability, uniqueness,
//     value checks, and r/.../ regex selectors
//   - Composite uniqueness across column groups
//   - Row-level validation against a record schema with an error budget
//   - Fail-fast or collect-all reporting, strict mode for unexpected
//     columns
//   - Defaults from the environment (FRAMECHECK_* variables), overridable
//     per guard
//
// Basic Usage:
//
//	var loadGuard = framecheck.MustNewGuard("load_prices",
//		framecheck.WithInput("df", &rules.Set{
//			Columns: rules.Defs{
//				"Brand": {DType: "string"},
//				"Price": {DType: "int64", Nullable: rules.Bool(false), Checks: rules.Checks{"gt": 0}},
//			},
//		}),
//	)
//
//	func LoadPrices(df dataset.Dataset) error {
//		if err := loadGuard.In(df); err != nil {
//			return err
//		}
//		// ... work with df
//		return nil
//	}
//
// One-shot validation without a boundary:
//
//	err := framecheck.Validate(df, &rules.Set{Columns: rules.Names{"Brand", "Price"}})
//
// Wrapping a transform:
//
//	clean := guard.Transform(func(df dataset.Dataset) (dataset.Dataset, error) {
//		// validated on the way in and on the way out
//		return dropOutliers(df)
//	})
//
// Datasets:
//
// The engine works against the dataset.Dataset interface. Use
// dataset.New for the native in-memory table, or dataset.FromRecord and
// dataset.FromTable to validate Apache Arrow data in place.
//
// Configuration:
//
// Process-wide defaults come from the environment, with an optional .env
// file: FRAMECHECK_STRICT, FRAMECHECK_LAZY, FRAMECHECK_MAX_ROW_ERRORS,
// FRAMECHECK_MAX_SAMPLES. Rule set flags override the environment;
// explicit guard options override both.
package framecheck
