// Package sparsesc is a cross-validation engine for sparse synthetic-control
// V-matrix fitting, from matrix primitives up to a parallel fold runner.
//
// 🚀 What is in the module?
//
//	• Matrix primitives: dense row-major storage, stacking, row selection, LU solves
//	• Folds: contiguous or shuffled K-fold partitions with validation
//	• Fitting: treated-holdout and leave-one-out V-matrix backends
//	• Optimizer: coordinate-descent line search over the V diagonal
//	• Cross-validation: fold scorer, warm-started lambda sweep, CV orchestrator
//	• Worker pool: idempotent, process-wide, released on every exit path
//
// ✨ Guarantees
//
//   - Sequential and parallel runs return bit-identical totals (fold-ordered sums)
//   - Contract errors surface before any fit starts
//
// Packages:
//
//	matrix/    - Dense matrices, validators, linear algebra, statistics
//	split/     - K-fold split generation
//	optimizer/ - coordinate-descent line search
//	fit/       - reference fitting and scoring backends
//	cv/        - ScoreTrainTest, ScoreTrainTestSortedLambdas, CVScore
//	workerpool/ - goroutine pool and its process-wide manager
//	dataset/   - CSV ingestion
//	config/    - YAML run files
//	logging/   - slog construction and run correlation IDs
//
// Quick start:
//
//	d := cv.Data{X: X, Y: Y}
//	res, err := cv.CVScore(ctx, d, cv.Grid(0.1, 1, 10), cv.WithSplits(5), cv.WithCache())
//
//	go install github.com/xieliaing/SparseSC/cmd/sparsesc-cv@latest
package sparsesc
