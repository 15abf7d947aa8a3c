package domain

import "context"

// BatchReport summarizes one question bank run.
type BatchReport struct {
	Existing   int // questions in the bank before the run
	Generated  int // questions returned by the provider
	Added      int // questions written to the bank
	Duplicates int // generated questions skipped as too similar
	Failed     int // batches the provider could not deliver
}

// BatchService grows the offline question bank from the question provider.
type BatchService interface {
	// ExtendQuestionBank requests batches of batchSize questions and appends
	// the ones that are not near-duplicates of questions already kept.
	ExtendQuestionBank(ctx context.Context, batches, batchSize int) (BatchReport, error)
}
