// Package pipeline turns an open PDF into an outline under a time budget.
//
// An [Acquirer] produces the spans of one page, preferring native text and
// falling back to OCR for pages with too little of it. A [Scheduler] runs
// the acquirer over every page on a bounded worker pool, hands the pages to
// the layout analyzer once all of them are in, classifies the pages again
// in parallel and assembles the outline.
//
//	sched := pipeline.NewScheduler(pipeline.DefaultConfig(), acquirer, layout.NewAnalyzer(), logger)
//	res := sched.Run(ctx, doc)
//
// Page failures are absorbed into [model.Page.Err]. Document failures are
// returned as a failed [model.Result] wrapping one of the sentinel errors,
// so callers can test them with errors.Is.
package pipeline
