package reduce

import "errors"

// Sentinel errors returned by reduce operations (spec.md §7).
//
// Callers should use [errors.Is] to check error kinds:
//
//	if errors.Is(err, reduce.ErrTooManySections) {
//	    // retry with AnalyzeOptions.Isolate = true
//	}
var (
	// ErrNotDetected indicates the unmodified input does not trigger the
	// scanner. Not fatal - [Analyzer.Analyze] returns an empty match slice
	// plus a [Reporter.Warn] call, never an error.
	ErrNotDetected = errors.New("reduce: input not detected by scanner")

	// ErrNoSections indicates section-attribution produced no candidates.
	// Not fatal - surfaced the same way as [ErrNotDetected].
	ErrNoSections = errors.New("reduce: no sections attributed")

	// ErrTooManySections indicates more than three sections were attributed
	// by the Zero strategy (spec.md §4.4 policy #3).
	//
	// Recovery: retry with [AnalyzeOptions.Isolate] set.
	ErrTooManySections = errors.New("reduce: too many sections attributed, try isolate")

	// ErrScannerTransport wraps errors returned by a [Scanner]
	// implementation. The core never retries internally - retry/backoff is
	// the Scanner's own responsibility (spec.md §7).
	ErrScannerTransport = errors.New("reduce: scanner transport failure")

	// ErrInvariantViolation indicates an empty or inverted interval was
	// about to be recorded as a match. This is a programming error, not a
	// runtime condition - see [IntervalStore.Add].
	ErrInvariantViolation = errors.New("reduce: invariant violation")
)

func isErr(err, target error) bool {
	return errors.Is(err, target)
}
