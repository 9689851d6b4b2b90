// Package reduce implements the signature-reduction engine: a recursive
// bisection search over file bytes that interacts with an antivirus
// scanner oracle to find the minimal byte ranges necessary for detection.
//
// reduce consumes two external collaborators ([BaseFile] and [Scanner]) and
// never does its own container parsing or scanner I/O - see package
// container and package scanner for concrete implementations.
//
// # Basic usage
//
//	analyzer := reduce.NewAnalyzer(scanner, reporter)
//	matches, err := analyzer.Analyze(ctx, file, reduce.AnalyzeOptions{
//	    Verify: true,
//	})
//
// # Error handling
//
// Recoverable conditions ([ErrNotDetected], [ErrNoSections],
// [ErrTooManySections]) are surfaced through [Reporter.Warn] and an empty
// match slice, never a panic. [ErrScannerTransport] and invariant
// violations (see [IntervalStore.Add]) propagate to the caller.
package reduce
