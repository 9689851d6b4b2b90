package reduce

// Reporter receives progress and result events from a [Reducer],
// [Attributor], or [Verifier] as an explicit collaborator, replacing the
// package-level mutable logging/print-delay state of the original
// implementation (spec.md §9 "Global mutable reporting state").
//
// Implementations must be safe to call from a single goroutine at a time -
// the core never calls a Reporter concurrently with itself.
type Reporter interface {
	// Progress is called during a scan to report cumulative counters.
	// [Reducer] rate-limits these calls itself (at most one per
	// minReportInterval); [LinearReducer] calls it once per window.
	Progress(chunksTested, matchCount, matchesAdded int)

	// Match is called once per final, merged match when a scan finishes,
	// in ascending order of Begin, with the matched content for display
	// (e.g. hexdump) purposes.
	Match(m Match, content []byte)

	// Notice reports a non-error, user-facing informational event.
	Notice(msg string)

	// Warn reports a recoverable condition such as [ErrNotDetected] or
	// [ErrNoSections], paired with human-readable detail.
	Warn(err error, detail string)
}

// NoopReporter discards every event. Useful as a default collaborator in
// tests and library use where no progress output is wanted.
type NoopReporter struct{}

var _ Reporter = NoopReporter{}

func (NoopReporter) Progress(chunksTested, matchCount, matchesAdded int) {}

func (NoopReporter) Match(m Match, content []byte) {}

func (NoopReporter) Notice(msg string) {}

func (NoopReporter) Warn(err error, detail string) {}
