package reduce

import (
	"context"
	"fmt"
)

// legacyWindowSize is the fixed nulling window used by [LinearReducer].
const legacyWindowSize = 8

// LinearReducer is the original forward linear-scan reduction strategy,
// retained for [AnalyzeOptions.UseLegacyReducer]: it walks the range in
// fixed-size windows, nulling each in turn and recording it as a match
// whenever nulling it suppresses detection. It makes one scanner call per
// window and never subdivides, so it is slower and coarser than
// [Reducer] but simpler to reason about.
type LinearReducer struct {
	file     BaseFile
	scanner  Scanner
	reporter Reporter
}

// NewLinearReducer constructs a LinearReducer. A nil reporter is replaced
// with [NoopReporter]{}.
func NewLinearReducer(file BaseFile, scanner Scanner, reporter Reporter) *LinearReducer {
	if reporter == nil {
		reporter = NoopReporter{}
	}

	return &LinearReducer{file: file, scanner: scanner, reporter: reporter}
}

// Scan walks [lo, hi) in legacyWindowSize windows, returning every window
// whose nulling suppresses detection of the rest of the range.
func (l *LinearReducer) Scan(ctx context.Context, lo, hi int) ([]Match, error) {
	if hi <= lo {
		panic(fmt.Sprintf("%v: [%d,%d)", ErrInvariantViolation, lo, hi))
	}

	var store IntervalStore

	chunksTested := 0

	for winLo := lo; winLo < hi; winLo += legacyWindowSize {
		winHi := winLo + legacyWindowSize
		if winHi > hi {
			winHi = hi
		}

		nulled := l.file.Data().Fill(winLo, winHi-winLo)

		raw, err := l.file.FileDataWith(nulled)
		if err != nil {
			return nil, fmt.Errorf("%w: building legacy scan payload: %v", ErrScannerTransport, err)
		}

		detected, err := l.scanner.Scan(ctx, raw, l.file.Filename())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScannerTransport, err)
		}

		chunksTested++
		l.reporter.Progress(chunksTested, store.Count(), store.Count())

		if !detected {
			store.Add(winLo, winHi)
		}
	}

	data := l.file.Data()
	intervals := store.DrainSorted()
	matches := make([]Match, 0, len(intervals))

	for i, iv := range intervals {
		m := Match{Begin: iv[0], End: iv[1], Index: i}
		matches = append(matches, m)
		l.reporter.Match(m, data.Range(m.Begin, m.End))
	}

	return matches, nil
}
