package reduce

import (
	"context"
	"fmt"
)

// Verifier checks that nulling out a set of [Match] ranges actually
// suppresses detection (spec.md §4.6).
type Verifier struct {
	scanner  Scanner
	reporter Reporter
}

// NewVerifier constructs a Verifier. A nil reporter is replaced with
// [NoopReporter]{}.
func NewVerifier(scanner Scanner, reporter Reporter) *Verifier {
	if reporter == nil {
		reporter = NoopReporter{}
	}

	return &Verifier{scanner: scanner, reporter: reporter}
}

// Verify nulls matches against file's data incrementally, in the given
// order, and returns true the instant detection is suppressed - it does
// not require every match to be nulled first. This mirrors the original
// verification driver's behavior and is treated as an accepted open
// question (spec.md §9), not a defect: callers that need the prefix that
// achieved suppression can inspect how many matches they passed in.
func (v *Verifier) Verify(ctx context.Context, file BaseFile, matches []Match) (bool, error) {
	data := file.Data()

	for i, m := range matches {
		data = data.Fill(m.Begin, m.Len())

		raw, err := file.FileDataWith(data)
		if err != nil {
			return false, fmt.Errorf("%w: building verify payload: %v", ErrScannerTransport, err)
		}

		detected, err := v.scanner.Scan(ctx, raw, file.Filename())
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrScannerTransport, err)
		}

		if !detected {
			v.reporter.Notice(fmt.Sprintf("verification succeeded after nulling %d of %d matches", i+1, len(matches)))
			return true, nil
		}
	}

	v.reporter.Warn(fmt.Errorf("reduce: verification failed"), "detection survives with all matches nulled")

	return false, nil
}
