package reduce

import (
	"context"
	"fmt"
	"strings"
)

// Strategy selects how [Attributor.Attribute] decides which [Section]s of a
// file the scanner's verdict is attributable to (spec.md §4.4).
type Strategy int

const (
	// StrategyZero nulls one section at a time and checks whether
	// detection is suppressed. Cheap, but aborts with
	// [ErrTooManySections] once more than three sections are implicated,
	// since pairwise interaction between that many sections is no longer
	// reliably attributable one section at a time.
	StrategyZero Strategy = iota

	// StrategyIsolate nulls every section except one at a time and checks
	// whether detection survives. More scanner calls than
	// [StrategyZero], but has no section-count ceiling.
	StrategyIsolate
)

// maxZeroSections is the attributed-section ceiling for [StrategyZero]
// (spec.md §4.4 policy #3).
const maxZeroSections = 3

// Attributor determines which sections of a file a scanner's detection can
// be attributed to, ahead of running a full [Reducer] bisection over just
// those sections.
type Attributor struct {
	scanner  Scanner
	reporter Reporter
}

// NewAttributor constructs an Attributor. A nil reporter is replaced with
// [NoopReporter]{}.
func NewAttributor(scanner Scanner, reporter Reporter) *Attributor {
	if reporter == nil {
		reporter = NoopReporter{}
	}

	return &Attributor{scanner: scanner, reporter: reporter}
}

// Attribute returns the subset of sections responsible for detection,
// using strategy. It returns [ErrNoSections] if sections is empty and
// [ErrTooManySections] if strategy is [StrategyZero] and more than three
// sections implicate.
func (a *Attributor) Attribute(ctx context.Context, file BaseFile, sections []Section, strategy Strategy) ([]Section, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}

	switch strategy {
	case StrategyIsolate:
		return a.isolate(ctx, file, sections)
	default:
		return a.zero(ctx, file, sections)
	}
}

func (a *Attributor) zero(ctx context.Context, file BaseFile, sections []Section) ([]Section, error) {
	var implicated []Section

	for _, sec := range sections {
		nulled := file.Data().Fill(sec.Addr, sec.Size)

		detected, err := a.scan(ctx, file, nulled)
		if err != nil {
			return nil, err
		}

		if !detected {
			implicated = append(implicated, sec)
		}
	}

	if len(implicated) == 0 {
		a.reporter.Warn(ErrNoSections, "zero strategy suppressed no section individually")
		return nil, ErrNoSections
	}

	if len(implicated) > maxZeroSections {
		return nil, fmt.Errorf("%w: %d sections implicated (%s)", ErrTooManySections, len(implicated), sectionNames(implicated))
	}

	return implicated, nil
}

func (a *Attributor) isolate(ctx context.Context, file BaseFile, sections []Section) ([]Section, error) {
	var implicated []Section

	for i, sec := range sections {
		data := file.Data()

		for j, other := range sections {
			if j == i {
				continue
			}

			data = data.Fill(other.Addr, other.Size)
		}

		detected, err := a.scan(ctx, file, data)
		if err != nil {
			return nil, err
		}

		if detected {
			implicated = append(implicated, sec)
		}
	}

	if len(implicated) == 0 {
		a.reporter.Warn(ErrNoSections, "isolate strategy: no section alone survives")
		return nil, ErrNoSections
	}

	return implicated, nil
}

func (a *Attributor) scan(ctx context.Context, file BaseFile, data Data) (bool, error) {
	raw, err := file.FileDataWith(data)
	if err != nil {
		return false, fmt.Errorf("%w: building attribution payload: %v", ErrScannerTransport, err)
	}

	detected, err := a.scanner.Scan(ctx, raw, file.Filename())
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrScannerTransport, err)
	}

	return detected, nil
}

func sectionNames(sections []Section) string {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}

	return strings.Join(names, ", ")
}
