package reduce

import (
	"context"
	"fmt"
	"strings"
)

// AnalyzeOptions configures [Analyzer.Analyze] (spec.md §2).
type AnalyzeOptions struct {
	// Isolate selects [StrategyIsolate] for section attribution instead
	// of the default [StrategyZero].
	Isolate bool

	// RemoveNoise drops sections whose name suggests non-signature
	// payload (resource/version tables) before attribution, so they are
	// never considered candidates.
	RemoveNoise bool

	// IgnoreText drops the ".text" section before attribution: code
	// sections tend to yield noisy reducer results (spec.md §4.4 policy
	// #4).
	IgnoreText bool

	// Verify runs a [Verifier] pass over the final matches before
	// returning.
	Verify bool

	// UseLegacyReducer selects the fixed-window [LinearReducer] instead
	// of the bisection [Reducer]. The zero value (false) selects the
	// modern bisection engine.
	UseLegacyReducer bool

	// Speed controls the bisection [Reducer]'s throttling curve. Ignored
	// when UseLegacyReducer is set.
	Speed ScanSpeed
}

// Analyzer runs the full detection-reduction pipeline: whole-file
// detection check, optional section attribution, per-range reduction, and
// optional verification (spec.md §2).
type Analyzer struct {
	scanner  Scanner
	reporter Reporter
}

// NewAnalyzer constructs an Analyzer. A nil reporter is replaced with
// [NoopReporter]{}.
func NewAnalyzer(scanner Scanner, reporter Reporter) *Analyzer {
	if reporter == nil {
		reporter = NoopReporter{}
	}

	return &Analyzer{scanner: scanner, reporter: reporter}
}

// Analyze runs the pipeline against file and returns the discovered
// matches in discovery order. It returns an empty slice, not an error, for
// the recoverable conditions [ErrNotDetected] and [ErrNoSections] - each is
// additionally surfaced via [Reporter.Warn].
func (a *Analyzer) Analyze(ctx context.Context, file BaseFile, opts AnalyzeOptions) ([]Match, error) {
	detected, err := a.detectWhole(ctx, file)
	if err != nil {
		return nil, err
	}

	if !detected {
		a.reporter.Warn(ErrNotDetected, file.Filename())
		return nil, nil
	}

	sections := file.Sections()
	if opts.RemoveNoise {
		sections = stripNoiseSections(sections)
	}

	if opts.IgnoreText {
		sections = stripTextSection(sections)
	}

	var ranges [][2]int

	if len(sections) == 0 {
		ranges = [][2]int{{0, file.Data().Len()}}
	} else {
		strategy := StrategyZero
		if opts.Isolate {
			strategy = StrategyIsolate
		}

		attributor := NewAttributor(a.scanner, a.reporter)

		implicated, err := attributor.Attribute(ctx, file, sections, strategy)
		if err != nil {
			if errIsRecoverable(err) {
				a.reporter.Warn(err, file.Filename())
				return nil, nil
			}

			return nil, err
		}

		for _, sec := range implicated {
			ranges = append(ranges, [2]int{sec.Addr, sec.End()})
		}
	}

	var matches []Match

	for _, rg := range ranges {
		found, err := a.reduceSection(ctx, file, rg[0], rg[1], opts)
		if err != nil {
			return nil, err
		}

		matches = append(matches, found...)
	}

	if opts.Verify && len(matches) > 0 {
		verifier := NewVerifier(a.scanner, a.reporter)

		ok, err := verifier.Verify(ctx, file, matches)
		if err != nil {
			return nil, err
		}

		if !ok {
			a.reporter.Warn(fmt.Errorf("reduce: verification did not suppress detection"), file.Filename())
		}
	}

	return matches, nil
}

func (a *Analyzer) detectWhole(ctx context.Context, file BaseFile) (bool, error) {
	raw, err := file.FileDataWith(file.Data())
	if err != nil {
		return false, fmt.Errorf("%w: building whole-file payload: %v", ErrScannerTransport, err)
	}

	detected, err := a.scanner.Scan(ctx, raw, file.Filename())
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrScannerTransport, err)
	}

	return detected, nil
}

func (a *Analyzer) reduceSection(ctx context.Context, file BaseFile, lo, hi int, opts AnalyzeOptions) ([]Match, error) {
	if opts.UseLegacyReducer {
		legacy := NewLinearReducer(file, a.scanner, a.reporter)
		return legacy.Scan(ctx, lo, hi)
	}

	reducer := NewReducer(file, a.scanner, opts.Speed, a.reporter)

	return reducer.Scan(ctx, lo, hi)
}

// stripNoiseSections drops sections unlikely to carry scanner signature
// content: resource tables and version info blocks.
func stripNoiseSections(sections []Section) []Section {
	out := make([]Section, 0, len(sections))

	for _, s := range sections {
		name := strings.ToLower(s.Name)
		if strings.Contains(name, "rsrc") || strings.Contains(name, "resource") || strings.Contains(name, "version") {
			continue
		}

		out = append(out, s)
	}

	return out
}

// stripTextSection drops the section named ".text" (spec.md §4.4 policy
// #4). Comparison is case-insensitive; everything else passes through.
func stripTextSection(sections []Section) []Section {
	out := make([]Section, 0, len(sections))

	for _, s := range sections {
		if strings.EqualFold(s.Name, ".text") {
			continue
		}

		out = append(out, s)
	}

	return out
}

func errIsRecoverable(err error) bool {
	return err != nil && (isErr(err, ErrNoSections) || isErr(err, ErrTooManySections))
}
