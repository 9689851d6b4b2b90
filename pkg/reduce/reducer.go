package reduce

import (
	"context"
	"fmt"
	"time"
)

// minReportInterval bounds how often a [Reducer] calls [Reporter.Progress],
// independent of how many chunks were tested in between.
const minReportInterval = 500 * time.Millisecond

// Reducer performs recursive bisection search over a [BaseFile]'s byte
// range, narrowing down to the minimal set of [Match] ranges a [Scanner]
// needs to detect (spec.md §4.5).
//
// A Reducer is not safe for concurrent use; each call to [Reducer.Scan]
// mutates iteration-scoped counters.
type Reducer struct {
	file     BaseFile
	scanner  Scanner
	speed    ScanSpeed
	reporter Reporter

	iteration int
	nextIndex int
}

// NewReducer constructs a Reducer over file using scanner as the detection
// oracle. A nil reporter is replaced with [NoopReporter]{}.
func NewReducer(file BaseFile, scanner Scanner, speed ScanSpeed, reporter Reporter) *Reducer {
	if reporter == nil {
		reporter = NoopReporter{}
	}

	return &Reducer{file: file, scanner: scanner, speed: speed, reporter: reporter}
}

// scanState carries the mutable state of a single [Reducer.Scan] call.
type scanState struct {
	store          IntervalStore
	chunksTested   int
	matchesAdded   int
	minMatchSize   int
	initMatchSize  int
	throttle       throttle
	lastReportTime time.Time
}

// Scan bisects [lo, hi) and returns the merged [Match] ranges found. Matches
// from this call are indexed continuing from every prior call's index
// sequence on this Reducer, so results from successive calls may be
// concatenated in discovery order. If the unmodified data is not detected,
// Scan returns no matches without bisecting.
func (r *Reducer) Scan(ctx context.Context, lo, hi int) ([]Match, error) {
	if hi <= lo {
		panic(fmt.Sprintf("%v: [%d,%d)", ErrInvariantViolation, lo, hi))
	}

	initial := r.speed.initialMinMatchSize()

	st := &scanState{
		minMatchSize:   initial,
		initMatchSize:  initial,
		throttle:       r.speed.throttle(),
		lastReportTime: time.Now(),
	}

	data := r.file.Data()

	detected, err := r.detect(ctx, st, data)
	if err != nil {
		return nil, err
	}

	if !detected {
		r.iteration++
		return nil, nil
	}

	if err := r.scanRange(ctx, st, data, lo, hi); err != nil {
		return nil, err
	}

	matches := r.collectMatches(st)
	r.iteration++

	return matches, nil
}

// scanRange is the recursive bisection step over the logical range
// [lo, hi) of data. data may already carry fill patches from ancestor
// recursion steps that nulled out byte ranges outside [lo, hi).
func (r *Reducer) scanRange(ctx context.Context, st *scanState, data Data, lo, hi int) error {
	length := hi - lo
	mid := lo + length/2
	chunk := mid - lo

	st.chunksTested++
	r.maybeThrottle(st)

	// Dangling-bytes terminator (spec.md §4.5 step 2): the split point is
	// computed before this check fires, so it triggers on the *top half's*
	// size, not the whole range's - a range of up to 5 bytes still lands
	// here, not just 1 or 2.
	if chunk <= 2 {
		st.store.Add(lo, hi)
		st.matchesAdded++
		r.maybeReport(st)

		return nil
	}

	// topNull erases [lo,mid) and keeps [mid,hi) intact; botNull is the
	// opposite. Naming matches spec.md §4.5's top_null/bot_null.
	topNull := data.Fill(lo, mid-lo)
	botNull := data.Fill(mid, hi-mid)

	topDetects, err := r.detect(ctx, st, topNull)
	if err != nil {
		return err
	}

	botDetects, err := r.detect(ctx, st, botNull)
	if err != nil {
		return err
	}

	switch {
	case topDetects && botDetects:
		// Both halves independently sufficient: recurse each half with the
		// carrier that keeps it intact and erases the other, isolating it
		// from the other half's contribution.
		if err := r.scanRange(ctx, st, botNull, lo, mid); err != nil {
			return err
		}

		return r.scanRange(ctx, st, topNull, mid, hi)

	case !topDetects && !botDetects:
		// Signature spans the midpoint. Terminator threshold is compared
		// against chunk (mid-lo), not the whole range, same as the
		// dangling-bytes terminator above (spec.md §4.5 step 4).
		if chunk <= st.minMatchSize {
			st.store.Add(lo, hi)
			st.matchesAdded++
			r.maybeReport(st)

			return nil
		}

		if err := r.scanRange(ctx, st, data, lo, mid); err != nil {
			return err
		}

		return r.scanRange(ctx, st, data, mid, hi)

	case !topDetects:
		// Erasing the top half broke detection: the necessary bytes are in
		// the top half. Search it on the original, unmasked carrier.
		return r.scanRange(ctx, st, data, lo, mid)

	default:
		// !botDetects: necessary bytes are in the bottom half.
		return r.scanRange(ctx, st, data, mid, hi)
	}
}

// detect runs the scanner against the full file re-serialized with data as
// content, tracking throttling and progress counters.
func (r *Reducer) detect(ctx context.Context, st *scanState, data Data) (bool, error) {
	raw, err := r.file.FileDataWith(data)
	if err != nil {
		return false, fmt.Errorf("%w: building scan payload: %v", ErrScannerTransport, err)
	}

	detected, err := r.scanner.Scan(ctx, raw, r.file.Filename())
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrScannerTransport, err)
	}

	r.maybeReport(st)

	return detected, nil
}

// maybeThrottle grows minMatchSize as more chunks are tested, so a long
// scan progressively accepts coarser matches rather than bisecting
// forever. minMatchSize stays at initMatchSize until chunksTested exceeds
// throttle.base, then doubles once for every throttle.div chunks tested
// beyond it, so a large (base, div) pair - as [ScanSpeedComplete] uses -
// effectively never throttles within a realistic scan, while a small pair
// - as [ScanSpeedFast] uses - converges to coarse matches quickly
// (spec.md §4.5 "Adaptive throttling").
func (r *Reducer) maybeThrottle(st *scanState) {
	if st.chunksTested <= st.throttle.base {
		return
	}

	doublings := (st.chunksTested - st.throttle.base) / st.throttle.div

	grown := st.initMatchSize << doublings
	if grown > st.minMatchSize {
		st.minMatchSize = grown
	}
}

func (r *Reducer) maybeReport(st *scanState) {
	now := time.Now()
	if now.Sub(st.lastReportTime) < minReportInterval {
		return
	}

	st.lastReportTime = now
	r.reporter.Progress(st.chunksTested, st.store.Count(), st.matchesAdded)
}

// collectMatches drains st's IntervalStore into indexed, reported Matches.
func (r *Reducer) collectMatches(st *scanState) []Match {
	data := r.file.Data()
	intervals := st.store.DrainSorted()
	matches := make([]Match, 0, len(intervals))

	for _, iv := range intervals {
		m := Match{
			Begin:     iv[0],
			End:       iv[1],
			Index:     r.nextIndex,
			Iteration: r.iteration,
		}
		r.nextIndex++

		matches = append(matches, m)
		r.reporter.Match(m, data.Range(m.Begin, m.End))
	}

	return matches
}
