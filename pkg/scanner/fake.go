// Package scanner provides [reduce.Scanner] implementations: a
// deterministic in-memory fake for tests, a local-process scanner, and a
// remote HTTP scanner.
package scanner

import (
	"bytes"
	"context"
	"sync/atomic"
)

// Fake is a deterministic [reduce.Scanner] for tests: it reports detection
// whenever the scanned data contains any of its configured signatures, or,
// in "require all" mode, only when every configured signature is present.
// Safe for concurrent use.
type Fake struct {
	signatures [][]byte
	requireAll bool
	calls      atomic.Int64
}

// NewFake constructs a Fake detecting data containing any of signatures
// (interpreted as literal byte substrings, not patterns).
func NewFake(signatures ...[]byte) *Fake {
	return &Fake{signatures: signatures}
}

// NewFakeAll constructs a Fake that only detects data containing every one
// of signatures simultaneously. With two signatures in different halves of
// a range, nulling either half suppresses detection, so it drives the
// bisection reducer's "neither half detects" branch; [NewFake] with the
// same signatures drives the "both halves detect" branch instead.
func NewFakeAll(signatures ...[]byte) *Fake {
	return &Fake{signatures: signatures, requireAll: true}
}

// Scan reports true if data contains any configured signature, or, in
// "require all" mode, every configured signature.
func (f *Fake) Scan(ctx context.Context, data []byte, filename string) (bool, error) {
	f.calls.Add(1)

	if f.requireAll {
		for _, sig := range f.signatures {
			if len(sig) == 0 || !bytes.Contains(data, sig) {
				return false, nil
			}
		}

		return len(f.signatures) > 0, nil
	}

	for _, sig := range f.signatures {
		if len(sig) == 0 {
			continue
		}

		if bytes.Contains(data, sig) {
			return true, nil
		}
	}

	return false, nil
}

// Calls returns the number of times Scan has been invoked.
func (f *Fake) Calls() int {
	return int(f.calls.Load())
}
