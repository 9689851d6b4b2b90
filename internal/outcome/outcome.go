// Package outcome persists the result of a single analyze run - matches,
// verification status, and scan metadata - so a caller can resume or
// inspect a run after the fact.
package outcome

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/atomic"

	"github.com/avreduce/avreduce/pkg/reduce"
)

// FileOutcomeExt is the extension appended to a target filename to derive
// its outcome file path.
const FileOutcomeExt = ".outcome"

// FileInfo identifies the file an Outcome was produced for.
type FileInfo struct {
	Name string
	Size int
	Hash string
	Time time.Time
}

// ScanInfo records scan metadata for a single [reduce.Reducer] or
// [reduce.LinearReducer] run.
type ScanInfo struct {
	ScannerName  string
	Speed        reduce.ScanSpeed
	ScanTime     time.Time
	ScanDuration time.Duration
	ChunksTested int
	MatchesAdded int
}

// Outcome is the persisted result of one analyze run.
//
// Unlike the original implementation, Outcome carries no outflanking
// fields (OutflankPatch, isOutflanked) - outflanking (patching detected
// bytes to survive intact rather than merely be identified) is out of
// scope here.
type Outcome struct {
	File FileInfo

	Matches  []reduce.Match
	Sections []reduce.Section
	Scan     ScanInfo

	IsDetected bool
	IsScanned  bool
	IsVerified bool
}

// Null returns a zero-value Outcome for file, useful as a starting point
// before a run has actually executed.
func Null(file FileInfo) Outcome {
	return Outcome{File: file}
}

// SaveToFile persists o to path+[FileOutcomeExt] using [encoding/gob],
// written atomically via [atomic.WriteFile] so a crash mid-write never
// leaves a corrupt outcome file in place of a good one.
func (o Outcome) SaveToFile(path string) error {
	outcomePath := path + FileOutcomeExt

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(o); err != nil {
		return fmt.Errorf("outcome: encoding %s: %w", outcomePath, err)
	}

	if err := atomic.WriteFile(outcomePath, &buf); err != nil {
		return fmt.Errorf("outcome: writing %s: %w", outcomePath, err)
	}

	return nil
}

// LoadFromFile reads an Outcome previously written by [Outcome.SaveToFile].
func LoadFromFile(path string) (Outcome, error) {
	data, err := os.ReadFile(path + FileOutcomeExt)
	if err != nil {
		return Outcome{}, fmt.Errorf("outcome: reading %s: %w", path, err)
	}

	var o Outcome
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&o); err != nil {
		return Outcome{}, fmt.Errorf("outcome: decoding %s: %w", path, err)
	}

	return o, nil
}
