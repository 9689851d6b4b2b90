// Package container adapts concrete file formats (raw bytes, PE
// executables, OOXML/zip documents) to [reduce.BaseFile], so the reducer
// core never parses container structure itself.
package container

import (
	"github.com/avreduce/avreduce/pkg/reduce"
)

// Raw is the identity [reduce.BaseFile] for inputs with no container
// structure: it reports no sections, and re-serialization is the byte
// content unchanged.
type Raw struct {
	filename string
	data     reduce.Data
}

// NewRaw constructs a Raw adapter over data, to be served to a scanner as
// filename.
func NewRaw(filename string, data []byte) *Raw {
	return &Raw{filename: filename, data: reduce.NewData(data)}
}

var _ reduce.BaseFile = (*Raw)(nil)

func (r *Raw) Data() reduce.Data {
	return r.data
}

func (r *Raw) FileDataWith(data reduce.Data) ([]byte, error) {
	return data.Bytes(), nil
}

func (r *Raw) Filename() string {
	return r.filename
}

// Sections returns nil: raw inputs have no natural sectioning, so
// [reduce.Analyzer] falls back to treating the whole file as one range.
func (r *Raw) Sections() []reduce.Section {
	return nil
}
