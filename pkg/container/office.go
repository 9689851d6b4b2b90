package container

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/avreduce/avreduce/pkg/reduce"
	kflate "github.com/klauspost/compress/flate"
)

// klauspostDecompressor and klauspostCompressor make
// klauspost/compress/flate the implementation archive/zip uses for DEFLATE
// entries, both when reading and re-writing OOXML packages. It is a faster
// drop-in for the stdlib compress/flate codec. archive/zip already has
// DEFLATE registered process-wide, so these are registered on each
// zip.Reader and zip.Writer instead.
func klauspostDecompressor(r io.Reader) io.ReadCloser {
	return kflate.NewReader(r)
}

func klauspostCompressor(w io.Writer) (io.WriteCloser, error) {
	return kflate.NewWriter(w, kflate.DefaultCompression)
}

// Office is a [reduce.BaseFile] over an OOXML (zip-based) document: each
// zip entry becomes one [reduce.Section] over a flattened buffer of every
// entry's uncompressed content, concatenated in archive order.
//
// FileDataWith re-zips the package from scratch, preserving entry names
// and order but always re-compressing with DEFLATE - OOXML readers do not
// care whether the original entry happened to be Stored.
type Office struct {
	filename string
	data     reduce.Data
	sections []reduce.Section
}

// NewOffice parses raw as a zip archive, decompressing every entry into a
// single flat buffer addressable by [reduce.Section] ranges.
func NewOffice(filename string, raw []byte) (*Office, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("container: opening office package: %w", err)
	}

	zr.RegisterDecompressor(zip.Deflate, klauspostDecompressor)

	var flat bytes.Buffer

	sections := make([]reduce.Section, 0, len(zr.File))

	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("container: opening entry %q: %w", f.Name, err)
		}

		content, err := io.ReadAll(rc)
		rc.Close()

		if err != nil {
			return nil, fmt.Errorf("container: reading entry %q: %w", f.Name, err)
		}

		addr := flat.Len()
		flat.Write(content)

		sections = append(sections, reduce.Section{
			Name: f.Name,
			Addr: addr,
			Size: len(content),
		})
	}

	return &Office{filename: filename, data: reduce.NewData(flat.Bytes()), sections: sections}, nil
}

var _ reduce.BaseFile = (*Office)(nil)

func (o *Office) Data() reduce.Data {
	return o.data
}

func (o *Office) FileDataWith(data reduce.Data) ([]byte, error) {
	var out bytes.Buffer

	zw := zip.NewWriter(&out)
	zw.RegisterCompressor(zip.Deflate, klauspostCompressor)

	for _, sec := range o.sections {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: sec.Name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("container: creating entry %q: %w", sec.Name, err)
		}

		if _, err := w.Write(data.Range(sec.Addr, sec.End())); err != nil {
			return nil, fmt.Errorf("container: writing entry %q: %w", sec.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("container: finalizing office package: %w", err)
	}

	return out.Bytes(), nil
}

func (o *Office) Filename() string {
	return o.filename
}

func (o *Office) Sections() []reduce.Section {
	return o.sections
}
