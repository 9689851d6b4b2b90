package container

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/avreduce/avreduce/pkg/reduce"
)

const (
	offELfanew        = 0x3c
	peSignatureLen    = 4
	fileHeaderLen     = 20
	sectionHeaderLen  = 40
	fileHeaderNumSecs = 2 // offset of NumberOfSections within the file header
	fileHeaderOptSize = 16
)

var peSignature = []byte("PE\x00\x00")

// PE is a [reduce.BaseFile] over a Windows portable-executable image. It
// exposes each section table entry as a [reduce.Section] keyed by raw file
// offset, so nulling a section affects exactly the bytes a loader would
// read for it.
//
// PE deliberately does not recompute the PE checksum, relocations, or
// import/export tables after a fill - the reducer only needs the scanner's
// byte-level verdict, not a runnable binary.
type PE struct {
	filename string
	data     reduce.Data
	sections []reduce.Section
}

// NewPE parses raw as a PE image, returning an error if the DOS/NT headers
// cannot be located.
func NewPE(filename string, raw []byte) (*PE, error) {
	sections, err := parsePESections(raw)
	if err != nil {
		return nil, err
	}

	return &PE{filename: filename, data: reduce.NewData(raw), sections: sections}, nil
}

var _ reduce.BaseFile = (*PE)(nil)

func (p *PE) Data() reduce.Data {
	return p.data
}

func (p *PE) FileDataWith(data reduce.Data) ([]byte, error) {
	return data.Bytes(), nil
}

func (p *PE) Filename() string {
	return p.filename
}

func (p *PE) Sections() []reduce.Section {
	return p.sections
}

func parsePESections(raw []byte) ([]reduce.Section, error) {
	if len(raw) < offELfanew+4 {
		return nil, fmt.Errorf("container: truncated DOS header")
	}

	lfanew := int(binary.LittleEndian.Uint32(raw[offELfanew:]))
	if lfanew < 0 || lfanew+peSignatureLen+fileHeaderLen > len(raw) {
		return nil, fmt.Errorf("container: e_lfanew out of range")
	}

	sig := raw[lfanew : lfanew+peSignatureLen]
	if !bytes.Equal(sig, peSignature) {
		return nil, fmt.Errorf("container: missing PE signature")
	}

	fileHeader := raw[lfanew+peSignatureLen : lfanew+peSignatureLen+fileHeaderLen]
	numSections := int(binary.LittleEndian.Uint16(fileHeader[fileHeaderNumSecs:]))
	optHeaderSize := int(binary.LittleEndian.Uint16(fileHeader[fileHeaderOptSize:]))

	sectionTableStart := lfanew + peSignatureLen + fileHeaderLen + optHeaderSize
	sectionTableEnd := sectionTableStart + numSections*sectionHeaderLen

	if sectionTableEnd > len(raw) {
		return nil, fmt.Errorf("container: section table out of range")
	}

	sections := make([]reduce.Section, 0, numSections)

	for i := 0; i < numSections; i++ {
		start := sectionTableStart + i*sectionHeaderLen
		hdr := raw[start : start+sectionHeaderLen]

		name := sectionName(hdr[0:8])
		sizeOfRawData := int(binary.LittleEndian.Uint32(hdr[16:20]))
		pointerToRawData := int(binary.LittleEndian.Uint32(hdr[20:24]))

		if sizeOfRawData == 0 {
			continue
		}

		if pointerToRawData+sizeOfRawData > len(raw) {
			return nil, fmt.Errorf("container: section %q raw data out of range", name)
		}

		sections = append(sections, reduce.Section{
			Name: name,
			Addr: pointerToRawData,
			Size: sizeOfRawData,
		})
	}

	return sections, nil
}

func sectionName(raw []byte) string {
	n := bytes.IndexByte(raw, 0)
	if n < 0 {
		n = len(raw)
	}

	return string(raw[:n])
}
