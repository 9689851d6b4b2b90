package reduce_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avreduce/avreduce/pkg/container"
	"github.com/avreduce/avreduce/pkg/reduce"
	"github.com/avreduce/avreduce/pkg/scanner"
)

func buildSectioned(t *testing.T, sections []reduce.Section, content []byte) *fakeSectionedFile {
	t.Helper()

	return &fakeSectionedFile{
		filename: "sample.bin",
		data:     reduce.NewData(content),
		sections: sections,
	}
}

// fakeSectionedFile is a minimal reduce.BaseFile with caller-specified
// sections, for attribution tests that need sections raw.NewRaw doesn't
// provide.
type fakeSectionedFile struct {
	filename string
	data     reduce.Data
	sections []reduce.Section
}

func (f *fakeSectionedFile) Data() reduce.Data { return f.data }

func (f *fakeSectionedFile) FileDataWith(data reduce.Data) ([]byte, error) {
	return data.Bytes(), nil
}

func (f *fakeSectionedFile) Filename() string { return f.filename }

func (f *fakeSectionedFile) Sections() []reduce.Section { return f.sections }

var _ reduce.BaseFile = (*fakeSectionedFile)(nil)

func TestAttributor_ZeroStrategyFindsImplicatedSection(t *testing.T) {
	t.Parallel()

	content := make([]byte, 30)
	copy(content[12:], []byte("SIG"))

	sections := []reduce.Section{
		{Name: ".a", Addr: 0, Size: 10},
		{Name: ".b", Addr: 10, Size: 10},
		{Name: ".c", Addr: 20, Size: 10},
	}

	file := buildSectioned(t, sections, content)
	sc := scanner.NewFake([]byte("SIG"))
	attributor := reduce.NewAttributor(sc, reduce.NoopReporter{})

	implicated, err := attributor.Attribute(context.Background(), file, sections, reduce.StrategyZero)
	require.NoError(t, err)
	require.Len(t, implicated, 1)
	assert.Equal(t, ".b", implicated[0].Name)
}

func TestAttributor_ZeroStrategyTooManySections(t *testing.T) {
	t.Parallel()

	content := make([]byte, 40)
	// Signature spans all four sections, so nulling any one of them alone
	// suppresses it and all four are implicated.
	copy(content[8:], []byte("SIGNATURESPANNINGALLSECTS"))

	sections := []reduce.Section{
		{Name: ".a", Addr: 0, Size: 10},
		{Name: ".b", Addr: 10, Size: 10},
		{Name: ".c", Addr: 20, Size: 10},
		{Name: ".d", Addr: 30, Size: 10},
	}

	file := buildSectioned(t, sections, content)
	sc := scanner.NewFake([]byte("SIGNATURESPANNINGALLSECTS"))
	attributor := reduce.NewAttributor(sc, reduce.NoopReporter{})

	_, err := attributor.Attribute(context.Background(), file, sections, reduce.StrategyZero)
	require.ErrorIs(t, err, reduce.ErrTooManySections)
}

func TestAttributor_IsolateStrategyFindsSurvivingSection(t *testing.T) {
	t.Parallel()

	content := make([]byte, 30)
	copy(content[12:], []byte("SIG"))

	sections := []reduce.Section{
		{Name: ".a", Addr: 0, Size: 10},
		{Name: ".b", Addr: 10, Size: 10},
		{Name: ".c", Addr: 20, Size: 10},
	}

	file := buildSectioned(t, sections, content)
	sc := scanner.NewFake([]byte("SIG"))
	attributor := reduce.NewAttributor(sc, reduce.NoopReporter{})

	implicated, err := attributor.Attribute(context.Background(), file, sections, reduce.StrategyIsolate)
	require.NoError(t, err)
	require.Len(t, implicated, 1)
	assert.Equal(t, ".b", implicated[0].Name)
}

func TestAttributor_NoSectionsReturnsErrNoSections(t *testing.T) {
	t.Parallel()

	file := container.NewRaw("sample.bin", []byte("abc"))
	sc := scanner.NewFake([]byte("abc"))
	attributor := reduce.NewAttributor(sc, reduce.NoopReporter{})

	_, err := attributor.Attribute(context.Background(), file, nil, reduce.StrategyZero)
	require.ErrorIs(t, err, reduce.ErrNoSections)
}
