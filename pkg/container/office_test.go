package container_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avreduce/avreduce/pkg/container"
)

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer

	zw := zip.NewWriter(&buf)

	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)

		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestOffice_ParsesEntriesAsSections(t *testing.T) {
	t.Parallel()

	raw := buildZip(t, map[string]string{
		"[Content_Types].xml": "<types/>",
		"word/document.xml":   "<w:document>hello</w:document>",
	})

	office, err := container.NewOffice("sample.docx", raw)
	require.NoError(t, err)

	sections := office.Sections()
	require.Len(t, sections, 2)

	names := map[string]bool{}
	for _, s := range sections {
		names[s.Name] = true
	}

	assert.True(t, names["[Content_Types].xml"])
	assert.True(t, names["word/document.xml"])
}

func TestOffice_RoundTripsContentThroughFillAndRepack(t *testing.T) {
	t.Parallel()

	raw := buildZip(t, map[string]string{
		"word/document.xml": "<w:document>SECRET PAYLOAD</w:document>",
	})

	office, err := container.NewOffice("sample.docx", raw)
	require.NoError(t, err)

	sec := office.Sections()[0]
	nulled := office.Data().Fill(sec.Addr, sec.Size)

	repacked, err := office.FileDataWith(nulled)
	require.NoError(t, err)

	roundTripped, err := container.NewOffice("sample.docx", repacked)
	require.NoError(t, err)

	content := roundTripped.Data().Bytes()

	for _, b := range content {
		assert.Equal(t, byte(0), b)
	}
}

func TestOffice_RejectsNonZipInput(t *testing.T) {
	t.Parallel()

	_, err := container.NewOffice("bad.docx", []byte("not a zip"))
	require.Error(t, err)
}
