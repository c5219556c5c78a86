package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Students",
		Headers: []string{"Name", "Standard", "Phone"},
		Rows: [][]string{
			{"Ann", "Grade 5", "9876543210"},
			{"Ben", "Grade 6", "9876500000"},
		},
	}
}

func TestCSVRender(t *testing.T) {
	out, err := (&CSVRenderer{}).Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Name,Standard,Phone\nAnn,Grade 5,9876543210\nBen,Grade 6,9876500000\n", string(out))
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := (&CSVRenderer{}).Render(Dataset{})
	require.Error(t, err)
}

func TestPDFRenderProducesDocument(t *testing.T) {
	out, err := (&PDFRenderer{}).Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestXLSXRenderProducesWorkbook(t *testing.T) {
	out, err := (&XLSXRenderer{}).Render(sampleDataset())
	require.NoError(t, err)
	// xlsx files are zip archives
	assert.True(t, bytes.HasPrefix(out, []byte("PK")))
}

func TestByFormat(t *testing.T) {
	for _, format := range []string{"csv", "pdf", "xlsx"} {
		renderer, ok := ByFormat(format)
		require.True(t, ok, format)
		assert.Equal(t, format, renderer.Extension())
	}
	_, ok := ByFormat("docx")
	assert.False(t, ok)
}
