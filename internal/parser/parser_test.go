package parser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/statboard/internal/parser"
)

func TestParseCSV(t *testing.T) {
	content := "position,height,weight\n" +
		"C,7-0,250\n" +
		"\n" +
		"G,6-2\n" +
		"F,6-8,225,extra\n"

	tbl, err := parser.Parse("PlayersBBall.csv", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, []string{"position", "height", "weight"}, tbl.Header)
	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"C", "7-0", "250"}, tbl.Rows[0])
	assert.Equal(t, []string{"G", "6-2", ""}, tbl.Rows[1], "short rows are padded")
	assert.Equal(t, []string{"F", "6-8", "225"}, tbl.Rows[2], "long rows are truncated")
}

func TestParseTSVAndBOM(t *testing.T) {
	content := "\ufeffEduc\tIncome2005\n12\t35000\n16\t61000\n"

	tbl, err := parser.Parse("income.TSV", []byte(content))
	require.NoError(t, err)
	assert.Equal(t, []string{"Educ", "Income2005"}, tbl.Header)
	assert.Equal(t, 2, tbl.Len())
}

func TestParseEmptyInput(t *testing.T) {
	tbl, err := parser.Parse("empty.csv", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Empty(t, tbl.Header)
}

func TestParseUnsupported(t *testing.T) {
	_, err := parser.Parse("notes.docx", []byte("x"))
	require.ErrorIs(t, err, parser.ErrUnsupported)
	assert.False(t, parser.Supported("notes.docx"))
	assert.True(t, parser.Supported("data.xlsx"))
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Educ", "Income2005"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"12", 35000}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"16", 61000}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "education.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	tbl, err := parser.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Educ", "Income2005"}, tbl.Header)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"16", "61000"}, tbl.Rows[1])
}

func TestParseFileMissing(t *testing.T) {
	_, err := parser.ParseFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
