package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCSVParser(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "responses.csv")
	content := "Submission ID,Date,Amount,Description\n" +
		"s1,2025-06-01,12.50,Lunch\n" +
		"s2,2025-06-02,30.00,Groceries\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src, err := (&CSVParser{}).Parse(path)
	require.NoError(t, err)

	header, err := src.Header()
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Amount", "Description"}, header)

	rows, err := src.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Number)
	assert.Equal(t, "s1", rows[0].SubmissionID)
	assert.Equal(t, []string{"2025-06-01", "12.50", "Lunch"}, rows[0].Values)
	assert.Equal(t, "s2", rows[1].SubmissionID)
}

func TestCSVParserNoSubmissionColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "responses.csv")
	content := "Date,Amount,Description\n2025-06-01,12.50,Lunch\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src, err := (&CSVParser{}).Parse(path)
	require.NoError(t, err)

	header, err := src.Header()
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Amount", "Description"}, header)

	rows, err := src.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].SubmissionID)
	assert.Equal(t, []string{"2025-06-01", "12.50", "Lunch"}, rows[0].Values)
}

func TestXLSXParser(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "responses.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Submission ID", "Date", "Amount", "Description"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"s1", "2025-06-01", "12.50", "Lunch"}))
	require.NoError(t, f.SaveAs(path))

	src, err := (&XLSXParser{}).Parse(path)
	require.NoError(t, err)

	header, err := src.Header()
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Amount", "Description"}, header)

	rows, err := src.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "s1", rows[0].SubmissionID)
}

func TestScanAndMarkProcessed(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "import"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "import", "a.csv"), []byte("Date\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "import", "notes.txt"), []byte("skip"), 0o644))

	files, err := Scan(root, DefaultRegistry())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.csv", files[0].Name)

	require.NoError(t, MarkProcessed(root, "a.csv"))
	assert.NoFileExists(t, filepath.Join(root, "import", "a.csv"))
	assert.FileExists(t, filepath.Join(root, "import", "processed", "a.csv"))

	files, err = Scan(root, DefaultRegistry())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestRegistryByExtension(t *testing.T) {
	reg := DefaultRegistry()
	assert.IsType(t, &CSVParser{}, reg.Get("import/responses.CSV"))
	assert.IsType(t, &XLSXParser{}, reg.Get("sheet.xlsx"))
	assert.Nil(t, reg.Get("notes.txt"))
}
