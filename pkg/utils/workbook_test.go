package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDecodeWorkbook_ActiveSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("JC")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("JC", "A7", "Flap actuator"))
	require.NoError(t, f.SetCellValue("JC", "A9", "PN-4471"))
	require.NoError(t, f.SetCellValue("JC", "G9", "SN-0098"))
	require.NoError(t, f.SetCellValue("JC", "A11", "Start date"))
	require.NoError(t, f.SetCellValue("JC", "A12", "10_COAT"))
	require.NoError(t, f.SetCellValue("JC", "A13", "End date"))

	idx, err := f.GetSheetIndex("JC")
	require.NoError(t, err)
	f.SetActiveSheet(idx)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	grid, err := DecodeWorkbook(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	out := NewJobCardExtractor(DefaultJobCardLayout()).Extract(grid)
	assert.Equal(t, "Flap actuator", out.Name)
	assert.Equal(t, "PN-4471", out.PartNumber)
	require.NotNil(t, out.SerialNumber)
	assert.Equal(t, "SN-0098", *out.SerialNumber)
	assert.Equal(t, []string{"10_COAT", "PPK"}, out.Operations.Names())
}

func TestDecodeWorkbook_NotAWorkbook(t *testing.T) {
	_, err := DecodeWorkbook(bytes.NewReader([]byte("plain text")))
	assert.Error(t, err)
}
