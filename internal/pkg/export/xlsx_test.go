package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook(t *testing.T) {
	body, err := Workbook(
		Sheet{Name: "Attendance", Header: []string{"Employee", "Days present"}, Rows: [][]any{{"Asha", 4}, {"Ravi", 5}}},
		Sheet{Name: "Timesheets", Header: []string{"Employee", "Hours"}, Rows: [][]any{{"Asha", 37.5}}},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Attendance", "Timesheets"}, f.GetSheetList())

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Employee", "Days present"}, {"Asha", "4"}, {"Ravi", "5"}}, rows)

	rows, err = f.GetRows("Timesheets")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Employee", "Hours"}, {"Asha", "37.5"}}, rows)
}

func TestWorkbook_NoSheets(t *testing.T) {
	_, err := Workbook()
	assert.Error(t, err)
}
