package spreadsheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// makeXLSX собирает тестовую книгу и возвращает путь к ней.
func makeXLSX(t *testing.T, fill func(f *excelize.File)) string {
	t.Helper()

	f := excelize.NewFile()
	fill(f)

	path := filepath.Join(t.TempDir(), "заявка.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestOpenWorkbook_XLSX(t *testing.T) {
	path := makeXLSX(t, func(f *excelize.File) {
		sheet := f.GetSheetList()[0]
		require.NoError(t, f.SetCellValue(sheet, "D2", "ДФА-2024/118"))
		require.NoError(t, f.SetCellValue(sheet, "C9", "ООО «Ромашка»"))
	})

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()

	v, err := wb.Sheet().Cell(2, 4)
	require.NoError(t, err)
	assert.Equal(t, "ДФА-2024/118", v)

	v, err = wb.Sheet().Cell(9, 3)
	require.NoError(t, err)
	assert.Equal(t, "ООО «Ромашка»", v)
}

func TestOpenWorkbook_MergedCellTopLeft(t *testing.T) {
	path := makeXLSX(t, func(f *excelize.File) {
		sheet := f.GetSheetList()[0]
		require.NoError(t, f.MergeCell(sheet, "C9", "F9"))
		require.NoError(t, f.SetCellValue(sheet, "C9", "ИП Кузнецов А. В."))
	})

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()

	// Любая ячейка объединённого диапазона отдаёт значение якоря.
	for col := 3; col <= 6; col++ {
		v, err := wb.Sheet().Cell(9, col)
		require.NoError(t, err)
		assert.Equal(t, "ИП Кузнецов А. В.", v, "колонка %d", col)
	}
}

func TestOpenWorkbook_EmptyAndOutOfRangeCells(t *testing.T) {
	path := makeXLSX(t, func(f *excelize.File) {
		sheet := f.GetSheetList()[0]
		require.NoError(t, f.SetCellValue(sheet, "A1", "шапка"))
	})

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()

	v, err := wb.Sheet().Cell(49, 9)
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

// Ячейки бинарного бланка testdata/заявка.xls. Тот же набор собирается
// excelize-ом в тестах эквивалентности форматов.
var xlsFixtureCells = map[string]string{
	"D2":  "ДФА-2024/118",
	"D3":  "Филиал Центральный",
	"C9":  "ООО «Ромашка»",
	"C10": "7701234567",
	"N17": "v",
	"D21": "v",
	"D30": "v",
	"D33": "нет",
	"C43": "легковой автомобиль",
	"E44": "LADA Vesta",
	"I45": "C/E",
}

func TestOpenWorkbook_XLS(t *testing.T) {
	wb, err := OpenWorkbook(filepath.Join("testdata", "заявка.xls"))
	require.NoError(t, err)
	defer wb.Close()

	v, err := wb.Sheet().Cell(2, 4)
	require.NoError(t, err)
	assert.Equal(t, "ДФА-2024/118", v)

	v, err = wb.Sheet().Cell(9, 3)
	require.NoError(t, err)
	assert.Equal(t, "ООО «Ромашка»", v)

	// Кириллица из SST не должна искажаться.
	v, err = wb.Sheet().Cell(43, 3)
	require.NoError(t, err)
	assert.Equal(t, "легковой автомобиль", v)
}

func TestOpenWorkbook_XLSEmptyCells(t *testing.T) {
	wb, err := OpenWorkbook(filepath.Join("testdata", "заявка.xls"))
	require.NoError(t, err)
	defer wb.Close()

	// Пустая колонка в заполненной строке.
	v, err := wb.Sheet().Cell(2, 5)
	require.NoError(t, err)
	assert.Equal(t, "", v)

	// Строка без единой записи (лист разреженный).
	v, err = wb.Sheet().Cell(29, 4)
	require.NoError(t, err)
	assert.Equal(t, "", v)

	// Строка за последней строкой листа.
	v, err = wb.Sheet().Cell(49, 9)
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestOpenWorkbook_CrossFormatCellReads(t *testing.T) {
	xlsxPath := makeXLSX(t, func(f *excelize.File) {
		sheet := f.GetSheetList()[0]
		for cell, value := range xlsFixtureCells {
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	})

	legacy, err := OpenWorkbook(filepath.Join("testdata", "заявка.xls"))
	require.NoError(t, err)
	defer legacy.Close()

	modern, err := OpenWorkbook(xlsxPath)
	require.NoError(t, err)
	defer modern.Close()

	// Одни и те же данные в обоих форматах дают одинаковые чтения по всей
	// рабочей области бланка, включая пустые и отсутствующие строки.
	for row := 1; row <= 50; row++ {
		for col := 1; col <= 14; col++ {
			legacyV, err := legacy.Sheet().Cell(row, col)
			require.NoError(t, err, "xls (%d, %d)", row, col)

			modernV, err := modern.Sheet().Cell(row, col)
			require.NoError(t, err, "xlsx (%d, %d)", row, col)

			assert.Equal(t, modernV, legacyV, "ячейка (%d, %d)", row, col)
		}
	}
}

func TestOpenWorkbook_ZeroByteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := OpenWorkbook(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestOpenWorkbook_NotASpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.xls")
	require.NoError(t, os.WriteFile(path, []byte("это вообще не таблица"), 0o644))

	_, err := OpenWorkbook(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestOpenWorkbook_MissingFile(t *testing.T) {
	_, err := OpenWorkbook(filepath.Join(t.TempDir(), "нет-такого.xlsx"))
	assert.ErrorIs(t, err, ErrUnreadable)
}
