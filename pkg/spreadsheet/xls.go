package spreadsheet

import (
	"errors"
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// xlsSheet - бэкенд для устаревшего бинарного формата (.xls, BIFF).
// BIFF-парсер не раскрывает объединённые ячейки: значение и так лежит
// только в левой верхней, так что соглашение из Reader выполняется само.
type xlsSheet struct {
	sheet *xls.WorkSheet
}

func newXLSSheet(r io.ReadSeeker) (*xlsSheet, error) {
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New("в книге нет листов")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("не удалось открыть первый лист")
	}
	return &xlsSheet{sheet: sheet}, nil
}

func (s *xlsSheet) Cell(row, col int) (value string, err error) {
	// extrame/xls паникует на некоторых кривых записях BIFF,
	// превращаем панику в обычную ошибку чтения ячейки.
	defer func() {
		if r := recover(); r != nil {
			value = ""
			err = fmt.Errorf("ошибка чтения ячейки (%d, %d): %v", row, col, r)
		}
	}()

	if row < 1 || col < 1 {
		return "", fmt.Errorf("недопустимые координаты ячейки (%d, %d)", row, col)
	}
	if row-1 > int(s.sheet.MaxRow) {
		return "", nil
	}
	r := s.rowAt(row - 1)
	if r == nil {
		return "", nil
	}
	return r.Col(col - 1), nil
}

// rowAt достаёт строку листа. В разреженных листах строка в пределах MaxRow
// может отсутствовать, WorkSheet.Row на ней паникует; такая строка пустая,
// как и в OOXML-бэкенде.
func (s *xlsSheet) rowAt(i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return s.sheet.Row(i)
}
