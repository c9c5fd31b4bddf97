package spreadsheet

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"
)

type cellRef struct {
	row, col int
}

// xlsxSheet - бэкенд для OOXML-книг (.xlsx, .xltx) поверх excelize.
// excelize хранит значение объединённого диапазона только в якорной ячейке,
// поэтому при открытии строится карта "любая ячейка диапазона -> якорь".
type xlsxSheet struct {
	file   *excelize.File
	name   string
	merges map[cellRef]cellRef
}

func newXLSXSheet(r io.Reader) (*xlsxSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, errors.New("в книге нет листов")
	}

	s := &xlsxSheet{
		file:   f,
		name:   sheets[0],
		merges: make(map[cellRef]cellRef),
	}

	mergeCells, err := f.GetMergeCells(s.name)
	if err != nil {
		f.Close()
		return nil, err
	}
	for _, mc := range mergeCells {
		startCol, startRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			continue
		}
		for row := startRow; row <= endRow; row++ {
			for col := startCol; col <= endCol; col++ {
				s.merges[cellRef{row, col}] = cellRef{startRow, startCol}
			}
		}
	}

	return s, nil
}

func (s *xlsxSheet) Cell(row, col int) (string, error) {
	if anchor, ok := s.merges[cellRef{row, col}]; ok {
		row, col = anchor.row, anchor.col
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return s.file.GetCellValue(s.name, name)
}

func (s *xlsxSheet) Close() error {
	return s.file.Close()
}
