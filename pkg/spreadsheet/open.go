package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnreadable - фатальная ошибка открытия книги: файл битый, пустой,
// запаролен или вообще не является таблицей Excel.
var ErrUnreadable = errors.New("файл повреждён или не является таблицей Excel")

var (
	sigZip  = []byte{0x50, 0x4B, 0x03, 0x04} // OOXML (.xlsx, .xltx)
	sigOLE2 = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1} // BIFF (.xls)
)

// Workbook - открытая книга. Держит файловый дескриптор только до Close,
// вызывающая сторона обязана закрывать книгу сразу после извлечения полей.
type Workbook struct {
	sheet   Reader
	closers []io.Closer
}

// OpenWorkbook определяет формат по сигнатуре файла и открывает книгу
// соответствующим бэкендом. Формат выбирается по содержимому, а не по
// расширению: переименованный файл не должен попадать не в тот парсер.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	header := make([]byte, 8)
	n, _ := io.ReadFull(f, header)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	switch {
	case bytes.HasPrefix(header[:n], sigZip):
		sheet, err := newXLSXSheet(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		return &Workbook{sheet: sheet, closers: []io.Closer{sheet, f}}, nil
	case bytes.HasPrefix(header[:n], sigOLE2):
		sheet, err := newXLSSheet(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		// BIFF-бэкенд читает строки лениво, дескриптор нужен до Close.
		return &Workbook{sheet: sheet, closers: []io.Closer{f}}, nil
	default:
		f.Close()
		return nil, fmt.Errorf("%w: неизвестная сигнатура файла", ErrUnreadable)
	}
}

// Sheet возвращает первый лист книги.
func (w *Workbook) Sheet() Reader {
	return w.sheet
}

func (w *Workbook) Close() error {
	var firstErr error
	for _, c := range w.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
