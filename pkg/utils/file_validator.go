package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"insurance-system/pkg/config"
)

var (
	zipSignature  = []byte{0x50, 0x4B, 0x03, 0x04}
	ole2Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// ValidateFile проверяет загруженный файл по правилам контекста: размер,
// расширение, заявленный MIME-тип и сигнатуру содержимого. Указатель файла
// возвращается в начало.
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, contextName string) error {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return fmt.Errorf("неизвестный контекст загрузки: %s", contextName)
	}

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return fmt.Errorf("размер файла (%d KB) превышает лимит в %d MB", fileHeader.Size/1024, rules.MaxSizeMB)
		}
	}

	if len(rules.AllowedExtensions) > 0 {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !slices.Contains(rules.AllowedExtensions, ext) {
			return fmt.Errorf("недопустимое расширение файла: %s", ext)
		}
	}

	// Content-Type выставляет клиент, поэтому пустой заголовок допускаем,
	// а заявленный чужой тип отклоняем сразу.
	if len(rules.AllowedMimeTypes) > 0 {
		if mimeType := fileHeader.Header.Get("Content-Type"); mimeType != "" {
			mimeType = strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
			if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
				return fmt.Errorf("недопустимый тип файла: %s", mimeType)
			}
		}
	}

	buffer := make([]byte, 8)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("не удалось прочитать файл для определения типа")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("не удалось сбросить указатель файла")
	}

	if !bytes.HasPrefix(buffer[:n], zipSignature) && !bytes.HasPrefix(buffer[:n], ole2Signature) {
		return fmt.Errorf("файл не является таблицей Excel")
	}

	return nil
}
