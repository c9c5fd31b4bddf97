package utils

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileHeader(name, contentType string, size int64) *multipart.FileHeader {
	h := &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   make(textproto.MIMEHeader),
	}
	if contentType != "" {
		h.Header.Set("Content-Type", contentType)
	}
	return h
}

func xlsxContent() io.ReadSeeker {
	return bytes.NewReader(append([]byte{0x50, 0x4B, 0x03, 0x04}, []byte("...")...))
}

func xlsContent() io.ReadSeeker {
	return bytes.NewReader(append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, []byte("...")...))
}

func TestValidateFile_AcceptsExcelFormats(t *testing.T) {
	cases := []struct {
		name        string
		filename    string
		contentType string
		content     io.ReadSeeker
	}{
		{"ooxml", "заявка.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", xlsxContent()},
		{"legacy", "заявка.xls", "application/vnd.ms-excel", xlsContent()},
		{"template", "бланк.xltx", "application/zip", xlsxContent()},
		{"octet-stream", "заявка.xlsx", "application/octet-stream", xlsxContent()},
		{"without content-type", "заявка.xlsx", "", xlsxContent()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			header := newFileHeader(tc.filename, tc.contentType, 1024)
			assert.NoError(t, ValidateFile(header, tc.content, "insurance_request"))
		})
	}
}

func TestValidateFile_RejectsDisallowedMimeType(t *testing.T) {
	header := newFileHeader("заявка.xlsx", "text/html", 1024)

	err := ValidateFile(header, xlsxContent(), "insurance_request")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "недопустимый тип файла")
}

func TestValidateFile_MimeTypeParametersIgnored(t *testing.T) {
	header := newFileHeader("заявка.xlsx", "application/zip; charset=utf-8", 1024)
	assert.NoError(t, ValidateFile(header, xlsxContent(), "insurance_request"))
}

func TestValidateFile_RejectsDisallowedExtension(t *testing.T) {
	header := newFileHeader("заявка.pdf", "application/octet-stream", 1024)

	err := ValidateFile(header, xlsxContent(), "insurance_request")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "недопустимое расширение")
}

func TestValidateFile_RejectsOversizedFile(t *testing.T) {
	header := newFileHeader("заявка.xlsx", "application/zip", 21*1024*1024)

	err := ValidateFile(header, xlsxContent(), "insurance_request")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "превышает лимит")
}

func TestValidateFile_RejectsWrongSignature(t *testing.T) {
	header := newFileHeader("заявка.xlsx", "application/zip", 1024)
	content := bytes.NewReader([]byte("<html>не таблица</html>"))

	err := ValidateFile(header, content, "insurance_request")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "не является таблицей Excel")
}

func TestValidateFile_UnknownContext(t *testing.T) {
	header := newFileHeader("заявка.xlsx", "application/zip", 1024)

	err := ValidateFile(header, xlsxContent(), "avatars")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "неизвестный контекст загрузки")
}

func TestValidateFile_ResetsReaderPosition(t *testing.T) {
	header := newFileHeader("заявка.xlsx", "application/zip", 1024)
	content := xlsxContent()
	require.NoError(t, ValidateFile(header, content, "insurance_request"))

	pos, err := content.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}
