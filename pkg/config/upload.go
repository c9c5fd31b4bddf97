package config

type UploadConfig struct {
	AllowedExtensions []string
	AllowedMimeTypes  []string
	MaxSizeMB         int64
	PathPrefix        string
}

var UploadContexts = map[string]UploadConfig{
	// Бланк заявки на страхование: устаревший бинарный .xls и OOXML .xlsx/.xltx.
	// OOXML-файлы браузеры часто отдают как zip или octet-stream, поэтому
	// итоговая проверка формата идёт по сигнатуре содержимого.
	"insurance_request": {
		AllowedExtensions: []string{".xls", ".xlsx", ".xltx"},
		AllowedMimeTypes: []string{
			"application/vnd.ms-excel",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.template",
			"application/zip",
			"application/octet-stream",
		},
		MaxSizeMB:  20,
		PathPrefix: "requests",
	},
}
