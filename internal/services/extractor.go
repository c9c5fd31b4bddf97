package services

import (
	"strings"

	"go.uber.org/zap"

	"insurance-system/pkg/spreadsheet"
)

// Тип заявителя. Для ИП бланк заявки на одну строку длиннее в шапке,
// поэтому все поля со строк 9-49 смещаются на одну строку вниз.
type EntityType string

const (
	EntityLegal          EntityType = "legal_entity"
	EntitySoleProprietor EntityType = "sole_proprietor"
)

// Виды страхования и сроки. Эти строки подставляются в письма страховщикам
// как есть, сокращать или переформатировать их нельзя.
const (
	InsuranceKasko    = "КАСКО"
	InsuranceSpecTech = "спецтехника"
	InsuranceProperty = "страхование имущества"

	PeriodOneYear  = "1 год"
	PeriodFullTerm = "на весь срок лизинга"
)

// ExtractedFields - результат разбора одного бланка заявки.
// Пустые ячейки дают значения по умолчанию, извлечение не падает никогда.
type ExtractedFields struct {
	DfaNumber          string
	Branch             string
	ClientName         string
	INN                string
	InsuranceType      string
	InsurancePeriod    string
	LeasingSubjectInfo string
	HasFranchise       bool
	HasInstallment     bool
	HasAutostart       bool
	HasCascoCE         bool
}

// Номера строк бланка. Все управляемые строки (9-49) для ИП читаются со
// смещением +1, шапка (ДФА, филиал) остаётся на месте. Номера собраны в одном
// месте, чтобы смещение нельзя было забыть для отдельного поля.
const (
	rowDfaNumber = 2
	rowBranch    = 3

	rowClientName      = 9
	rowINN             = 10
	rowPeriodOneYear   = 17
	rowPeriodFullTerm  = 18
	rowTypeKasko       = 21
	rowTypeSpecTech    = 22
	rowFranchiseNone   = 29
	rowInstallmentNone = 30
	rowAutostart       = 33
	rowSubjectFirst    = 43
	rowCascoCE         = 45
	rowSubjectLast     = 49
)

const (
	colClient       = 3  // C
	colMarker       = 4  // D
	colPeriod       = 14 // N
	colSubjectFirst = 3  // C
	colSubjectLast  = 9  // I
)

// FieldExtractor разбирает бланк заявки: фиксированные ячейки, маркерные
// поля и диапазон описания предмета лизинга. Чистая функция от (лист, тип
// заявителя), своего состояния не держит.
type FieldExtractor struct {
	logger *zap.Logger
}

func NewFieldExtractor(logger *zap.Logger) *FieldExtractor {
	return &FieldExtractor{logger: logger}
}

func (e *FieldExtractor) Extract(sheet spreadsheet.Reader, entity EntityType) ExtractedFields {
	offset := 0
	if entity == EntitySoleProprietor {
		offset = 1
	}
	rd := &fieldReader{sheet: sheet, offset: offset, logger: e.logger}

	res := ExtractedFields{
		DfaNumber:  rd.header("dfa_number", rowDfaNumber, colMarker),
		Branch:     rd.header("branch", rowBranch, colMarker),
		ClientName: rd.cell("client_name", rowClientName, colClient),
		INN:        rd.cell("inn", rowINN, colClient),
	}

	// Маркерные поля: побеждает первый заполненный маркер, порядок правил
	// фиксирован (КАСКО проверяется раньше спецтехники).
	res.InsuranceType = rd.firstMarker("insurance_type", InsuranceProperty,
		markerRule{rowTypeKasko, colMarker, InsuranceKasko},
		markerRule{rowTypeSpecTech, colMarker, InsuranceSpecTech},
	)
	res.InsurancePeriod = rd.firstMarker("insurance_period", PeriodOneYear,
		markerRule{rowPeriodOneYear, colPeriod, PeriodOneYear},
		markerRule{rowPeriodFullTerm, colPeriod, PeriodFullTerm},
	)

	res.LeasingSubjectInfo = rd.subjectInfo()

	// Франшиза и рассрочка - инвертированные маркеры: заполненная ячейка
	// означает "без франшизы"/"без рассрочки".
	res.HasFranchise = rd.cell("has_franchise", rowFranchiseNone, colMarker) == ""
	res.HasInstallment = rd.cell("has_installment", rowInstallmentNone, colMarker) == ""
	res.HasAutostart = strings.ToLower(rd.cell("has_autostart", rowAutostart, colMarker)) != "нет"
	res.HasCascoCE = rd.anyInRow("has_casco_ce", rowCascoCE, colSubjectFirst, colSubjectLast)

	return res
}

type markerRule struct {
	row, col int
	value    string
}

type fieldReader struct {
	sheet  spreadsheet.Reader
	offset int
	logger *zap.Logger
}

// header читает ячейку шапки, смещение по типу заявителя не применяется.
func (r *fieldReader) header(field string, row, col int) string {
	return r.read(field, row, col)
}

// cell читает управляемую ячейку (строки 9-49) со смещением для ИП.
func (r *fieldReader) cell(field string, row, col int) string {
	return r.read(field, row+r.offset, col)
}

func (r *fieldReader) read(field string, row, col int) string {
	v, err := r.sheet.Cell(row, col)
	if err != nil {
		r.logger.Warn("не удалось прочитать ячейку, поле получит значение по умолчанию",
			zap.String("field", field),
			zap.Int("row", row),
			zap.Int("col", col),
			zap.Error(err),
		)
		return ""
	}
	return strings.TrimSpace(v)
}

func (r *fieldReader) firstMarker(field, fallback string, rules ...markerRule) string {
	for _, rule := range rules {
		if r.cell(field, rule.row, rule.col) != "" {
			return rule.value
		}
	}
	return fallback
}

func (r *fieldReader) anyInRow(field string, row, colFrom, colTo int) bool {
	for col := colFrom; col <= colTo; col++ {
		if r.cell(field, row, col) != "" {
			return true
		}
	}
	return false
}

// subjectInfo собирает описание предмета лизинга из блока 43-49 x C-I.
// Обход построчно слева направо, точные дубликаты отбрасываются, порядок
// первого вхождения сохраняется.
func (r *fieldReader) subjectInfo() string {
	seen := make(map[string]bool)
	var parts []string
	for row := rowSubjectFirst; row <= rowSubjectLast; row++ {
		for col := colSubjectFirst; col <= colSubjectLast; col++ {
			v := r.cell("leasing_subject_info", row, col)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
