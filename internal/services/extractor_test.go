package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"insurance-system/pkg/spreadsheet"
)

// fakeSheet - лист в памяти для тестов извлечения.
type fakeSheet struct {
	cells map[[2]int]string
	fail  map[[2]int]bool
}

func newFakeSheet() *fakeSheet {
	return &fakeSheet{
		cells: make(map[[2]int]string),
		fail:  make(map[[2]int]bool),
	}
}

func (s *fakeSheet) set(row, col int, v string) {
	s.cells[[2]int{row, col}] = v
}

func (s *fakeSheet) Cell(row, col int) (string, error) {
	if s.fail[[2]int{row, col}] {
		return "", errors.New("битая запись листа")
	}
	return s.cells[[2]int{row, col}], nil
}

func newTestExtractor() *FieldExtractor {
	return NewFieldExtractor(zap.NewNop())
}

func TestExtract_EmptySheetDefaults(t *testing.T) {
	res := newTestExtractor().Extract(newFakeSheet(), EntityLegal)

	assert.Equal(t, "", res.DfaNumber)
	assert.Equal(t, "", res.Branch)
	assert.Equal(t, "", res.ClientName)
	assert.Equal(t, "", res.INN)
	assert.Equal(t, InsuranceProperty, res.InsuranceType)
	assert.Equal(t, PeriodOneYear, res.InsurancePeriod)
	assert.Equal(t, "", res.LeasingSubjectInfo)
	assert.True(t, res.HasFranchise)
	assert.True(t, res.HasInstallment)
	assert.True(t, res.HasAutostart)
	assert.False(t, res.HasCascoCE)
}

func TestExtract_LegalEntity(t *testing.T) {
	sheet := newFakeSheet()
	sheet.set(2, 4, "ДФА-2024/118")
	sheet.set(3, 4, "Филиал «Центральный»")
	sheet.set(9, 3, "ООО «Ромашка»")
	sheet.set(10, 3, "7701234567")
	sheet.set(21, 4, "х") // маркер КАСКО
	sheet.set(18, 14, "х")
	sheet.set(43, 3, "легковой автомобиль")
	sheet.set(29, 4, "без франшизы")
	sheet.set(33, 4, "нет")

	res := newTestExtractor().Extract(sheet, EntityLegal)

	assert.Equal(t, "ДФА-2024/118", res.DfaNumber)
	assert.Equal(t, "Филиал «Центральный»", res.Branch)
	assert.Equal(t, "ООО «Ромашка»", res.ClientName)
	assert.Equal(t, "7701234567", res.INN)
	assert.Equal(t, InsuranceKasko, res.InsuranceType)
	assert.Equal(t, PeriodFullTerm, res.InsurancePeriod)
	assert.Equal(t, "легковой автомобиль", res.LeasingSubjectInfo)
	assert.False(t, res.HasFranchise)
	assert.True(t, res.HasInstallment)
	assert.False(t, res.HasAutostart)
}

// Для ИП все управляемые строки читаются на одну ниже, шапка - нет.
func TestExtract_SoleProprietorOffset(t *testing.T) {
	sheet := newFakeSheet()
	sheet.set(2, 4, "ДФА-2024/119")
	sheet.set(3, 4, "Филиал «Южный»")
	sheet.set(10, 3, "ИП Кузнецов А. В.") // строка 9 + 1
	sheet.set(11, 3, "770512345678")      // строка 10 + 1
	sheet.set(23, 4, "х")                 // маркер спецтехники, строка 22 + 1
	sheet.set(44, 3, "экскаватор JCB")    // строка 43 + 1

	ex := newTestExtractor()

	res := ex.Extract(sheet, EntitySoleProprietor)
	assert.Equal(t, "ДФА-2024/119", res.DfaNumber)
	assert.Equal(t, "Филиал «Южный»", res.Branch)
	assert.Equal(t, "ИП Кузнецов А. В.", res.ClientName)
	assert.Equal(t, "770512345678", res.INN)
	assert.Equal(t, InsuranceSpecTech, res.InsuranceType)
	assert.Equal(t, "экскаватор JCB", res.LeasingSubjectInfo)

	// Те же данные без смещения читаются мимо.
	asLegal := ex.Extract(sheet, EntityLegal)
	assert.Equal(t, "ДФА-2024/119", asLegal.DfaNumber, "шапка не смещается")
	assert.Equal(t, "", asLegal.ClientName)
	assert.Equal(t, InsuranceProperty, asLegal.InsuranceType)
}

func TestExtract_InsuranceTypePriority(t *testing.T) {
	ex := newTestExtractor()

	both := newFakeSheet()
	both.set(21, 4, "х")
	both.set(22, 4, "х")
	assert.Equal(t, InsuranceKasko, ex.Extract(both, EntityLegal).InsuranceType,
		"при двух маркерах побеждает КАСКО")

	spec := newFakeSheet()
	spec.set(22, 4, "х")
	assert.Equal(t, InsuranceSpecTech, ex.Extract(spec, EntityLegal).InsuranceType)

	none := newFakeSheet()
	assert.Equal(t, InsuranceProperty, ex.Extract(none, EntityLegal).InsuranceType)
}

func TestExtract_InsurancePeriod(t *testing.T) {
	ex := newTestExtractor()

	oneYear := newFakeSheet()
	oneYear.set(17, 14, "х")
	assert.Equal(t, PeriodOneYear, ex.Extract(oneYear, EntityLegal).InsurancePeriod)

	fullTerm := newFakeSheet()
	fullTerm.set(18, 14, "х")
	assert.Equal(t, PeriodFullTerm, ex.Extract(fullTerm, EntityLegal).InsurancePeriod)
}

func TestExtract_SubjectInfoOrderAndDedup(t *testing.T) {
	sheet := newFakeSheet()
	sheet.set(43, 3, "легковой автомобиль")
	sheet.set(44, 5, "LADA Vesta")

	res := newTestExtractor().Extract(sheet, EntityLegal)
	assert.Equal(t, "легковой автомобиль LADA Vesta", res.LeasingSubjectInfo)

	// Повтор значения в другой ячейке не дублируется.
	sheet.set(46, 7, "LADA Vesta")
	res = newTestExtractor().Extract(sheet, EntityLegal)
	assert.Equal(t, "легковой автомобиль LADA Vesta", res.LeasingSubjectInfo)
}

func TestExtract_CascoCEScan(t *testing.T) {
	ex := newTestExtractor()

	for col := 3; col <= 9; col++ {
		sheet := newFakeSheet()
		sheet.set(45, col, "E")
		assert.True(t, ex.Extract(sheet, EntityLegal).HasCascoCE, "колонка %d", col)
	}

	assert.False(t, ex.Extract(newFakeSheet(), EntityLegal).HasCascoCE)
}

func TestExtract_InvertedFlags(t *testing.T) {
	ex := newTestExtractor()

	sheet := newFakeSheet()
	sheet.set(29, 4, "без франшизы")
	sheet.set(30, 4, "единовременно")
	res := ex.Extract(sheet, EntityLegal)
	assert.False(t, res.HasFranchise)
	assert.False(t, res.HasInstallment)

	// Ячейка из одних пробелов считается пустой.
	blank := newFakeSheet()
	blank.set(29, 4, "   ")
	res = ex.Extract(blank, EntityLegal)
	assert.True(t, res.HasFranchise)
}

func TestExtract_Autostart(t *testing.T) {
	ex := newTestExtractor()

	for _, v := range []string{"нет", "Нет", " НЕТ "} {
		sheet := newFakeSheet()
		sheet.set(33, 4, v)
		assert.False(t, ex.Extract(sheet, EntityLegal).HasAutostart, "значение %q", v)
	}

	yes := newFakeSheet()
	yes.set(33, 4, "да")
	assert.True(t, ex.Extract(yes, EntityLegal).HasAutostart)
	assert.True(t, ex.Extract(newFakeSheet(), EntityLegal).HasAutostart)
}

func TestExtract_Idempotent(t *testing.T) {
	sheet := newFakeSheet()
	sheet.set(2, 4, "ДФА-2024/120")
	sheet.set(9, 3, "ООО «Вектор»")
	sheet.set(43, 3, "полуприцеп")

	ex := newTestExtractor()
	first := ex.Extract(sheet, EntityLegal)
	second := ex.Extract(sheet, EntityLegal)
	assert.Equal(t, first, second)
}

// Ошибка чтения одной ячейки не прерывает извлечение: поле получает
// значение по умолчанию, остальные поля читаются как обычно.
func TestExtract_DegradesOnCellError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ex := NewFieldExtractor(zap.New(core))

	sheet := newFakeSheet()
	sheet.set(9, 3, "ООО «Ромашка»")
	sheet.set(10, 3, "7701234567")
	sheet.fail[[2]int{10, 3}] = true

	res := ex.Extract(sheet, EntityLegal)

	assert.Equal(t, "ООО «Ромашка»", res.ClientName)
	assert.Equal(t, "", res.INN)

	entries := logs.FilterField(zap.String("field", "inn")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
}

// Бланк в старом бинарном формате и тот же бланк, пересобранный в OOXML,
// дают одинаковые извлечённые поля.
func TestExtract_SameFieldsFromXLSAndXLSX(t *testing.T) {
	cells := map[string]string{
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
	want := ExtractedFields{
		DfaNumber:          "ДФА-2024/118",
		Branch:             "Филиал Центральный",
		ClientName:         "ООО «Ромашка»",
		INN:                "7701234567",
		InsuranceType:      InsuranceKasko,
		InsurancePeriod:    PeriodOneYear,
		LeasingSubjectInfo: "легковой автомобиль LADA Vesta C/E",
		HasFranchise:       true,
		HasInstallment:     false,
		HasAutostart:       false,
		HasCascoCE:         true,
	}

	legacy, err := spreadsheet.OpenWorkbook(filepath.Join("testdata", "заявка.xls"))
	require.NoError(t, err)
	defer legacy.Close()

	f := excelize.NewFile()
	sheetName := f.GetSheetList()[0]
	for ref, v := range cells {
		require.NoError(t, f.SetCellValue(sheetName, ref, v))
	}
	xlsxPath := filepath.Join(t.TempDir(), "заявка.xlsx")
	require.NoError(t, f.SaveAs(xlsxPath))
	require.NoError(t, f.Close())

	modern, err := spreadsheet.OpenWorkbook(xlsxPath)
	require.NoError(t, err)
	defer modern.Close()

	ex := newTestExtractor()
	fromXLS := ex.Extract(legacy.Sheet(), EntityLegal)
	fromXLSX := ex.Extract(modern.Sheet(), EntityLegal)

	assert.Equal(t, want, fromXLS)
	assert.Equal(t, fromXLS, fromXLSX)
}
