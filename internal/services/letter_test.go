package services

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-system/internal/entities"
)

func TestRenderRequestLetter(t *testing.T) {
	svc, err := NewLetterService()
	require.NoError(t, err)

	request := entities.Request{
		DfaNumber:          "ДФА-2024/118",
		BranchName:         "Филиал «Центральный»",
		ClientName:         "ООО «Ромашка»",
		INN:                "7701234567",
		InsuranceType:      InsuranceKasko,
		InsurancePeriod:    PeriodFullTerm,
		LeasingSubjectInfo: "легковой автомобиль LADA Vesta",
		HasFranchise:       false,
		HasInstallment:     true,
		HasAutostart:       true,
		HasCascoCE:         false,
		DateFrom:           null.TimeFrom(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		DateTo:             null.TimeFrom(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)),
	}

	letter, err := svc.RenderRequestLetter(request)
	require.NoError(t, err)

	// Значения из бланка уходят в письмо в точных формулировках.
	assert.Contains(t, letter, "Договор: ДФА-2024/118")
	assert.Contains(t, letter, "Лизингополучатель: ООО «Ромашка» (ИНН 7701234567)")
	assert.Contains(t, letter, "Вид страхования: КАСКО")
	assert.Contains(t, letter, "Срок страхования: на весь срок лизинга")
	assert.Contains(t, letter, "Период: с 01.03.2024 по 28.02.2025")
	assert.Contains(t, letter, "Предмет лизинга: легковой автомобиль LADA Vesta")
	assert.Contains(t, letter, "Франшиза: не требуется")
	assert.Contains(t, letter, "Рассрочка страховой премии: требуется")
}

func TestRenderRequestLetter_EmptyFields(t *testing.T) {
	svc, err := NewLetterService()
	require.NoError(t, err)

	letter, err := svc.RenderRequestLetter(entities.Request{
		InsuranceType:   InsuranceProperty,
		InsurancePeriod: PeriodOneYear,
	})
	require.NoError(t, err)

	assert.Contains(t, letter, "Договор: -")
	assert.Contains(t, letter, "Вид страхования: страхование имущества")
	assert.Contains(t, letter, "Срок страхования: 1 год")
	assert.NotContains(t, letter, "Период:")
	assert.NotContains(t, letter, "ИНН")
}

func TestRenderRequestLetter_Idempotent(t *testing.T) {
	svc, err := NewLetterService()
	require.NoError(t, err)

	request := entities.Request{DfaNumber: "ДФА-2024/120", InsuranceType: InsuranceSpecTech}

	first, err := svc.RenderRequestLetter(request)
	require.NoError(t, err)
	second, err := svc.RenderRequestLetter(request)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
