package services

import (
	"bytes"
	"fmt"
	"text/template"

	"insurance-system/internal/entities"
)

// Текст запроса котировок страховщикам. Шаблонный слой подставляет значения
// как есть, поэтому поля заявки приходят в него в точных формулировках
// бланка (вид страхования, срок, предмет лизинга).
const requestLetterTemplate = `Добрый день!

Просим предоставить коммерческое предложение по страхованию предмета лизинга.

Договор: {{.DfaNumber}}
Филиал: {{.Branch}}
Лизингополучатель: {{.ClientName}}{{if .INN}} (ИНН {{.INN}}){{end}}
Вид страхования: {{.InsuranceType}}
Срок страхования: {{.InsurancePeriod}}{{if .Period}}
Период: {{.Period}}{{end}}
Предмет лизинга: {{.LeasingSubject}}
Франшиза: {{.Franchise}}
Рассрочка страховой премии: {{.Installment}}
Автозапуск: {{.Autostart}}
Категория C/E по КАСКО: {{.CascoCE}}

С уважением,
отдел страхования`

type letterData struct {
	DfaNumber       string
	Branch          string
	ClientName      string
	INN             string
	InsuranceType   string
	InsurancePeriod string
	Period          string
	LeasingSubject  string
	Franchise       string
	Installment     string
	Autostart       string
	CascoCE         string
}

type LetterService struct {
	tmpl *template.Template
}

func NewLetterService() (*LetterService, error) {
	tmpl, err := template.New("request_letter").Parse(requestLetterTemplate)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора шаблона письма: %w", err)
	}
	return &LetterService{tmpl: tmpl}, nil
}

// RenderRequestLetter собирает текст письма страховщикам по заявке.
func (s *LetterService) RenderRequestLetter(request entities.Request) (string, error) {
	data := letterData{
		DfaNumber:       orDash(request.DfaNumber),
		Branch:          orDash(request.BranchName),
		ClientName:      orDash(request.ClientName),
		INN:             request.INN,
		InsuranceType:   request.InsuranceType,
		InsurancePeriod: request.InsurancePeriod,
		LeasingSubject:  orDash(request.LeasingSubjectInfo),
		Franchise:       yesNo(request.HasFranchise, "требуется", "не требуется"),
		Installment:     yesNo(request.HasInstallment, "требуется", "не требуется"),
		Autostart:       yesNo(request.HasAutostart, "есть", "нет"),
		CascoCE:         yesNo(request.HasCascoCE, "да", "нет"),
	}

	if request.DateFrom.Valid && request.DateTo.Valid {
		data.Period = fmt.Sprintf("с %s по %s",
			request.DateFrom.Time.Format("02.01.2006"),
			request.DateTo.Time.Format("02.01.2006"),
		)
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("ошибка формирования письма: %w", err)
	}
	return buf.String(), nil
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func yesNo(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}
