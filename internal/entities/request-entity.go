package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Request - заявка на страхование предмета лизинга, созданная из
// загруженного бланка Excel. Извлечённые поля копируются сюда один раз
// при создании, сам бланк хранится в файловом хранилище.
type Request struct {
	ID                 uint64
	DfaNumber          string
	BranchID           null.Uint64
	BranchName         string
	ClientName         string
	INN                string
	EntityType         string
	InsuranceType      string
	InsurancePeriod    string
	LeasingSubjectInfo string
	HasFranchise       bool
	HasInstallment     bool
	HasAutostart       bool
	HasCascoCE         bool
	FilePath           string
	Status             string
	DateFrom           null.Time
	DateTo             null.Time
	Comment            null.String
	CreatedByID        uint64
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Branch *Branch
}
