package dto

import (
	"time"

	"insurance-system/internal/entities"
)

// CreateRequestDTO - поля формы загрузки бланка (сам файл идёт отдельной
// частью multipart-запроса).
type CreateRequestDTO struct {
	EntityType string `form:"entity_type" validate:"required,oneof=legal_entity sole_proprietor"`
	Comment    string `form:"comment"`
}

type UpdateRequestDTO struct {
	Status   *string `json:"status" validate:"omitempty,oneof='Новая' 'В работе' 'Завершена'"`
	Comment  *string `json:"comment"`
	DateFrom *string `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   *string `json:"date_to" validate:"omitempty,datetime=2006-01-02"`
}

type RequestDTO struct {
	ID                 uint64  `json:"id"`
	DfaNumber          string  `json:"dfa_number"`
	BranchID           *uint64 `json:"branch_id"`
	BranchName         string  `json:"branch_name"`
	ClientName         string  `json:"client_name"`
	INN                string  `json:"inn"`
	EntityType         string  `json:"entity_type"`
	InsuranceType      string  `json:"insurance_type"`
	InsurancePeriod    string  `json:"insurance_period"`
	LeasingSubjectInfo string  `json:"leasing_subject_info"`
	HasFranchise       bool    `json:"has_franchise"`
	HasInstallment     bool    `json:"has_installment"`
	HasAutostart       bool    `json:"has_autostart"`
	HasCascoCE         bool    `json:"has_casco_ce"`
	FilePath           string  `json:"file_path"`
	Status             string  `json:"status"`
	DateFrom           *string `json:"date_from"`
	DateTo             *string `json:"date_to"`
	Comment            *string `json:"comment"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

func NewRequestDTO(e entities.Request) RequestDTO {
	d := RequestDTO{
		ID:                 e.ID,
		DfaNumber:          e.DfaNumber,
		BranchName:         e.BranchName,
		ClientName:         e.ClientName,
		INN:                e.INN,
		EntityType:         e.EntityType,
		InsuranceType:      e.InsuranceType,
		InsurancePeriod:    e.InsurancePeriod,
		LeasingSubjectInfo: e.LeasingSubjectInfo,
		HasFranchise:       e.HasFranchise,
		HasInstallment:     e.HasInstallment,
		HasAutostart:       e.HasAutostart,
		HasCascoCE:         e.HasCascoCE,
		FilePath:           e.FilePath,
		Status:             e.Status,
		CreatedAt:          e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          e.UpdatedAt.Format(time.RFC3339),
	}
	if e.BranchID.Valid {
		d.BranchID = &e.BranchID.Uint64
	}
	if e.DateFrom.Valid {
		v := e.DateFrom.Time.Format("2006-01-02")
		d.DateFrom = &v
	}
	if e.DateTo.Valid {
		v := e.DateTo.Time.Format("2006-01-02")
		d.DateTo = &v
	}
	if e.Comment.Valid {
		d.Comment = &e.Comment.String
	}
	return d
}
