package dto

import "insurance-system/internal/entities"

type BranchDTO struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	ShortName string  `json:"short_name"`
	Email     *string `json:"email"`
}

func NewBranchDTO(e entities.Branch) BranchDTO {
	d := BranchDTO{
		ID:        e.ID,
		Name:      e.Name,
		ShortName: e.ShortName,
	}
	if e.Email.Valid {
		d.Email = &e.Email.String
	}
	return d
}
