package expenses

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

// ExpenseDTO is the API representation of an expense.
type ExpenseDTO struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    *string         `json:"category,omitempty"`
	DateSpent   types.Date      `json:"date_spent"`
	RecordedBy  *int64          `json:"recorded_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateExpenseRequest is the payload for recording an expense.
type CreateExpenseRequest struct {
	Description string          `json:"description" validate:"required,max=255"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Category    *string         `json:"category" validate:"omitempty,max=50"`
	DateSpent   types.Date      `json:"date_spent" validate:"required"`
}

// UpdateExpenseRequest carries partial expense edits.
type UpdateExpenseRequest struct {
	Description *string          `json:"description" validate:"omitempty,max=255"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category" validate:"omitempty,max=50"`
	DateSpent   *types.Date      `json:"date_spent"`
}

// ListFilter narrows the expense listing to a spending window.
type ListFilter struct {
	DateFrom   *types.Date
	DateTo     *types.Date
	Pagination pagination.Params
}

// FromModel converts a stored expense into its DTO.
func FromModel(e *models.Expense) *ExpenseDTO {
	return &ExpenseDTO{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		DateSpent:   types.DateOf(e.DateSpent),
		RecordedBy:  e.RecordedBy,
		CreatedAt:   e.CreatedAt,
	}
}

// FromModels converts an expense slice into DTOs.
func FromModels(rows []models.Expense) []ExpenseDTO {
	out := make([]ExpenseDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
