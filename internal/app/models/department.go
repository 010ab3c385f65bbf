package models

// Department groups parcours and owns the completion thresholds
type Department struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Code        string  `json:"code" db:"code"`
	Description *string `json:"description,omitempty" db:"description"`
	// EndComment is shown in the confirmation dialog before submitting
	EndComment string `json:"endComment" db:"end_comment"`
}
