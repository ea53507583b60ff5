package dto

// FilterRequest narrows a query to one structure and an enrollment window.
// Dates are inclusive calendar days.
type FilterRequest struct {
	StructureID string `json:"structure_id" validate:"omitempty,max=64"`
	From        string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To          string `json:"to" validate:"omitempty,datetime=2006-01-02"`
}
