package dto

// ActorRequest is the caller descriptor taken from the command line
type ActorRequest struct {
	ID    string `json:"id" validate:"required,max=64"`
	Role  string `json:"role" validate:"required,max=64"`
	Scope string `json:"scope" validate:"omitempty,max=64"`
}
