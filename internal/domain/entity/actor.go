package entity

// Role represents the dashboard role an actor signs in with
type Role string

// Role names
const (
	RoleAgent               Role = "agent"
	RoleFacilityManager     Role = "facility_manager"
	RoleDistrictManager     Role = "district_manager"
	RoleDistrictResponsible Role = "district_responsible"
	RoleNGOPartner          Role = "ngo_partner"
	RoleRegionalPartner     Role = "regional_partner"
	RoleGovernmentPartner   Role = "government_partner"
)

// Roles lists every known role in display order
var Roles = []Role{
	RoleAgent,
	RoleFacilityManager,
	RoleDistrictManager,
	RoleDistrictResponsible,
	RoleNGOPartner,
	RoleRegionalPartner,
	RoleGovernmentPartner,
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// IsPartner reports whether r belongs to the anonymized partner tier
func (r Role) IsPartner() bool {
	switch r {
	case RoleNGOPartner, RoleRegionalPartner, RoleGovernmentPartner:
		return true
	}
	return false
}

// Actor is the identity every scoping call is made on behalf of.
// Scope holds a structure id for facility managers, a district id for
// district roles and is empty for agents and partners.
type Actor struct {
	ID    string `json:"id" validate:"required"`
	Role  Role   `json:"role" validate:"required"`
	Scope string `json:"scope,omitempty"`
}

// Anonymized reports whether results for this actor must be anonymized
func (a Actor) Anonymized() bool {
	return a.Role.IsPartner()
}

// HasRole checks if the actor has any of the given roles
func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
