package middleware

import (
	"tekhe-dashboard/internal/domain/entity"
	"tekhe-dashboard/pkg/response"

	"github.com/spf13/cobra"
)

// RequireRole creates a middleware that checks if the actor has any of the required roles
// Actor is read from context (set by Identify)
func RequireRole(allowed ...entity.Role) func(RunE) RunE {
	return func(next RunE) RunE {
		return func(cmd *cobra.Command, args []string) error {
			actor, ok := GetActorFromContext(cmd.Context())
			if !ok {
				return response.Unauthorized(cmd.OutOrStdout(), "Actor information not found")
			}

			if !actor.HasRole(allowed...) {
				return response.Forbidden(cmd.OutOrStdout(), "You don't have permission to run this command")
			}

			return next(cmd, args)
		}
	}
}

// RequireField is a convenience middleware for field and facility roles
func RequireField(next RunE) RunE {
	return RequireRole(
		entity.RoleAgent,
		entity.RoleFacilityManager,
		entity.RoleDistrictManager,
		entity.RoleDistrictResponsible,
	)(next)
}

// RequireManager is a convenience middleware for facility and district roles
func RequireManager(next RunE) RunE {
	return RequireRole(
		entity.RoleFacilityManager,
		entity.RoleDistrictManager,
		entity.RoleDistrictResponsible,
	)(next)
}
