package middleware

import (
	"context"

	"tekhe-dashboard/internal/converter"
	"tekhe-dashboard/internal/delivery/dto"
	"tekhe-dashboard/internal/domain/entity"
	"tekhe-dashboard/pkg/response"
	"tekhe-dashboard/pkg/validator"

	"github.com/spf13/cobra"
)

type contextKey string

const ActorKey contextKey = "actor"

// Flag names read by Identify
const (
	FlagActorID = "actor-id"
	FlagRole    = "role"
	FlagScope   = "scope"
)

// RunE is a cobra command body
type RunE func(cmd *cobra.Command, args []string) error

type ActorMiddleware struct {
	validator *validator.CustomValidator
}

func NewActorMiddleware(validator *validator.CustomValidator) *ActorMiddleware {
	return &ActorMiddleware{validator: validator}
}

// Identify builds the Actor from the command flags and stores it in the
// command context. It does not authenticate anyone.
func (m *ActorMiddleware) Identify(next RunE) RunE {
	return func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		id, _ := flags.GetString(FlagActorID)
		role, _ := flags.GetString(FlagRole)
		scope, _ := flags.GetString(FlagScope)

		req := dto.ActorRequest{ID: id, Role: role, Scope: scope}
		if err := m.validator.Validate(&req); err != nil {
			return response.ValidationError(cmd.OutOrStdout(), m.validator.FormatValidationErrors(err))
		}

		ctx := context.WithValue(cmd.Context(), ActorKey, converter.ActorRequestToEntity(&req))
		cmd.SetContext(ctx)
		return next(cmd, args)
	}
}

// GetActorFromContext extracts the actor set by Identify
func GetActorFromContext(ctx context.Context) (entity.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(entity.Actor)
	return actor, ok
}
