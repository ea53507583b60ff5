package handler

import (
	"tekhe-dashboard/internal/delivery/cli/middleware"
	"tekhe-dashboard/internal/delivery/dto"
	"tekhe-dashboard/internal/domain/entity"
	"tekhe-dashboard/pkg/response"

	"github.com/spf13/cobra"
)

// Filter flag names shared by the listing commands
const (
	FlagStructure = "structure"
	FlagFrom      = "from"
	FlagTo        = "to"
)

// AddFilterFlags registers the structure and enrollment window flags on cmd
func AddFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String(FlagStructure, "", `structure refinement for district_responsible ("all" disables it)`)
	cmd.Flags().String(FlagFrom, "", "enrollment window start (YYYY-MM-DD)")
	cmd.Flags().String(FlagTo, "", "enrollment window end (YYYY-MM-DD)")
}

func filterRequest(cmd *cobra.Command) dto.FilterRequest {
	structure, _ := cmd.Flags().GetString(FlagStructure)
	from, _ := cmd.Flags().GetString(FlagFrom)
	to, _ := cmd.Flags().GetString(FlagTo)
	return dto.FilterRequest{StructureID: structure, From: from, To: to}
}

func currentActor(cmd *cobra.Command) (entity.Actor, error) {
	actor, ok := middleware.GetActorFromContext(cmd.Context())
	if !ok {
		return entity.Actor{}, response.Unauthorized(cmd.OutOrStdout(), "Actor information not found")
	}
	return actor, nil
}
