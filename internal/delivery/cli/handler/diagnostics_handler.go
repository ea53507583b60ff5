package handler

import (
	"tekhe-dashboard/internal/usecase"
	"tekhe-dashboard/pkg/response"

	"github.com/spf13/cobra"
)

type DiagnosticsHandler struct {
	diagnosticsUsecase usecase.DiagnosticsUsecase
}

func NewDiagnosticsHandler(diagnosticsUsecase usecase.DiagnosticsUsecase) *DiagnosticsHandler {
	return &DiagnosticsHandler{diagnosticsUsecase: diagnosticsUsecase}
}

func (h *DiagnosticsHandler) Show(cmd *cobra.Command, args []string) error {
	actor, err := currentActor(cmd)
	if err != nil {
		return err
	}

	diagnostics, err := h.diagnosticsUsecase.Snapshot(cmd.Context(), actor)
	if err != nil {
		return response.InternalServerError(cmd.OutOrStdout(), "Failed to gather diagnostics")
	}

	return response.Success(cmd.OutOrStdout(), "Diagnostics gathered successfully", diagnostics)
}
