package handler

import (
	"errors"

	"tekhe-dashboard/internal/converter"
	"tekhe-dashboard/internal/usecase"
	"tekhe-dashboard/pkg/response"
	"tekhe-dashboard/pkg/validator"

	"github.com/spf13/cobra"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
	validator        *validator.CustomValidator
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase, validator *validator.CustomValidator) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
		validator:        validator,
	}
}

func (h *DashboardHandler) GetKpis(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	req := filterRequest(cmd)
	if err := h.validator.Validate(&req); err != nil {
		return response.ValidationError(w, h.validator.FormatValidationErrors(err))
	}

	actor, err := currentActor(cmd)
	if err != nil {
		return err
	}

	kpis, err := h.dashboardUsecase.GetKpis(cmd.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, converter.ErrInvalidDateRange):
			return response.BadRequest(w, "From date is after to date")
		default:
			return response.InternalServerError(w, "Failed to compute KPIs")
		}
	}

	return response.Success(w, "KPIs computed successfully", kpis)
}
