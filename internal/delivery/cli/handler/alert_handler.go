package handler

import (
	"errors"

	"tekhe-dashboard/internal/delivery/dto"
	"tekhe-dashboard/internal/service"
	"tekhe-dashboard/internal/usecase"
	"tekhe-dashboard/pkg/response"
	"tekhe-dashboard/pkg/validator"

	"github.com/spf13/cobra"
)

type AlertHandler struct {
	alertUsecase usecase.AlertUsecase
	validator    *validator.CustomValidator
}

func NewAlertHandler(alertUsecase usecase.AlertUsecase, validator *validator.CustomValidator) *AlertHandler {
	return &AlertHandler{
		alertUsecase: alertUsecase,
		validator:    validator,
	}
}

func (h *AlertHandler) Escalate(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	req := dto.AlertRequest{PatientID: args[0]}
	if err := h.validator.Validate(&req); err != nil {
		return response.ValidationError(w, h.validator.FormatValidationErrors(err))
	}

	actor, err := currentActor(cmd)
	if err != nil {
		return err
	}

	dispatch, err := h.alertUsecase.Escalate(cmd.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlertRoleNotAllowed):
			return response.Forbidden(w, "Role is not allowed to raise SONU alerts")
		case errors.Is(err, service.ErrPatientOutOfScope):
			return response.NotFound(w, "Patient not found")
		case errors.Is(err, service.ErrNoRiskAssessment):
			return response.Conflict(w, "Patient has no risk assessment")
		case errors.Is(err, service.ErrRiskNotRed):
			return response.Conflict(w, "SONU alerts require a red risk level")
		default:
			return response.InternalServerError(w, "Failed to send SONU alert")
		}
	}

	return response.Success(w, "SONU alert sent successfully", dispatch)
}
