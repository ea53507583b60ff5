package handler

import (
	"errors"

	"tekhe-dashboard/internal/converter"
	"tekhe-dashboard/internal/usecase"
	"tekhe-dashboard/pkg/response"
	"tekhe-dashboard/pkg/validator"

	"github.com/spf13/cobra"
)

type QualityHandler struct {
	qualityUsecase usecase.QualityUsecase
	validator      *validator.CustomValidator
}

func NewQualityHandler(qualityUsecase usecase.QualityUsecase, validator *validator.CustomValidator) *QualityHandler {
	return &QualityHandler{
		qualityUsecase: qualityUsecase,
		validator:      validator,
	}
}

func (h *QualityHandler) Report(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	req := filterRequest(cmd)
	if err := h.validator.Validate(&req); err != nil {
		return response.ValidationError(w, h.validator.FormatValidationErrors(err))
	}

	actor, err := currentActor(cmd)
	if err != nil {
		return err
	}

	report, err := h.qualityUsecase.Report(cmd.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, converter.ErrInvalidDateRange):
			return response.BadRequest(w, "From date is after to date")
		default:
			return response.InternalServerError(w, "Failed to assess data quality")
		}
	}

	return response.Success(w, "Data quality assessed successfully", report)
}
