package handler

import (
	"errors"

	"tekhe-dashboard/internal/converter"
	"tekhe-dashboard/internal/usecase"
	"tekhe-dashboard/pkg/response"
	"tekhe-dashboard/pkg/validator"

	"github.com/spf13/cobra"
)

type ReferralHandler struct {
	referralUsecase usecase.ReferralUsecase
	validator       *validator.CustomValidator
}

func NewReferralHandler(referralUsecase usecase.ReferralUsecase, validator *validator.CustomValidator) *ReferralHandler {
	return &ReferralHandler{
		referralUsecase: referralUsecase,
		validator:       validator,
	}
}

func (h *ReferralHandler) List(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	req := filterRequest(cmd)
	if err := h.validator.Validate(&req); err != nil {
		return response.ValidationError(w, h.validator.FormatValidationErrors(err))
	}

	actor, err := currentActor(cmd)
	if err != nil {
		return err
	}

	referrals, err := h.referralUsecase.List(cmd.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, converter.ErrInvalidDateRange):
			return response.BadRequest(w, "From date is after to date")
		default:
			return response.InternalServerError(w, "Failed to list referrals")
		}
	}

	return response.Success(w, "Referrals retrieved successfully", referrals)
}
