package handler

import (
	"errors"

	"tekhe-dashboard/internal/converter"
	"tekhe-dashboard/internal/usecase"
	"tekhe-dashboard/pkg/response"
	"tekhe-dashboard/pkg/validator"

	"github.com/spf13/cobra"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) List(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	req := filterRequest(cmd)
	if err := h.validator.Validate(&req); err != nil {
		return response.ValidationError(w, h.validator.FormatValidationErrors(err))
	}

	actor, err := currentActor(cmd)
	if err != nil {
		return err
	}

	patients, err := h.patientUsecase.List(cmd.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, converter.ErrInvalidDateRange):
			return response.BadRequest(w, "From date is after to date")
		default:
			return response.InternalServerError(w, "Failed to list patients")
		}
	}

	return response.Success(w, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) Detail(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	actor, err := currentActor(cmd)
	if err != nil {
		return err
	}

	patient, err := h.patientUsecase.Detail(cmd.Context(), actor, args[0])
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			return response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrDetailNotAllowed):
			return response.Forbidden(w, "Patient detail is not available to partner roles")
		default:
			return response.InternalServerError(w, "Failed to get patient")
		}
	}

	return response.Success(w, "Patient retrieved successfully", patient)
}
