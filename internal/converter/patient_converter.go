package converter

import (
	"tekhe-dashboard/internal/delivery/dto"
	"tekhe-dashboard/internal/domain/entity"

	"github.com/google/uuid"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(p *entity.Patient, districtID string, risk *entity.RiskAssessment) dto.PatientResponse {
	resp := dto.PatientResponse{
		ID:              p.ID,
		FullName:        p.FullName(),
		Phone:           p.Phone,
		QRCode:          p.QRCode,
		Age:             p.Age,
		AgeBand:         string(entity.AgeBandOf(p.Age)),
		GestationalWeek: p.GestationalWeek,
		LastPeriodDate:  formatDay(p.LastPeriodDate),
		ExpectedTerm:    formatDay(p.ExpectedTerm),
		StructureID:     p.StructureID,
		DistrictID:      districtID,
		AgentID:         p.AgentID,
		EnrollmentDate:  p.EnrollmentDate,
		CoverageStatus:  string(p.CoverageStatus),
	}
	if risk != nil {
		resp.RiskLevel = string(risk.Level)
	}
	return resp
}

// PatientToAnonymizedResponse strips every identifying field from a patient
// and labels the row with pseudonym
func PatientToAnonymizedResponse(p *entity.Patient, pseudonym uuid.UUID, districtID string, risk *entity.RiskAssessment) dto.AnonymizedPatientResponse {
	resp := dto.AnonymizedPatientResponse{
		Pseudonym:      pseudonym,
		AgeBand:        string(entity.AgeBandOf(p.Age)),
		DistrictID:     districtID,
		CoverageStatus: string(p.CoverageStatus),
	}
	if risk != nil {
		resp.RiskLevel = string(risk.Level)
	}
	return resp
}

func VisitToResponse(v *entity.Visit) dto.VisitResponse {
	return dto.VisitResponse{
		ID:            v.ID,
		Type:          string(v.Type),
		Status:        string(v.Status),
		Date:          v.Date,
		AgentID:       v.AgentID,
		WeightKg:      v.Vitals.WeightKg,
		BloodPressure: v.Vitals.BloodPressure,
		MUACcm:        v.Vitals.MUACcm,
		BMI:           v.Vitals.BMI,
		Hemoglobin:    v.Vitals.Hemoglobin,
	}
}

func RiskAssessmentToResponse(r *entity.RiskAssessment) *dto.RiskAssessmentResponse {
	if r == nil {
		return nil
	}
	return &dto.RiskAssessmentResponse{
		Level:      string(r.Level),
		Score:      r.Score,
		Factors:    r.Factors,
		Prediction: r.Prediction,
	}
}

func ImmunizationToResponse(i *entity.Immunization) dto.ImmunizationResponse {
	return dto.ImmunizationResponse{
		ID:       i.ID,
		Vaccine:  i.Vaccine,
		DueDate:  i.DueDate.Format(dateLayout),
		DoneDate: i.DoneDate,
		Status:   string(i.Status),
	}
}
