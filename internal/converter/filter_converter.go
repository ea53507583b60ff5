package converter

import (
	"errors"
	"time"

	"tekhe-dashboard/internal/delivery/dto"
	"tekhe-dashboard/internal/domain/entity"
)

const dateLayout = "2006-01-02"

var ErrInvalidDateRange = errors.New("from date is after to date")

// ActorRequestToEntity converts a validated ActorRequest to an Actor
func ActorRequestToEntity(req *dto.ActorRequest) entity.Actor {
	return entity.Actor{
		ID:    req.ID,
		Role:  entity.Role(req.Role),
		Scope: req.Scope,
	}
}

// FilterRequestToEntity parses a validated FilterRequest into a PatientFilter
func FilterRequestToEntity(req *dto.FilterRequest) (entity.PatientFilter, error) {
	filter := entity.PatientFilter{}
	if req == nil {
		return filter, nil
	}
	filter.StructureID = req.StructureID

	var err error
	if filter.Enrollment.From, err = parseDay(req.From); err != nil {
		return filter, err
	}
	if filter.Enrollment.To, err = parseDay(req.To); err != nil {
		return filter, err
	}

	r := filter.Enrollment
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return filter, ErrInvalidDateRange
	}
	return filter, nil
}

func parseDay(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
