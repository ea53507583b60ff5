package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"tekhe-dashboard/internal/domain/entity"
	"tekhe-dashboard/pkg/validator"

	"github.com/kaptinlin/jsonschema"
	"github.com/sirupsen/logrus"
)

//go:embed schema.json
var schemaJSON []byte

var (
	ErrSchemaValidation = errors.New("dataset does not match schema")
	ErrInvalidRecord    = errors.New("dataset contains invalid records")
	ErrDuplicateRecord  = errors.New("dataset contains duplicate records")
)

// Snapshot is the read-only dataset the dashboard works on.
// Nothing mutates it after Load returns.
type Snapshot struct {
	Structures      []entity.Structure
	Patients        []entity.Patient
	Visits          []entity.Visit
	RiskAssessments []entity.RiskAssessment
	Referrals       []entity.Referral
	Immunizations   []entity.Immunization

	// Digest is the sha256 of the canonical (RFC 8785) JSON document
	Digest   string
	LoadedAt time.Time
}

// Loader turns a JSON document into a Snapshot. Ingestion is where record
// invariants are enforced: enum values, score range, one risk assessment
// per patient, unique ids.
type Loader struct {
	log       *logrus.Logger
	validator *validator.CustomValidator
	schema    *jsonschema.Schema
	now       func() time.Time
}

func NewLoader(log *logrus.Logger, v *validator.CustomValidator) (*Loader, error) {
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(schemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compile dataset schema: %w", err)
	}
	return &Loader{
		log:       log,
		validator: v,
		schema:    schema,
		now:       time.Now,
	}, nil
}

// LoadFile reads and loads the snapshot stored at path
func (l *Loader) LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	snapshot, err := l.Load(data)
	if err != nil {
		return nil, err
	}
	l.log.Infof("Dataset loaded: path=%s, patients=%d, referrals=%d, digest=%s",
		path, len(snapshot.Patients), len(snapshot.Referrals), snapshot.Digest[:12])
	return snapshot, nil
}

// Load validates and decodes a snapshot document
func (l *Loader) Load(data []byte) (*Snapshot, error) {
	result := l.schema.ValidateJSON(data)
	if !result.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidation, result.Errors)
	}

	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	if err := l.validator.Validate(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, l.validator.FormatValidationErrors(err))
	}

	digest, err := Digest(data)
	if err != nil {
		return nil, fmt.Errorf("digest dataset: %w", err)
	}

	snapshot, err := buildSnapshot(&doc)
	if err != nil {
		return nil, err
	}
	snapshot.Digest = digest
	snapshot.LoadedAt = l.now()
	return snapshot, nil
}

func buildSnapshot(doc *document) (*Snapshot, error) {
	s := &Snapshot{
		Structures:      make([]entity.Structure, 0, len(doc.Structures)),
		Patients:        make([]entity.Patient, 0, len(doc.Patients)),
		Visits:          make([]entity.Visit, 0, len(doc.Visits)),
		RiskAssessments: make([]entity.RiskAssessment, 0, len(doc.RiskAssessments)),
		Referrals:       make([]entity.Referral, 0, len(doc.Referrals)),
		Immunizations:   make([]entity.Immunization, 0, len(doc.Immunizations)),
	}

	structureIDs := make(map[string]struct{}, len(doc.Structures))
	for _, r := range doc.Structures {
		if _, dup := structureIDs[r.ID]; dup {
			return nil, fmt.Errorf("%w: structure %s", ErrDuplicateRecord, r.ID)
		}
		structureIDs[r.ID] = struct{}{}
		s.Structures = append(s.Structures, r.toEntity())
	}

	patientIDs := make(map[string]struct{}, len(doc.Patients))
	for _, r := range doc.Patients {
		if _, dup := patientIDs[r.ID]; dup {
			return nil, fmt.Errorf("%w: patient %s", ErrDuplicateRecord, r.ID)
		}
		patientIDs[r.ID] = struct{}{}
		p, err := r.toEntity()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		s.Patients = append(s.Patients, p)
	}

	visitIDs := make(map[string]struct{}, len(doc.Visits))
	for _, r := range doc.Visits {
		if _, dup := visitIDs[r.ID]; dup {
			return nil, fmt.Errorf("%w: visit %s", ErrDuplicateRecord, r.ID)
		}
		visitIDs[r.ID] = struct{}{}
		v, err := r.toEntity()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		s.Visits = append(s.Visits, v)
	}

	assessed := make(map[string]struct{}, len(doc.RiskAssessments))
	for _, r := range doc.RiskAssessments {
		if _, dup := assessed[r.PatientID]; dup {
			return nil, fmt.Errorf("%w: more than one risk assessment for patient %s", ErrDuplicateRecord, r.PatientID)
		}
		assessed[r.PatientID] = struct{}{}
		s.RiskAssessments = append(s.RiskAssessments, r.toEntity())
	}

	referralIDs := make(map[string]struct{}, len(doc.Referrals))
	for _, r := range doc.Referrals {
		if _, dup := referralIDs[r.ID]; dup {
			return nil, fmt.Errorf("%w: referral %s", ErrDuplicateRecord, r.ID)
		}
		referralIDs[r.ID] = struct{}{}
		ref, err := r.toEntity()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		s.Referrals = append(s.Referrals, ref)
	}

	immunizationIDs := make(map[string]struct{}, len(doc.Immunizations))
	for _, r := range doc.Immunizations {
		if _, dup := immunizationIDs[r.ID]; dup {
			return nil, fmt.Errorf("%w: immunization %s", ErrDuplicateRecord, r.ID)
		}
		immunizationIDs[r.ID] = struct{}{}
		imm, err := r.toEntity()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		s.Immunizations = append(s.Immunizations, imm)
	}

	return s, nil
}
