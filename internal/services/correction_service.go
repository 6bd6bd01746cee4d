package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/apperr"
	"github.com/hearthstack/homescore-backend/internal/platform/dbctx"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/repos"
	"github.com/hearthstack/homescore-backend/internal/types"
)

// SubmitCorrectionRequest is the service-level payload for a fact-fix
// submission. ProposedValue is kept opaque; the ledger stores whatever the
// user claims the value should be.
type SubmitCorrectionRequest struct {
	PropertyID    uuid.UUID
	SubmittedBy   uuid.UUID
	FieldKey      string
	Title         string
	Detail        string
	ProposedValue any
}

type CorrectionService interface {
	Submit(dbc dbctx.Context, req SubmitCorrectionRequest) (*types.Correction, error)
	List(dbc dbctx.Context, requesterID, propertyID uuid.UUID) ([]*types.Correction, error)
	// Resolve records the administrative APPLIED/REJECTED outcome. It does
	// not itself mutate the corrected fact.
	Resolve(dbc dbctx.Context, correctionID uuid.UUID, status string) error
}

type correctionService struct {
	db          *gorm.DB
	log         *logger.Logger
	properties  repos.PropertyRepo
	corrections repos.CorrectionRepo
	nowFn       func() time.Time
}

func NewCorrectionService(db *gorm.DB, baseLog *logger.Logger, properties repos.PropertyRepo, corrections repos.CorrectionRepo) CorrectionService {
	return &correctionService{
		db:          db,
		log:         baseLog.With("service", "CorrectionService"),
		properties:  properties,
		corrections: corrections,
		nowFn:       time.Now,
	}
}

func (s *correctionService) Submit(dbc dbctx.Context, req SubmitCorrectionRequest) (*types.Correction, error) {
	if req.FieldKey == "" {
		return nil, apperr.Newf(apperr.KindInvalidInput, "missing_field_key", "field_key is required")
	}
	prop, err := s.properties.GetOwned(dbc.Ctx, dbc.Tx, req.PropertyID, req.SubmittedBy)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, apperr.New(apperr.KindNotFound, "property_not_found", fmt.Errorf("property %s not found for user", req.PropertyID))
	}

	facts, err := s.properties.GetFacts(dbc.Ctx, dbc.Tx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	previous, err := encodeFieldValue(facts, req.FieldKey)
	if err != nil {
		return nil, err
	}
	proposed, err := json.Marshal(req.ProposedValue)
	if err != nil {
		return nil, apperr.New(apperr.KindInvalidInput, "unencodable_proposed_value", err)
	}

	title := req.Title
	if title == "" {
		title = "Correction to " + req.FieldKey
	}

	correction := &types.Correction{
		PropertyID:    req.PropertyID,
		FieldKey:      req.FieldKey,
		Title:         title,
		Detail:        req.Detail,
		PreviousValue: previous,
		ProposedValue: datatypes.JSON(proposed),
		Status:        types.CorrectionStatusSubmitted,
		SubmittedBy:   req.SubmittedBy,
		SubmittedAt:   s.nowFn(),
	}
	created, err := s.corrections.Create(dbc.Ctx, dbc.Tx, correction)
	if err != nil {
		return nil, err
	}
	s.log.Info("Correction submitted", "property_id", req.PropertyID, "field_key", req.FieldKey, "correction_id", created.ID)
	return created, nil
}

func (s *correctionService) List(dbc dbctx.Context, requesterID, propertyID uuid.UUID) ([]*types.Correction, error) {
	prop, err := s.properties.GetOwned(dbc.Ctx, dbc.Tx, propertyID, requesterID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, apperr.New(apperr.KindNotFound, "property_not_found", fmt.Errorf("property %s not found for user", propertyID))
	}
	return s.corrections.ListByProperty(dbc.Ctx, dbc.Tx, propertyID, 50)
}

func (s *correctionService) Resolve(dbc dbctx.Context, correctionID uuid.UUID, status string) error {
	if status != types.CorrectionStatusApplied && status != types.CorrectionStatusRejected {
		return apperr.Newf(apperr.KindInvalidInput, "invalid_correction_status", "status must be %s or %s", types.CorrectionStatusApplied, types.CorrectionStatusRejected)
	}
	return s.corrections.UpdateStatus(dbc.Ctx, dbc.Tx, correctionID, status, s.nowFn())
}

// encodeFieldValue captures the current value of the corrected field so the
// ledger row stays meaningful after the fact itself changes. Unknown keys
// record null rather than rejecting: the ledger accepts corrections for
// fields the profile does not model yet.
func encodeFieldValue(facts *types.PropertyFacts, fieldKey string) (datatypes.JSON, error) {
	var value any
	if facts != nil {
		switch fieldKey {
		case "year_built":
			value = facts.YearBuilt
		case "living_area_sqft":
			value = facts.LivingAreaSqFt
		case "heating_type":
			value = facts.HeatingType
		case "cooling_type":
			value = facts.CoolingType
		case "roof_install_year":
			value = facts.RoofInstallYear
		case "hvac_install_year":
			value = facts.HVACInstallYear
		case "water_heater_install_year":
			value = facts.WaterHeaterInstallYear
		case "electrical_panel_year":
			value = facts.ElectricalPanelYear
		case "detectors_install_year":
			value = facts.DetectorsInstallYear
		case "has_smoke_detectors":
			value = facts.HasSmokeDetectors
		case "has_co_detectors":
			value = facts.HasCODetectors
		case "has_drainage_issues":
			value = facts.HasDrainageIssues
		case "occupancy":
			value = facts.Occupancy
		}
	}
	b, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
