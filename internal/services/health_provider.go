package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/dbctx"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/repos"
	"github.com/hearthstack/homescore-backend/internal/types"
)

// HealthInput is the health component feed for the composite score.
type HealthInput struct {
	// Score is nil when no health observation exists yet.
	Score *float64
	// ConfidenceRatio is the fraction of expected profile facts present.
	ConfidenceRatio float64
}

// HealthProvider supplies the property-condition component. The composite
// treats it as an external collaborator so a richer upstream model can be
// swapped in without touching the aggregation path.
type HealthProvider interface {
	Fetch(dbc dbctx.Context, propertyID uuid.UUID) (HealthInput, error)
}

type snapshotHealthProvider struct {
	db         *gorm.DB
	log        *logger.Logger
	properties repos.PropertyRepo
	snapshots  repos.ScoreSnapshotRepo
}

// NewSnapshotHealthProvider reads the latest persisted HEALTH snapshot and
// derives confidence from profile completeness.
func NewSnapshotHealthProvider(db *gorm.DB, baseLog *logger.Logger, properties repos.PropertyRepo, snapshots repos.ScoreSnapshotRepo) HealthProvider {
	return &snapshotHealthProvider{
		db:         db,
		log:        baseLog.With("service", "HealthProvider"),
		properties: properties,
		snapshots:  snapshots,
	}
}

func (p *snapshotHealthProvider) Fetch(dbc dbctx.Context, propertyID uuid.UUID) (HealthInput, error) {
	var in HealthInput

	facts, err := p.properties.GetFacts(dbc.Ctx, dbc.Tx, propertyID)
	if err != nil {
		return in, err
	}
	in.ConfidenceRatio = facts.CompletenessRatio()

	snap, err := p.snapshots.LatestByPropertyAndType(dbc.Ctx, dbc.Tx, propertyID, types.ScoreTypeHealth)
	if err != nil {
		return in, err
	}
	if snap != nil {
		score := snap.Score
		in.Score = &score
	}
	return in, nil
}
