package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawsense/pawsense-backend/internal/logger"
	pkgerrors "github.com/pawsense/pawsense-backend/internal/pkg/errors"
	"github.com/pawsense/pawsense-backend/internal/types"
)

type RiskAssessmentRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, assessment *types.RiskAssessment) (*types.RiskAssessment, error)
	GetByDate(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, date time.Time) (*types.RiskAssessment, error)
	GetLatest(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID) (*types.RiskAssessment, error)
}

type riskAssessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRiskAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) RiskAssessmentRepo {
	return &riskAssessmentRepo{db: db, log: baseLog.With("repo", "RiskAssessmentRepo")}
}

// Upsert replaces the assessment for (owner, pet, assessment_date) when one
// already exists. Re-running an analysis on the same day therefore overwrites
// rather than duplicates; concurrent runs are last-writer-wins.
func (r *riskAssessmentRepo) Upsert(ctx context.Context, tx *gorm.DB, assessment *types.RiskAssessment) (*types.RiskAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "owner_id"},
			{Name: "pet_id"},
			{Name: "assessment_date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"overall_risk_score",
			"risk_categories",
			"risk_factors",
			"recommendations",
			"trend_direction",
			"updated_at",
		}),
	}).Create(assessment).Error; err != nil {
		return nil, err
	}
	return assessment, nil
}

func (r *riskAssessmentRepo) GetByDate(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, date time.Time) (*types.RiskAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.RiskAssessment
	err := transaction.WithContext(ctx).
		Where("pet_id = ? AND owner_id = ? AND assessment_date = ?", petID, ownerID, date).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *riskAssessmentRepo) GetLatest(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID) (*types.RiskAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.RiskAssessment
	err := transaction.WithContext(ctx).
		Where("pet_id = ? AND owner_id = ?", petID, ownerID).
		Order("assessment_date DESC").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}
