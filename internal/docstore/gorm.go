package docstore

import (
	"context" // Context for queries
	"time"    // Zero timestamps

	"money_tracker/internal/domain" // Importing domain models

	"github.com/google/uuid" // Record ids
	"gorm.io/gorm"           // GORM ORM library
	"gorm.io/gorm/clause"    // Upsert clauses
)

// GormStore keeps both collections in MySQL tables through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func profileRow(uid, email string) map[string]any {
	return map[string]any{
		"uid":         uid,
		"email":       email,
		"created_at":  gorm.Expr("CURRENT_TIMESTAMP(3)"), // Store clock, not ours
		"total_money": 0,
	}
}

func (s *GormStore) CreateProfile(ctx context.Context, uid, email string) error {
	err := s.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Clauses(clause.OnConflict{ // Overwrite an existing profile
			Columns:   []clause.Column{{Name: "uid"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "created_at", "total_money"}),
		}).
		Create(profileRow(uid, email)).Error
	return storeErr("createProfile", err)
}

func (s *GormStore) EnsureProfile(ctx context.Context, uid, email string) error {
	err := s.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Clauses(clause.OnConflict{DoNothing: true}). // Keep an existing profile
		Create(profileRow(uid, email)).Error
	return storeErr("ensureProfile", err)
}

func (s *GormStore) ListAll(ctx context.Context) ([]domain.TrackerRecord, error) {
	var records []domain.TrackerRecord // Records to be fetched
	if err := s.db.WithContext(ctx).Order("created_at").Find(&records).Error; err != nil {
		return nil, storeErr("listAll", err)
	}
	return records, nil
}

func (s *GormStore) Add(ctx context.Context, record domain.TrackerRecord) (string, error) {
	record.ID = uuid.NewString()   // Ids are assigned here, never by the caller
	record.CreatedAt = time.Time{} // autoCreateTime fills it on insert
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", storeErr("add", err)
	}
	return record.ID, nil
}

// Delete removes the record; an unknown id deletes nothing and succeeds.
func (s *GormStore) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.TrackerRecord{}).Error
	return storeErr("delete", err)
}
