package cart

import (
	"encoding/json"
	"errors"

	"github.com/pineneuron/meatstore-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Storage is the durable backend for cart snapshots: one namespaced key per
// session, overwritten whole on every mutation.
type Storage interface {
	// Load returns the stored snapshot, or nil when the key has none.
	Load(sessionKey string) (*models.CartSnapshot, error)
	Save(sessionKey string, snap models.CartSnapshot) error
	Delete(sessionKey string) error
}

// GormStorage keeps one snapshot row per session key.
type GormStorage struct {
	DB *gorm.DB
}

func (g GormStorage) Load(sessionKey string) (*models.CartSnapshot, error) {
	var rec models.CartRecord
	if err := g.DB.First(&rec, "session_key = ?", sessionKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var snap models.CartSnapshot
	if err := json.Unmarshal(rec.Snapshot, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (g GormStorage) Save(sessionKey string, snap models.CartSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	rec := models.CartRecord{SessionKey: sessionKey, Snapshot: data}
	return g.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"snapshot", "updated_at"}),
	}).Create(&rec).Error
}

func (g GormStorage) Delete(sessionKey string) error {
	return g.DB.Delete(&models.CartRecord{}, "session_key = ?", sessionKey).Error
}
