package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"mise/internal/domain/entity"
	"mise/internal/domain/repository"
	"mise/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const sessionKey = "session"

// sessionBlob is the private serialized form of a persisted session.
type sessionBlob struct {
	Token        string    `json:"token"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// sessionRepository implements repository.SessionRepository on the key-value
// table.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Save persists the session, replacing any previous one.
func (repo *sessionRepository) Save(ctx context.Context, session *entity.Session) error {
	blob := sessionBlob{
		Token:        session.Token,
		UserID:       session.UserID,
		RestaurantID: session.RestaurantID,
		ExpiresAt:    session.ExpiresAt,
		CreatedAt:    session.CreatedAt,
	}
	value, err := json.Marshal(blob)
	if err != nil {
		return errors.Wrap(err, "encode session blob")
	}

	entry := KVEntry{Key: sessionKey, Value: value, UpdatedAt: time.Now()}
	err = repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error

	return errors.Wrap(err, "persist session")
}

// Load returns the persisted session, or ErrSessionNotPersisted.
func (repo *sessionRepository) Load(ctx context.Context) (*entity.Session, error) {
	var entry KVEntry
	err := repo.db.WithContext(ctx).First(&entry, "key = ?", sessionKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotPersisted
		}

		return nil, errors.Wrap(err, "load session")
	}

	var blob sessionBlob
	if err := json.Unmarshal(entry.Value, &blob); err != nil {
		// A corrupt blob is unrecoverable; treat it as absent.
		return nil, repository.ErrSessionNotPersisted
	}

	return &entity.Session{
		Token:        blob.Token,
		UserID:       blob.UserID,
		RestaurantID: blob.RestaurantID,
		ExpiresAt:    blob.ExpiresAt,
		CreatedAt:    blob.CreatedAt,
	}, nil
}

// Clear removes the persisted session.
func (repo *sessionRepository) Clear(ctx context.Context) error {
	err := repo.db.WithContext(ctx).Delete(&KVEntry{}, "key = ?", sessionKey).Error

	return errors.Wrap(err, "clear session")
}
