package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sadat/internal/models"
	"sadat/internal/observability"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// snapshotRow is the single-row-per-slot table backing the SQLite adapter.
type snapshotRow struct {
	Slot      string `gorm:"primaryKey"`
	Data      []byte `gorm:"type:blob"`
	UpdatedAt time.Time
}

// TableName overrides the gorm table name.
func (snapshotRow) TableName() string {
	return "snapshots"
}

// SQLiteAdapter persists the snapshot as one row in an embedded SQLite file.
type SQLiteAdapter struct {
	db   *gorm.DB
	slot string
	log  *observability.Logger
}

// NewSQLite opens (and migrates) the SQLite database at path and binds the
// adapter to the given slot name. Use ":memory:" for a throwaway database.
func NewSQLite(path, slot string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrate snapshots table: %w", err)
	}
	return &SQLiteAdapter{
		db:   db,
		slot: slot,
		log:  observability.NewLogger("persist.sqlite"),
	}, nil
}

// Load reads and decodes the slot's snapshot.
func (a *SQLiteAdapter) Load(ctx context.Context) (*models.State, error) {
	var row snapshotRow
	err := a.db.WithContext(ctx).First(&row, "slot = ?", a.slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", a.slot, err)
	}
	state, err := Decode(row.Data)
	if errors.Is(err, ErrNoSnapshot) {
		a.log.Warn("snapshot payload malformed, resetting to defaults", "slot", a.slot)
	}
	return state, err
}

// Save upserts the slot's snapshot row.
func (a *SQLiteAdapter) Save(ctx context.Context, state *models.State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	row := snapshotRow{Slot: a.slot, Data: data, UpdatedAt: time.Now().UTC()}
	return a.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
}

// Clear removes the slot's snapshot row.
func (a *SQLiteAdapter) Clear(ctx context.Context) error {
	return a.db.WithContext(ctx).Delete(&snapshotRow{}, "slot = ?", a.slot).Error
}
