package models

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ActivityLog is an append-only audit record of a mutation.
type ActivityLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

// RecordActivity writes an activity log entry.
//
// Failures are logged and never returned, the mutation that triggered the
// entry has already happened.
func RecordActivity(db *gorm.DB, entityType, name, action string) {
	entry := ActivityLog{
		Type:      entityType,
		Name:      name,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}

	if err := db.Create(&entry).Error; err != nil {
		log.Error().Err(err).Str("type", entityType).Str("name", name).Str("action", action).Msg("could not record activity")
	}
}

// RecentActivities returns the latest activity log entries, newest first.
func RecentActivities(db *gorm.DB, limit int) ([]ActivityLog, error) {
	var entries []ActivityLog
	err := db.Order("id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
