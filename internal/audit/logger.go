package audit

import (
	"encoding/json"
	"log/slog"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// Sink persists one audit event.
type Sink interface {
	Log(ev Event) error
}

// Logger writes events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {
	log := models.AuditLog{
		Actor:    ev.Actor,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: encodeMetadata(ev.Metadata),
	}

	return l.db.Create(&log).Error
}

// SlogSink is used when there is no SQL database to hold the audit trail.
type SlogSink struct {
	logger *slog.Logger
}

func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Log(ev Event) error {
	attrs := []any{"actor", ev.Actor, "action", ev.Action, "entity", ev.Entity}
	if ev.EntityID != nil {
		attrs = append(attrs, "entity_id", *ev.EntityID)
	}
	if meta := encodeMetadata(ev.Metadata); meta != "" {
		attrs = append(attrs, "metadata", meta)
	}
	s.logger.Info("audit", attrs...)
	return nil
}

func encodeMetadata(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
