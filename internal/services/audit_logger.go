package services

import (
	"context"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/hardik-python-lr/our-gate-backend/internal/logger"
	"go.uber.org/zap"
)

// ZapAuditLogger writes audit events as structured log lines.
type ZapAuditLogger struct {
	log *zap.Logger
}

func NewZapAuditLogger(log *zap.Logger) *ZapAuditLogger {
	return &ZapAuditLogger{log: log.Named("audit")}
}

func (a *ZapAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	if event.RequestID == "" {
		event.RequestID = logger.RequestIDFromContext(ctx)
	}
	fields := []zap.Field{
		zap.String("event_type", string(event.EventType)),
		zap.Uint("user_id", event.UserID),
		zap.Bool("success", event.Success),
		zap.Time("timestamp", event.Timestamp),
	}
	if event.Phone != "" {
		fields = append(fields, zap.String("phone", event.Phone))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", event.Metadata))
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error", event.ErrorMsg))
		a.log.Warn("audit", fields...)
		return
	}
	a.log.Info("audit", fields...)
}
