package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/society/backend/internal/domain/member"
	"github.com/society/backend/internal/domain/shared"
)

// AuditLogHandler writes one structured log line per member event
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates an audit handler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// Handle logs event
func (h *AuditLogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("society_id", event.SocietyID()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}
	switch e := event.(type) {
	case *member.MemberProvisionedEvent:
		fields = append(fields, zap.String("email", e.Email), zap.Bool("recovered_orphan", e.RecoveredOrphan))
	case *member.MemberRefreshedEvent:
		fields = append(fields, zap.String("email", e.Email), zap.Bool("metadata_synced", e.MetadataSynced))
	}
	h.logger.Info("Member event", fields...)
	return nil
}

// EventTypes returns the member event types
func (h *AuditLogHandler) EventTypes() []string {
	return []string{member.EventTypeMemberProvisioned, member.EventTypeMemberRefreshed}
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
