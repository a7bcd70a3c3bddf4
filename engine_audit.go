package goGuard

import (
	"context"
	"errors"

	"github.com/MrEthical07/goGuard/storage"
	"github.com/google/uuid"
)

const (
	auditEventGuardAllow        = "guard_allow"
	auditEventGuardRedirect     = "guard_redirect"
	auditEventGuardStoreFailure = "guard_store_failure"
)

// AuditErrorCode is the stable error vocabulary written to AuditEvent.Error.
type AuditErrorCode string

const (
	auditErrStoreUnavailable AuditErrorCode = "store_unavailable"
	auditErrInternal         AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	clientID, _ := storage.ClientIDFromContext(ctx)
	event := AuditEvent{
		ID:        uuid.NewString(),
		Timestamp: e.clock.Now().UTC(),
		EventType: eventType,
		ClientID:  clientID,
		IP:        clientIPFromContext(ctx),
		Path:      requestPathFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, storage.ErrUnavailable):
		return auditErrStoreUnavailable
	default:
		return auditErrInternal
	}
}
