package service

import (
	"context"
	"fmt"

	"event-judging/internal/models"
	"event-judging/internal/repository"
)

// Audit actions written by the workflow services
const (
	ActionCertify                = "certification.create"
	ActionResetCertifications    = "certification.reset"
	ActionRequestDeduction       = "deduction.request"
	ActionDecideDeduction        = "deduction.decide"
	ActionApplyDeduction         = "deduction.apply"
	ActionRequestUncertification = "uncertification.request"
	ActionSignUncertification    = "uncertification.sign"
	ActionRejectUncertification  = "uncertification.reject"
	ActionExecuteUncertification = "uncertification.execute"
)

// Audit resources
const (
	ResourceCertification   = "certification"
	ResourceDeduction       = "deduction_request"
	ResourceUncertification = "uncertification_request"
)

// AuditService handles audit logging
type AuditService struct {
	store Store
	now   Clock
}

// NewAuditService creates a new audit service
func NewAuditService(store Store) *AuditService {
	return &AuditService{store: store, now: systemClock}
}

// Record writes an audit entry through r, normally the repositories of the
// transaction performing the audited change, so the entry commits with it.
func (s *AuditService) Record(ctx context.Context, r *repository.Repositories, actor models.Actor, action, resource, resourceID, details string) error {
	entry := &models.AuditLog{
		ID:         newID(),
		UserID:     strPtr(actor.UserID),
		Action:     action,
		Resource:   resource,
		ResourceID: strPtr(resourceID),
		Details:    strPtr(fmt.Sprintf("role=%s %s", actor.Role, details)),
		CreatedAt:  s.now(),
	}
	return r.Audit.Create(ctx, entry)
}

// List returns audit entries matching the filter
func (s *AuditService) List(ctx context.Context, f repository.AuditFilter) ([]models.AuditLog, error) {
	return s.store.Read().Audit.List(ctx, f)
}
