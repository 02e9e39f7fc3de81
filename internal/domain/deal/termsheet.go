package deal

import (
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
)

// TermsheetStatus represents the publication state of a termsheet
type TermsheetStatus string

const (
	TermsheetStatusDraft     TermsheetStatus = "draft"
	TermsheetStatusPublished TermsheetStatus = "published"
	TermsheetStatusArchived  TermsheetStatus = "archived"
)

// Termsheet is a published terms document governing a deal. Once its completion
// date passes it becomes eligible for a close approval.
type Termsheet struct {
	shared.TenantAggregateRoot
	DealID            uuid.UUID
	TermsVersion      int
	Title             string
	Status            TermsheetStatus
	CompletionDate    *time.Time
	PublishedAt       *time.Time
	ClosedProcessedAt *time.Time
}

// IsMatured reports whether the termsheet is published, past its completion date
// and not yet processed for closing
func (t *Termsheet) IsMatured(now time.Time) bool {
	return t.Status == TermsheetStatusPublished &&
		t.CompletionDate != nil && !t.CompletionDate.After(now) &&
		t.ClosedProcessedAt == nil
}

// MarkCloseProcessed records that the close was carried out downstream of approval
func (t *Termsheet) MarkCloseProcessed(at time.Time) error {
	if t.ClosedProcessedAt != nil {
		return shared.NewDomainError("INVALID_STATE", "Termsheet close was already processed")
	}
	t.ClosedProcessedAt = &at
	t.Touch()
	t.IncrementVersion()
	return nil
}
