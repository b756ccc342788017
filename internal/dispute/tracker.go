// internal/dispute/tracker.go
package dispute

import (
	"context"
	"time"

	"creditpath/internal/common/logger"
	"creditpath/internal/models"

	"github.com/google/uuid"
)

// FCRA gives a furnisher 30 days to investigate; the extra 5 days before
// escalation cover mail transit.
const (
	ResponseWindow   = 30 * 24 * time.Hour
	EscalationWindow = 35 * 24 * time.Hour
)

// HistoryStore is the append-only per-user dispute history the tracker runs
// over. Implementations must exclude records missing letter_type or target
// from ListAll (tolerant reads).
type HistoryStore interface {
	Append(ctx context.Context, userID string, record models.DisputeRecord) error
	ListAll(ctx context.Context, userID string) ([]models.DisputeRecord, error)
	UpdateStatus(ctx context.Context, userID, recordID string, status models.DisputeStatus, outcome models.DisputeOutcome) error
}

// NewRecord builds a sent dispute record with its deadlines fixed at
// creation. Deadlines use fixed durations so sent + 30 days holds exactly
// for any timestamp.
func NewRecord(letterType, letterName, target, recipientName string, items []models.NegativeItem, sentDate time.Time) models.DisputeRecord {
	return models.DisputeRecord{
		ID:             uuid.NewString(),
		LetterType:     letterType,
		LetterName:     letterName,
		Target:         target,
		RecipientName:  recipientName,
		Items:          items,
		SentDate:       sentDate,
		ResponseDue:    sentDate.Add(ResponseWindow),
		EscalationDate: sentDate.Add(EscalationWindow),
		Status:         models.DisputeSent,
	}
}

// Tracker derives the pending/overdue partitions of a user's dispute history
// from wall-clock time at query time. It holds no state of its own; the
// injected store is the single source of truth.
type Tracker struct {
	store  HistoryStore
	logger logger.Logger
	now    func() time.Time
}

func NewTracker(store HistoryStore, log logger.Logger) *Tracker {
	return &Tracker{
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "dispute_tracker"}),
		now:    time.Now,
	}
}

// Track appends a freshly sent record to the user's history.
func (t *Tracker) Track(ctx context.Context, userID string, record models.DisputeRecord) error {
	if err := t.store.Append(ctx, userID, record); err != nil {
		return err
	}
	t.logger.Info("dispute tracked", map[string]interface{}{
		"userId":     userID,
		"recordId":   record.ID,
		"letterType": record.LetterType,
		"deadline":   record.ResponseDue,
	})
	return nil
}

// History returns every readable record for the user.
func (t *Tracker) History(ctx context.Context, userID string) ([]models.DisputeRecord, error) {
	return t.store.ListAll(ctx, userID)
}

// Pending returns awaiting records whose response deadline is still ahead.
func (t *Tracker) Pending(ctx context.Context, userID string) ([]models.DisputeRecord, error) {
	return t.partition(ctx, userID, false)
}

// Overdue returns awaiting records whose response deadline has passed. A
// record leaves this view only through an explicit status change, never
// automatically.
func (t *Tracker) Overdue(ctx context.Context, userID string) ([]models.DisputeRecord, error) {
	return t.partition(ctx, userID, true)
}

func (t *Tracker) partition(ctx context.Context, userID string, overdue bool) ([]models.DisputeRecord, error) {
	records, err := t.store.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := t.now()
	matched := []models.DisputeRecord{}
	for _, r := range records {
		if !awaiting(r.Status) {
			continue
		}
		if overdue == r.ResponseDue.After(now) {
			continue
		}
		matched = append(matched, r)
	}
	return matched, nil
}

// awaiting reports whether a status still counts toward the pending/overdue
// partition. Resolved and escalated records are out regardless of deadline.
func awaiting(status models.DisputeStatus) bool {
	return status == models.DisputeSent || status == models.DisputeDelivered
}

// Resolve closes a record with its outcome.
func (t *Tracker) Resolve(ctx context.Context, userID, recordID string, outcome models.DisputeOutcome) error {
	return t.store.UpdateStatus(ctx, userID, recordID, models.DisputeResolved, outcome)
}

// Escalate marks a record as moved to the next remedy step.
func (t *Tracker) Escalate(ctx context.Context, userID, recordID string) error {
	return t.store.UpdateStatus(ctx, userID, recordID, models.DisputeEscalated, "")
}

// SetStatus applies an arbitrary lifecycle transition, for delivery and
// response-received updates.
func (t *Tracker) SetStatus(ctx context.Context, userID, recordID string, status models.DisputeStatus) error {
	return t.store.UpdateStatus(ctx, userID, recordID, status, "")
}
