// internal/service/service.go
package service

import (
	"context"
	"time"

	"creditpath/internal/audit"
	"creditpath/internal/common/errors"
	"creditpath/internal/common/logger"
	"creditpath/internal/common/metrics"
	"creditpath/internal/dispute"
	"creditpath/internal/letters"
	"creditpath/internal/mail"
	"creditpath/internal/models"
)

// ProfileStore is the profile persistence surface the service needs.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*models.CreditProfile, error)
	Save(ctx context.Context, userID string, profile *models.CreditProfile) error
	Merge(ctx context.Context, userID string, partial map[string]interface{}) (*models.CreditProfile, error)
}

// AddressCache is the creditor address cache surface the service needs.
type AddressCache interface {
	Get(ctx context.Context, userID, rawName string) (*models.CreditorAddress, error)
	Save(ctx context.Context, userID string, addr models.CreditorAddress) error
}

// MailGateway is the dispatch surface the service needs.
type MailGateway interface {
	SendDispute(ctx context.Context, profile *models.CreditProfile, letterKey, target string, address *models.PostalAddress, items []models.NegativeItem) (models.DisputeRecord, error)
	SendToAllBureaus(ctx context.Context, profile *models.CreditProfile, letterKey string, items []models.NegativeItem) ([]models.DisputeRecord, error)
	TestMode() bool
}

// Service ties the stores, audit engine, tracker and mail gateway together
// behind the operations the HTTP layer exposes.
type Service struct {
	profiles  ProfileStore
	addresses AddressCache
	tracker   *dispute.Tracker
	gateway   MailGateway
	logger    logger.Logger
}

func New(profiles ProfileStore, addresses AddressCache, tracker *dispute.Tracker, gateway MailGateway, log logger.Logger) *Service {
	return &Service{
		profiles:  profiles,
		addresses: addresses,
		tracker:   tracker,
		gateway:   gateway,
		logger:    log,
	}
}

// RunAudit loads the user's profile and produces the full audit. A missing
// profile is an explicit not-found, never an empty audit.
func (s *Service) RunAudit(ctx context.Context, userID string) (*models.CreditAudit, error) {
	start := time.Now()

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := audit.Run(profile)

	metrics.AuditsCompleted.Inc()
	metrics.AuditDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("Audit completed", map[string]interface{}{
		"user_id":    userID,
		"phase":      result.ScorePhase,
		"candidates": len(result.DisputableItems),
	})

	return result, nil
}

// DisputeRequest is one dispatch request. Either LetterType names a catalog
// key directly, or Request carries free text for the intent matcher.
type DisputeRequest struct {
	LetterType string                `json:"letterType,omitempty"`
	Request    string                `json:"request,omitempty"`
	Target     string                `json:"target,omitempty"`
	Address    *models.PostalAddress `json:"address,omitempty"`
	Items      []models.NegativeItem `json:"items,omitempty"`
	AllBureaus bool                  `json:"allBureaus,omitempty"`
}

// DisputeResult reports what was sent. NeedsAddress is the non-error "ask
// the user for a mailing address" outcome: nothing was dispatched and the
// caller should collect an address for Target, then retry.
type DisputeResult struct {
	Records      []models.DisputeRecord `json:"records"`
	NeedsAddress bool                   `json:"needsAddress,omitempty"`
	Target       string                 `json:"target,omitempty"`
	TestMode     bool                   `json:"testMode"`
}

// SubmitDispute resolves the letter type and target, dispatches mail, and
// records the result. A carrier failure mid-bulk leaves the already-sent
// records tracked and returns them alongside the error.
func (s *Service) SubmitDispute(ctx context.Context, userID string, req DisputeRequest) (*DisputeResult, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	letterKey := req.LetterType
	target := req.Target
	if letterKey == "" {
		intent := letters.Match(req.Request)
		letterKey = intent.LetterType
		if target == "" && intent.Bureau != "" {
			target = intent.Bureau
		}
	}
	if _, ok := letters.Lookup(letterKey); !ok {
		return nil, errors.NewUnknownLetterTypeError(letterKey)
	}

	if req.AllBureaus {
		return s.sendToAllBureaus(ctx, userID, profile, letterKey, req.Items)
	}

	if target == "" {
		return &DisputeResult{NeedsAddress: true, TestMode: s.gateway.TestMode()}, nil
	}

	var address *models.PostalAddress
	if !mail.IsBureau(target) {
		address, err = s.resolveCreditorAddress(ctx, userID, target, req.Address)
		if err != nil {
			return nil, err
		}
		if address == nil {
			return &DisputeResult{NeedsAddress: true, Target: target, TestMode: s.gateway.TestMode()}, nil
		}
	}

	record, err := s.gateway.SendDispute(ctx, profile, letterKey, target, address, req.Items)
	if err != nil {
		return nil, err
	}
	if err := s.tracker.Track(ctx, userID, record); err != nil {
		return nil, err
	}

	return &DisputeResult{
		Records:  []models.DisputeRecord{record},
		TestMode: s.gateway.TestMode(),
	}, nil
}

func (s *Service) sendToAllBureaus(ctx context.Context, userID string, profile *models.CreditProfile, letterKey string, items []models.NegativeItem) (*DisputeResult, error) {
	records, sendErr := s.gateway.SendToAllBureaus(ctx, profile, letterKey, items)
	for _, record := range records {
		if err := s.tracker.Track(ctx, userID, record); err != nil {
			return &DisputeResult{Records: records, TestMode: s.gateway.TestMode()}, err
		}
	}
	return &DisputeResult{Records: records, TestMode: s.gateway.TestMode()}, sendErr
}

// resolveCreditorAddress returns the address to mail to, caching any
// explicitly supplied one for future disputes. A nil, nil return means the
// address is unknown and must be collected from the user.
func (s *Service) resolveCreditorAddress(ctx context.Context, userID, creditorName string, supplied *models.PostalAddress) (*models.PostalAddress, error) {
	if supplied != nil {
		entry := models.CreditorAddress{CreditorName: creditorName, Address: *supplied}
		if err := s.addresses.Save(ctx, userID, entry); err != nil {
			// The letter can still go out; only the cache write failed.
			s.logger.WithError(err).Warn("Creditor address cache write failed", map[string]interface{}{
				"user_id":  userID,
				"creditor": creditorName,
			})
		}
		return supplied, nil
	}

	cached, err := s.addresses.Get(ctx, userID, creditorName)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &cached.Address, nil
}

// SaveProfile stores a full profile, replacing any existing one.
func (s *Service) SaveProfile(ctx context.Context, userID string, profile *models.CreditProfile) error {
	return s.profiles.Save(ctx, userID, profile)
}

// MergeProfile shallow-merges a partial update into the stored profile.
func (s *Service) MergeProfile(ctx context.Context, userID string, partial map[string]interface{}) (*models.CreditProfile, error) {
	return s.profiles.Merge(ctx, userID, partial)
}

// GetProfile returns the stored profile for a user.
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.CreditProfile, error) {
	return s.profiles.Get(ctx, userID)
}

// DisputeStatus is the tracker view the status endpoint returns.
type DisputeStatus struct {
	History []models.DisputeRecord `json:"history"`
	Pending []models.DisputeRecord `json:"pending"`
	Overdue []models.DisputeRecord `json:"overdue"`
}

// GetDisputeStatus returns the full history plus the pending/overdue
// partitions as of now.
func (s *Service) GetDisputeStatus(ctx context.Context, userID string) (*DisputeStatus, error) {
	history, err := s.tracker.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	pending, err := s.tracker.Pending(ctx, userID)
	if err != nil {
		return nil, err
	}
	overdue, err := s.tracker.Overdue(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &DisputeStatus{History: history, Pending: pending, Overdue: overdue}, nil
}

// UpdateDisputeStatus transitions one record's status, recording an outcome
// when the transition is a resolution.
func (s *Service) UpdateDisputeStatus(ctx context.Context, userID, recordID string, status models.DisputeStatus, outcome models.DisputeOutcome) error {
	switch status {
	case models.DisputeResolved:
		if outcome == "" {
			outcome = models.OutcomePending
		}
		return s.tracker.Resolve(ctx, userID, recordID, outcome)
	case models.DisputeEscalated:
		return s.tracker.Escalate(ctx, userID, recordID)
	default:
		return s.tracker.SetStatus(ctx, userID, recordID, status)
	}
}
