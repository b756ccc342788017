// internal/mail/gateway.go
package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"creditpath/internal/common/errors"
	"creditpath/internal/common/logger"
	"creditpath/internal/common/metrics"
	"creditpath/internal/dispute"
	"creditpath/internal/letters"
	"creditpath/internal/models"
)

// Carrier is the slice of CarrierClient the gateway needs. Narrowed to an
// interface so tests can stub the network.
type Carrier interface {
	SendLetter(ctx context.Context, letter *LetterRequest) (*SendResult, error)
	TestMode() bool
}

// Gateway turns a dispute request into a mailed letter and the record that
// proves it. On any carrier failure no record is produced.
type Gateway struct {
	carrier Carrier
	logger  logger.Logger
	now     func() time.Time
}

func NewGateway(carrier Carrier, log logger.Logger) *Gateway {
	return &Gateway{
		carrier: carrier,
		logger:  log,
		now:     time.Now,
	}
}

// TestMode reports whether letters are being sent under a non-billing test
// key, so callers can tell the user no physical mail went out.
func (g *Gateway) TestMode() bool {
	return g.carrier.TestMode()
}

// SendDispute mails one dispute letter to a single target and returns the
// resulting record. Target is either a bureau identifier or an explicit
// postal address; bureau identifiers win when both would match.
func (g *Gateway) SendDispute(ctx context.Context, profile *models.CreditProfile, letterKey, target string, address *models.PostalAddress, items []models.NegativeItem) (models.DisputeRecord, error) {
	letterType, ok := letters.Lookup(letterKey)
	if !ok {
		return models.DisputeRecord{}, errors.NewUnknownLetterTypeError(letterKey)
	}

	to := models.PostalAddress{}
	switch {
	case IsBureau(target):
		to, _ = BureauAddress(target)
		target = strings.ToLower(target)
	case address != nil:
		to = *address
	default:
		return models.DisputeRecord{}, errors.NewAddressNotFoundError(target)
	}

	letter := &LetterRequest{
		Description:   fmt.Sprintf("%s for %s", letterType.Name, profile.Name),
		To:            to,
		From:          senderAddress(profile),
		Body:          renderBody(profile, letterType, to.Name, items),
		CertifiedMail: true,
	}

	result, err := g.carrier.SendLetter(ctx, letter)
	if err != nil {
		metrics.MailSendFailures.WithLabelValues(failureReason(err)).Inc()
		g.logger.WithError(err).Error("Dispute letter send failed", map[string]interface{}{
			"letter_type": letterKey,
			"target":      target,
		})
		return models.DisputeRecord{}, err
	}

	record := dispute.NewRecord(letterType.Key, letterType.Name, target, to.Name, items, g.now())
	record.CarrierID = result.ID
	record.TrackingNumber = result.TrackingNumber
	record.Cost = result.Price

	metrics.DisputeLettersSent.WithLabelValues(letterType.Key).Inc()
	g.logger.Info("Dispute letter sent", map[string]interface{}{
		"letter_type": letterType.Key,
		"target":      target,
		"carrier_id":  result.ID,
		"test_mode":   g.carrier.TestMode(),
	})

	return record, nil
}

// SendToAllBureaus mails the same dispute to the three bureaus one at a
// time, in fixed order. The loop stops at the first failure; records for
// bureaus already sent are returned alongside the error. Sequential on
// purpose, both for carrier rate limits and so per-bureau cost and tracking
// ordering is deterministic.
func (g *Gateway) SendToAllBureaus(ctx context.Context, profile *models.CreditProfile, letterKey string, items []models.NegativeItem) ([]models.DisputeRecord, error) {
	records := make([]models.DisputeRecord, 0, len(Bureaus))
	for _, bureau := range Bureaus {
		record, err := g.SendDispute(ctx, profile, letterKey, bureau, nil, items)
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
	return records, nil
}

func senderAddress(profile *models.CreditProfile) models.PostalAddress {
	return models.PostalAddress{
		Name:  profile.Name,
		Line1: profile.Address,
	}
}

// renderBody produces the boilerplate letter text. Templates stay
// deliberately plain; this is correspondence, not legal advice.
func renderBody(profile *models.CreditProfile, letterType letters.LetterType, recipient string, items []models.NegativeItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\n\n", recipient)
	fmt.Fprintf(&b, "Re: %s\n\n", letterType.Name)
	fmt.Fprintf(&b, "To whom it may concern,\n\n")
	fmt.Fprintf(&b, "I, %s, am writing to formally dispute the following item(s) on my credit file", profile.Name)
	if letterType.Citation != "" {
		fmt.Fprintf(&b, " under %s", letterType.Citation)
	}
	b.WriteString(":\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s reported by %s", item.Type, item.CreditorName)
		if item.DisputeReason != "" {
			fmt.Fprintf(&b, " (%s)", item.DisputeReason)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nI request that you investigate and correct or delete the item(s) above, and provide written confirmation of the outcome.\n\n")
	fmt.Fprintf(&b, "Sincerely,\n%s\n%s\n", profile.Name, profile.Address)
	return b.String()
}

func failureReason(err error) string {
	if errors.IsCode(err, errors.ErrCodeMailTimeout) {
		return "timeout"
	}
	if errors.IsCode(err, errors.ErrCodeMailSendFailed) {
		return "carrier"
	}
	return "network"
}
