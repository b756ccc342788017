// internal/notify/reminder.go
package notify

import (
	"context"
	"fmt"
	"strings"

	"creditpath/internal/common/config"
	"creditpath/internal/common/logger"
	"creditpath/internal/common/metrics"
	"creditpath/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// ProfileSource yields the contact details for a user.
type ProfileSource interface {
	Get(ctx context.Context, userID string) (*models.CreditProfile, error)
}

// OverdueSource yields users with dispute history and their overdue records.
type OverdueSource interface {
	Users(ctx context.Context) ([]string, error)
	Overdue(ctx context.Context, userID string) ([]models.DisputeRecord, error)
}

// Reminder sweeps dispute history for records past their response deadline
// and nudges the affected users by email and SMS. Failures for one user
// never stop the sweep; they are logged and counted.
type Reminder struct {
	cfg       config.NotificationConfig
	sesClient SESService
	snsClient SNSService
	profiles  ProfileSource
	disputes  OverdueSource
	logger    logger.Logger
}

func NewReminder(cfg config.NotificationConfig, sesClient SESService, snsClient SNSService, profiles ProfileSource, disputes OverdueSource, log logger.Logger) *Reminder {
	return &Reminder{
		cfg:       cfg,
		sesClient: sesClient,
		snsClient: snsClient,
		profiles:  profiles,
		disputes:  disputes,
		logger:    log.WithFields(map[string]interface{}{"component": "reminder"}),
	}
}

// Sweep runs one pass over every user with dispute history. It returns the
// number of users reminded.
func (r *Reminder) Sweep(ctx context.Context) (int, error) {
	users, err := r.disputes.Users(ctx)
	if err != nil {
		return 0, fmt.Errorf("list dispute users: %w", err)
	}

	reminded := 0
	for _, userID := range users {
		overdue, err := r.disputes.Overdue(ctx, userID)
		if err != nil {
			r.logger.WithError(err).Warn("Overdue lookup failed during sweep", map[string]interface{}{"user_id": userID})
			continue
		}
		if len(overdue) == 0 {
			continue
		}

		profile, err := r.profiles.Get(ctx, userID)
		if err != nil {
			r.logger.WithError(err).Warn("Profile lookup failed during sweep", map[string]interface{}{"user_id": userID})
			continue
		}

		if r.notify(ctx, userID, profile, overdue) {
			reminded++
		}
	}

	return reminded, nil
}

func (r *Reminder) notify(ctx context.Context, userID string, profile *models.CreditProfile, overdue []models.DisputeRecord) bool {
	subject := fmt.Sprintf("%d dispute(s) past the 30-day response window", len(overdue))
	body := reminderBody(profile.Name, overdue)
	sent := false

	if r.cfg.SES.Enabled && profile.Email != "" {
		_, err := r.sesClient.SendEmail(ctx, &ses.SendEmailInput{
			Destination: &types.Destination{
				ToAddresses: []string{profile.Email},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
			Source: aws.String(r.cfg.SES.FromEmail),
		})
		if err != nil {
			r.logger.WithError(err).Warn("Reminder email failed", map[string]interface{}{"user_id": userID})
		} else {
			metrics.RemindersSent.WithLabelValues("email").Inc()
			sent = true
		}
	}

	if r.cfg.SNS.Enabled && profile.Phone != "" {
		_, err := r.snsClient.Publish(ctx, &sns.PublishInput{
			PhoneNumber: aws.String(profile.Phone),
			Message:     aws.String(subject + ". Consider escalating; see your dispute tracker for next steps."),
		})
		if err != nil {
			r.logger.WithError(err).Warn("Reminder SMS failed", map[string]interface{}{"user_id": userID})
		} else {
			metrics.RemindersSent.WithLabelValues("sms").Inc()
			sent = true
		}
	}

	return sent
}

func reminderBody(name string, overdue []models.DisputeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThe following dispute(s) have passed their response deadline without a recorded reply:\n\n", name)
	for _, rec := range overdue {
		fmt.Fprintf(&b, "- %s to %s, sent %s (response was due %s)\n",
			rec.LetterName, rec.Target,
			rec.SentDate.Format("Jan 2, 2006"),
			rec.ResponseDue.Format("Jan 2, 2006"))
	}
	b.WriteString("\nUnder the FCRA you may now escalate. The usual next step is a Method of Verification request or a CFPB complaint.\n")
	return b.String()
}
