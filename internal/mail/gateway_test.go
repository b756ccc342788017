// internal/mail/gateway_test.go
package mail

import (
	"context"
	"testing"

	"creditpath/internal/common/errors"
	"creditpath/internal/common/logger"
	"creditpath/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCarrier struct {
	sent     []*LetterRequest
	failOn   int // 1-based index of the call that fails; 0 means never
	failWith error
	testMode bool
}

func (f *fakeCarrier) SendLetter(_ context.Context, letter *LetterRequest) (*SendResult, error) {
	f.sent = append(f.sent, letter)
	if f.failOn > 0 && len(f.sent) == f.failOn {
		return nil, f.failWith
	}
	return &SendResult{
		ID:             "ltr_" + letter.To.Name,
		TrackingNumber: "track_" + letter.To.Name,
		Price:          6.48,
	}, nil
}

func (f *fakeCarrier) TestMode() bool { return f.testMode }

func testProfile() *models.CreditProfile {
	return &models.CreditProfile{
		Name:    "Jordan Ellis",
		Address: "12 Maple St, Springfield, IL 62701",
	}
}

func TestGateway_SendDispute_BureauTarget(t *testing.T) {
	carrier := &fakeCarrier{testMode: true}
	gw := NewGateway(carrier, logger.Nop())

	items := []models.NegativeItem{{Type: models.ItemCollection, CreditorName: "Northstar Recovery"}}
	record, err := gw.SendDispute(context.Background(), testProfile(), "debt_validation", "Equifax", nil, items)
	require.NoError(t, err)

	assert.Equal(t, "debt_validation", record.LetterType)
	assert.Equal(t, "Debt Validation Demand", record.LetterName)
	assert.Equal(t, "equifax", record.Target)
	assert.Equal(t, models.DisputeSent, record.Status)
	assert.NotEmpty(t, record.CarrierID)
	assert.NotEmpty(t, record.TrackingNumber)
	assert.InDelta(t, 6.48, record.Cost, 0.001)
	assert.True(t, record.ResponseDue.After(record.SentDate))

	require.Len(t, carrier.sent, 1)
	assert.Equal(t, "Equifax Information Services LLC", carrier.sent[0].To.Name)
	assert.Contains(t, carrier.sent[0].Body, "Jordan Ellis")
	assert.Contains(t, carrier.sent[0].Body, "Northstar Recovery")
	assert.True(t, gw.TestMode())
}

func TestGateway_SendDispute_ExplicitAddress(t *testing.T) {
	carrier := &fakeCarrier{}
	gw := NewGateway(carrier, logger.Nop())

	addr := &models.PostalAddress{Name: "Northstar Recovery", Line1: "500 Collection Way", City: "Dallas", State: "TX", Zip: "75201"}
	record, err := gw.SendDispute(context.Background(), testProfile(), "pay_for_delete", "Northstar Recovery", addr, nil)
	require.NoError(t, err)

	assert.Equal(t, "Northstar Recovery", record.Target)
	require.Len(t, carrier.sent, 1)
	assert.Equal(t, "500 Collection Way", carrier.sent[0].To.Line1)
}

func TestGateway_SendDispute_UnknownLetterType(t *testing.T) {
	carrier := &fakeCarrier{}
	gw := NewGateway(carrier, logger.Nop())

	_, err := gw.SendDispute(context.Background(), testProfile(), "jedi_mind_trick", "experian", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownLetterType))
	assert.Empty(t, carrier.sent)
}

func TestGateway_SendDispute_NoAddressForNonBureauTarget(t *testing.T) {
	carrier := &fakeCarrier{}
	gw := NewGateway(carrier, logger.Nop())

	_, err := gw.SendDispute(context.Background(), testProfile(), "goodwill", "Capital One", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAddressNotFound))
	assert.Empty(t, carrier.sent)
}

func TestGateway_SendDispute_CarrierFailureProducesNoRecord(t *testing.T) {
	carrier := &fakeCarrier{failOn: 1, failWith: errors.NewMailSendFailedError(500, "internal error")}
	gw := NewGateway(carrier, logger.Nop())

	record, err := gw.SendDispute(context.Background(), testProfile(), "basic_bureau", "experian", nil, nil)
	require.Error(t, err)
	assert.Empty(t, record.ID)
}

func TestGateway_SendToAllBureaus_Order(t *testing.T) {
	carrier := &fakeCarrier{}
	gw := NewGateway(carrier, logger.Nop())

	records, err := gw.SendToAllBureaus(context.Background(), testProfile(), "verification_609", nil)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "experian", records[0].Target)
	assert.Equal(t, "equifax", records[1].Target)
	assert.Equal(t, "transunion", records[2].Target)
}

func TestGateway_SendToAllBureaus_PartialFailure(t *testing.T) {
	carrier := &fakeCarrier{failOn: 2, failWith: errors.NewMailSendFailedError(429, "rate limited")}
	gw := NewGateway(carrier, logger.Nop())

	records, err := gw.SendToAllBureaus(context.Background(), testProfile(), "basic_bureau", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	// Experian succeeded before the failure; TransUnion was never attempted.
	require.Len(t, records, 1)
	assert.Equal(t, "experian", records[0].Target)
	assert.Len(t, carrier.sent, 2)
}
