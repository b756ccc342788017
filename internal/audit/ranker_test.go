// internal/audit/ranker_test.go
package audit

import (
	"testing"

	"creditpath/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAssess_DispatchTable(t *testing.T) {
	tests := []struct {
		name         string
		item         models.NegativeItem
		wantGain     int
		wantProb     float64
		wantLetter   string
		wantPriority float64
	}{
		{
			name:         "late payment with reason goes to the bureau",
			item:         models.NegativeItem{Type: models.ItemLatePayment, CreditorName: "Apex Bank", DisputeReason: "paid on time, bank error"},
			wantGain:     30,
			wantProb:     0.65,
			wantLetter:   "basic_bureau",
			wantPriority: 19.5,
		},
		{
			name:         "late payment without reason gets a goodwill request",
			item:         models.NegativeItem{Type: models.ItemLatePayment, CreditorName: "Apex Bank"},
			wantGain:     30,
			wantProb:     0.35,
			wantLetter:   "goodwill",
			wantPriority: 10.5,
		},
		{
			name:         "collection",
			item:         models.NegativeItem{Type: models.ItemCollection, CreditorName: "Northstar Recovery"},
			wantGain:     45,
			wantProb:     0.55,
			wantLetter:   "debt_validation",
			wantPriority: 24.8,
		},
		{
			name:         "chargeoff",
			item:         models.NegativeItem{Type: models.ItemChargeoff, CreditorName: "Apex Bank"},
			wantGain:     40,
			wantProb:     0.40,
			wantLetter:   "chargeoff_removal",
			wantPriority: 16.0,
		},
		{
			name:         "inquiry",
			item:         models.NegativeItem{Type: models.ItemInquiry, CreditorName: "Retail Card Co"},
			wantGain:     8,
			wantProb:     0.70,
			wantLetter:   "unauthorized_inquiry",
			wantPriority: 5.6,
		},
		{
			name:         "bankruptcy falls through to the default row",
			item:         models.NegativeItem{Type: models.ItemBankruptcy, CreditorName: "Court"},
			wantGain:     20,
			wantProb:     0.50,
			wantLetter:   "basic_bureau",
			wantPriority: 10.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Assess(tt.item)
			assert.Equal(t, tt.wantGain, c.EstimatedScoreGain)
			assert.InDelta(t, tt.wantProb, c.SuccessProbability, 0.001)
			assert.Equal(t, tt.wantLetter, c.RecommendedLetterType)
			assert.InDelta(t, tt.wantPriority, c.PriorityScore, 0.001)
			assert.Equal(t, tt.item, c.Item)
		})
	}
}

func TestAssess_EscalationPathIdenticalForAllTypes(t *testing.T) {
	expected := []string{
		"Basic Bureau Dispute",
		"609 Verification",
		"611 Reinvestigation",
		"CFPB Complaint",
		"Intent to Sue",
		"FCRA Attorney",
	}

	for _, itemType := range []models.NegativeItemType{
		models.ItemLatePayment, models.ItemCollection, models.ItemChargeoff,
		models.ItemInquiry, models.ItemJudgment,
	} {
		c := Assess(models.NegativeItem{Type: itemType, CreditorName: "x"})
		assert.Equal(t, expected, c.EscalationPath, "type %s", itemType)
	}
}
