// internal/audit/ranker.go
package audit

import (
	"math"

	"creditpath/internal/models"
)

// EscalationPath is the remedy sequence attached to every dispute candidate,
// from first bureau letter to retaining counsel.
var EscalationPath = []string{
	"Basic Bureau Dispute",
	"609 Verification",
	"611 Reinvestigation",
	"CFPB Complaint",
	"Intent to Sue",
	"FCRA Attorney",
}

// Assess scores one negative item by expected value: estimated point gain
// weighted by the historical success rate for that item type. A late payment
// with a concrete dispute reason goes to the bureau; without one a goodwill
// request to the creditor has better odds than an unsupported dispute.
func Assess(item models.NegativeItem) models.DisputeCandidate {
	var (
		gain       int
		prob       float64
		letterType string
	)

	switch item.Type {
	case models.ItemLatePayment:
		gain = 30
		if item.DisputeReason != "" {
			prob = 0.65
			letterType = "basic_bureau"
		} else {
			prob = 0.35
			letterType = "goodwill"
		}
	case models.ItemCollection:
		gain = 45
		prob = 0.55
		letterType = "debt_validation"
	case models.ItemChargeoff:
		gain = 40
		prob = 0.40
		letterType = "chargeoff_removal"
	case models.ItemInquiry:
		gain = 8
		prob = 0.70
		letterType = "unauthorized_inquiry"
	default:
		gain = 20
		prob = 0.50
		letterType = "basic_bureau"
	}

	return models.DisputeCandidate{
		Item:                  item,
		RecommendedLetterType: letterType,
		EstimatedScoreGain:    gain,
		SuccessProbability:    prob,
		PriorityScore:         math.Round(float64(gain)*prob*10) / 10,
		EscalationPath:        EscalationPath,
	}
}
