// internal/audit/recommend.go
package audit

import "creditpath/internal/models"

// GenerateRecommendations builds the phase-aware action list. Rules fire
// independently; the caller sorts by ascending priority.
func GenerateRecommendations(profile *models.CreditProfile, phase models.ScorePhase, utilization models.UtilizationStatus, missingTypes []string) []models.RecommendedAction {
	actions := []models.RecommendedAction{}

	if utilization == models.UtilizationFair || utilization == models.UtilizationCritical {
		impact := 25
		if utilization == models.UtilizationCritical {
			impact = 50
		}
		actions = append(actions, models.RecommendedAction{
			Action:        "Reduce utilization",
			Description:   "Pay revolving balances below 10% of limits (AZEO: all zero except one)",
			ImpactPoints:  impact,
			EstimatedCost: 0,
			Priority:      1,
		})
	}

	if len(profile.NegativeItems) > 0 {
		actions = append(actions, models.RecommendedAction{
			Action:        "Dispute negative items",
			Description:   "Challenge inaccurate or unverifiable adverse records",
			ImpactPoints:  30,
			EstimatedCost: 9,
			Priority:      2,
		})
	}

	if phase == models.PhaseFoundation && profile.TotalAccounts < 3 {
		actions = append(actions,
			models.RecommendedAction{
				Action:        "Open secured credit card",
				Description:   "Establish a revolving tradeline with a refundable deposit",
				ImpactPoints:  20,
				EstimatedCost: 200,
				Priority:      3,
			},
			models.RecommendedAction{
				Action:        "Open credit builder loan",
				Description:   "Add an installment tradeline that reports all 12 months",
				ImpactPoints:  15,
				EstimatedCost: 25,
				Priority:      4,
			},
			models.RecommendedAction{
				Action:        "Become authorized user",
				Description:   "Inherit the age and limit of a trusted account",
				ImpactPoints:  40,
				EstimatedCost: 0,
				Priority:      2,
			},
		)
	}

	if len(missingTypes) > 0 {
		actions = append(actions, models.RecommendedAction{
			Action:        "Diversify credit mix",
			Description:   "Add the missing account categories over time",
			ImpactPoints:  10,
			EstimatedCost: 0,
			Priority:      5,
		})
	}

	if phase != models.PhaseFoundation {
		actions = append(actions, models.RecommendedAction{
			Action:        "Request credit limit increases",
			Description:   "Lower utilization without paying anything down",
			ImpactPoints:  15,
			EstimatedCost: 0,
			Priority:      3,
		})
	}

	actions = append(actions, models.RecommendedAction{
		Action:        "Enable Experian Boost",
		Description:   "Report utility and streaming payments",
		ImpactPoints:  10,
		EstimatedCost: 0,
		Priority:      4,
	})

	return actions
}
