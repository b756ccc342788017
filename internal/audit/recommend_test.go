// internal/audit/recommend_test.go
package audit

import (
	"testing"

	"creditpath/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actionByName(actions []models.RecommendedAction, name string) *models.RecommendedAction {
	for i := range actions {
		if actions[i].Action == name {
			return &actions[i]
		}
	}
	return nil
}

func TestGenerateRecommendations_UtilizationRule(t *testing.T) {
	tests := []struct {
		status     models.UtilizationStatus
		wantAction bool
		wantImpact int
	}{
		{models.UtilizationExcellent, false, 0},
		{models.UtilizationGood, false, 0},
		{models.UtilizationFair, true, 25},
		{models.UtilizationCritical, true, 50},
	}

	for _, tt := range tests {
		actions := GenerateRecommendations(&models.CreditProfile{}, models.PhaseOptimization, tt.status, nil)
		reduce := actionByName(actions, "Reduce utilization")
		if !tt.wantAction {
			assert.Nil(t, reduce, "status %s", tt.status)
			continue
		}
		require.NotNil(t, reduce, "status %s", tt.status)
		assert.Equal(t, tt.wantImpact, reduce.ImpactPoints)
		assert.Equal(t, 1, reduce.Priority)
	}
}

func TestGenerateRecommendations_FoundationStarterSet(t *testing.T) {
	profile := &models.CreditProfile{TotalAccounts: 2}
	actions := GenerateRecommendations(profile, models.PhaseFoundation, models.UtilizationExcellent, nil)

	secured := actionByName(actions, "Open secured credit card")
	require.NotNil(t, secured)
	assert.Equal(t, 20, secured.ImpactPoints)
	assert.Equal(t, 200, secured.EstimatedCost)
	assert.Equal(t, 3, secured.Priority)

	builder := actionByName(actions, "Open credit builder loan")
	require.NotNil(t, builder)
	assert.Equal(t, 15, builder.ImpactPoints)
	assert.Equal(t, 25, builder.EstimatedCost)
	assert.Equal(t, 4, builder.Priority)

	authorized := actionByName(actions, "Become authorized user")
	require.NotNil(t, authorized)
	assert.Equal(t, 40, authorized.ImpactPoints)
	assert.Equal(t, 0, authorized.EstimatedCost)
	assert.Equal(t, 2, authorized.Priority)

	// Out of phase, the limit-increase suggestion is withheld.
	assert.Nil(t, actionByName(actions, "Request credit limit increases"))
}

func TestGenerateRecommendations_FoundationWithEnoughAccounts(t *testing.T) {
	profile := &models.CreditProfile{TotalAccounts: 3}
	actions := GenerateRecommendations(profile, models.PhaseFoundation, models.UtilizationExcellent, nil)
	assert.Nil(t, actionByName(actions, "Open secured credit card"))
}

func TestGenerateRecommendations_NegativeItemsTriggerDispute(t *testing.T) {
	profile := &models.CreditProfile{
		NegativeItems: []models.NegativeItem{{Type: models.ItemCollection, CreditorName: "x"}},
	}
	actions := GenerateRecommendations(profile, models.PhaseOptimization, models.UtilizationGood, nil)

	dispute := actionByName(actions, "Dispute negative items")
	require.NotNil(t, dispute)
	assert.Equal(t, 30, dispute.ImpactPoints)
	assert.Equal(t, 9, dispute.EstimatedCost)
	assert.Equal(t, 2, dispute.Priority)
}

func TestGenerateRecommendations_MissingTypesAndBoost(t *testing.T) {
	actions := GenerateRecommendations(&models.CreditProfile{}, models.PhaseElite, models.UtilizationGood, []string{"installment"})

	diversify := actionByName(actions, "Diversify credit mix")
	require.NotNil(t, diversify)
	assert.Equal(t, 5, diversify.Priority)

	boost := actionByName(actions, "Enable Experian Boost")
	require.NotNil(t, boost)
	assert.Equal(t, 4, boost.Priority)
}

func TestRun_RecommendationsSortedAscendingAndStable(t *testing.T) {
	// Foundation profile with few accounts fires the widest rule set,
	// including two priority-2-adjacent entries.
	profile := &models.CreditProfile{
		TotalAccounts:      2,
		UtilizationPercent: floatPtr(60),
		NegativeItems: []models.NegativeItem{
			{Type: models.ItemCollection, CreditorName: "x"},
		},
	}
	result := Run(profile)

	actions := result.RecommendedActions
	require.NotEmpty(t, actions)
	for i := 1; i < len(actions); i++ {
		assert.LessOrEqual(t, actions[i-1].Priority, actions[i].Priority)
	}

	// Equal priorities keep generation order: the dispute rule fires before
	// the authorized-user rule, both at priority 2.
	var priorityTwo []string
	for _, a := range actions {
		if a.Priority == 2 {
			priorityTwo = append(priorityTwo, a.Action)
		}
	}
	assert.Equal(t, []string{"Dispute negative items", "Become authorized user"}, priorityTwo)
}
