// internal/audit/engine.go
package audit

import (
	"sort"

	"creditpath/internal/models"
)

// Factor weights follow the published FICO composition.
const (
	weightPaymentHistory = 35
	weightUtilization    = 30
	weightAccountAge     = 15
	weightCreditMix      = 10
	weightInquiries      = 10
)

// installmentTags are the account categories counted as installment credit
// when deciding whether the mix is missing one.
var installmentTags = []string{"installment", "auto", "student", "personal", "mortgage"}

// ClassifyPhase buckets a credit score. Boundary values belong to the higher
// phase; an absent score is treated as 0.
func ClassifyPhase(score int) models.ScorePhase {
	switch {
	case score >= 740:
		return models.PhaseElite
	case score >= 670:
		return models.PhaseOptimization
	case score >= 580:
		return models.PhaseAcceleration
	default:
		return models.PhaseFoundation
	}
}

// UtilizationStatusFor buckets an effective utilization percentage.
func UtilizationStatusFor(u float64) models.UtilizationStatus {
	switch {
	case u <= 9:
		return models.UtilizationExcellent
	case u <= 30:
		return models.UtilizationGood
	case u <= 50:
		return models.UtilizationFair
	default:
		return models.UtilizationCritical
	}
}

// PaymentHistoryStatusFor buckets an on-time payment percentage, absent
// treated as 0.
func PaymentHistoryStatusFor(pct float64) models.PaymentHistoryStatus {
	switch {
	case pct >= 99:
		return models.PaymentPerfect
	case pct >= 95:
		return models.PaymentGood
	case pct >= 85:
		return models.PaymentNeedsWork
	default:
		return models.PaymentPoor
	}
}

// effectiveUtilization returns the stored percentage, or derives it from
// balance over limit when both are present and the limit is positive. The
// second return is false when utilization is unknown.
func effectiveUtilization(p *models.CreditProfile) (float64, bool) {
	if p.UtilizationPercent != nil {
		return *p.UtilizationPercent, true
	}
	if p.TotalBalance != nil && p.TotalCreditLimit != nil && *p.TotalCreditLimit > 0 {
		return *p.TotalBalance / *p.TotalCreditLimit * 100, true
	}
	return 0, false
}

// Run computes a full audit from a profile. Pure and total: any well-formed
// profile produces an audit, absent numeric fields fall back to their
// documented defaults, and two runs over the same profile are identical.
func Run(profile *models.CreditProfile) *models.CreditAudit {
	result := &models.CreditAudit{
		ScorePhase:          ClassifyPhase(profile.CurrentScore),
		Strengths:           []models.AuditItem{},
		Weaknesses:          []models.AuditItem{},
		DisputableItems:     []models.DisputeCandidate{},
		MissingAccountTypes: []string{},
	}

	// Payment history, weight 35. 95-98 is a deliberate dead zone.
	switch pct := profile.OnTimePaymentPercent; {
	case pct >= 99:
		result.Strengths = append(result.Strengths, models.AuditItem{
			Factor:        "payment_history",
			Description:   "Excellent on-time payment history",
			Impact:        "high",
			WeightPercent: weightPaymentHistory,
		})
	case pct < 95:
		result.Weaknesses = append(result.Weaknesses, models.AuditItem{
			Factor:        "payment_history",
			Description:   "On-time payment rate below 95%",
			Impact:        "high",
			WeightPercent: weightPaymentHistory,
		})
	}
	result.PaymentHistoryStatus = PaymentHistoryStatusFor(profile.OnTimePaymentPercent)

	// Utilization, weight 30. Unknown utilization reports excellent but
	// records no strength; the status string is always set.
	result.UtilizationStatus = models.UtilizationExcellent
	if util, known := effectiveUtilization(profile); known {
		result.UtilizationStatus = UtilizationStatusFor(util)
		switch result.UtilizationStatus {
		case models.UtilizationExcellent:
			result.Strengths = append(result.Strengths, models.AuditItem{
				Factor:        "utilization",
				Description:   "Utilization at or below 9%",
				Impact:        "high",
				WeightPercent: weightUtilization,
			})
		case models.UtilizationFair:
			result.Weaknesses = append(result.Weaknesses, models.AuditItem{
				Factor:        "utilization",
				Description:   "Utilization between 31% and 50%",
				Impact:        "high",
				WeightPercent: weightUtilization,
			})
		case models.UtilizationCritical:
			result.Weaknesses = append(result.Weaknesses, models.AuditItem{
				Factor:        "utilization",
				Description:   "Utilization above 50%",
				Impact:        "high",
				WeightPercent: weightUtilization,
			})
		}
	}

	// Account age, weight 15.
	switch age := profile.AverageAccountAgeMonth; {
	case age >= 84:
		result.Strengths = append(result.Strengths, models.AuditItem{
			Factor:        "age",
			Description:   "Average account age of 7+ years",
			Impact:        "medium",
			WeightPercent: weightAccountAge,
		})
	case age < 24:
		result.Weaknesses = append(result.Weaknesses, models.AuditItem{
			Factor:        "age",
			Description:   "Average account age under 2 years",
			Impact:        "medium",
			WeightPercent: weightAccountAge,
		})
	}

	// Credit mix, weight 10.
	result.MissingAccountTypes = missingAccountTypes(profile.AccountTypes)
	if distinctCount(profile.AccountTypes) < 3 {
		result.Weaknesses = append(result.Weaknesses, models.AuditItem{
			Factor:        "credit_mix",
			Description:   "Fewer than 3 distinct account types",
			Impact:        "low",
			WeightPercent: weightCreditMix,
		})
	}

	// Hard inquiries, weight 10. Three in 12 months is the no-penalty ceiling.
	if profile.HardInquiriesLast12Mo > 3 {
		result.Weaknesses = append(result.Weaknesses, models.AuditItem{
			Factor:        "inquiries",
			Description:   "More than 3 hard inquiries in the last 12 months",
			Impact:        "low",
			WeightPercent: weightInquiries,
		})
	}

	// Disputable items, ranked by expected value. Stable sort so equal
	// priority scores keep encounter order.
	for _, item := range profile.NegativeItems {
		if !item.IsDisputable() {
			continue
		}
		result.DisputableItems = append(result.DisputableItems, Assess(item))
	}
	sort.SliceStable(result.DisputableItems, func(i, j int) bool {
		return result.DisputableItems[i].PriorityScore > result.DisputableItems[j].PriorityScore
	})

	result.RecommendedActions = GenerateRecommendations(profile, result.ScorePhase, result.UtilizationStatus, result.MissingAccountTypes)
	sort.SliceStable(result.RecommendedActions, func(i, j int) bool {
		return result.RecommendedActions[i].Priority < result.RecommendedActions[j].Priority
	})

	return result
}

func distinctCount(types []string) int {
	seen := map[string]struct{}{}
	for _, t := range types {
		seen[t] = struct{}{}
	}
	return len(seen)
}

func missingAccountTypes(types []string) []string {
	missing := []string{}

	hasRevolving := false
	for _, t := range types {
		if t == "revolving" {
			hasRevolving = true
			break
		}
	}
	if !hasRevolving {
		missing = append(missing, "revolving")
	}

	hasInstallment := false
	for _, t := range types {
		for _, tag := range installmentTags {
			if t == tag {
				hasInstallment = true
				break
			}
		}
		if hasInstallment {
			break
		}
	}
	if !hasInstallment {
		missing = append(missing, "installment")
	}

	return missing
}
