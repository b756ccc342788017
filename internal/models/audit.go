// internal/models/audit.go
package models

// ScorePhase is the coarse credit-score bucket used to pick remediation
// strategies.
type ScorePhase string

const (
	PhaseFoundation   ScorePhase = "foundation"
	PhaseAcceleration ScorePhase = "acceleration"
	PhaseOptimization ScorePhase = "optimization"
	PhaseElite        ScorePhase = "elite"
)

// UtilizationStatus buckets revolving utilization.
type UtilizationStatus string

const (
	UtilizationExcellent UtilizationStatus = "excellent"
	UtilizationGood      UtilizationStatus = "good"
	UtilizationFair      UtilizationStatus = "fair"
	UtilizationCritical  UtilizationStatus = "critical"
)

// PaymentHistoryStatus buckets on-time payment rate.
type PaymentHistoryStatus string

const (
	PaymentPerfect   PaymentHistoryStatus = "perfect"
	PaymentGood      PaymentHistoryStatus = "good"
	PaymentNeedsWork PaymentHistoryStatus = "needs_work"
	PaymentPoor      PaymentHistoryStatus = "poor"
)

// AuditItem is one strength or weakness, tagged with the FICO-style factor
// weight it corresponds to.
type AuditItem struct {
	Factor        string `json:"factor"`
	Description   string `json:"description"`
	Impact        string `json:"impact"`
	WeightPercent int    `json:"weightPercent"`
}

// DisputeCandidate wraps a negative item with its expected-value ranking.
type DisputeCandidate struct {
	Item                  NegativeItem `json:"item"`
	RecommendedLetterType string       `json:"recommendedLetterType"`
	EstimatedScoreGain    int          `json:"estimatedScoreGain"`
	SuccessProbability    float64      `json:"successProbability"`
	PriorityScore         float64      `json:"priorityScore"`
	EscalationPath        []string     `json:"escalationPath"`
}

// RecommendedAction is one prioritized remediation step. Lower priority
// integers sort first.
type RecommendedAction struct {
	Action        string `json:"action"`
	Description   string `json:"description,omitempty"`
	ImpactPoints  int    `json:"impactPoints"`
	EstimatedCost int    `json:"estimatedCost"`
	Priority      int    `json:"priority"`
}

// CreditAudit is derived fresh from a CreditProfile on every request; it is
// never stored or partially updated.
type CreditAudit struct {
	ScorePhase           ScorePhase           `json:"scorePhase"`
	Strengths            []AuditItem          `json:"strengths"`
	Weaknesses           []AuditItem          `json:"weaknesses"`
	DisputableItems      []DisputeCandidate   `json:"disputableItems"`
	MissingAccountTypes  []string             `json:"missingAccountTypes"`
	UtilizationStatus    UtilizationStatus    `json:"utilizationStatus"`
	PaymentHistoryStatus PaymentHistoryStatus `json:"paymentHistoryStatus"`
	RecommendedActions   []RecommendedAction  `json:"recommendedActions"`
}
