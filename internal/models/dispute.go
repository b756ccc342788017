// internal/models/dispute.go
package models

import "time"

// DisputeStatus is the lifecycle state of a mailed dispute. Overdue is a
// derived view over sent/delivered records past their deadline, but it is
// also a legal stored value for records a caller explicitly marks.
type DisputeStatus string

const (
	DisputeDraft            DisputeStatus = "draft"
	DisputeSent             DisputeStatus = "sent"
	DisputeDelivered        DisputeStatus = "delivered"
	DisputeResponseReceived DisputeStatus = "response_received"
	DisputeResolved         DisputeStatus = "resolved"
	DisputeEscalated        DisputeStatus = "escalated"
	DisputeOverdue          DisputeStatus = "overdue"
)

// DisputeOutcome records how a resolved dispute ended.
type DisputeOutcome string

const (
	OutcomeDeleted   DisputeOutcome = "deleted"
	OutcomeCorrected DisputeOutcome = "corrected"
	OutcomeVerified  DisputeOutcome = "verified"
	OutcomePending   DisputeOutcome = "pending"
)

// DisputeRecord is one sent letter. Immutable after creation except for
// status and outcome.
type DisputeRecord struct {
	ID             string         `json:"id"`
	LetterType     string         `json:"letterType"`
	LetterName     string         `json:"letterName"`
	Target         string         `json:"target"`
	RecipientName  string         `json:"recipientName,omitempty"`
	Items          []NegativeItem `json:"items,omitempty"`
	SentDate       time.Time      `json:"sentDate"`
	ResponseDue    time.Time      `json:"responseDeadline"`
	EscalationDate time.Time      `json:"escalationDate"`
	Status         DisputeStatus  `json:"status"`
	Outcome        DisputeOutcome `json:"outcome,omitempty"`

	CarrierID      string  `json:"carrierId,omitempty"`
	TrackingNumber string  `json:"trackingNumber,omitempty"`
	Cost           float64 `json:"cost,omitempty"`
}
