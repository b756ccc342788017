// internal/letters/catalog.go
package letters

// TargetKind says who a letter type is addressed to.
type TargetKind string

const (
	TargetBureau    TargetKind = "bureau"
	TargetCreditor  TargetKind = "creditor"
	TargetCollector TargetKind = "collector"
)

// LetterType is one catalog entry. Citation names the statute the letter
// body leans on; the body templates themselves live outside this service.
type LetterType struct {
	Key      string     `json:"key"`
	Name     string     `json:"name"`
	Target   TargetKind `json:"target"`
	Citation string     `json:"citation,omitempty"`
}

// catalog is the full letter-type registry, keyed by letter key.
var catalog = []LetterType{
	{Key: "basic_bureau", Name: "Basic Bureau Dispute", Target: TargetBureau, Citation: "FCRA §611(a)"},
	{Key: "verification_609", Name: "609 Verification Request", Target: TargetBureau, Citation: "FCRA §609"},
	{Key: "reinvestigation_611", Name: "611 Reinvestigation Demand", Target: TargetBureau, Citation: "FCRA §611"},
	{Key: "mov_request", Name: "Method of Verification Request", Target: TargetBureau, Citation: "FCRA §611(a)(7)"},
	{Key: "goodwill", Name: "Goodwill Adjustment Request", Target: TargetCreditor},
	{Key: "debt_validation", Name: "Debt Validation Demand", Target: TargetCollector, Citation: "FDCPA §809"},
	{Key: "chargeoff_removal", Name: "Charge-Off Removal Dispute", Target: TargetBureau, Citation: "FCRA §611(a)"},
	{Key: "unauthorized_inquiry", Name: "Unauthorized Inquiry Dispute", Target: TargetBureau, Citation: "FCRA §604"},
	{Key: "late_payment_removal", Name: "Late Payment Dispute", Target: TargetBureau, Citation: "FCRA §611(a)"},
	{Key: "pay_for_delete", Name: "Pay-for-Delete Offer", Target: TargetCollector},
	{Key: "cease_and_desist", Name: "Cease and Desist Notice", Target: TargetCollector, Citation: "FDCPA §805(c)"},
	{Key: "medical_collection", Name: "Medical Collection HIPAA Dispute", Target: TargetCollector},
	{Key: "identity_theft", Name: "Identity Theft Block Request", Target: TargetBureau, Citation: "FCRA §605B"},
	{Key: "fraud_alert", Name: "Fraud Alert Request", Target: TargetBureau, Citation: "FCRA §605A"},
	{Key: "security_freeze", Name: "Security Freeze Request", Target: TargetBureau, Citation: "FCRA §605A(i)"},
	{Key: "bankruptcy_removal", Name: "Bankruptcy Record Dispute", Target: TargetBureau, Citation: "FCRA §611(a)"},
	{Key: "personal_info_update", Name: "Personal Information Correction", Target: TargetBureau},
	{Key: "cfpb_complaint", Name: "CFPB Complaint Follow-Up", Target: TargetBureau},
	{Key: "intent_to_sue", Name: "Notice of Intent to Sue", Target: TargetBureau, Citation: "FCRA §616/§617"},
}

var catalogByKey = func() map[string]LetterType {
	m := make(map[string]LetterType, len(catalog))
	for _, lt := range catalog {
		m[lt.Key] = lt
	}
	return m
}()

// Lookup returns the letter type for a catalog key.
func Lookup(key string) (LetterType, bool) {
	lt, ok := catalogByKey[key]
	return lt, ok
}

// All returns the catalog in registry order.
func All() []LetterType {
	out := make([]LetterType, len(catalog))
	copy(out, catalog)
	return out
}
