// internal/letters/intent.go
package letters

import "strings"

// Bureau identifiers accepted as dispute targets.
const (
	BureauExperian   = "experian"
	BureauEquifax    = "equifax"
	BureauTransUnion = "transunion"
)

// Intent is the result of matching free text against the rule list. When no
// bureau or creditor is detected, NeedsTarget is set and the caller should
// ask the user rather than fail.
type Intent struct {
	LetterType  string
	Bureau      string
	NeedsTarget bool
}

// matchRule maps a keyword to a letter type. Rules are evaluated in order
// and the first hit wins, so specific statute numbers are listed ahead of
// anything a bureau name could also satisfy.
type matchRule struct {
	keywords   []string
	letterType string
}

var rules = []matchRule{
	{[]string{"609"}, "verification_609"},
	{[]string{"611", "reinvestigat"}, "reinvestigation_611"},
	{[]string{"method of verification", "mov"}, "mov_request"},
	{[]string{"goodwill"}, "goodwill"},
	{[]string{"validation", "validate"}, "debt_validation"},
	{[]string{"charge-off", "chargeoff", "charge off"}, "chargeoff_removal"},
	{[]string{"inquiry", "inquiries"}, "unauthorized_inquiry"},
	{[]string{"pay for delete", "pay-for-delete"}, "pay_for_delete"},
	{[]string{"cease"}, "cease_and_desist"},
	{[]string{"medical", "hipaa"}, "medical_collection"},
	{[]string{"identity theft", "stolen identity"}, "identity_theft"},
	{[]string{"fraud alert"}, "fraud_alert"},
	{[]string{"freeze"}, "security_freeze"},
	{[]string{"bankruptcy"}, "bankruptcy_removal"},
	{[]string{"cfpb", "consumer financial protection"}, "cfpb_complaint"},
	{[]string{"sue", "lawsuit", "legal action"}, "intent_to_sue"},
	{[]string{"late payment", "late pay"}, "late_payment_removal"},
}

// Match resolves free text to a letter type and target bureau. Letter-type
// keywords are checked before bureau names so "send a 609 to experian" picks
// the 609 letter, not the generic bureau dispute.
func Match(text string) Intent {
	lowered := strings.ToLower(text)

	intent := Intent{LetterType: "basic_bureau"}
	for _, rule := range rules {
		if containsAny(lowered, rule.keywords) {
			intent.LetterType = rule.letterType
			break
		}
	}

	switch {
	case strings.Contains(lowered, BureauExperian):
		intent.Bureau = BureauExperian
	case strings.Contains(lowered, BureauEquifax):
		intent.Bureau = BureauEquifax
	case strings.Contains(lowered, BureauTransUnion) || strings.Contains(lowered, "trans union"):
		intent.Bureau = BureauTransUnion
	default:
		intent.NeedsTarget = true
	}

	return intent
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
