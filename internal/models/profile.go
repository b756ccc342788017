// internal/models/profile.go
package models

// NegativeItemType is the closed set of adverse record categories.
type NegativeItemType string

const (
	ItemLatePayment NegativeItemType = "late_payment"
	ItemCollection  NegativeItemType = "collection"
	ItemChargeoff   NegativeItemType = "chargeoff"
	ItemBankruptcy  NegativeItemType = "bankruptcy"
	ItemJudgment    NegativeItemType = "judgment"
	ItemTaxLien     NegativeItemType = "tax_lien"
	ItemInquiry     NegativeItemType = "inquiry"
	ItemOther       NegativeItemType = "other"
)

// NegativeItem is one adverse record embedded in a CreditProfile.
// Disputable defaults to true when absent.
type NegativeItem struct {
	Type          NegativeItemType `json:"type"`
	CreditorName  string           `json:"creditorName"`
	Amount        *float64         `json:"amount,omitempty"`
	DateReported  string           `json:"dateReported,omitempty"`
	DateOccurred  string           `json:"dateOccurred,omitempty"`
	Disputable    *bool            `json:"disputable,omitempty"`
	DisputeReason string           `json:"disputeReason,omitempty"`
}

// IsDisputable reports whether the item may be disputed; only an explicit
// false opts an item out.
func (n NegativeItem) IsDisputable() bool {
	return n.Disputable == nil || *n.Disputable
}

// PostalAddress is a US mailing address.
type PostalAddress struct {
	Name  string `json:"name"`
	Line1 string `json:"line1"`
	Line2 string `json:"line2,omitempty"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

// CreditorAddress caches a mailing address for a creditor or collector so a
// repeat dispute skips address collection. Keyed by the normalized creditor
// name.
type CreditorAddress struct {
	CreditorName string        `json:"creditorName"`
	Address      PostalAddress `json:"address"`
}

// BusinessProfile holds business-credit-building details. Informational
// only; the audit engine never scores it.
type BusinessProfile struct {
	BusinessName string `json:"businessName,omitempty"`
	EIN          string `json:"ein,omitempty"`
	Structure    string `json:"structure,omitempty"`
	YearsActive  int    `json:"yearsActive,omitempty"`
}

// CreditProfile is the per-user credit file this system scores. Numeric
// attributes are optional; pointer fields distinguish absent from zero where
// the distinction changes audit behavior.
type CreditProfile struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	SSNLast4    string `json:"ssnLast4,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`

	CurrentScore           int      `json:"currentScore,omitempty"`
	UtilizationPercent     *float64 `json:"utilizationPercent,omitempty"`
	TotalBalance           *float64 `json:"totalBalance,omitempty"`
	TotalCreditLimit       *float64 `json:"totalCreditLimit,omitempty"`
	OnTimePaymentPercent   float64  `json:"onTimePaymentPercent,omitempty"`
	AverageAccountAgeMonth int      `json:"averageAccountAgeMonths,omitempty"`
	TotalAccounts          int      `json:"totalAccounts,omitempty"`
	HardInquiriesLast12Mo  int      `json:"hardInquiriesLast12mo,omitempty"`
	AccountTypes           []string `json:"accountTypes,omitempty"`

	NegativeItems []NegativeItem   `json:"negativeItems,omitempty"`
	Business      *BusinessProfile `json:"businessProfile,omitempty"`
}
