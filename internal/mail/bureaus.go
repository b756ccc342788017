// internal/mail/bureaus.go
package mail

import (
	"strings"

	"creditpath/internal/models"
)

// Bureau identifiers accepted as dispatch targets. Each resolves to a fixed
// dispute-department mailing address.
const (
	BureauExperian   = "experian"
	BureauEquifax    = "equifax"
	BureauTransUnion = "transunion"
)

// Bureaus lists the three consumer reporting agencies in dispatch order.
// The bulk send walks this slice sequentially.
var Bureaus = []string{BureauExperian, BureauEquifax, BureauTransUnion}

var bureauAddresses = map[string]models.PostalAddress{
	BureauExperian: {
		Name:  "Experian",
		Line1: "P.O. Box 4500",
		City:  "Allen",
		State: "TX",
		Zip:   "75013",
	},
	BureauEquifax: {
		Name:  "Equifax Information Services LLC",
		Line1: "P.O. Box 740256",
		City:  "Atlanta",
		State: "GA",
		Zip:   "30374",
	},
	BureauTransUnion: {
		Name:  "TransUnion Consumer Solutions",
		Line1: "P.O. Box 2000",
		City:  "Chester",
		State: "PA",
		Zip:   "19016",
	},
}

// BureauAddress resolves a bureau identifier to its mailing address. The
// lookup tolerates casing but nothing else; "trans union" is not a bureau
// identifier, it is free text for the intent matcher.
func BureauAddress(bureau string) (models.PostalAddress, bool) {
	addr, ok := bureauAddresses[strings.ToLower(bureau)]
	return addr, ok
}

// IsBureau reports whether target names one of the three bureaus.
func IsBureau(target string) bool {
	_, ok := bureauAddresses[strings.ToLower(target)]
	return ok
}
