package settings

// DocID is the fixed id of the singleton settings document.
const DocID = "general"

// Settings is the single per-store configuration document. The JSON field
// names match the legacy local-storage export so old backups import cleanly.
type Settings struct {
	BusinessName      string `json:"businessName" bson:"businessName"`
	Tagline           string `json:"tagline" bson:"tagline"`
	OwnerName         string `json:"ownerName" bson:"ownerName"`
	LoyaltyThreshold  int64  `json:"loyaltyThreshold" bson:"loyaltyThreshold"`
	LowStockThreshold int64  `json:"lowStockThreshold" bson:"lowStockThreshold"`
	Currency          string `json:"currency" bson:"currency"`
	NextInvoiceNumber int64  `json:"nextInvoiceNumber" bson:"nextInvoiceNumber"`
}

// Defaults returns the first-run settings.
func Defaults() Settings {
	return Settings{
		BusinessName:      "Heaven's Bakes & Sips",
		Tagline:           "Un nuage de douceur, une vague de fraîcheur.",
		OwnerName:         "Sarah",
		LoyaltyThreshold:  10,
		LowStockThreshold: 5,
		Currency:          "FCFA",
		NextInvoiceNumber: 1,
	}
}

// UpdateRequest holds the user-editable fields; nextInvoiceNumber is owned
// by the sale ledger and cannot be set here.
type UpdateRequest struct {
	BusinessName      *string `json:"businessName,omitempty"`
	Tagline           *string `json:"tagline,omitempty"`
	OwnerName         *string `json:"ownerName,omitempty"`
	LoyaltyThreshold  *int64  `json:"loyaltyThreshold,omitempty"`
	LowStockThreshold *int64  `json:"lowStockThreshold,omitempty"`
	Currency          *string `json:"currency,omitempty"`
}
