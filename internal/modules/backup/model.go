package backup

import (
	"github.com/heavensbakes/pos-backend/internal/modules/catalog"
	"github.com/heavensbakes/pos-backend/internal/modules/client"
	"github.com/heavensbakes/pos-backend/internal/modules/ledger"
	"github.com/heavensbakes/pos-backend/internal/modules/settings"
)

// Snapshot is the full application state as one JSON document. The shape
// matches the legacy local-storage export, so an old backup file imports
// directly.
type Snapshot struct {
	Settings settings.Settings  `json:"settings"`
	Products []*catalog.Product `json:"products"`
	Clients  []*client.Client   `json:"clients"`
	Invoices []*ledger.Invoice  `json:"invoices"`
}
