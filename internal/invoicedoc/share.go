package invoicedoc

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/heavensbakes/pos-backend/internal/modules/ledger"
	"github.com/heavensbakes/pos-backend/internal/modules/settings"
)

// WhatsAppText builds the share message for an invoice, mirroring the text
// the stand has always sent to clients.
func WhatsAppText(inv *ledger.Invoice, cfg *settings.Settings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🕊️ *%s*\n_%s_\n\n", cfg.BusinessName, cfg.Tagline)
	fmt.Fprintf(&b, "📄 *Facture #%s*\n", FormatNumber(inv.Number))
	fmt.Fprintf(&b, "Client: %s\n", inv.ClientName)
	fmt.Fprintf(&b, "Date: %s\n\n", inv.Date.Format("02/01/2006"))
	for _, item := range inv.Items {
		fmt.Fprintf(&b, "  • %s x%d — %s %s\n", item.Name, item.Qty, FormatAmount(item.Total), cfg.Currency)
	}
	fmt.Fprintf(&b, "\n💰 *Total: %s %s*\n\n", FormatAmount(inv.Total), cfg.Currency)
	b.WriteString("Merci pour votre fidélité ! 💜")
	return b.String()
}

// WhatsAppLink wraps the share message into a wa.me URL.
func WhatsAppLink(inv *ledger.Invoice, cfg *settings.Settings) string {
	return "https://wa.me/?text=" + url.QueryEscape(WhatsAppText(inv, cfg))
}
