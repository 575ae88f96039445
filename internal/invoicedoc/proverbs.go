package invoicedoc

// proverbs is the pool of footer quotes printed on invoices.
var proverbs = []string{
	"La gentillesse est un langage que les sourds peuvent entendre et que les aveugles peuvent voir.",
	"Un sourire coûte moins cher que l'électricité, mais il donne autant de lumière.",
	"La douceur est comme le sucre : elle adoucit toutes les amertumes de la vie.",
	"Chaque jour est un cadeau, c'est pourquoi on l'appelle le présent.",
	"Un mot de bonté vaut mieux qu'un gâteau au miel.",
	"Les petits ruisseaux font les grandes rivières.",
	"La vie est un dessert qu'il faut savourer lentement.",
	"Un cœur joyeux fait autant de bien qu'un médicament.",
	"Manger est un besoin, savoir manger est un art.",
	"Le monde appartient à ceux qui se lèvent tôt... et qui font de bonnes crêpes !",
	"La gratitude est la mémoire du cœur.",
	"Le partage est la seule opération mathématique où tout le monde gagne.",
}

// Proverb picks the footer quote for an invoice. The pick is keyed on the
// invoice number so re-printing a ticket reproduces the same document.
func Proverb(invoiceNumber int64) string {
	if invoiceNumber < 0 {
		invoiceNumber = -invoiceNumber
	}
	return proverbs[invoiceNumber%int64(len(proverbs))]
}
