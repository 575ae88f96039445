package catalog

import (
	"time"

	"github.com/google/uuid"
)

// NewDeploymentProducts builds fresh product documents for the stand's
// launch menu, used to seed an empty store and to reset the catalog from
// the admin endpoint.
func NewDeploymentProducts() []*Product {
	now := time.Now().UTC()
	products := make([]*Product, 0, len(deploymentMenu))
	for _, req := range deploymentMenu {
		products = append(products, &Product{
			ID:        uuid.New().String(),
			Name:      req.Name,
			Category:  req.Category,
			Price:     req.Price,
			Stock:     req.Stock,
			Desc:      req.Desc,
			Image:     req.Image,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return products
}

var deploymentMenu = []CreateProductRequest{
	{Name: "Crêpes natures", Category: "crepes-natures", Price: 1500, Stock: 50, Image: "/images/crepes-natures.png"},
	{Name: "Crêpes panées", Category: "crepes-panees", Price: 2000, Stock: 35, Image: "/images/crepes-panees.png"},
	{Name: "Pack Hallelyum", Category: "packs", Price: 6000, Stock: 15, Desc: "Pack spécial", Image: "/images/crepes-natures.png"},
	{Name: "Pack Névée", Category: "packs", Price: 4500, Stock: 12, Desc: "Pack spécial", Image: "/images/crepes-panees.png"},
	{Name: "Pack Korah", Category: "packs", Price: 5500, Stock: 18, Desc: "Pack spécial", Image: "/images/crepes-natures.png"},
	{Name: "Pack Miraa", Category: "packs", Price: 5000, Stock: 10, Desc: "Pack spécial", Image: "/images/crepes-panees.png"},
	{Name: "Pack Eloa", Category: "packs", Price: 5500, Stock: 8, Desc: "Pack spécial", Image: "/images/crepes-natures.png"},
	{Name: "Pack Fusion", Category: "packs", Price: 7000, Stock: 10, Desc: "Pack spécial", Image: "/images/crepes-panees.png"},
	{Name: "Jus Foléré", Category: "jus", Price: 500, Stock: 60, Image: "/images/juice-folere.png"},
	{Name: "Jus Baobab", Category: "jus", Price: 1000, Stock: 45, Image: "/images/juice-baobab.png"},
	{Name: "Jus Menthe", Category: "jus", Price: 1000, Stock: 50, Image: "/images/juice-menthe.png"},
}
