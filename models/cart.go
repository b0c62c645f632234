package models

import (
	"math"
	"time"
)

// PlaceholderImage is served for products that have no images attached.
const PlaceholderImage = "https://via.placeholder.com/400x400?text=No+Image"

// CartItem is a canonical cart line: one per (user, product) pair,
// quantity always >= 1. Prices are never stored on the line.
type CartItem struct {
	ID        string    `json:"id"`
	UserID    int       `json:"userId"`
	ProductID int       `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartProduct is the trimmed product snapshot embedded at enrichment time.
type CartProduct struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock"`
}

// CartLine is one enriched cart entry. Product is nil when the product
// was deleted after being added to the cart.
type CartLine struct {
	ProductID int          `json:"productId"`
	Quantity  int          `json:"quantity"`
	AddedAt   time.Time    `json:"addedAt"`
	Product   *CartProduct `json:"product"`
}

// Cart is the enriched, display-ready view. It is derived on every read
// and never persisted server-side.
type Cart struct {
	UserID    int        `json:"userId"`
	Items     []CartLine `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// Snapshot builds the cart view of a product.
func Snapshot(p *Product) *CartProduct {
	image := PlaceholderImage
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	return &CartProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       image,
		Images:      p.Images,
		Stock:       p.Stock,
	}
}

// Recalculate rederives Total and ItemCount from the lines. Lines whose
// product could not be resolved still count toward ItemCount but
// contribute nothing to Total.
func (c *Cart) Recalculate() {
	var total float64
	count := 0
	for _, line := range c.Items {
		if line.Product != nil {
			total += line.Product.Price * float64(line.Quantity)
		}
		count += line.Quantity
	}
	c.Total = Round2(total)
	c.ItemCount = count
}

// Round2 rounds to two decimal places, matching the wire representation
// of monetary totals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
