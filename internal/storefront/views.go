package storefront

import (
	"github.com/matheusmosca/techstore/internal/handoff"
	"github.com/shopspring/decimal"
)

// Views são as telas renderizadas em JSON. Valores monetários saem com duas casas.

type productView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Stock       int    `json:"stock"`
	InStock     bool   `json:"in_stock"`
}

type lineView struct {
	productView
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type cartView struct {
	Items     []lineView `json:"items"`
	ItemCount int        `json:"item_count"`
	Subtotal  string     `json:"subtotal"`
}

type quoteView struct {
	Items     []lineView `json:"items"`
	ItemCount int        `json:"item_count"`
	Subtotal  string     `json:"subtotal"`
	Shipping  string     `json:"shipping"`
	Tax       string     `json:"tax"`
	Total     string     `json:"total"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func newProductView(p Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Price:       money(p.Price),
		Description: p.Description,
		Image:       p.Image,
		Stock:       p.Stock,
		InStock:     p.InStock(),
	}
}

func newLineViews(items []CartItem) []lineView {
	lines := make([]lineView, 0, len(items))
	for _, item := range items {
		lines = append(lines, lineView{
			productView: newProductView(item.Product),
			Quantity:    item.Quantity,
			LineTotal:   money(item.LineTotal()),
		})
	}
	return lines
}

func newCartView(c Cart) cartView {
	return cartView{
		Items:     newLineViews(c.Items),
		ItemCount: c.ItemCount(),
		Subtotal:  money(c.Total),
	}
}

func newQuoteView(q Quote) quoteView {
	return quoteView{
		Items:     newLineViews(q.Items),
		ItemCount: q.ItemCount,
		Subtotal:  money(q.Subtotal),
		Shipping:  money(q.Shipping),
		Tax:       money(q.Tax),
		Total:     money(q.Total),
	}
}

var whatsNext = []string{
	"You'll receive a confirmation email shortly",
	"Your order will be processed within 24 hours",
	"Tracking updates will be sent to your email",
	"Estimated delivery: 3-5 business days",
}

type confirmationView struct {
	OrderID        string   `json:"order_id"`
	TrackingNumber string   `json:"tracking_number"`
	WhatsNext      []string `json:"whats_next"`
	ContinueURL    string   `json:"continue_url"`
}

func newConfirmationView(c handoff.Confirmation) confirmationView {
	return confirmationView{
		OrderID:        c.OrderID,
		TrackingNumber: c.TrackingNumber,
		WhatsNext:      whatsNext,
		ContinueURL:    handoff.PathCatalog,
	}
}
