package storefront

import "github.com/shopspring/decimal"

// DefaultCatalog são os quatro produtos da loja
func DefaultCatalog() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Premium Wireless Headphones",
			Price:       decimal.RequireFromString("299.99"),
			Description: "High-quality wireless headphones with noise cancellation and premium sound quality. Perfect for music lovers and professionals.",
			Image:       "/assets/headphones.jpg",
			Stock:       15,
		},
		{
			ID:          "2",
			Name:        "Latest Smartphone",
			Price:       decimal.RequireFromString("899.99"),
			Description: "Cutting-edge smartphone with advanced camera system, lightning-fast processor, and all-day battery life.",
			Image:       "/assets/smartphone.jpg",
			Stock:       8,
		},
		{
			ID:          "3",
			Name:        "Professional Laptop",
			Price:       decimal.RequireFromString("1299.99"),
			Description: "High-performance laptop designed for professionals and creators. Powerful specs in a sleek, portable design.",
			Image:       "/assets/laptop.jpg",
			Stock:       12,
		},
		{
			ID:          "4",
			Name:        "Smart Fitness Watch",
			Price:       decimal.RequireFromString("399.99"),
			Description: "Advanced fitness tracking, health monitoring, and smart features. Your perfect workout companion.",
			Image:       "/assets/smartwatch.jpg",
			Stock:       20,
		},
	}
}
