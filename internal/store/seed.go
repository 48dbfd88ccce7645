package store

import "onlineshop/internal/domain"

// SeedProducts is the baseline catalog used whenever no valid persisted
// catalog exists.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Wireless Headphones",
			Description: "Premium wireless headphones with noise cancellation and long battery life.",
			Price:       129.99,
			ImageURL:    "https://picsum.photos/id/3/400/400",
			Category:    "Electronics",
			InStock:     15,
		},
		{
			ID:          "2",
			Name:        "Smart Watch",
			Description: "Track your fitness goals and stay connected with this sleek smart watch.",
			Price:       249.99,
			ImageURL:    "https://picsum.photos/id/26/400/400",
			Category:    "Electronics",
			InStock:     8,
		},
		{
			ID:          "3",
			Name:        "Leather Wallet",
			Description: "Handcrafted genuine leather wallet with RFID protection.",
			Price:       49.99,
			ImageURL:    "https://picsum.photos/id/103/400/400",
			Category:    "Accessories",
			InStock:     20,
		},
		{
			ID:          "4",
			Name:        "Portable Bluetooth Speaker",
			Description: "Waterproof portable speaker with amazing sound quality and 16-hour battery life.",
			Price:       79.99,
			ImageURL:    "https://picsum.photos/id/606/400/400",
			Category:    "Electronics",
			InStock:     12,
		},
	}
}
