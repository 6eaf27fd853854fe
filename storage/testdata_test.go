package storage

import "swappa-scraper/models"

func sampleListings() []*models.Listing {
	return []*models.Listing{
		{
			Price: "$600", Carrier: "AT&T", Color: "Black", Storage: "128GB", Model: "iPhone 13",
			Condition: "Used", Battery: "92%", Seller: "JaneDoe", Location: "Denver, CO",
			Shipping: "Free", Code: "ABC123",
		},
		{
			Price: "$1,049", Carrier: "Unlocked", Color: "Сірий", Storage: "256GB", Model: "iPhone 13 Pro Max",
			Condition: "Mint", Battery: "100%", Seller: "Олександр <pro>", Location: "Київ, UA",
			Shipping: "$10", Code: "XYZ789",
		},
	}
}
