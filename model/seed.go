package model

// SeedProducts returns the bootstrap catalog. Each call returns a fresh slice.
func SeedProducts() []Product {
	return []Product{
		{ID: "p1", VendorID: "v1", DisplayName: "Fresh Bread", Category: CategoryFood, Price: Naira(300), Description: "Homemade bread", ImageRef: "https://picsum.photos/seed/bread/400/300"},
		{ID: "p2", VendorID: "v2", DisplayName: "Running Shoes", Category: CategoryShoes, Price: Naira(4500), Description: "Comfortable running shoes", ImageRef: "https://picsum.photos/seed/shoes/400/300"},
		{ID: "p3", VendorID: "v3", DisplayName: "Blue Shirt", Category: CategoryClothes, Price: Naira(2500), Description: "Smart casual shirt", ImageRef: "https://picsum.photos/seed/shirt/400/300"},
		{ID: "p4", VendorID: "v2", DisplayName: "Leather Bag", Category: CategoryBags, Price: Naira(5200), Description: "Stylish leather bag", ImageRef: "https://picsum.photos/seed/bag/400/300"},
		{ID: "p5", VendorID: "v1", DisplayName: "Spice Pack", Category: CategoryFood, Price: Naira(800), Description: "Assorted spices", ImageRef: "https://picsum.photos/seed/spice/400/300"},
		{ID: "p6", VendorID: "v3", DisplayName: "Canvas Sneakers", Category: CategoryShoes, Price: Naira(3800), Description: "Casual sneakers", ImageRef: "https://picsum.photos/seed/sneak/400/300"},
	}
}

// SeedVendors returns the three bootstrap vendors.
func SeedVendors() []Vendor {
	return []Vendor{
		{ID: "v1", DisplayName: "FreshGoods", Category: CategoryFood, ContactEmail: "fresh@store.demo"},
		{ID: "v2", DisplayName: "Stride Co", Category: CategoryShoes, ContactEmail: "stride@store.demo"},
		{ID: "v3", DisplayName: "UrbanWear", Category: CategoryClothes, ContactEmail: "urban@store.demo"},
	}
}
