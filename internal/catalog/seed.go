package catalog

import "github.com/shopspring/decimal"

const (
	CategoryCars      = "1"
	CategoryTrackSets = "2"
)

// SeedCategories returns the demo categories.
func SeedCategories() []Category {
	return []Category{
		{
			ID:          CategoryCars,
			Name:        "Cars",
			Slug:        "cars",
			Description: "Individual Hot Wheels die-cast cars",
			ImageURL:    "https://images.pexels.com/photos/35967/mini-cooper-auto-model-vehicle.jpg?auto=compress&cs=tinysrgb&w=800",
		},
		{
			ID:          CategoryTrackSets,
			Name:        "Track Sets",
			Slug:        "track-sets",
			Description: "Complete track sets for racing",
			ImageURL:    "https://images.pexels.com/photos/163742/car-race-ferrari-racing-car-163742.jpeg?auto=compress&cs=tinysrgb&w=800",
		},
	}
}

// SeedProducts returns the demo catalog in display order.
func SeedProducts() []Product {
	return []Product{
		{
			ID:          "1",
			CategoryID:  CategoryCars,
			Name:        "Fast & Furious Nissan Skyline GT-R",
			Slug:        "fast-furious-skyline-gtr",
			Description: "Iconic blue Nissan Skyline GT-R from Fast & Furious franchise.",
			Price:       decimal.RequireFromString("5.99"),
			Stock:       50,
			ImageURL:    "https://images.pexels.com/photos/3729464/pexels-photo-3729464.jpeg?auto=compress&cs=tinysrgb&w=800",
			Featured:    true,
		},
		{
			ID:          "2",
			CategoryID:  CategoryCars,
			Name:        "Tesla Cybertruck",
			Slug:        "tesla-cybertruck",
			Description: "Futuristic Tesla Cybertruck in silver finish.",
			Price:       decimal.RequireFromString("6.99"),
			Stock:       30,
			ImageURL:    "https://images.pexels.com/photos/3802510/pexels-photo-3802510.jpeg?auto=compress&cs=tinysrgb&w=800",
			Featured:    true,
		},
		{
			ID:          "3",
			CategoryID:  CategoryTrackSets,
			Name:        "Super Speed Blastway Track Set",
			Slug:        "super-speed-blastway",
			Description: "Epic track set with loops, jumps, and high-speed launcher.",
			Price:       decimal.RequireFromString("49.99"),
			Stock:       15,
			ImageURL:    "https://images.pexels.com/photos/163582/toy-car-motor-vehicle-red-163582.jpeg?auto=compress&cs=tinysrgb&w=800",
			Featured:    true,
		},
		{
			ID:          "4",
			CategoryID:  CategoryCars,
			Name:        "'67 Camaro Treasure Hunt",
			Slug:        "67-camaro-treasure-hunt",
			Description: "Spectraflame orange 1967 Camaro with Real Riders tires.",
			Price:       decimal.RequireFromString("14.99"),
			Stock:       0,
			ImageURL:    "https://images.pexels.com/photos/1164778/pexels-photo-1164778.jpeg?auto=compress&cs=tinysrgb&w=800",
		},
		{
			ID:          "5",
			CategoryID:  CategoryCars,
			Name:        "Bone Shaker",
			Slug:        "bone-shaker",
			Description: "Hot Wheels original hot rod with exposed engine and skull grille.",
			Price:       decimal.RequireFromString("4.49"),
			Stock:       80,
			ImageURL:    "https://images.pexels.com/photos/2036544/pexels-photo-2036544.jpeg?auto=compress&cs=tinysrgb&w=800",
		},
		{
			ID:          "6",
			CategoryID:  CategoryTrackSets,
			Name:        "City Ultimate Garage",
			Slug:        "city-ultimate-garage",
			Description: "Multi-level garage with elevator, spiral ramp and parking for 100+ cars.",
			Price:       decimal.RequireFromString("119.99"),
			Stock:       6,
			ImageURL:    "https://images.pexels.com/photos/1637859/pexels-photo-1637859.jpeg?auto=compress&cs=tinysrgb&w=800",
			Images: []string{
				"https://images.pexels.com/photos/1637859/pexels-photo-1637859.jpeg?auto=compress&cs=tinysrgb&w=800",
				"https://images.pexels.com/photos/35619/capri-ford-oldtimer-automotive.jpg?auto=compress&cs=tinysrgb&w=800",
			},
		},
	}
}
