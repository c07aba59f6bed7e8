package catalog

import "github.com/heilocal/feedmap/internal/geo"

// DemoAnchor is the fixed demo location in Espoo.
var DemoAnchor = geo.Coordinate{Latitude: 60.1567259, Longitude: 24.6300172}

// DemoItems returns the demo catalog: restaurants around Kivenlahti and
// Espoonlahti in Espoo and cafés in central Helsinki.
func DemoItems() []Item {
	return []Item{
		{
			ID:          "ravintola-nepal",
			Name:        "Ravintola Nepal",
			Category:    Restaurants,
			Coordinate:  geo.Coordinate{Latitude: 60.1556052, Longitude: 24.6313928},
			Address:     "Kivenlahdenkatu 1, 02320 Espoo",
			OpenTime:    "11:00am~9:00pm",
			PriceRange:  "€10-15",
			Description: "Authentic Nepali cuisine",
			Rating:      4.5,
			RatingCount: 826,
			VideoURL:    "/media/restaurants/ravintola-nepal.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1585937421612-70a008356fbe?w=800",
		},
		{
			ID:          "kiven-grilli",
			Name:        "Kiven Grilli",
			Category:    Restaurants,
			Coordinate:  geo.Coordinate{Latitude: 60.1543805, Longitude: 24.6357518},
			Address:     "Merivalkama 2, 02320 Espoo",
			OpenTime:    "5:00pm~11:00pm",
			PriceRange:  "€8-12",
			Description: "Classic Finnish grill food",
			Rating:      4.6,
			RatingCount: 116,
			VideoURL:    "/media/restaurants/kiven-grilli.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=800",
		},
		{
			ID:          "loco-pizza",
			Name:        "Loco Pizza",
			Category:    Restaurants,
			Coordinate:  geo.Coordinate{Latitude: 60.1537623, Longitude: 24.6352215},
			Address:     "Merenkäynti 3 a, 02320 Espoo",
			OpenTime:    "11:00am~11:00pm",
			PriceRange:  "€12-18",
			Description: "Artisan pizza with fresh ingredients",
			Rating:      3.9,
			RatingCount: 150,
			VideoURL:    "/media/restaurants/loco-pizza.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=800",
		},
		{
			ID:          "uuno-kivenlahti",
			Name:        "Uuno Kivenlahti",
			Category:    Restaurants,
			Coordinate:  geo.Coordinate{Latitude: 60.1534258, Longitude: 24.6354452},
			Address:     "Merivirta 9, 02320 Espoo",
			OpenTime:    "11:00am~9:00pm",
			PriceRange:  "€10-20",
			Description: "Modern Finnish cuisine",
			Rating:      4.8,
			RatingCount: 140,
			VideoURL:    "/media/restaurants/uuno-kivenlahti.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=800",
		},
		{
			ID:          "nanan-grilli",
			Name:        "Nanan grilli",
			Category:    Restaurants,
			Coordinate:  geo.Coordinate{Latitude: 60.1534858, Longitude: 24.6356552},
			Address:     "Merivirta 10, 02320 Espoo",
			OpenTime:    "3:00pm~12:00am",
			PriceRange:  "€7-13",
			Description: "Local favorite grill spot",
			Rating:      4.3,
			RatingCount: 71,
			VideoURL:    "/media/restaurants/nanan-grilli.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?w=800",
		},
		{
			ID:          "crispy-pizza",
			Name:        "Crispy Pizza",
			Category:    Restaurants,
			Coordinate:  geo.Coordinate{Latitude: 60.1670555, Longitude: 24.6176649},
			Address:     "Saunalahdenkatu 8, 02330 Espoo",
			OpenTime:    "10:00am~9:00pm",
			PriceRange:  "€11-16",
			Description: "Crispy thin crust pizza",
			Rating:      4.7,
			RatingCount: 604,
			VideoURL:    "/media/restaurants/crispy-pizza.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?w=800",
		},
		{
			ID:          "happy-days-food-truck",
			Name:        "HAPPY DAYS Food Truck",
			Category:    Restaurants,
			Coordinate:  geo.Coordinate{Latitude: 60.1705566, Longitude: 24.6353361},
			Address:     "Tammilaaksontie 4, 02330 Espoo",
			OpenTime:    "Check the Facebook Page",
			PriceRange:  "€8-14",
			Description: "Street food with a smile",
			Rating:      4.6,
			RatingCount: 75,
			VideoURL:    "/media/restaurants/happy-days-food-truck.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1565299507177-b0ac66763828?w=800",
		},
		{
			ID:          "momo-more-lippulaiva",
			Name:        "Momo & More Lippulaiva",
			Category:    Restaurants,
			Coordinate:  geo.Coordinate{Latitude: 60.1499126, Longitude: 24.6551829},
			Address:     "Espoonlahdenkatu 8, 02320 Espoo",
			OpenTime:    "10:30am~9:00pm",
			PriceRange:  "€9-15",
			Description: "Delicious Nepali momos",
			Rating:      4.6,
			RatingCount: 105,
			VideoURL:    "/media/restaurants/momo-more-lippulaiva.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1496116218417-1a781b1c416c?w=800",
		},
		{
			ID:          "pronto-pizzeria-espoonlahti",
			Name:        "Pronto Pizzeria Espoonlahti",
			Category:    Restaurants,
			Coordinate:  geo.Coordinate{Latitude: 60.1510142, Longitude: 24.6568493},
			Address:     "Ulappakatu 1, 02320 Espoo",
			OpenTime:    "11:00am~9:00pm",
			PriceRange:  "€10-17",
			Description: "Fast and tasty pizza",
			Rating:      4.8,
			RatingCount: 153,
			VideoURL:    "/media/restaurants/pronto-pizzeria-espoonlahti.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1571997478779-2adcbbe9ab2f?w=800",
		},
		{
			ID:          "seoul-good-lippulaiva",
			Name:        "Seoul Good Lippulaiva",
			Category:    Restaurants,
			Coordinate:  geo.Coordinate{Latitude: 60.1496042, Longitude: 24.6556237},
			Address:     "Kaupunkikeskus Lippulaiva 1st floor, Espoonlahdenkatu 8, 02320 Espoo",
			OpenTime:    "10:30am~8:00pm",
			PriceRange:  "€12-18",
			Description: "Korean Fried Chicken",
			Rating:      4.6,
			RatingCount: 242,
			VideoURL:    "/media/restaurants/seoul-good-lippulaiva.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1608039829572-78524f79c4c7?w=800",
		},
		{
			ID:          "ninnes-cafe-restaurant",
			Name:        "Ninnes Cafe & Restaurant",
			Category:    Coffee,
			Coordinate:  geo.Coordinate{Latitude: 60.15295, Longitude: 24.634776},
			Address:     "Merivirta 11, 02320 Espoo",
			OpenTime:    "10:00am~3:00pm",
			PriceRange:  "€5-12",
			Description: "Cozy cafe with great coffee",
			Rating:      4.5,
			RatingCount: 228,
			VideoURL:    "/media/cafe/ninnes-cafe-restaurant.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1554118811-1e0d58224f24?w=800",
		},
		{
			ID:          "cafe-blanka",
			Name:        "Cafe blanka",
			Category:    Coffee,
			Coordinate:  geo.Coordinate{Latitude: 60.1971341, Longitude: 24.9018397},
			Address:     "Mannerheimintie 95, 00270 Helsinki",
			OpenTime:    "10:00am~7:00pm",
			PriceRange:  "€4-10",
			Description: "Specialty coffee and pastries",
			Rating:      4.5,
			RatingCount: 142,
			VideoURL:    "/media/cafe/cafe-blanka.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1501339847302-ac426a4a7cbb?w=800",
		},
		{
			ID:          "cafe-korvari",
			Name:        "Cafe Korvari",
			Category:    Coffee,
			Coordinate:  geo.Coordinate{Latitude: 60.188714, Longitude: 24.9135518},
			Address:     "Stenbäckinkatu 12, 00250 Helsinki",
			OpenTime:    "6:00am~4:00pm",
			PriceRange:  "€3-9",
			Description: "Early morning coffee spot",
			Rating:      4.7,
			RatingCount: 130,
			VideoURL:    "/media/cafe/cafe-korvari.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1445116572660-236099ec97a0?w=800",
		},
		{
			ID:          "enchante-cafe",
			Name:        "Enchanté Café",
			Category:    Coffee,
			Coordinate:  geo.Coordinate{Latitude: 60.1671009, Longitude: 24.9346804},
			Address:     "Eerikinkatu 9, 00100 Helsinki",
			OpenTime:    "10:00am~6:00pm",
			PriceRange:  "€5-13",
			Description: "French-inspired cafe",
			Rating:      4.8,
			RatingCount: 559,
			VideoURL:    "/media/cafe/enchante-cafe.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1511920170033-f8396924c348?w=800",
		},
		{
			ID:          "fazer-cafe-toolo",
			Name:        "Fazer Café Töölö",
			Category:    Coffee,
			Coordinate:  geo.Coordinate{Latitude: 60.1836206, Longitude: 24.9184838},
			Address:     "Topeliuksenkatu 17, 00250 Helsinki",
			OpenTime:    "7:00am~8:00pm",
			PriceRange:  "€4-11",
			Description: "Finnish cafe chain classic",
			Rating:      4.2,
			RatingCount: 313,
			VideoURL:    "/media/cafe/fazer-cafe-toolo.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1509042239860-f550ce710b93?w=800",
		},
	}
}
