// Package merchants holds the static merchant dictionary used to bucket
// purchases into spending categories and to recognize subscription
// services. Extending coverage means appending data here, not code.
package merchants

import "strings"

// Category is one spending bucket with the merchant substrings that map
// into it. Patterns are matched case-insensitively, first match wins,
// so narrower patterns must precede broader ones.
type Category struct {
	Name     string
	Color    string
	Patterns []string
}

// OtherCategory is the reserved bucket for purchases no pattern matches.
const OtherCategory = "Otros"

// OtherColor is the display color of the Otros bucket.
const OtherColor = "#9CA3AF"

// Categories is the ordered category dictionary. Immutable configuration
// data, loaded once at process start.
var Categories = []Category{
	{
		Name:  "Transporte",
		Color: "#3B82F6",
		Patterns: []string{
			"PAYU*AR*UBER", "PYU*UBER", "DLO*DiDi", "DLOCAL*DIDI",
			"UBER", "CABIFY", "BEAT",
		},
	},
	{
		Name:  "Delivery",
		Color: "#EF4444",
		Patterns: []string{
			"DLO*Rappi", "RAPPI", "PEDIDOSYA", "GLOBO",
		},
	},
	{
		Name:  "Supermercado",
		Color: "#22C55E",
		Patterns: []string{
			"3SM*SUPER TIME", "DISCO", "PVS*SUPERMERCADO", "MERPAGO*SUPERMERCADO",
			"CARREFOUR", "COTO", "JUMBO", "DIA", "CHANGOMAS", "WALMART",
			"VEA", "MAKRO",
		},
	},
	{
		Name:  "Suscripciones",
		Color: "#8B5CF6",
		Patterns: []string{
			"ADOBE", "SPOTIFY", "NETFLIX", "YOUTUBE", "HBOMAX", "DISNEY",
			"AMAZON PRIME", "APPLE", "MERPAGO*APPLEPRO", "RAPPIPRO",
			"MERCADOLIBRE NIVEL", "GOOGLE", "MICROSOFT", "OPENAI", "CHATGPT",
		},
	},
	{
		Name:  "Entretenimiento",
		Color: "#F59E0B",
		Patterns: []string{
			"SHOWCASE CINEMAS", "HOYTS", "CINEMARK", "CINEPOLIS",
			"MERPAGO*BETANO", "BETANO", "STEAM", "PLAYSTATION", "XBOX",
			"NINTENDO",
		},
	},
	{
		Name:  "Eventos",
		Color: "#EC4899",
		Patterns: []string{
			"MERPAGO*PASSLINE", "PASSLINE", "TICKETEK", "LIVEPASS",
			"EVENTBRITE", "ALLACCESS",
		},
	},
	{
		Name:  "Estacionamiento",
		Color: "#6B7280",
		Patterns: []string{
			"MERPAGO*PARKING", "MERPAGO*PARKINGDOT", "ESTACIONAMIENTO",
			"PARKING", "AUTOPISTA", "PEAJE",
		},
	},
	{
		Name:  "Compras",
		Color: "#14B8A6",
		Patterns: []string{
			"NIKE", "ADIDAS", "ZARA", "H&M", "LIBRERIA", "MONOBLOCK",
			"FRAVEGA", "GARBARINO", "MUSIMUNDO", "MEGATONE", "MERCADOLIBRE",
			"AMAZON",
		},
	},
	{
		Name:  "Mascotas",
		Color: "#F97316",
		Patterns: []string{
			"PET SUPPLIES", "PUPPIS", "PET SHOP", "VETERINARIA",
		},
	},
	{
		Name:  "Café",
		Color: "#A16207",
		Patterns: []string{
			"MERPAGO*BEECOFFEE", "BEE COFFEE", "STARBUCKS", "HAVANNA",
			"CAFE MARTINEZ", "LE BLEU", "LATTENTE", "BIRKIN",
		},
	},
	{
		Name:  "Restaurantes",
		Color: "#DC2626",
		Patterns: []string{
			"RESTAURANT", "PARRILLA", "PIZZERIA", "SUSHI", "BURGER",
			"MCDONALD", "WENDYS", "KFC", "MOSTAZA", "DEAN & DENNYS",
			"KANSAS", "LA CABRERA",
		},
	},
	{
		Name:  "Kiosco",
		Color: "#059669",
		Patterns: []string{
			"MERPAGO*1440KIOSCOS", "KIOSCO", "MAXIKIOSCO", "FARMACITY",
		},
	},
	{
		Name:  "Farmacia",
		Color: "#0EA5E9",
		Patterns: []string{
			"FARMACIA", "FARMAPLUS", "FARMACITY", "DROGUERIA",
		},
	},
	{
		Name:  "Salud",
		Color: "#06B6D4",
		Patterns: []string{
			"OSDE", "SWISS MEDICAL", "GALENO", "MEDICUS", "HOSPITAL",
			"CLINICA", "CONSULTORIO", "LABORATORIO",
		},
	},
	{
		Name:  "Combustible",
		Color: "#FBBF24",
		Patterns: []string{
			"YPF", "SHELL", "AXION", "PUMA", "NAFTA", "GNC",
		},
	},
	{
		Name:  "Servicios",
		Color: "#6366F1",
		Patterns: []string{
			"EDENOR", "EDESUR", "METROGAS", "AYSA", "TELECENTRO",
			"FIBERTEL", "PERSONAL", "MOVISTAR", "CLARO", "DIRECTV",
		},
	},
	{
		Name:  "Personal (QR propio)",
		Color: "#A855F7",
		Patterns: []string{
			"MERPAGO*JUANRIGADA",
		},
	},
}

// KnownSubscriptions are services always flagged as subscriptions even
// when their purchase lands in another category.
var KnownSubscriptions = []string{
	"ADOBE", "RAPPIPRO", "SPOTIFY", "NETFLIX", "YOUTUBE", "HBOMAX",
	"DISNEY", "AMAZON PRIME", "MERPAGO*APPLEPRO", "APPLE",
	"MERCADOLIBRE NIVEL", "GOOGLE ONE", "MICROSOFT 365", "OPENAI",
	"CHATGPT", "ICLOUD", "DROPBOX", "NOTION", "FIGMA", "CANVA",
	"LINKEDIN", "GITHUB",
}

// Categorize returns the first category whose patterns match the
// merchant name, or nil when none does.
func Categorize(merchant string) *Category {
	normalized := strings.ToUpper(merchant)

	for i := range Categories {
		for _, pattern := range Categories[i].Patterns {
			if strings.Contains(normalized, strings.ToUpper(pattern)) {
				return &Categories[i]
			}
		}
	}
	return nil
}

// IsKnownSubscription reports whether the merchant matches a known
// subscription service.
func IsKnownSubscription(merchant string) bool {
	normalized := strings.ToUpper(merchant)

	for _, pattern := range KnownSubscriptions {
		if strings.Contains(normalized, strings.ToUpper(pattern)) {
			return true
		}
	}
	return false
}
