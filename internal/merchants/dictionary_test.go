package merchants

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		merchant string
		want     string
	}{
		{"RAPPI PEDIDOS", "Delivery"},
		{"DLO*Rappi ar", "Delivery"},
		{"PAYU*AR*UBER TRIP", "Transporte"},
		{"UBER *TRIP HELP.UBER.C", "Transporte"},
		{"COTO CICSA SUC 123", "Supermercado"},
		{"NETFLIX.COM", "Suscripciones"},
		{"STEAM PURCHASE", "Entretenimiento"},
		{"YPF RUTA 2", "Combustible"},
		{"FARMACIA DEL PUEBLO", "Farmacia"},
		{"rappi pedidos", "Delivery"}, // case-insensitive
	}

	for _, tt := range tests {
		t.Run(tt.merchant, func(t *testing.T) {
			cat := Categorize(tt.merchant)
			if cat == nil {
				t.Fatalf("Categorize(%q) = nil, want %q", tt.merchant, tt.want)
			}
			if cat.Name != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.merchant, cat.Name, tt.want)
			}
		})
	}
}

func TestCategorizeUnknown(t *testing.T) {
	if cat := Categorize("COMERCIO DESCONOCIDO XYZ"); cat != nil {
		t.Errorf("expected nil category, got %q", cat.Name)
	}
}

// FARMACITY appears both under Kiosco and Farmacia; the dictionary is
// ordered, so the earlier bucket must win.
func TestCategorizeOrderMatters(t *testing.T) {
	cat := Categorize("FARMACITY SA")
	if cat == nil || cat.Name != "Kiosco" {
		t.Errorf("expected Kiosco for FARMACITY, got %v", cat)
	}
}

func TestIsKnownSubscription(t *testing.T) {
	known := []string{"SPOTIFY AB", "Netflix.com", "OPENAI *CHATGPT SUBS", "GITHUB INC"}
	for _, m := range known {
		if !IsKnownSubscription(m) {
			t.Errorf("expected %q to be a known subscription", m)
		}
	}

	unknown := []string{"COTO CICSA", "TRANSFERENCIA VARELA", ""}
	for _, m := range unknown {
		if IsKnownSubscription(m) {
			t.Errorf("did not expect %q to be a known subscription", m)
		}
	}
}

func TestCategoryColorsPresent(t *testing.T) {
	for _, cat := range Categories {
		if cat.Color == "" {
			t.Errorf("category %q has no color", cat.Name)
		}
		if len(cat.Patterns) == 0 {
			t.Errorf("category %q has no patterns", cat.Name)
		}
	}
}
