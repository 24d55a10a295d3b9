package domain

import "testing"

func TestStatsTotal_IgnoresNegative(t *testing.T) {
	s := Stats{HP: 45, Attack: 49, Defense: -10, SpecialAttack: 65, SpecialDefense: 65, Speed: 45}
	if got := s.Total(); got != 269 {
		t.Errorf("Total() = %d, want 269", got)
	}
}

func TestCatalogItem_DisplayID(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{1, "#001"},
		{25, "#025"},
		{151, "#151"},
		{1025, "#1025"},
	}
	for _, tt := range tests {
		if got := (CatalogItem{ID: tt.id}).DisplayID(); got != tt.want {
			t.Errorf("DisplayID(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestCatalogItem_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"pikachu", "Pikachu"},
		{"", ""},
		{"éclair", "Éclair"},
		{"ñandú", "Ñandú"},
		{"mr-mime", "Mr-mime"},
		{"1up", "1up"},
	}
	for _, tt := range tests {
		if got := (CatalogItem{Name: tt.name}).DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCatalogItem_Valid(t *testing.T) {
	if (CatalogItem{ID: 0}).Valid() {
		t.Error("expected ID 0 to be invalid")
	}
	if !(CatalogItem{ID: 7}).Valid() {
		t.Error("expected ID 7 to be valid")
	}
}

func TestPage_HasMore(t *testing.T) {
	var nilPage *Page
	if nilPage.HasMore() {
		t.Error("nil page should not have more")
	}
	if (&Page{}).HasMore() {
		t.Error("page without next URL should not have more")
	}
	if !(&Page{NextURL: "https://pokeapi.co/api/v2/pokemon?offset=20"}).HasMore() {
		t.Error("page with next URL should have more")
	}
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		in   string
		want SortMode
	}{
		{"relevance", SortByRelevance},
		{"price-asc", SortByPriceAsc},
		{"PRICE-DESC", SortByPriceDesc},
		{" menor ", SortByPriceAsc},
		{"mayor", SortByPriceDesc},
		{"", SortByRelevance},
		{"alphabetical", SortByRelevance},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseSortMode(tt.in); got != tt.want {
				t.Errorf("ParseSortMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLookupSortMode_Unknown(t *testing.T) {
	if _, ok := LookupSortMode("random"); ok {
		t.Error("expected unknown mode to be reported")
	}
}

func TestSortMode_NextCycles(t *testing.T) {
	m := SortByRelevance
	seen := []SortMode{m}
	for i := 0; i < 3; i++ {
		m = m.Next()
		seen = append(seen, m)
	}
	want := []SortMode{SortByRelevance, SortByPriceAsc, SortByPriceDesc, SortByRelevance}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", seen, want)
		}
	}
	if SortMode(42).Next() != SortByRelevance {
		t.Error("unknown mode should reset to relevance")
	}
	if SortMode(42).String() != "relevance" {
		t.Error("unknown mode should render as relevance")
	}
}
