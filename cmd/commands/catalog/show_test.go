package catalog

import (
	"encoding/json"
	"strings"
	"testing"

	"nathanbeddoewebdev/pokeshop/internal/domain"
)

func pikachuSource() *mockSource {
	return &mockSource{items: map[int]*domain.CatalogItem{
		25: {
			ID:   25,
			Name: "pikachu",
			Stats: domain.Stats{
				HP: 35, Attack: 55, Defense: 40, SpecialAttack: 50, SpecialDefense: 50, Speed: 90,
			},
			Types:     []string{"electric"},
			SpriteURL: "https://example.test/25.svg",
		},
	}}
}

func TestShowCommand_TableOutput(t *testing.T) {
	mock := pikachuSource()
	registerMockSource(t, mock)

	stdout, stderr := execCatalog(t, "show", "#025")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if mock.gotID != 25 {
		t.Errorf("expected GetItem called with 25, got %d", mock.gotID)
	}
	// 320 total stats / 4 + 10.
	assertContainsAll(t, stdout, "stdout", []string{
		"#025", "Pikachu", "electric", "$ 90.00",
		"Speed:", "90", "Total:", "320",
		"https://example.test/25.svg",
	})
}

func TestShowCommand_JSONOutput(t *testing.T) {
	registerMockSource(t, pikachuSource())

	stdout, _ := execCatalog(t, "show", "25", "-o", "json")

	var got pricedItem
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("failed to parse JSON output: %v\noutput:\n%s", err, stdout)
	}
	if got.ID != 25 || got.Name != "pikachu" || got.Price != 90 {
		t.Errorf("unexpected item: %+v", got)
	}
}

func TestShowCommand_NotFound(t *testing.T) {
	registerMockSource(t, pikachuSource())

	stdout, stderr := execCatalog(t, "show", "999")

	if !strings.Contains(stderr, "no Pokémon with ID 999") {
		t.Errorf("expected not-found error, got:\n%s", stderr)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout, got:\n%s", stdout)
	}
}

func TestShowCommand_InvalidID(t *testing.T) {
	mock := pikachuSource()
	registerMockSource(t, mock)

	_, stderr := execCatalog(t, "show", "pika")

	if !strings.Contains(stderr, "not a number") {
		t.Errorf("expected parse error, got:\n%s", stderr)
	}
	if mock.gotID != 0 {
		t.Error("expected source not to be called")
	}
}
