package cart

import (
	"errors"
	"path/filepath"
	"testing"

	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/favorites"

	"github.com/google/go-cmp/cmp"
)

func tempRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokeshop.db")
	r, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func testItem(id int, name string, hp int) domain.CatalogItem {
	return domain.CatalogItem{ID: id, Name: name, Stats: domain.Stats{HP: hp}}
}

type qtyLine struct {
	ID  int
	Qty int
}

func lineQtys(t *testing.T, r *SQLiteRepository) []qtyLine {
	t.Helper()
	lines, err := r.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	out := []qtyLine{}
	for _, l := range lines {
		out = append(out, qtyLine{ID: l.Item.ID, Qty: l.Qty})
	}
	return out
}

func TestAdd_IncrementsExistingLine(t *testing.T) {
	r := tempRepo(t)

	if err := r.Add(testItem(25, "pikachu", 35), 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := r.Add(testItem(1, "bulbasaur", 45), 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := r.Add(testItem(25, "pikachu-renamed", 99), 3); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	want := []qtyLine{{ID: 25, Qty: 4}, {ID: 1, Qty: 2}}
	if diff := cmp.Diff(want, lineQtys(t, r)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}

	lines, _ := r.List()
	if lines[0].Item.Name != "pikachu" {
		t.Errorf("expected first snapshot to be kept, got %q", lines[0].Item.Name)
	}
}

func TestAdd_Rejects(t *testing.T) {
	r := tempRepo(t)

	if err := r.Add(domain.CatalogItem{}, 1); !errors.Is(err, domain.ErrInvalidItem) {
		t.Errorf("expected ErrInvalidItem, got %v", err)
	}
	if err := r.Add(testItem(1, "a", 1), 0); err == nil {
		t.Error("expected error for zero quantity")
	}
}

func TestSetQty(t *testing.T) {
	r := tempRepo(t)
	if err := r.Add(testItem(4, "charmander", 39), 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := r.SetQty(4, 5); err != nil {
		t.Fatalf("SetQty failed: %v", err)
	}
	if diff := cmp.Diff([]qtyLine{{ID: 4, Qty: 5}}, lineQtys(t, r)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}

	if err := r.SetQty(4, 0); err != nil {
		t.Fatalf("SetQty(0) failed: %v", err)
	}
	if ok, _ := r.Contains(4); ok {
		t.Error("SetQty(0) should remove the line")
	}

	if err := r.SetQty(99, 2); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	r := tempRepo(t)
	for _, id := range []int{1, 2, 3} {
		if err := r.Add(testItem(id, "mon", 10), 1); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	if err := r.Remove(2); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := r.Remove(2); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if diff := cmp.Diff([]qtyLine{{ID: 1, Qty: 1}, {ID: 3, Qty: 1}}, lineQtys(t, r)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}

	if err := r.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := lineQtys(t, r); len(got) != 0 {
		t.Errorf("expected empty cart, got %v", got)
	}
}

func TestSharesDatabaseWithFavorites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokeshop.db")

	c, err := OpenAt(path)
	if err != nil {
		t.Fatalf("cart OpenAt failed: %v", err)
	}
	defer c.Close()
	f, err := favorites.OpenAt(path)
	if err != nil {
		t.Fatalf("favorites OpenAt failed: %v", err)
	}
	defer f.Close()

	if err := c.Add(testItem(7, "squirtle", 44), 1); err != nil {
		t.Fatalf("cart Add failed: %v", err)
	}
	if err := f.Add(testItem(7, "squirtle", 44)); err != nil {
		t.Fatalf("favorites Add failed: %v", err)
	}

	if ok, _ := c.Contains(7); !ok {
		t.Error("cart lost its line")
	}
	if ok, _ := f.Contains(7); !ok {
		t.Error("favorites lost its entry")
	}
}
