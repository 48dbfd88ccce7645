package store_test

import (
	"reflect"
	"strings"
	"testing"

	"onlineshop/internal/kv"
	"onlineshop/internal/notify"
	"onlineshop/internal/store"
)

func memkv(t *testing.T) *kv.Store {
	t.Helper()
	s, err := kv.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newCatalog(t *testing.T, db *kv.Store) (*store.Catalog, *notify.Recorder) {
	t.Helper()
	rec := notify.NewRecorder()
	c, err := store.NewCatalog(db, rec)
	if err != nil {
		t.Fatal(err)
	}
	return c, rec
}

func hasLevel(notices []notify.Notice, level notify.Level) bool {
	for _, n := range notices {
		if n.Level == level {
			return true
		}
	}
	return false
}

func TestCatalogSeedsWhenEmpty(t *testing.T) {
	db := memkv(t)
	c, _ := newCatalog(t, db)

	products := c.Products()
	if len(products) != len(store.SeedProducts()) {
		t.Fatalf("want seed catalog, got %d products", len(products))
	}
	// seeding persists immediately
	if _, ok, _ := db.Get("products"); !ok {
		t.Fatal("seed catalog was not persisted")
	}
}

func TestCatalogSeedsOnCorruptedSnapshot(t *testing.T) {
	cases := map[string]string{
		"unparsable":      `{{{not json`,
		"not an array":    `{"id":"1"}`,
		"empty array":     `[]`,
		"price as string": `[{"id":"x","name":"Thing","description":"d","price":"ten","imageUrl":"u","category":"c","inStock":1}]`,
		"missing field":   `[{"id":"x","name":"Thing","price":9.99,"imageUrl":"u","category":"c","inStock":1}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			db := memkv(t)
			if err := db.Set("products", raw); err != nil {
				t.Fatal(err)
			}
			c, _ := newCatalog(t, db)
			if !reflect.DeepEqual(c.Products(), store.SeedProducts()) {
				t.Fatalf("corrupted snapshot should fall back to seed, got %+v", c.Products())
			}
		})
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	db := memkv(t)
	c, _ := newCatalog(t, db)
	if _, err := c.Add(store.ProductInput{Name: "Desk Lamp", Category: "Home", Price: "24.50", InStock: "3"}); err != nil {
		t.Fatal(err)
	}
	before := c.Products()

	// simulate app restart over the same storage
	c2, _ := newCatalog(t, db)
	if !reflect.DeepEqual(c2.Products(), before) {
		t.Fatalf("reload mismatch:\nbefore %+v\nafter  %+v", before, c2.Products())
	}
}

func TestCatalogAddCoercesNumbers(t *testing.T) {
	db := memkv(t)
	c, _ := newCatalog(t, db)

	p, err := c.Add(store.ProductInput{Name: "Mug", Category: "Kitchen", Price: "19.99", InStock: "abc"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Price != 19.99 || p.InStock != 0 {
		t.Fatalf("want price=19.99 inStock=0, got %+v", p)
	}
	if !strings.HasPrefix(p.ImageURL, "https://picsum.photos/") {
		t.Fatalf("blank image should default to placeholder, got %q", p.ImageURL)
	}
	got, ok := c.Get(p.ID)
	if !ok || got.Name != "Mug" {
		t.Fatalf("get after add failed: %+v ok=%v", got, ok)
	}
}

func TestCatalogAddClampsNegatives(t *testing.T) {
	db := memkv(t)
	c, _ := newCatalog(t, db)
	p, err := c.Add(store.ProductInput{Name: "Mug", Category: "Kitchen", Price: "-5", InStock: "-2"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Price != 0 || p.InStock != 0 {
		t.Fatalf("negative inputs should clamp to 0, got %+v", p)
	}
}

func TestCatalogAddRequiresNameAndCategory(t *testing.T) {
	db := memkv(t)
	c, rec := newCatalog(t, db)
	before := len(c.Products())

	if _, err := c.Add(store.ProductInput{Name: "", Category: "Kitchen"}); err == nil {
		t.Fatal("want error for missing name")
	}
	if len(c.Products()) != before {
		t.Fatal("rejected add must not change state")
	}
	if !hasLevel(rec.Drain(), notify.Error) {
		t.Fatal("expected an error notice")
	}
}

func TestCatalogUpdateChangesOnlyPatchedField(t *testing.T) {
	db := memkv(t)
	c, _ := newCatalog(t, db)
	before, _ := c.Get("1")

	if err := c.Update("1", store.ProductPatch{"inStock": "7"}); err != nil {
		t.Fatal(err)
	}
	after, _ := c.Get("1")
	if after.InStock != 7 {
		t.Fatalf("want inStock=7, got %d", after.InStock)
	}
	after.InStock = before.InStock
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("update touched other fields:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestCatalogStockOnlyUpdateIsSilent(t *testing.T) {
	db := memkv(t)
	c, rec := newCatalog(t, db)

	if err := c.Update("1", store.ProductPatch{"inStock": "9"}); err != nil {
		t.Fatal(err)
	}
	if hasLevel(rec.Drain(), notify.Success) {
		t.Fatal("stock-only update must not surface a success notice")
	}

	if err := c.Update("1", store.ProductPatch{"name": "Renamed"}); err != nil {
		t.Fatal(err)
	}
	if !hasLevel(rec.Drain(), notify.Success) {
		t.Fatal("admin-style update should surface a success notice")
	}
}

func TestCatalogUpdateEmptyID(t *testing.T) {
	db := memkv(t)
	c, _ := newCatalog(t, db)
	before := c.Products()
	if err := c.Update("", store.ProductPatch{"name": "X"}); err == nil {
		t.Fatal("want error for empty id")
	}
	if !reflect.DeepEqual(before, c.Products()) {
		t.Fatal("empty-id update must not change state")
	}
}

func TestCatalogUpdateUnknownIDIsNoop(t *testing.T) {
	db := memkv(t)
	c, _ := newCatalog(t, db)
	before := c.Products()
	if err := c.Update("does-not-exist", store.ProductPatch{"name": "X"}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, c.Products()) {
		t.Fatal("unknown-id update must not change state")
	}
}

func TestCatalogDeleteIsIdempotent(t *testing.T) {
	db := memkv(t)
	c, rec := newCatalog(t, db)

	if err := c.Delete("1"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("1"); ok {
		t.Fatal("deleted product still present")
	}
	if !hasLevel(rec.Drain(), notify.Success) {
		t.Fatal("delete should report success")
	}

	// deleting again (or any unknown id) still succeeds
	if err := c.Delete("1"); err != nil {
		t.Fatal(err)
	}
	if !hasLevel(rec.Drain(), notify.Success) {
		t.Fatal("repeat delete should still report success")
	}
}
