package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"onlineshop/internal/domain"
	"onlineshop/internal/kv"
	"onlineshop/internal/notify"
)

const productsKey = "products"

var ErrInvalidProduct = errors.New("product name and category are required")

// Catalog owns the product list. It loads from the kv store on construction,
// falls back to the seed catalog when the persisted value is missing or fails
// structural validation, and persists a full snapshot after every mutation.
type Catalog struct {
	kv      *kv.Store
	notices notify.Sink

	mu       sync.Mutex
	products []domain.Product
}

// ProductInput carries raw (form-sourced) fields for a new product. Numeric
// fields arrive as strings and are coerced, never rejected.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	ImageURL    string
	Price       string
	InStock     string
}

// ProductPatch is a partial update keyed by field name: name, description,
// category, imageUrl, price, inStock. Unknown keys are ignored.
type ProductPatch map[string]string

func NewCatalog(store *kv.Store, notices notify.Sink) (*Catalog, error) {
	c := &Catalog{kv: store, notices: notices}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// productRecord is the parse-and-validate shadow of domain.Product: every
// field must be present with the right JSON type or the whole snapshot is
// discarded in favor of the seed catalog.
type productRecord struct {
	ID          *string  `json:"id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	Category    *string  `json:"category"`
	InStock     *float64 `json:"inStock"`
}

func decodeProducts(raw string) ([]domain.Product, bool) {
	var records []productRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, false
	}
	if len(records) == 0 {
		return nil, false
	}
	out := make([]domain.Product, 0, len(records))
	for _, r := range records {
		if r.ID == nil || r.Name == nil || r.Description == nil || r.Price == nil ||
			r.ImageURL == nil || r.Category == nil || r.InStock == nil {
			return nil, false
		}
		if math.IsNaN(*r.Price) || math.IsNaN(*r.InStock) {
			return nil, false
		}
		out = append(out, domain.Product{
			ID:          *r.ID,
			Name:        *r.Name,
			Description: *r.Description,
			Price:       *r.Price,
			ImageURL:    *r.ImageURL,
			Category:    *r.Category,
			InStock:     int(*r.InStock),
		})
	}
	return out, true
}

func (c *Catalog) load() error {
	raw, ok, err := c.kv.Get(productsKey)
	if err != nil {
		return err
	}
	if ok {
		if products, valid := decodeProducts(raw); valid {
			c.products = products
			return nil
		}
	}
	// Missing, unparsable, empty, or structurally invalid: self-heal with the
	// seed catalog and persist it immediately.
	c.products = SeedProducts()
	return c.persist()
}

func (c *Catalog) persist() error {
	b, err := json.Marshal(c.products)
	if err != nil {
		return err
	}
	return c.kv.Set(productsKey, string(b))
}

// Products returns a copy of the catalog in insertion order.
func (c *Catalog) Products() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product and whether it exists. Empty and unknown ids are
// not errors.
func (c *Catalog) Get(id string) (domain.Product, bool) {
	if id == "" {
		return domain.Product{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (c *Catalog) Add(in ProductInput) (domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		c.notices.Push(notify.Error, "Product name and category are required")
		return domain.Product{}, ErrInvalidProduct
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := domain.Product{
		ID:          c.newID(),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Price:       coercePrice(in.Price),
		InStock:     coerceStock(in.InStock),
	}
	if p.ImageURL == "" {
		p.ImageURL = placeholderImageURL()
	}
	c.products = append(c.products, p)
	if err := c.persist(); err != nil {
		c.notices.Push(notify.Error, "Failed to save product changes")
		return domain.Product{}, err
	}
	c.notices.Push(notify.Success, "Product added successfully")
	return p, nil
}

// Update merges the patch into the matching product; an unknown id is a
// no-op. When the patch's only field is inStock the update is treated as
// system-initiated (checkout's stock decrement) and no success notice is
// pushed.
func (c *Catalog) Update(id string, patch ProductPatch) error {
	if id == "" {
		c.notices.Push(notify.Error, "Product ID is required for updates")
		return errors.New("missing product id")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.products {
		if c.products[i].ID != id {
			continue
		}
		applyPatch(&c.products[i], patch)
		if err := c.persist(); err != nil {
			c.notices.Push(notify.Error, "Failed to save product changes")
			return err
		}
		break
	}
	if !stockOnly(patch) {
		c.notices.Push(notify.Success, "Product updated successfully")
	}
	return nil
}

// Delete removes the product if present and reports success either way.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.products[:0]
	for _, p := range c.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.products = kept
	if err := c.persist(); err != nil {
		c.notices.Push(notify.Error, "Failed to save product changes")
		return err
	}
	c.notices.Push(notify.Success, "Product deleted successfully")
	return nil
}

func applyPatch(p *domain.Product, patch ProductPatch) {
	if v, ok := patch["name"]; ok {
		p.Name = v
	}
	if v, ok := patch["description"]; ok {
		p.Description = v
	}
	if v, ok := patch["category"]; ok {
		p.Category = v
	}
	if v, ok := patch["imageUrl"]; ok {
		p.ImageURL = v
	}
	if v, ok := patch["price"]; ok {
		p.Price = coercePrice(v)
	}
	if v, ok := patch["inStock"]; ok {
		p.InStock = coerceStock(v)
	}
}

func stockOnly(patch ProductPatch) bool {
	_, ok := patch["inStock"]
	return ok && len(patch) == 1
}

// coercePrice parses a price, defaulting to 0 on failure. Negative and
// non-finite values also collapse to 0 so the catalog never holds an invalid
// price.
func coercePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func coerceStock(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// newID generates a millisecond-timestamp id, nudged forward on the rare
// collision with an existing product. Caller holds the lock.
func (c *Catalog) newID() string {
	n := time.Now().UnixMilli()
	for {
		id := strconv.FormatInt(n, 10)
		taken := false
		for _, p := range c.products {
			if p.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		n++
	}
}

func placeholderImageURL() string {
	return fmt.Sprintf("https://picsum.photos/id/%d/400/400", rand.Intn(1000))
}
