package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"onlineshop/internal/domain"
	"onlineshop/internal/kv"
	"onlineshop/internal/notify"
)

const cartKey = "cart"

var ErrInsufficientStock = errors.New("insufficient stock")

// Cart owns the current shopping cart: at most one entry per product id,
// quantities bounded by the product's stock at the moment of the check.
// Every mutation persists the full snapshot under the "cart" key.
type Cart struct {
	kv      *kv.Store
	notices notify.Sink

	mu    sync.Mutex
	items []domain.CartItem
}

func NewCart(store *kv.Store, notices notify.Sink) (*Cart, error) {
	c := &Cart{kv: store, notices: notices}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// load discards unparsable persisted state and starts empty; unlike the
// catalog there is no seed fallback.
func (c *Cart) load() error {
	raw, ok, err := c.kv.Get(cartKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return c.kv.Delete(cartKey)
	}
	c.items = items
	return nil
}

func (c *Cart) persist() error {
	b, err := json.Marshal(c.items)
	if err != nil {
		return err
	}
	return c.kv.Set(cartKey, string(b))
}

// Items returns a copy of the cart entries in insertion order.
func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Add inserts a new entry or raises the existing one's quantity. The whole
// operation is rejected, not clamped, when the requested or accumulated
// quantity exceeds the product's stock.
func (c *Cart) Add(p domain.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if p.ID == "" {
		return errors.New("no product")
	}
	if p.InStock < quantity {
		c.notices.Push(notify.Warn, fmt.Sprintf("Sorry, only %d items available", p.InStock))
		return ErrInsufficientStock
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID != p.ID {
			continue
		}
		next := c.items[i].Quantity + quantity
		if p.InStock < next {
			c.notices.Push(notify.Warn, fmt.Sprintf("Sorry, only %d items available", p.InStock))
			return ErrInsufficientStock
		}
		c.items[i].Quantity = next
		if err := c.persist(); err != nil {
			return err
		}
		c.notices.Push(notify.Success, p.Name+" added to cart")
		return nil
	}

	c.items = append(c.items, domain.CartItem{Product: p, Quantity: quantity})
	if err := c.persist(); err != nil {
		return err
	}
	c.notices.Push(notify.Success, p.Name+" added to cart")
	return nil
}

// Remove drops the matching entry; removing an absent id is a no-op. An
// informational notice is always pushed.
func (c *Cart) Remove(productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remove(productID)
}

func (c *Cart) remove(productID string) error {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.Product.ID != productID {
			kept = append(kept, it)
		}
	}
	c.items = kept
	if err := c.persist(); err != nil {
		return err
	}
	c.notices.Push(notify.Info, "Item removed from cart")
	return nil
}

// UpdateQuantity sets an entry's quantity. A quantity below 1 removes the
// entry; a quantity above the snapshot's stock clamps down to the stock and
// warns, deliberately unlike Add's outright rejection.
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		return c.remove(productID)
	}
	for i := range c.items {
		if c.items[i].Product.ID != productID {
			continue
		}
		if stock := c.items[i].Product.InStock; stock < quantity {
			c.notices.Push(notify.Warn, fmt.Sprintf("Sorry, only %d items available", stock))
			quantity = stock
		}
		c.items[i].Quantity = quantity
		return c.persist()
	}
	return nil
}

// Clear empties the cart and erases the persisted key.
func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return c.kv.Delete(cartKey)
}

// Total is the sum of price times quantity over all entries.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, it := range c.items {
		total += it.Product.Price * float64(it.Quantity)
	}
	return total
}

// Count is the sum of quantities over all entries.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}
