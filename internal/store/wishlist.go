package store

import (
	"encoding/json"
	"sync"

	"onlineshop/internal/kv"
	"onlineshop/internal/notify"
)

const wishlistKey = "wishlist"

// Wishlist keeps saved product ids under its own key, following the same
// load/discard-on-corruption/persist-on-mutation pattern as the cart.
type Wishlist struct {
	kv      *kv.Store
	notices notify.Sink

	mu  sync.Mutex
	ids []string
}

func NewWishlist(store *kv.Store, notices notify.Sink) (*Wishlist, error) {
	w := &Wishlist{kv: store, notices: notices}
	raw, ok, err := store.Get(wishlistKey)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &w.ids); err != nil {
			if err := store.Delete(wishlistKey); err != nil {
				return nil, err
			}
			w.ids = nil
		}
	}
	return w, nil
}

func (w *Wishlist) persist() error {
	b, err := json.Marshal(w.ids)
	if err != nil {
		return err
	}
	return w.kv.Set(wishlistKey, string(b))
}

// Save adds a product id once; saving an already saved id is a no-op.
func (w *Wishlist) Save(productID string) error {
	if productID == "" {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, id := range w.ids {
		if id == productID {
			return nil
		}
	}
	w.ids = append(w.ids, productID)
	if err := w.persist(); err != nil {
		return err
	}
	w.notices.Push(notify.Success, "Saved to wishlist")
	return nil
}

func (w *Wishlist) Unsave(productID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	kept := w.ids[:0]
	for _, id := range w.ids {
		if id != productID {
			kept = append(kept, id)
		}
	}
	w.ids = kept
	if err := w.persist(); err != nil {
		return err
	}
	w.notices.Push(notify.Info, "Removed from wishlist")
	return nil
}

func (w *Wishlist) IDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.ids))
	copy(out, w.ids)
	return out
}

func (w *Wishlist) Has(productID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, id := range w.ids {
		if id == productID {
			return true
		}
	}
	return false
}
