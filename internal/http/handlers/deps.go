package handlers

import (
	"onlineshop/internal/checkout"
	"onlineshop/internal/config"
	"onlineshop/internal/kv"
	"onlineshop/internal/notify"
	"onlineshop/internal/store"
)

type Deps struct {
	Session  *store.Session
	Notices  *notify.Recorder
	Workflow *checkout.Workflow

	ShopHandler     *ShopHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	WishlistHandler *WishlistHandler
	AdminHandler    *AdminHandler
}

// NewDeps builds the state containers over one kv store and wires the
// handlers. Stores are constructed once per application root and injected;
// nothing here is package-level state.
func NewDeps(db *kv.Store, cfg config.Config) (*Deps, error) {
	notices := notify.NewRecorder()

	catalog, err := store.NewCatalog(db, notices)
	if err != nil {
		return nil, err
	}
	cart, err := store.NewCart(db, notices)
	if err != nil {
		return nil, err
	}
	sess, err := store.NewSession(db, notices)
	if err != nil {
		return nil, err
	}
	wish, err := store.NewWishlist(db, notices)
	if err != nil {
		return nil, err
	}

	mailer := &notify.ConsoleMailer{Notices: notices}
	wf := checkout.NewWorkflow(cart, catalog, mailer, notices, cfg.ProcessingDelay)

	return &Deps{
		Session:  sess,
		Notices:  notices,
		Workflow: wf,

		ShopHandler:     &ShopHandler{Catalog: catalog, Cart: cart},
		CartHandler:     &CartHandler{Catalog: catalog, Cart: cart, Notices: notices},
		CheckoutHandler: &CheckoutHandler{Cart: cart, Workflow: wf, Notices: notices},
		WishlistHandler: &WishlistHandler{Catalog: catalog, Wish: wish, Notices: notices},
		AdminHandler:    &AdminHandler{Catalog: catalog, Session: sess, Notices: notices},
	}, nil
}
