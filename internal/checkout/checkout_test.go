package checkout_test

import (
	"errors"
	"regexp"
	"testing"

	"onlineshop/internal/checkout"
	"onlineshop/internal/kv"
	"onlineshop/internal/notify"
	"onlineshop/internal/store"
)

type fakeMailer struct {
	calls  int
	email  string
	number string
	items  []notify.OrderItem
	total  float64
}

func (m *fakeMailer) OrderConfirmation(email, orderNumber string, items []notify.OrderItem, total float64) error {
	m.calls++
	m.email = email
	m.number = orderNumber
	m.items = items
	m.total = total
	return nil
}

type fixture struct {
	db      *kv.Store
	catalog *store.Catalog
	cart    *store.Cart
	mailer  *fakeMailer
	rec     *notify.Recorder
	wf      *checkout.Workflow
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := kv.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	rec := notify.NewRecorder()
	catalog, err := store.NewCatalog(db, rec)
	if err != nil {
		t.Fatal(err)
	}
	cart, err := store.NewCart(db, rec)
	if err != nil {
		t.Fatal(err)
	}
	mailer := &fakeMailer{}
	wf := checkout.NewWorkflow(cart, catalog, mailer, rec, 0)
	return &fixture{db: db, catalog: catalog, cart: cart, mailer: mailer, rec: rec, wf: wf}
}

func validForm() checkout.Form {
	return checkout.Form{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Address:   "12 Analytical Way",

		PaymentMethod: checkout.PaymentCreditCard,
		CardName:      "Ada Lovelace",
		CardNumber:    "4242 4242 4242 4242",
		ExpMonth:      "12",
		ExpYear:       "2031",
		CVV:           "123",
	}
}

var orderNumberRE = regexp.MustCompile(`^ORD-[0-9A-Z]+-[0-9A-F]{6}$`)

func TestCheckoutEndToEnd(t *testing.T) {
	f := newFixture(t)
	p, err := f.catalog.Add(store.ProductInput{Name: "Notebook", Category: "Office", Price: "10.00", InStock: "5"})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.cart.Add(p, 2); err != nil {
		t.Fatal(err)
	}
	f.rec.Drain()

	receipt, err := f.wf.Submit(validForm())
	if err != nil {
		t.Fatal(err)
	}
	if !orderNumberRE.MatchString(receipt.OrderNumber) {
		t.Fatalf("bad order number %q", receipt.OrderNumber)
	}
	if receipt.Total != 20 {
		t.Fatalf("want total 20, got %v", receipt.Total)
	}
	if f.wf.State() != checkout.StateConfirmed {
		t.Fatalf("want Confirmed, got %v", f.wf.State())
	}

	// stock decremented by exactly the ordered quantity
	after, _ := f.catalog.Get(p.ID)
	if after.InStock != 3 {
		t.Fatalf("want inStock=3, got %d", after.InStock)
	}

	// confirmation mail carries the itemized order
	if f.mailer.calls != 1 || f.mailer.email != "ada@example.com" || f.mailer.total != 20 {
		t.Fatalf("mailer not invoked as expected: %+v", f.mailer)
	}
	if len(f.mailer.items) != 1 || f.mailer.items[0].Name != "Notebook" || f.mailer.items[0].Quantity != 2 {
		t.Fatalf("bad mail items: %+v", f.mailer.items)
	}

	// the cart survives until the confirmation is acknowledged
	if len(f.cart.Items()) != 1 {
		t.Fatal("cart must stay populated until the order is finished")
	}
	if err := f.wf.Finish(); err != nil {
		t.Fatal(err)
	}
	if len(f.cart.Items()) != 0 {
		t.Fatal("finish must clear the cart")
	}
	if _, ok, _ := f.db.Get("cart"); ok {
		t.Fatal("finish must erase the persisted cart key")
	}
	if f.wf.State() != checkout.StateForm {
		t.Fatal("finish must reset the workflow")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	if _, err := f.wf.Submit(validForm()); !errors.Is(err, checkout.ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
	if f.wf.State() != checkout.StateForm {
		t.Fatal("failed submit must return to Form")
	}
}

func TestCheckoutAbortsWhenStockDropped(t *testing.T) {
	f := newFixture(t)
	p, _ := f.catalog.Add(store.ProductInput{Name: "Notebook", Category: "Office", Price: "10.00", InStock: "5"})
	if err := f.cart.Add(p, 2); err != nil {
		t.Fatal(err)
	}
	// stock drops after the item entered the cart; the live catalog wins
	if err := f.catalog.Update(p.ID, store.ProductPatch{"inStock": "1"}); err != nil {
		t.Fatal(err)
	}
	f.rec.Drain()

	if _, err := f.wf.Submit(validForm()); !errors.Is(err, checkout.ErrOutOfStock) {
		t.Fatalf("want ErrOutOfStock, got %v", err)
	}
	after, _ := f.catalog.Get(p.ID)
	if after.InStock != 1 || len(f.cart.Items()) != 1 {
		t.Fatal("aborted checkout must not mutate anything")
	}
	if f.mailer.calls != 0 {
		t.Fatal("no confirmation mail on abort")
	}
}

func TestCheckoutValidationFailures(t *testing.T) {
	cases := map[string]func(*checkout.Form){
		"missing shipping field": func(f *checkout.Form) { f.Address = "" },
		"missing card details":   func(f *checkout.Form) { f.CardNumber = "" },
		"card number too short":  func(f *checkout.Form) { f.CardNumber = "1234 5678" },
		"card number letters":    func(f *checkout.Form) { f.CardNumber = "4242abcd42424242" },
		"cvv wrong length":       func(f *checkout.Form) { f.CVV = "12" },
		"bad email":              func(f *checkout.Form) { f.Email = "not-an-email" },
		"bank transfer missing fields": func(f *checkout.Form) {
			f.PaymentMethod = checkout.PaymentBankTransfer
			f.BankName = ""
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			p, _ := f.catalog.Add(store.ProductInput{Name: "Notebook", Category: "Office", Price: "10.00", InStock: "5"})
			if err := f.cart.Add(p, 1); err != nil {
				t.Fatal(err)
			}
			form := validForm()
			mutate(&form)

			_, err := f.wf.Submit(form)
			var verr *checkout.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			after, _ := f.catalog.Get(p.ID)
			if after.InStock != 5 || f.mailer.calls != 0 {
				t.Fatal("validation failure must not mutate state")
			}
			if f.wf.State() != checkout.StateForm {
				t.Fatal("failed submit must return to Form")
			}
		})
	}
}

func TestCheckoutPayPalNeedsNoCardFields(t *testing.T) {
	f := newFixture(t)
	p, _ := f.catalog.Add(store.ProductInput{Name: "Notebook", Category: "Office", Price: "10.00", InStock: "5"})
	if err := f.cart.Add(p, 1); err != nil {
		t.Fatal(err)
	}
	form := checkout.Form{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Address:       "12 Analytical Way",
		PaymentMethod: checkout.PaymentPayPal,
	}
	if _, err := f.wf.Submit(form); err != nil {
		t.Fatal(err)
	}
}

func TestCheckoutResubmitAfterConfirmReturnsSameReceipt(t *testing.T) {
	f := newFixture(t)
	p, _ := f.catalog.Add(store.ProductInput{Name: "Notebook", Category: "Office", Price: "10.00", InStock: "5"})
	if err := f.cart.Add(p, 1); err != nil {
		t.Fatal(err)
	}
	first, err := f.wf.Submit(validForm())
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.wf.Submit(validForm())
	if err != nil {
		t.Fatal(err)
	}
	if first.OrderNumber != second.OrderNumber {
		t.Fatal("a confirmed workflow must not place a second order")
	}
	after, _ := f.catalog.Get(p.ID)
	if after.InStock != 4 {
		t.Fatalf("stock must be decremented once, got %d", after.InStock)
	}
}
