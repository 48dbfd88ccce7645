// Package checkout coordinates the cart, the catalog and the mail stub to
// turn a cart into a completed order: validate the form, simulate payment
// processing, decrement stock per entry and send the confirmation. The cart
// deliberately survives until the shopper acknowledges the confirmation.
package checkout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"onlineshop/internal/domain"
	"onlineshop/internal/notify"
	"onlineshop/internal/store"
)

type State int

const (
	StateForm State = iota
	StateValidating
	StateProcessing
	StateConfirmed
)

const (
	PaymentCreditCard   = "creditCard"
	PaymentPayPal       = "paypal"
	PaymentBankTransfer = "bankTransfer"
)

var (
	ErrEmptyCart  = errors.New("cart is empty")
	ErrOutOfStock = errors.New("insufficient stock for cart item")
)

// ValidationError aborts a submission before any state mutation. The message
// is shown to the shopper as-is.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type Form struct {
	FirstName string
	LastName  string
	Email     string
	Address   string
	City      string
	State     string
	Zip       string
	Country   string

	PaymentMethod string

	CardName   string
	CardNumber string
	ExpMonth   string
	ExpYear    string
	CVV        string

	BankName      string
	AccountNumber string
	RoutingNumber string
}

type Workflow struct {
	Cart    *store.Cart
	Catalog *store.Catalog
	Mailer  notify.Mailer
	Notices notify.Sink
	// Delay simulates payment processing; zero in tests.
	Delay time.Duration

	mu      sync.Mutex
	state   State
	receipt domain.Receipt
}

func NewWorkflow(cart *store.Cart, catalog *store.Catalog, mailer notify.Mailer, notices notify.Sink, delay time.Duration) *Workflow {
	return &Workflow{Cart: cart, Catalog: catalog, Mailer: mailer, Notices: notices, Delay: delay}
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Receipt returns the confirmation data once the workflow is Confirmed.
func (w *Workflow) Receipt() (domain.Receipt, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.receipt, w.state == StateConfirmed
}

// Submit runs the whole workflow. Any validation or stock failure leaves the
// state machine in Form with nothing mutated, so resubmission is safe. On
// success the state is Confirmed and the receipt is available; the cart is
// not cleared until Finish.
func (w *Workflow) Submit(form Form) (domain.Receipt, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateConfirmed {
		return w.receipt, nil
	}
	w.state = StateValidating

	items := w.Cart.Items()
	if len(items) == 0 {
		w.state = StateForm
		w.Notices.Push(notify.Warn, "Your cart is empty")
		return domain.Receipt{}, ErrEmptyCart
	}

	// Stock preconditions against the live catalog, not the cart snapshot.
	// No partial checkout: one short entry aborts the whole submission.
	for _, it := range items {
		p, ok := w.Catalog.Get(it.Product.ID)
		if !ok || p.InStock < it.Quantity {
			w.state = StateForm
			w.Notices.Push(notify.Error, fmt.Sprintf("%s is out of stock or has insufficient quantity", it.Product.Name))
			return domain.Receipt{}, ErrOutOfStock
		}
	}

	if err := validateForm(form); err != nil {
		w.state = StateForm
		w.Notices.Push(notify.Error, err.Error())
		return domain.Receipt{}, err
	}

	w.state = StateProcessing
	// Simulated payment processing. Not cancellable; if the caller goes away
	// mid-flight the mutation below still completes and writes storage.
	time.Sleep(w.Delay)

	orderNumber := newOrderNumber()
	total := w.Cart.Total()

	// One silent stock update per entry. Non-transactional: a failing update
	// does not roll back earlier ones.
	for _, it := range items {
		p, ok := w.Catalog.Get(it.Product.ID)
		if !ok {
			continue
		}
		patch := store.ProductPatch{"inStock": strconv.Itoa(p.InStock - it.Quantity)}
		if err := w.Catalog.Update(p.ID, patch); err != nil {
			w.state = StateForm
			return domain.Receipt{}, err
		}
	}

	mailItems := make([]notify.OrderItem, 0, len(items))
	for _, it := range items {
		mailItems = append(mailItems, notify.OrderItem{
			Name:     it.Product.Name,
			Quantity: it.Quantity,
			Price:    it.Product.Price,
		})
	}
	if err := w.Mailer.OrderConfirmation(form.Email, orderNumber, mailItems, total); err != nil {
		w.state = StateForm
		return domain.Receipt{}, err
	}

	w.receipt = domain.Receipt{
		OrderNumber: orderNumber,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Email:       form.Email,
		Total:       total,
	}
	w.state = StateConfirmed
	w.Notices.Push(notify.Success, "Payment processed successfully!")
	return w.receipt, nil
}

// Finish acknowledges the confirmation: the cart is cleared unconditionally
// and the workflow returns to Form for the next order.
func (w *Workflow) Finish() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.Cart.Clear(); err != nil {
		return err
	}
	w.state = StateForm
	w.receipt = domain.Receipt{}
	return nil
}

// newOrderNumber combines a millisecond timestamp with a random suffix:
// human readable, unique with high probability within a session.
func newOrderNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return "ORD-" + ts + "-" + suffix
}
