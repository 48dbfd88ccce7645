package notify

import (
	"encoding/json"
	"log"
)

type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Mailer sends the order confirmation. The console implementation simulates
// delivery; a real one would call an external email service.
type Mailer interface {
	OrderConfirmation(email, orderNumber string, items []OrderItem, total float64) error
}

type ConsoleMailer struct {
	Notices Sink
}

func (m *ConsoleMailer) OrderConfirmation(email, orderNumber string, items []OrderItem, total float64) error {
	detail, _ := json.Marshal(items)
	log.Printf("[mail] confirmation to %s for order %s total=%.2f items=%s", email, orderNumber, total, detail)
	if m.Notices != nil {
		m.Notices.Push(Success, "Order confirmation email sent")
	}
	return nil
}
