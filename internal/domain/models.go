package domain

// Product is the unit of the catalog. Instances are stored as JSON under the
// "products" key, so the tags are the persisted wire shape.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
	InStock     int     `json:"inStock"`
}

// CartItem pairs a denormalized product snapshot with a quantity. The
// snapshot does not track later catalog edits; stock ceilings are re-checked
// against the live catalog on mutation and at checkout.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}

// Receipt is the ephemeral result of a completed checkout. It is rendered
// once on the confirmation page and never persisted.
type Receipt struct {
	OrderNumber string
	FirstName   string
	LastName    string
	Email       string
	Total       float64
}
