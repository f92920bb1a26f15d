package model

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// Order statuses. Transitions between them are not constrained.
const (
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusPending, OrderStatusCompleted:
		return true
	}
	return false
}

// Order represents a buyer's order referencing products by ID.
type Order struct {
	ID         string      `json:"id"`
	BuyerEmail string      `json:"buyerEmail" validate:"required"`
	Products   []string    `json:"products" validate:"required,min=1,dive,required"`
	Status     OrderStatus `json:"status" validate:"order_status"`
}

// ApplyDefaults fills in fields that have a default value.
func (o *Order) ApplyDefaults() {
	if o.Status == "" {
		o.Status = OrderStatusCreated
	}
}

// OrderView is an order with its product references expanded. A slot is nil
// when the referenced product no longer exists.
type OrderView struct {
	ID         string      `json:"id"`
	BuyerEmail string      `json:"buyerEmail"`
	Products   []*Product  `json:"products"`
	Status     OrderStatus `json:"status"`
}

// OrderPatch is a partial update of an order. An explicit null stores the
// zero value, which fails validation for every order field.
type OrderPatch struct {
	BuyerEmail Optional[string]      `json:"buyerEmail"`
	Products   Optional[[]string]    `json:"products"`
	Status     Optional[OrderStatus] `json:"status"`
}

// Apply overwrites each present field of the patch onto o.
func (op *OrderPatch) Apply(o *Order) {
	setValue(op.BuyerEmail, &o.BuyerEmail)
	setValue(op.Products, &o.Products)
	setValue(op.Status, &o.Status)
}

// OrderFilter selects a page of orders. Set filters are combined with AND.
type OrderFilter struct {
	Offset    int
	Limit     int
	ProductID *string
	Status    *OrderStatus
}
