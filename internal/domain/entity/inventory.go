package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock ítem del inventario central.
type Stock struct {
	ID        string
	StockID   string // código visible (SKU)
	StockName string
	Price     decimal.Decimal
	Quantity  int
	Weight    decimal.Decimal // kg
	UpdatedAt time.Time
}

// Value valor del ítem en inventario (precio * cantidad).
func (s Stock) Value() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Product producto ofrecido por un proveedor o visible para un cliente.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Estados de una orden de abastecimiento.
const (
	SupplyStatusProcessing = "Processing"
	SupplyStatusDispatched = "Dispatched"
	SupplyStatusDelayed    = "Delayed"
	SupplyStatusReceived   = "Received"
)

// SupplyOrder orden de abastecimiento de un proveedor hacia el inventario.
// Las órdenes de reposición del Inventory Manager usan la misma forma.
type SupplyOrder struct {
	ID                   string
	SupplierID           string
	StockID              string
	Quantity             int
	TotalCost            decimal.Decimal
	Status               string
	ExpectedDeliveryDate *time.Time
}

// Notification aviso para clientes y couriers.
type Notification struct {
	ID        string
	Message   string
	Read      bool
	CreatedAt time.Time
}

// Supplier ficha del directorio de proveedores.
type Supplier struct {
	ID          string
	UserID      string
	Name        string
	Email       string
	PhoneNumber string
	Address     string
	CreatedAt   time.Time
}

// Estados de una orden de cliente en reparto.
const (
	OrderStatusProcessing = "Processing"
	OrderStatusInTransit  = "In Transit"
	OrderStatusDelivered  = "Delivered"
)

// OrderItem línea de una orden de cliente.
type OrderItem struct {
	StockID  string
	Name     string
	Quantity int
	ItemCost decimal.Decimal
}

// Order orden de cliente asignada a un courier para su entrega.
type Order struct {
	ID                string
	CustomerID        string
	CourierID         string
	ShippingAddress   string
	ConsignmentWeight decimal.Decimal // kg
	ShippingCost      decimal.Decimal
	Status            string
	DeliveryDate      *time.Time
	Items             []OrderItem
	CreatedAt         time.Time
}
