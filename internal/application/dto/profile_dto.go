package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfileResponse registro del usuario autenticado (GET /auth/profile).
// Las colecciones se omiten cuando el rol no las usa.
type ProfileResponse struct {
	ID                  string                 `json:"id"`
	Name                string                 `json:"name"`
	Email               string                 `json:"email"`
	Role                string                 `json:"role"`
	Stocks              []StockResponse        `json:"stocks,omitempty"`
	Products            []ProductResponse      `json:"products,omitempty"`
	SupplyOrders        []SupplyOrderResponse  `json:"supply_orders,omitempty"`
	ReplenishmentOrders []SupplyOrderResponse  `json:"replenishment_orders,omitempty"`
	Notifications       []NotificationResponse `json:"notifications,omitempty"`
	Suppliers           []SupplierResponse     `json:"suppliers,omitempty"`
	Deliveries          []OrderResponse        `json:"deliveries,omitempty"`
}

// StockResponse ítem de inventario.
type StockResponse struct {
	ID        string          `json:"id"`
	StockID   string          `json:"stock_id"`
	StockName string          `json:"stock_name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Weight    decimal.Decimal `json:"weight"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductResponse producto de proveedor o de catálogo.
type ProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// SupplyOrderResponse orden de abastecimiento o de reposición.
type SupplyOrderResponse struct {
	ID                   string          `json:"id"`
	SupplierID           string          `json:"supplier_id"`
	StockID              string          `json:"stock_id"`
	Quantity             int             `json:"quantity"`
	TotalCost            decimal.Decimal `json:"total_cost"`
	Status               string          `json:"status"`
	ExpectedDeliveryDate *time.Time      `json:"expected_delivery_date,omitempty"`
}

// NotificationResponse aviso al usuario.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// SupplierResponse ficha del directorio de proveedores.
type SupplierResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderItemResponse línea de una orden de cliente.
type OrderItemResponse struct {
	StockID     string          `json:"stock_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	ItemCost    decimal.Decimal `json:"item_cost"`
}

// OrderResponse orden de cliente asignada al courier.
type OrderResponse struct {
	ID                string              `json:"id"`
	CustomerID        string              `json:"customer_id"`
	CourierServiceID  string              `json:"courier_service_id"`
	ShippingAddress   string              `json:"shipping_address"`
	ConsignmentWeight decimal.Decimal     `json:"consignment_weight"`
	ShippingCost      decimal.Decimal     `json:"shipping_cost"`
	Status            string              `json:"status"`
	DeliveryDate      *time.Time          `json:"delivery_date,omitempty"`
	OrderItems        []OrderItemResponse `json:"order_items"`
	CreatedAt         time.Time           `json:"created_at"`
}
