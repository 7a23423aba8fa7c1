package dto

import "github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"

// NewProfileResponse arma la respuesta de perfil sin el hash de password.
func NewProfileResponse(u *entity.User) *ProfileResponse {
	if u == nil {
		return nil
	}
	out := &ProfileResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
	out.Stocks = NewStockResponses(u.Stocks)
	for _, p := range u.Products {
		out.Products = append(out.Products, ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price, Quantity: p.Quantity})
	}
	out.SupplyOrders = supplyOrdersOut(u.SupplyOrders)
	out.ReplenishmentOrders = supplyOrdersOut(u.ReplenishmentOrders)
	for _, n := range u.Notifications {
		out.Notifications = append(out.Notifications, NotificationResponse{ID: n.ID, Message: n.Message, Read: n.Read, CreatedAt: n.CreatedAt})
	}
	for _, sp := range u.Suppliers {
		out.Suppliers = append(out.Suppliers, SupplierResponse(sp))
	}
	out.Deliveries = ordersOut(u.Deliveries)
	return out
}

// NewStockResponses mapea ítems de inventario. nil -> nil.
func NewStockResponses(in []entity.Stock) []StockResponse {
	var out []StockResponse
	for _, s := range in {
		out = append(out, StockResponse{
			ID: s.ID, StockID: s.StockID, StockName: s.StockName,
			Price: s.Price, Quantity: s.Quantity, Weight: s.Weight, UpdatedAt: s.UpdatedAt,
		})
	}
	return out
}

// ToEntity convierte el perfil recibido del backend en entidad. El rol se
// interpreta con entity.ParseRole: un valor fuera del conjunto queda Unknown.
func (p *ProfileResponse) ToEntity() *entity.User {
	if p == nil {
		return nil
	}
	u := &entity.User{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Role:  entity.ParseRole(p.Role),
	}
	for _, s := range p.Stocks {
		u.Stocks = append(u.Stocks, entity.Stock{
			ID: s.ID, StockID: s.StockID, StockName: s.StockName,
			Price: s.Price, Quantity: s.Quantity, Weight: s.Weight, UpdatedAt: s.UpdatedAt,
		})
	}
	for _, pr := range p.Products {
		u.Products = append(u.Products, entity.Product{ID: pr.ID, Name: pr.Name, Price: pr.Price, Quantity: pr.Quantity})
	}
	u.SupplyOrders = supplyOrdersIn(p.SupplyOrders)
	u.ReplenishmentOrders = supplyOrdersIn(p.ReplenishmentOrders)
	for _, n := range p.Notifications {
		u.Notifications = append(u.Notifications, entity.Notification{ID: n.ID, Message: n.Message, Read: n.Read, CreatedAt: n.CreatedAt})
	}
	for _, sp := range p.Suppliers {
		u.Suppliers = append(u.Suppliers, entity.Supplier(sp))
	}
	u.Deliveries = ordersIn(p.Deliveries)
	return u
}

func supplyOrdersOut(in []entity.SupplyOrder) []SupplyOrderResponse {
	var out []SupplyOrderResponse
	for _, o := range in {
		out = append(out, SupplyOrderResponse{
			ID: o.ID, SupplierID: o.SupplierID, StockID: o.StockID, Quantity: o.Quantity,
			TotalCost: o.TotalCost, Status: o.Status, ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		})
	}
	return out
}

func supplyOrdersIn(in []SupplyOrderResponse) []entity.SupplyOrder {
	var out []entity.SupplyOrder
	for _, o := range in {
		out = append(out, entity.SupplyOrder{
			ID: o.ID, SupplierID: o.SupplierID, StockID: o.StockID, Quantity: o.Quantity,
			TotalCost: o.TotalCost, Status: o.Status, ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		})
	}
	return out
}

func ordersOut(in []entity.Order) []OrderResponse {
	var out []OrderResponse
	for _, o := range in {
		items := make([]OrderItemResponse, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, OrderItemResponse{StockID: it.StockID, ProductName: it.Name, Quantity: it.Quantity, ItemCost: it.ItemCost})
		}
		out = append(out, OrderResponse{
			ID: o.ID, CustomerID: o.CustomerID, CourierServiceID: o.CourierID,
			ShippingAddress: o.ShippingAddress, ConsignmentWeight: o.ConsignmentWeight, ShippingCost: o.ShippingCost,
			Status: o.Status, DeliveryDate: o.DeliveryDate, OrderItems: items, CreatedAt: o.CreatedAt,
		})
	}
	return out
}

func ordersIn(in []OrderResponse) []entity.Order {
	var out []entity.Order
	for _, o := range in {
		var items []entity.OrderItem
		for _, it := range o.OrderItems {
			items = append(items, entity.OrderItem{StockID: it.StockID, Name: it.ProductName, Quantity: it.Quantity, ItemCost: it.ItemCost})
		}
		out = append(out, entity.Order{
			ID: o.ID, CustomerID: o.CustomerID, CourierID: o.CourierServiceID,
			ShippingAddress: o.ShippingAddress, ConsignmentWeight: o.ConsignmentWeight, ShippingCost: o.ShippingCost,
			Status: o.Status, DeliveryDate: o.DeliveryDate, Items: items, CreatedAt: o.CreatedAt,
		})
	}
	return out
}
