package entity

import "time"

// User usuario del sistema. Las colecciones solo vienen pobladas cuando son
// relevantes para el rol (p. ej. Stocks para Inventory Manager); quien las
// consuma debe tolerar nil y mostrar estado vacío.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt; nunca sale de la API
	Role         Role
	CreatedAt    time.Time

	Stocks              []Stock
	Products            []Product
	SupplyOrders        []SupplyOrder
	ReplenishmentOrders []SupplyOrder
	Notifications       []Notification
	Suppliers           []Supplier
	Deliveries          []Order
}

// HasCollections informa si el usuario trae alguna colección poblada.
func (u *User) HasCollections() bool {
	if u == nil {
		return false
	}
	return len(u.Stocks)+len(u.Products)+len(u.SupplyOrders)+
		len(u.ReplenishmentOrders)+len(u.Notifications)+
		len(u.Suppliers)+len(u.Deliveries) > 0
}
