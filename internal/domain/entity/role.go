package entity

import "strings"

// Role clasificación cerrada de un usuario. Determina qué ve en el dashboard
// y qué puede hacer en la API. Inmutable una vez asignado.
type Role string

// Roles válidos. RoleUnknown es el valor cero: rol ausente o no reconocido.
const (
	RoleUnknown          Role = ""
	RoleInventoryManager Role = "Inventory Manager"
	RoleSupplier         Role = "Supplier"
	RoleCustomer         Role = "Customer"
	RoleCourierService   Role = "Courier Service"
)

// AllRoles devuelve el conjunto cerrado en orden declarado.
func AllRoles() []Role {
	return []Role{RoleInventoryManager, RoleSupplier, RoleCustomer, RoleCourierService}
}

// ParseRole traduce el string del wire al conjunto cerrado.
// Ignora mayúsculas y espacios alrededor; cualquier otro valor es RoleUnknown.
func ParseRole(s string) Role {
	s = strings.TrimSpace(s)
	for _, r := range AllRoles() {
		if strings.EqualFold(s, string(r)) {
			return r
		}
	}
	return RoleUnknown
}

// Known informa si el rol pertenece al conjunto cerrado.
func (r Role) Known() bool {
	return ParseRole(string(r)) == r && r != RoleUnknown
}

func (r Role) String() string {
	if r == RoleUnknown {
		return "unknown"
	}
	return string(r)
}
