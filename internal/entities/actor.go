package entities

type ActorRole string

const (
	RoleCustomer ActorRole = "user"
	RoleAdmin    ActorRole = "admin"
)

func (r ActorRole) String() string {
	return string(r)
}

// Actor тот, кто инициирует действие над заказом.
type Actor struct {
	ID   string
	Role ActorRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns гостевой заказ не принадлежит ни одному клиенту.
func (a Actor) Owns(order *Order) bool {
	if order == nil || a.ID == "" || order.CustomerID == GuestCustomerID {
		return false
	}
	return a.Role == RoleCustomer && a.ID == order.CustomerID
}

// CanAccessCustomer клиент видит только свои заказы, админ видит все.
func (a Actor) CanAccessCustomer(customerID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Role == RoleCustomer && a.ID != "" && a.ID == customerID
}
