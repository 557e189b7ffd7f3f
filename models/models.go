package models

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Customer{},
		&Employee{},
		&Table{},
		&MenuItem{},
		&Reservation{},
		&Order{},
		&OrderItem{},
		&Bill{},
	}
}
