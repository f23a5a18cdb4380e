package repo

import "gorm.io/gorm"

// GormRepo is the store boundary. All durable state lives behind it; the
// database's own constraints are the only concurrency control.
type GormRepo struct {
	DB *gorm.DB
}
