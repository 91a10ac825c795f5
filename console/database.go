package console

import (
	"errors"

	"gorm.io/gorm"
)

func GetCustomers(db *gorm.DB) ([]Customer, error) {
	var customers []Customer
	err := db.Find(&customers).Error
	return customers, err
}

// FindSubscriptionByDomain resolves a tenant hostname to its subscription,
// customer preloaded. Returns nil without error when the domain is unknown.
func FindSubscriptionByDomain(db *gorm.DB, domain string) (*Subscription, error) {
	var sub Subscription
	err := db.Where(&Subscription{Domain: domain}).Preload("Customer").First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	return &sub, err
}
