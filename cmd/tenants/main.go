package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"atiempo.app/atiempo/console"
	"atiempo.app/atiempo/utils"
	"gorm.io/gorm"
)

// Lists the fleet's subscriptions and flags the ones past their expiry so
// ops can chase renewals. With a domain argument it prints that single
// tenant's subscription instead.
func main() {
	ctx := context.Background()
	db, err := console.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	if len(os.Args) > 1 {
		showTenant(db, os.Args[1])
		return
	}

	customers, err := console.GetCustomers(db)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d customers\n\n", len(customers))

	var subs []console.Subscription
	if err := db.Preload("Customer").Find(&subs).Error; err != nil {
		log.Fatal(err)
	}

	now := utils.MadridNow()
	fmt.Printf("%-28s %-24s %-10s %-10s %s\n", "domain", "customer", "employees", "expires", "state")
	for _, sub := range subs {
		state := "active"
		if !sub.Active(now) {
			state = "EXPIRED"
		}
		fmt.Printf("%-28s %-24s %-10d %-10s %s\n",
			sub.Domain, sub.Customer.Name, sub.Employees, sub.ExpiredAt.Format("2006-01-02"), state)
	}
}

func showTenant(db *gorm.DB, domain string) {
	sub, err := console.FindSubscriptionByDomain(db, domain)
	if err != nil {
		log.Fatal(err)
	}
	if sub == nil {
		log.Fatalf("no subscription for domain %s", domain)
	}

	state := "active"
	if !sub.Active(utils.MadridNow()) {
		state = "EXPIRED"
	}
	fmt.Printf("domain:    %s\n", sub.Domain)
	fmt.Printf("customer:  %s\n", sub.Customer.Name)
	fmt.Printf("edition:   %s (%s)\n", sub.Edition, sub.Type)
	fmt.Printf("employees: %d\n", sub.Employees)
	fmt.Printf("expires:   %s (%s)\n", sub.ExpiredAt.Format("2006-01-02"), state)
}
