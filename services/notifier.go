package services

import "github.com/yeremiapane/restaurant-frontdesk/models"

// Notifier is told about derived-state changes after the enclosing transaction commits.
type Notifier interface {
	TableStatusChanged(table models.Table)
	BillTotalChanged(bill models.Bill)
}

type NopNotifier struct{}

func (NopNotifier) TableStatusChanged(models.Table) {}
func (NopNotifier) BillTotalChanged(models.Bill)    {}

// Notifiers fans every change out to each member.
type Notifiers []Notifier

func (ns Notifiers) TableStatusChanged(table models.Table) {
	for _, n := range ns {
		n.TableStatusChanged(table)
	}
}

func (ns Notifiers) BillTotalChanged(bill models.Bill) {
	for _, n := range ns {
		n.BillTotalChanged(bill)
	}
}

func notifyTable(n Notifier, table *models.Table) {
	if n != nil && table != nil {
		n.TableStatusChanged(*table)
	}
}

func notifyBill(n Notifier, bill *models.Bill) {
	if n != nil && bill != nil {
		n.BillTotalChanged(*bill)
	}
}
