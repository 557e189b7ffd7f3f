package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-frontdesk/models"
)

// TableStatusPolicy maps a saved reservation's status onto its table's status.
// ok=false leaves the table untouched.
type TableStatusPolicy interface {
	TableStatusFor(reservationStatus string) (status string, ok bool)
}

// StrictStatusPolicy only reacts to confirmed and cancelled reservations.
type StrictStatusPolicy struct{}

func (StrictStatusPolicy) TableStatusFor(reservationStatus string) (string, bool) {
	switch reservationStatus {
	case models.ReservationStatusConfirmed:
		return models.TableStatusOccupied, true
	case models.ReservationStatusCancelled:
		return models.TableStatusFree, true
	}
	return "", false
}

// BinaryStatusPolicy occupies the table on confirmation and frees it for every other status.
type BinaryStatusPolicy struct{}

func (BinaryStatusPolicy) TableStatusFor(reservationStatus string) (string, bool) {
	if reservationStatus == models.ReservationStatusConfirmed {
		return models.TableStatusOccupied, true
	}
	return models.TableStatusFree, true
}

// PriceSource decides which unit price a bill total is computed from.
// NeedsMenuItem asks the synchronizer to preload item.MenuItem before UnitPrice is called.
type PriceSource interface {
	UnitPrice(item models.OrderItem) decimal.Decimal
	NeedsMenuItem() bool
}

// SnapshotPrice uses the price stored on the order item when it was created.
type SnapshotPrice struct{}

func (SnapshotPrice) UnitPrice(item models.OrderItem) decimal.Decimal {
	return item.Price
}

func (SnapshotPrice) NeedsMenuItem() bool { return false }

// LivePrice reads the menu item's current price and falls back to the stored
// price once the menu item reference is gone.
type LivePrice struct{}

func (LivePrice) NeedsMenuItem() bool { return true }

func (LivePrice) UnitPrice(item models.OrderItem) decimal.Decimal {
	if item.MenuItem != nil {
		return item.MenuItem.Price
	}
	return item.Price
}

func NewTableStatusPolicy(name string) (TableStatusPolicy, error) {
	switch name {
	case "", "strict":
		return StrictStatusPolicy{}, nil
	case "binary":
		return BinaryStatusPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown table status policy %q", name)
}

func NewPriceSource(name string) (PriceSource, error) {
	switch name {
	case "", "snapshot":
		return SnapshotPrice{}, nil
	case "live":
		return LivePrice{}, nil
	}
	return nil, fmt.Errorf("unknown bill price source %q", name)
}
