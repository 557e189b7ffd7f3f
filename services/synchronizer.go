package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-frontdesk/config"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Synchronizer keeps table status and bill totals in step with the records they are derived from.
// Every method runs inside the caller's transaction; callers notify after commit.
type Synchronizer struct {
	statusPolicy    TableStatusPolicy
	priceSource     PriceSource
	freeOnAnyDelete bool
}

func NewSynchronizer(statusPolicy TableStatusPolicy, priceSource PriceSource, freeOnAnyDelete bool) *Synchronizer {
	if statusPolicy == nil {
		statusPolicy = StrictStatusPolicy{}
	}
	if priceSource == nil {
		priceSource = SnapshotPrice{}
	}
	return &Synchronizer{
		statusPolicy:    statusPolicy,
		priceSource:     priceSource,
		freeOnAnyDelete: freeOnAnyDelete,
	}
}

// DefaultSynchronizer uses the strict status policy, snapshot prices and frees tables on any delete.
func DefaultSynchronizer() *Synchronizer {
	return NewSynchronizer(StrictStatusPolicy{}, SnapshotPrice{}, true)
}

func SynchronizerFromConfig(cfg config.SyncConfig) (*Synchronizer, error) {
	statusPolicy, err := NewTableStatusPolicy(cfg.TableStatusPolicy)
	if err != nil {
		return nil, err
	}
	priceSource, err := NewPriceSource(cfg.BillPriceSource)
	if err != nil {
		return nil, err
	}
	return NewSynchronizer(statusPolicy, priceSource, cfg.FreeTableOnAnyDelete), nil
}

// ReservationSaved applies the table status policy after a reservation create or update.
// Returns the updated table, or nil when nothing was written.
func (s *Synchronizer) ReservationSaved(tx *gorm.DB, r *models.Reservation) (*models.Table, error) {
	if r.TableID == nil {
		return nil, nil
	}
	status, ok := s.statusPolicy.TableStatusFor(r.Status)
	if !ok {
		return nil, nil
	}
	return setTableStatus(tx, *r.TableID, status)
}

// ReservationDeleted frees the reservation's table. With freeOnAnyDelete off the table
// stays as it is while another confirmed reservation still holds it.
func (s *Synchronizer) ReservationDeleted(tx *gorm.DB, r *models.Reservation) (*models.Table, error) {
	if r.TableID == nil {
		return nil, nil
	}
	if !s.freeOnAnyDelete {
		var holding int64
		err := tx.Model(&models.Reservation{}).
			Where("table_id = ? AND id <> ? AND status = ?", *r.TableID, r.ID, models.ReservationStatusConfirmed).
			Count(&holding).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count reservations holding table %d: %w", *r.TableID, err)
		}
		if holding > 0 {
			return nil, nil
		}
	}
	return setTableStatus(tx, *r.TableID, models.TableStatusFree)
}

// OrderItemChanged recomputes the total of the order's first bill. No bill, no write.
func (s *Synchronizer) OrderItemChanged(tx *gorm.DB, orderID uint) (*models.Bill, error) {
	var bill models.Bill
	err := lockForUpdate(tx).Where("order_id = ?", orderID).Order("id ASC").First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load bill for order %d: %w", orderID, err)
	}

	total, err := s.OrderTotal(tx, orderID)
	if err != nil {
		return nil, err
	}

	// only the total column, updated_at stays untouched
	if err := tx.Model(&models.Bill{}).Where("id = ?", bill.ID).UpdateColumn("total", total).Error; err != nil {
		return nil, fmt.Errorf("failed to update total of bill %d: %w", bill.ID, err)
	}
	bill.Total = total
	return &bill, nil
}

// OrderTotal sums quantity x unit price over the order's current items.
func (s *Synchronizer) OrderTotal(tx *gorm.DB, orderID uint) (decimal.Decimal, error) {
	var items []models.OrderItem
	q := tx.Where("order_id = ?", orderID)
	if s.priceSource.NeedsMenuItem() {
		q = q.Preload("MenuItem")
	}
	if err := q.Find(&items).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to load items of order %d: %w", orderID, err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(s.priceSource.UnitPrice(item).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}

func setTableStatus(tx *gorm.DB, tableID uint, status string) (*models.Table, error) {
	var table models.Table
	err := lockForUpdate(tx).First(&table, tableID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load table %d: %w", tableID, err)
	}

	if err := tx.Model(&models.Table{}).Where("id = ?", table.ID).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to set table %d to %s: %w", tableID, status, err)
	}
	table.Status = status
	return &table, nil
}

// lockForUpdate reads derived rows with SELECT ... FOR UPDATE where the dialect has it.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
