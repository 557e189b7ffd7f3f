package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-frontdesk/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BillInput struct {
	OrderID       uint
	Paid          bool
	PaymentMethod *string
}

// BillUpdate only carries the fields staff may change; the total is never one of them.
type BillUpdate struct {
	Paid          *bool
	PaymentMethod *string
}

type BillService struct {
	db   *gorm.DB
	sync *Synchronizer
}

func NewBillService(db *gorm.DB, sync *Synchronizer) *BillService {
	if sync == nil {
		sync = DefaultSynchronizer()
	}
	return &BillService{db: db, sync: sync}
}

func (s *BillService) List(ctx context.Context, paid *bool) ([]models.Bill, error) {
	q := s.db.WithContext(ctx)
	if paid != nil {
		q = q.Where("paid = ?", *paid)
	}

	var bills []models.Bill
	if err := q.Order("issued_at DESC, id DESC").Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// Get loads the bill with its order and items, as needed for a receipt.
func (s *BillService) Get(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	err := s.db.WithContext(ctx).
		Preload("Order.Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Order.Items.MenuItem").
		First(&bill, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &bill, nil
}

// Create issues a bill whose total is computed from the order's current items.
func (s *BillService) Create(ctx context.Context, in BillInput) (*models.Bill, error) {
	bill := models.Bill{
		OrderID:       in.OrderID,
		Paid:          in.Paid,
		PaymentMethod: normalizeLabel(in.PaymentMethod),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRef(tx, &models.Order{}, in.OrderID, "order_id"); err != nil {
			return err
		}
		total, err := s.sync.OrderTotal(tx, in.OrderID)
		if err != nil {
			return err
		}
		bill.Total = total
		if err := tx.Omit(clause.Associations).Create(&bill).Error; err != nil {
			return fmt.Errorf("failed to create bill for order %d: %w", in.OrderID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (s *BillService) Update(ctx context.Context, id uint, in BillUpdate) (*models.Bill, error) {
	var bill models.Bill
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&bill, id).Error; err != nil {
			return notFound(err)
		}

		updates := map[string]interface{}{}
		if in.Paid != nil {
			updates["paid"] = *in.Paid
		}
		if in.PaymentMethod != nil {
			updates["payment_method"] = normalizeLabel(in.PaymentMethod)
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&bill).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update bill %d: %w", id, err)
		}
		return tx.First(&bill, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (s *BillService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Bill{}, id); err != nil {
			return err
		}
		return tx.Delete(&models.Bill{}, id).Error
	})
}

func normalizeLabel(label *string) *string {
	if label == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*label)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
