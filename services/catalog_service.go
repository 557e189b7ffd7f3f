package services

import (
	"context"
	"fmt"

	"github.com/yeremiapane/restaurant-frontdesk/models"
	"gorm.io/gorm"
)

// CatalogService deletes the reference records that other rows only point at optionally.
// References are nulled in the same transaction as the delete.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) DeleteTable(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Table{}, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Reservation{}).Where("table_id = ?", id).Update("table_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach reservations from table %d: %w", id, err)
		}
		if err := tx.Model(&models.Order{}).Where("table_id = ?", id).Update("table_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach orders from table %d: %w", id, err)
		}
		return tx.Delete(&models.Table{}, id).Error
	})
}

// DeleteMenuItem keeps order items and their stored prices, only the menu reference goes away.
func (s *CatalogService) DeleteMenuItem(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.MenuItem{}, id); err != nil {
			return err
		}
		if err := tx.Model(&models.OrderItem{}).Where("menu_item_id = ?", id).Update("menu_item_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach order items from menu item %d: %w", id, err)
		}
		return tx.Delete(&models.MenuItem{}, id).Error
	})
}

func (s *CatalogService) DeleteEmployee(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Employee{}, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).Where("employee_id = ?", id).Update("employee_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach orders from employee %d: %w", id, err)
		}
		return tx.Delete(&models.Employee{}, id).Error
	})
}

func ensureExists(tx *gorm.DB, model interface{}, id uint) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
