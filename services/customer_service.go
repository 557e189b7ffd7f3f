package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-frontdesk/models"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
	"gorm.io/gorm"
)

type CustomerInput struct {
	Name  string
	Phone string
	Email *string
}

type CustomerService struct {
	db           *gorm.DB
	reservations *ReservationService
	notifier     Notifier
}

func NewCustomerService(db *gorm.DB, reservations *ReservationService, notifier Notifier) *CustomerService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &CustomerService{db: db, reservations: reservations, notifier: notifier}
}

// List matches search case-insensitively against the customer's name.
func (s *CustomerService) List(ctx context.Context, search string) ([]models.Customer, error) {
	q := s.db.WithContext(ctx)
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var customers []models.Customer
	if err := q.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	var c models.Customer
	applyCustomerInput(&c, in)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := validateCustomer(tx, &c); err != nil {
			return err
		}
		if err := tx.Create(&c).Error; err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint, in CustomerInput) (*models.Customer, error) {
	var c models.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return notFound(err)
		}
		applyCustomerInput(&c, in)
		if err := validateCustomer(tx, &c); err != nil {
			return err
		}
		if err := tx.Save(&c).Error; err != nil {
			return fmt.Errorf("failed to update customer %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes the customer together with its reservations. Each reservation goes
// through the delete rule, and orders keep existing without a customer.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	var tables []*models.Table
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Customer
		if err := tx.First(&c, id).Error; err != nil {
			return notFound(err)
		}

		var reservations []models.Reservation
		if err := tx.Where("customer_id = ?", id).Order("id ASC").Find(&reservations).Error; err != nil {
			return fmt.Errorf("failed to load reservations of customer %d: %w", id, err)
		}
		for i := range reservations {
			table, err := s.reservations.deleteTx(tx, &reservations[i])
			if err != nil {
				return err
			}
			if table != nil {
				tables = append(tables, table)
			}
		}

		if err := tx.Model(&models.Order{}).Where("customer_id = ?", id).Update("customer_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach orders from customer %d: %w", id, err)
		}
		return tx.Delete(&c).Error
	})
	if err != nil {
		return err
	}

	for _, table := range tables {
		notifyTable(s.notifier, table)
	}
	return nil
}

func applyCustomerInput(c *models.Customer, in CustomerInput) {
	c.Name = strings.TrimSpace(in.Name)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = in.Email
	if c.Email != nil && strings.TrimSpace(*c.Email) == "" {
		c.Email = nil
	}
}

func validateCustomer(tx *gorm.DB, c *models.Customer) error {
	fields := map[string]string{}
	if c.Name == "" {
		fields["name"] = "This field is required."
	}
	if !utils.PhonePattern.MatchString(c.Phone) {
		fields["phone"] = utils.PhoneFormatMessage
	} else {
		var taken int64
		if err := tx.Model(&models.Customer{}).Where("phone = ? AND id <> ?", c.Phone, c.ID).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			fields["phone"] = "Customer with this phone already exists."
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
