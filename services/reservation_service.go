package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-frontdesk/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationInput struct {
	CustomerID uint
	TableID    *uint
	ReservedAt time.Time
	Guests     int
	Status     string
	Comment    *string
}

// BookingInput is a guest's own booking request. Guests identify themselves by phone
// and never pick a table or a status.
type BookingInput struct {
	Name       string
	Phone      string
	Email      *string
	ReservedAt time.Time
	Guests     int
	Comment    *string
}

type ReservationFilter struct {
	Status string
	// Day restricts reserved_at to [Day, Day+24h).
	Day *time.Time
}

type ReservationService struct {
	db       *gorm.DB
	sync     *Synchronizer
	notifier Notifier
}

func NewReservationService(db *gorm.DB, sync *Synchronizer, notifier Notifier) *ReservationService {
	if sync == nil {
		sync = DefaultSynchronizer()
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ReservationService{db: db, sync: sync, notifier: notifier}
}

func (s *ReservationService) List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, error) {
	q := s.db.WithContext(ctx).Preload("Customer").Preload("Table")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Day != nil {
		from := filter.Day.UTC()
		q = q.Where("reserved_at >= ? AND reserved_at < ?", from, from.Add(24*time.Hour))
	}

	var reservations []models.Reservation
	if err := q.Order("reserved_at ASC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.db.WithContext(ctx).Preload("Customer").Preload("Table").First(&r, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &r, nil
}

func (s *ReservationService) Create(ctx context.Context, in ReservationInput) (*models.Reservation, error) {
	r := models.Reservation{Status: models.ReservationStatusPending}
	applyReservationInput(&r, in)

	var table *models.Table
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := validateReservation(tx, &r); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&r).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		var err error
		table, err = s.sync.ReservationSaved(tx, &r)
		return err
	})
	if err != nil {
		return nil, err
	}

	notifyTable(s.notifier, table)
	return &r, nil
}

// Book records a pending reservation without a table for a guest. The customer is found by
// phone or created; an existing customer's details are left as they are.
func (s *ReservationService) Book(ctx context.Context, in BookingInput) (*models.Reservation, error) {
	var r models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		phone := strings.TrimSpace(in.Phone)
		err := tx.Where("phone = ?", phone).First(&customer).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			applyCustomerInput(&customer, CustomerInput{Name: in.Name, Phone: phone, Email: in.Email})
			if err := validateCustomer(tx, &customer); err != nil {
				return err
			}
			if err := tx.Create(&customer).Error; err != nil {
				return fmt.Errorf("failed to create customer: %w", err)
			}
		case err != nil:
			return err
		}

		r = models.Reservation{Status: models.ReservationStatusPending}
		applyReservationInput(&r, ReservationInput{
			CustomerID: customer.ID,
			ReservedAt: in.ReservedAt,
			Guests:     in.Guests,
			Comment:    in.Comment,
		})
		if err := validateReservation(tx, &r); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&r).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ReservationService) Update(ctx context.Context, id uint, in ReservationInput) (*models.Reservation, error) {
	var r models.Reservation
	var table *models.Table
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&r, id).Error; err != nil {
			return notFound(err)
		}
		applyReservationInput(&r, in)
		if err := validateReservation(tx, &r); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&r).Error; err != nil {
			return fmt.Errorf("failed to update reservation %d: %w", id, err)
		}
		var err error
		table, err = s.sync.ReservationSaved(tx, &r)
		return err
	})
	if err != nil {
		return nil, err
	}

	notifyTable(s.notifier, table)
	return &r, nil
}

func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	var table *models.Table
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Reservation
		if err := tx.First(&r, id).Error; err != nil {
			return notFound(err)
		}
		var err error
		table, err = s.deleteTx(tx, &r)
		return err
	})
	if err != nil {
		return err
	}

	notifyTable(s.notifier, table)
	return nil
}

// deleteTx removes one reservation, detaches orders pointing at it and runs the delete rule.
func (s *ReservationService) deleteTx(tx *gorm.DB, r *models.Reservation) (*models.Table, error) {
	if err := tx.Model(&models.Order{}).Where("reservation_id = ?", r.ID).Update("reservation_id", nil).Error; err != nil {
		return nil, fmt.Errorf("failed to detach orders from reservation %d: %w", r.ID, err)
	}
	if err := tx.Delete(&models.Reservation{}, r.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to delete reservation %d: %w", r.ID, err)
	}
	return s.sync.ReservationDeleted(tx, r)
}

func applyReservationInput(r *models.Reservation, in ReservationInput) {
	r.CustomerID = in.CustomerID
	r.TableID = in.TableID
	r.ReservedAt = in.ReservedAt.UTC()
	r.Guests = in.Guests
	if in.Status != "" {
		r.Status = in.Status
	}
	r.Comment = in.Comment
}

func validateReservation(tx *gorm.DB, r *models.Reservation) error {
	fields := map[string]string{}
	if r.ReservedAt.IsZero() {
		fields["reserved_at"] = "This field is required."
	}
	if r.Guests < 1 {
		fields["guests"] = "Ensure this value is greater than or equal to 1."
	}
	if !models.IsValidReservationStatus(r.Status) {
		fields["status"] = invalidChoice
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	if err := requireRef(tx, &models.Customer{}, r.CustomerID, "customer_id"); err != nil {
		return err
	}
	return optionalRef(tx, &models.Table{}, r.TableID, "table_id")
}
