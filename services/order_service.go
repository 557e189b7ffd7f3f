package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderInput struct {
	CustomerID    *uint
	TableID       *uint
	EmployeeID    *uint
	ReservationID *uint
	Status        string
	Items         []OrderItemInput
}

// OrderItemInput is one row of a composite order write. A row with ID updates that item,
// a row without ID creates one, and Delete removes the item named by ID.
type OrderItemInput struct {
	ID         *uint
	MenuItemID *uint
	Quantity   *int
	Price      *decimal.Decimal
	Delete     bool
}

type OrderFilter struct {
	TableID    *uint
	CustomerID *uint
}

type OrderService struct {
	db       *gorm.DB
	sync     *Synchronizer
	notifier Notifier
}

func NewOrderService(db *gorm.DB, sync *Synchronizer, notifier Notifier) *OrderService {
	if sync == nil {
		sync = DefaultSynchronizer()
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &OrderService{db: db, sync: sync, notifier: notifier}
}

func (s *OrderService) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	q := s.db.WithContext(ctx).Preload("Items")
	if filter.TableID != nil {
		q = q.Where("table_id = ?", *filter.TableID)
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	return loadOrder(s.db.WithContext(ctx), id)
}

// Create stores the order and its item rows in one transaction.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*models.Order, error) {
	order := models.Order{Status: models.OrderStatusOpen}
	applyOrderInput(&order, in)

	var bill *models.Bill
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := validateOrderRefs(tx, &order); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		var err error
		bill, err = s.applyItems(tx, &order, in.Items)
		return err
	})
	if err != nil {
		return nil, err
	}

	notifyBill(s.notifier, bill)
	return s.Get(ctx, order.ID)
}

// Update rewrites the order header and applies the item rows.
func (s *OrderService) Update(ctx context.Context, id uint, in OrderInput) (*models.Order, error) {
	var bill *models.Bill
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			return notFound(err)
		}
		applyOrderInput(&order, in)
		if err := validateOrderRefs(tx, &order); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&order).Error; err != nil {
			return fmt.Errorf("failed to update order %d: %w", id, err)
		}
		var err error
		bill, err = s.applyItems(tx, &order, in.Items)
		return err
	})
	if err != nil {
		return nil, err
	}

	notifyBill(s.notifier, bill)
	return s.Get(ctx, id)
}

// AssignEmployee sets or clears the employee serving the order.
func (s *OrderService) AssignEmployee(ctx context.Context, id uint, employeeID *uint) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Order{}, id); err != nil {
			return err
		}
		if err := optionalRef(tx, &models.Employee{}, employeeID, "employee_id"); err != nil {
			return err
		}
		return tx.Model(&models.Order{}).Where("id = ?", id).Update("employee_id", employeeID).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the order together with its items and bills.
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Order{}, id); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.Bill{}).Error; err != nil {
			return fmt.Errorf("failed to delete bills of order %d: %w", id, err)
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete items of order %d: %w", id, err)
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

func (s *OrderService) AddItem(ctx context.Context, orderID uint, in OrderItemInput) (*models.OrderItem, error) {
	var item *models.OrderItem
	var bill *models.Bill
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Order{}, orderID); err != nil {
			return err
		}
		item = &models.OrderItem{OrderID: orderID}
		var err error
		bill, err = s.saveItem(tx, item, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	notifyBill(s.notifier, bill)
	return item, nil
}

func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID uint, in OrderItemInput) (*models.OrderItem, error) {
	var item models.OrderItem
	var bill *models.Bill
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).First(&item, itemID).Error; err != nil {
			return notFound(err)
		}
		var err error
		bill, err = s.saveItem(tx, &item, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	notifyBill(s.notifier, bill)
	return &item, nil
}

func (s *OrderService) DeleteItem(ctx context.Context, orderID, itemID uint) error {
	var bill *models.Bill
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.OrderItem
		if err := tx.Where("order_id = ?", orderID).First(&item, itemID).Error; err != nil {
			return notFound(err)
		}
		var err error
		bill, err = s.deleteItem(tx, &item)
		return err
	})
	if err != nil {
		return err
	}

	notifyBill(s.notifier, bill)
	return nil
}

// applyItems walks the composite rows in order. The returned bill is the last one recomputed.
func (s *OrderService) applyItems(tx *gorm.DB, order *models.Order, rows []OrderItemInput) (*models.Bill, error) {
	var last *models.Bill
	for i, row := range rows {
		var bill *models.Bill
		var err error

		switch {
		case row.ID == nil && row.Delete:
			continue
		case row.ID == nil:
			bill, err = s.saveItem(tx, &models.OrderItem{OrderID: order.ID}, row)
		default:
			var item models.OrderItem
			if err := tx.Where("order_id = ?", order.ID).First(&item, *row.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fieldError(fmt.Sprintf("items[%d].id", i), invalidChoice)
				}
				return nil, err
			}
			if row.Delete {
				bill, err = s.deleteItem(tx, &item)
			} else {
				bill, err = s.saveItem(tx, &item, row)
			}
		}

		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				return nil, prefixFields(verr, fmt.Sprintf("items[%d].", i))
			}
			return nil, err
		}
		if bill != nil {
			last = bill
		}
	}
	return last, nil
}

// saveItem writes one item and recomputes the order's bill. A missing price on a new
// item is taken from the referenced menu item at this moment and never refreshed.
func (s *OrderService) saveItem(tx *gorm.DB, item *models.OrderItem, in OrderItemInput) (*models.Bill, error) {
	isNew := item.ID == 0
	if isNew || in.MenuItemID != nil {
		item.MenuItemID = in.MenuItemID
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	} else if isNew {
		item.Quantity = 1
	}
	if in.Price != nil {
		item.Price = *in.Price
	}

	if err := optionalRef(tx, &models.MenuItem{}, item.MenuItemID, "menu_item_id"); err != nil {
		return nil, err
	}
	if item.Quantity < 1 {
		return nil, fieldError("quantity", "Ensure this value is greater than or equal to 1.")
	}
	if item.Price.IsNegative() {
		return nil, fieldError("price", "Ensure this value is greater than or equal to 0.")
	}
	if item.Price.IsZero() && item.MenuItemID != nil {
		var menuItem models.MenuItem
		if err := tx.First(&menuItem, *item.MenuItemID).Error; err != nil {
			return nil, notFound(err)
		}
		item.Price = menuItem.Price
	}
	if isNew && in.Price == nil && item.MenuItemID == nil {
		return nil, fieldError("price", "This field is required.")
	}

	if isNew {
		if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	} else if err := tx.Omit(clause.Associations).Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update order item %d: %w", item.ID, err)
	}
	return s.sync.OrderItemChanged(tx, item.OrderID)
}

func (s *OrderService) deleteItem(tx *gorm.DB, item *models.OrderItem) (*models.Bill, error) {
	if err := tx.Delete(&models.OrderItem{}, item.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to delete order item %d: %w", item.ID, err)
	}
	return s.sync.OrderItemChanged(tx, item.OrderID)
}

func loadOrder(db *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	}).Preload("Items.MenuItem").First(&order, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func applyOrderInput(order *models.Order, in OrderInput) {
	order.CustomerID = in.CustomerID
	order.TableID = in.TableID
	order.EmployeeID = in.EmployeeID
	order.ReservationID = in.ReservationID
	if in.Status != "" {
		order.Status = in.Status
	}
}

func validateOrderRefs(tx *gorm.DB, order *models.Order) error {
	if err := optionalRef(tx, &models.Customer{}, order.CustomerID, "customer_id"); err != nil {
		return err
	}
	if err := optionalRef(tx, &models.Table{}, order.TableID, "table_id"); err != nil {
		return err
	}
	if err := optionalRef(tx, &models.Employee{}, order.EmployeeID, "employee_id"); err != nil {
		return err
	}
	return optionalRef(tx, &models.Reservation{}, order.ReservationID, "reservation_id")
}
