package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"gorm.io/gorm"
)

const topDishesLimit = 5

type DishPopularity struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type DailyReport struct {
	Date          string           `json:"date"`
	DayTurnover   decimal.Decimal  `json:"day_turnover"`
	MonthTurnover decimal.Decimal  `json:"month_turnover"`
	BillsCount    int64            `json:"bills_count"`
	PopularDishes []DishPopularity `json:"popular_dishes"`
}

// ReportService computes day and month figures in the restaurant's local timezone.
type ReportService struct {
	db  *gorm.DB
	loc *time.Location
}

func NewReportService(db *gorm.DB, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{db: db, loc: loc}
}

func (s *ReportService) Location() *time.Location {
	return s.loc
}

// ParseDate reads a YYYY-MM-DD value as local midnight. Empty means today.
func (s *ReportService) ParseDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now().In(s.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc), nil
	}
	day, err := time.ParseInLocation("2006-01-02", value, s.loc)
	if err != nil {
		return time.Time{}, fieldError("date", "Enter a valid date.")
	}
	return day, nil
}

// Daily reports paid turnover for the day and its calendar month, the number of bills
// issued that day and the most ordered dishes over all time.
func (s *ReportService) Daily(ctx context.Context, day time.Time) (*DailyReport, error) {
	day = day.In(s.loc)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, s.loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	db := s.db.WithContext(ctx)
	report := &DailyReport{Date: dayStart.Format("2006-01-02")}

	var err error
	if report.DayTurnover, err = paidTurnover(db, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if report.MonthTurnover, err = paidTurnover(db, monthStart, monthEnd); err != nil {
		return nil, err
	}
	err = db.Model(&models.Bill{}).
		Where("issued_at >= ? AND issued_at < ?", dayStart.UTC(), dayEnd.UTC()).
		Count(&report.BillsCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count bills: %w", err)
	}
	if report.PopularDishes, err = s.TopDishes(ctx); err != nil {
		return nil, err
	}
	return report, nil
}

// TopDishes ranks menu items by the summed quantity of their order items.
func (s *ReportService) TopDishes(ctx context.Context) ([]DishPopularity, error) {
	dishes := []DishPopularity{}
	err := s.db.WithContext(ctx).
		Table("order_items").
		Select("menu_items.name AS name, SUM(order_items.quantity) AS quantity").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Group("menu_items.name").
		Order("quantity DESC, name ASC").
		Limit(topDishesLimit).
		Scan(&dishes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank dishes: %w", err)
	}
	return dishes, nil
}

func paidTurnover(db *gorm.DB, from, to time.Time) (decimal.Decimal, error) {
	var bills []models.Bill
	err := db.Select("total").
		Where("paid = ? AND issued_at >= ? AND issued_at < ?", true, from.UTC(), to.UTC()).
		Find(&bills).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum paid bills: %w", err)
	}

	sum := decimal.Zero
	for _, b := range bills {
		sum = sum.Add(b.Total)
	}
	return sum, nil
}

type FloorSummary struct {
	Tables            map[string]int64 `json:"tables"`
	ReservationsToday int64            `json:"reservations_today"`
	OpenOrders        int64            `json:"open_orders"`
	UnpaidBills       int64            `json:"unpaid_bills"`
	UnpaidTotal       decimal.Decimal  `json:"unpaid_total"`
}

// Floor summarizes the current state of the room for the staff dashboard.
func (s *ReportService) Floor(ctx context.Context, now time.Time) (*FloorSummary, error) {
	db := s.db.WithContext(ctx)
	summary := &FloorSummary{Tables: map[string]int64{
		models.TableStatusFree:     0,
		models.TableStatusReserved: 0,
		models.TableStatusOccupied: 0,
	}}

	var counts []struct {
		Status string
		Count  int64
	}
	if err := db.Model(&models.Table{}).Select("status, COUNT(*) AS count").Group("status").Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count tables: %w", err)
	}
	for _, row := range counts {
		summary.Tables[row.Status] = row.Count
	}

	local := now.In(s.loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	err := db.Model(&models.Reservation{}).
		Where("reserved_at >= ? AND reserved_at < ?", dayStart.UTC(), dayStart.AddDate(0, 0, 1).UTC()).
		Count(&summary.ReservationsToday).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count reservations: %w", err)
	}
	if err := db.Model(&models.Order{}).Where("status = ?", models.OrderStatusOpen).Count(&summary.OpenOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var unpaid []models.Bill
	if err := db.Select("total").Where("paid = ?", false).Find(&unpaid).Error; err != nil {
		return nil, fmt.Errorf("failed to load unpaid bills: %w", err)
	}
	summary.UnpaidBills = int64(len(unpaid))
	summary.UnpaidTotal = decimal.Zero
	for _, b := range unpaid {
		summary.UnpaidTotal = summary.UnpaidTotal.Add(b.Total)
	}
	return summary, nil
}
