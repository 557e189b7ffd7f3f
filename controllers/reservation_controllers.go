package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-frontdesk/services"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
)

type ReservationController struct {
	Reservations *services.ReservationService
	Location     *time.Location
}

func NewReservationController(reservations *services.ReservationService, loc *time.Location) *ReservationController {
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationController{Reservations: reservations, Location: loc}
}

type reservationRequest struct {
	CustomerID uint      `json:"customer_id" binding:"required"`
	TableID    *uint     `json:"table_id"`
	ReservedAt time.Time `json:"reserved_at" binding:"required"`
	Guests     int       `json:"guests" binding:"required,min=1"`
	Status     string    `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	Comment    *string   `json:"comment"`
}

// bookingRequest -> public booking; table_id is only here to be refused
type bookingRequest struct {
	Name       string    `json:"name" binding:"required,max=100"`
	Phone      string    `json:"phone" binding:"required,ruphone"`
	Email      *string   `json:"email" binding:"omitempty,email"`
	TableID    *uint     `json:"table_id"`
	ReservedAt time.Time `json:"reserved_at" binding:"required"`
	Guests     int       `json:"guests" binding:"required,min=1"`
	Comment    *string   `json:"comment"`
}

type reservationPatch struct {
	CustomerID *uint      `json:"customer_id"`
	TableID    *uint      `json:"table_id"`
	ClearTable bool       `json:"clear_table"`
	ReservedAt *time.Time `json:"reserved_at"`
	Guests     *int       `json:"guests" binding:"omitempty,min=1"`
	Status     *string    `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	Comment    *string    `json:"comment"`
}

// GetAllReservations -> ?status= and ?date=YYYY-MM-DD (local day of reserved_at)
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	filter := services.ReservationFilter{Status: c.Query("status")}
	if raw := c.Query("date"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, rc.Location)
		if err != nil {
			utils.RespondValidation(c, http.StatusBadRequest, map[string]string{"date": "Enter a valid date."})
			return
		}
		filter.Day = &day
	}

	reservations, err := rc.Reservations.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id, ok := parseID(c, "reservation_id")
	if !ok {
		return
	}
	reservation, err := rc.Reservations.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// CreateReservation -> staff booking, any status allowed
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req reservationRequest
	if !bindJSON(c, &req) {
		return
	}

	reservation, err := rc.Reservations.Create(c.Request.Context(), services.ReservationInput{
		CustomerID: req.CustomerID,
		TableID:    req.TableID,
		ReservedAt: req.ReservedAt,
		Guests:     req.Guests,
		Status:     req.Status,
		Comment:    req.Comment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d created (status=%s)", reservation.ID, reservation.Status)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// BookReservation -> public booking by name and phone, always pending and without a table
func (rc *ReservationController) BookReservation(c *gin.Context) {
	var req bookingRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.TableID != nil {
		utils.RespondValidation(c, http.StatusBadRequest, map[string]string{"table_id": "Tables are assigned by staff."})
		return
	}

	reservation, err := rc.Reservations.Book(c.Request.Context(), services.BookingInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		ReservedAt: req.ReservedAt,
		Guests:     req.Guests,
		Comment:    blankToNil(req.Comment),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d booked by guest", reservation.ID)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// UpdateReservation -> partial update; confirming or cancelling rewrites the table status
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := parseID(c, "reservation_id")
	if !ok {
		return
	}
	var req reservationPatch
	if !bindJSON(c, &req) {
		return
	}

	current, err := rc.Reservations.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	in := services.ReservationInput{
		CustomerID: current.CustomerID,
		TableID:    current.TableID,
		ReservedAt: current.ReservedAt,
		Guests:     current.Guests,
		Status:     current.Status,
		Comment:    current.Comment,
	}
	if req.CustomerID != nil {
		in.CustomerID = *req.CustomerID
	}
	if req.TableID != nil {
		in.TableID = req.TableID
	}
	if req.ClearTable {
		in.TableID = nil
	}
	if req.ReservedAt != nil {
		in.ReservedAt = *req.ReservedAt
	}
	if req.Guests != nil {
		in.Guests = *req.Guests
	}
	if req.Status != nil {
		in.Status = *req.Status
	}
	if req.Comment != nil {
		in.Comment = blankToNil(req.Comment)
	}

	reservation, err := rc.Reservations.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d updated (status=%s)", reservation.ID, reservation.Status)
	utils.RespondJSON(c, http.StatusOK, "Reservation updated successfully", reservation)
}

// DeleteReservation -> frees the reservation's table
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := parseID(c, "reservation_id")
	if !ok {
		return
	}
	if err := rc.Reservations.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted successfully", nil)
}
