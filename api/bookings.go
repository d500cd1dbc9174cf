package api

import (
	"net/http"
	"time"

	"github.com/flightapp/booking/internal/domain"
	"github.com/flightapp/booking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service booking.BookingUseCase
	logger  *zap.Logger
}

type createBookingRequest struct {
	FlightID       int64  `json:"flightId" binding:"required"`
	PassengerName  string `json:"passengerName" binding:"required"`
	PassengerEmail string `json:"passengerEmail" binding:"required,email"`
	PassengerPhone string `json:"passengerPhone" binding:"required"`
	Seats          int    `json:"numberOfSeats" binding:"required,min=1"`
}

func NewBookingHandler(service booking.BookingUseCase, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{service: service, logger: logger}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.DELETE("/:pnr", h.cancel)
	router.GET("/:pnr", h.get)
	router.GET("/history/:email", h.history)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, booking.BookingResponse{
			Status:  domain.BookingStatusFailed,
			Message: err.Error(),
		})
		return
	}

	resp, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		FlightID:       req.FlightID,
		PassengerName:  req.PassengerName,
		PassengerEmail: req.PassengerEmail,
		PassengerPhone: req.PassengerPhone,
		Seats:          req.Seats,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, booking.BookingResponse{
			Status:  domain.BookingStatusFailed,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	pnr := c.Param("pnr")
	resp, err := h.service.CancelBooking(c.Request.Context(), pnr)
	if err != nil {
		c.JSON(http.StatusBadRequest, booking.BookingResponse{
			PNR:     pnr,
			Status:  domain.BookingStatusFailed,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) get(c *gin.Context) {
	pnr := c.Param("pnr")
	b, err := h.service.GetBookingByPNR(c.Request.Context(), pnr)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, toBookingView(b))
}

// history never errors toward the caller: an empty result and a store
// failure both surface as a list, possibly empty.
func (h *BookingHandler) history(c *gin.Context) {
	email := c.Param("email")
	responses, err := h.service.GetBookingHistory(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("booking history lookup failed", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusOK, []booking.BookingResponse{})
		return
	}
	c.JSON(http.StatusOK, responses)
}

type bookingView struct {
	ID               string `json:"id"`
	PNR              string `json:"pnr"`
	FlightID         int64  `json:"flightId"`
	FlightNumber     string `json:"flightNumber"`
	PassengerName    string `json:"passengerName"`
	PassengerEmail   string `json:"passengerEmail"`
	PassengerPhone   string `json:"passengerPhone"`
	Seats            int    `json:"numberOfSeats"`
	TotalAmountCents int64  `json:"totalAmountCents"`
	Status           string `json:"status"`
	BookingDate      string `json:"bookingDate"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

func toBookingView(b *domain.Booking) bookingView {
	return bookingView{
		ID:               b.ID,
		PNR:              b.PNR,
		FlightID:         b.FlightID,
		FlightNumber:     b.FlightNumber,
		PassengerName:    b.PassengerName,
		PassengerEmail:   b.PassengerEmail,
		PassengerPhone:   b.PassengerPhone,
		Seats:            b.Seats,
		TotalAmountCents: b.TotalAmountCents,
		Status:           string(b.Status),
		BookingDate:      b.BookingDate.Format(time.RFC3339),
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        b.UpdatedAt.Format(time.RFC3339),
	}
}

