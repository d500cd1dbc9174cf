package domain

import "time"

// FlightInventory is a read-only snapshot owned by the remote flight
// service. A snapshot may be stale by the time a reservation is
// attempted; only the remote conditional decrement is authoritative.
type FlightInventory struct {
	ID             int64     `json:"id"`
	FlightNumber   string    `json:"flightNumber"`
	Airline        string    `json:"airline"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	AvailableSeats int       `json:"availableSeats"`
	PriceCents     int64     `json:"priceCents"`
	Status         string    `json:"status"`
}
