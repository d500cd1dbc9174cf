package notify

// EmailNotification is the message published for every confirmed or
// cancelled booking. The consumer side may process it at-least-once;
// duplicates are possible and tolerated downstream.
type EmailNotification struct {
	To            string `json:"to"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	PNR           string `json:"pnr"`
	FlightNumber  string `json:"flightNumber"`
	PassengerName string `json:"passengerName"`
}
