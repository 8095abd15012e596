package request

// FlightSearchRequest is bound from the query string.
type FlightSearchRequest struct {
	FromAirport   string `validate:"required,iata"`
	ToAirport     string `validate:"required,iata,nefield=FromAirport"`
	DepartureDate string `validate:"required,datetime=2006-01-02"`
}
