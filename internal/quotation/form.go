// Package quotation holds the in-memory state of a quotation being built:
// the form field model, the derived cost computation and the itinerary
// day reconciliation that keep it internally consistent.
package quotation

// Hotel is one accommodation entry on the quotation.
type Hotel struct {
	Name     string `json:"name"`
	City     string `json:"city"`
	RoomType string `json:"roomType"`
	Category string `json:"category"`
	MealPlan string `json:"mealPlan"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Comments string `json:"comments"`
}

// ItineraryDay is one dated day of the trip plan. DayNumber always equals
// the day's position in the itinerary plus one and DateKey is always the
// YYYYMMDD encoding of Date; neither is authoritative on its own.
type ItineraryDay struct {
	DayNumber   int    `json:"dayNumber"`
	Date        string `json:"date"`
	DateKey     int    `json:"dateKey"`
	Title       string `json:"title"`
	Activity    string `json:"activity"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Form is the full quotation form state. Numeric entry fields are kept as
// free text exactly as typed; parsing happens at computation time so that
// partial input never blocks an update. TotalCost is derived and never set
// by callers directly.
type Form struct {
	TripID   string `json:"tripId"`
	FullName string `json:"fullName"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`

	TravelDate    string `json:"travelDate"`
	Days          string `json:"days"`
	AdultCount    string `json:"adultCount"`
	ChildCount    string `json:"childCount"`
	Budget        string `json:"budget"`
	DepartureCity string `json:"departureCity"`
	Destination   string `json:"destination"`

	FlightCost      string `json:"flightCost"`
	VisaCost        string `json:"visaCost"`
	LandPackageCost string `json:"landPackageCost"`
	TotalTax        string `json:"totalTax"`
	GST             string `json:"gst"`
	GSTWaived       string `json:"gstWaived"`
	TCS             string `json:"tcs"`
	TCSWaived       string `json:"tcsWaived"`
	PackageWithGST  bool   `json:"packageWithGST"`
	PackageWithTCS  bool   `json:"packageWithTCS"`

	TotalCost float64 `json:"totalCost"`

	Hotels        []Hotel        `json:"hotels"`
	ItineraryDays []ItineraryDay `json:"itineraryDays"`
	Inclusions    []string       `json:"inclusions"`
	Exclusions    []string       `json:"exclusions"`
}

// NewForm returns an empty form with a single blank hotel entry, the
// minimum the quotation screen always shows.
func NewForm() Form {
	return Form{
		Hotels: []Hotel{{}},
	}
}

// Clone returns a deep copy of the form. Slices are copied so the caller
// can hand the result to other goroutines.
func (f Form) Clone() Form {
	cp := f
	if f.Hotels != nil {
		cp.Hotels = append([]Hotel(nil), f.Hotels...)
	}
	if f.ItineraryDays != nil {
		cp.ItineraryDays = append([]ItineraryDay(nil), f.ItineraryDays...)
	}
	if f.Inclusions != nil {
		cp.Inclusions = append([]string(nil), f.Inclusions...)
	}
	if f.Exclusions != nil {
		cp.Exclusions = append([]string(nil), f.Exclusions...)
	}
	return cp
}
