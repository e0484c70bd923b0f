package pdf

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voyagedesk/tripquote/internal/quotation"
	"github.com/voyagedesk/tripquote/internal/storage"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	docs := storage.NewDocumentStore(t.TempDir(), zap.NewNop())
	return NewRenderer(docs, zap.NewNop())
}

func fullForm() quotation.Form {
	f := quotation.NewForm()
	f.TripID = "T1"
	f.FullName = "Asha Verma"
	f.Contact = "+91 98000 00000"
	f.Email = "asha@example.com"
	f.Destination = "Bali"
	f.DepartureCity = "Mumbai"
	f.TravelDate = "2025-03-10"
	f.Days = "3"
	f.AdultCount = "2"
	f.FlightCost = "48000"
	f.LandPackageCost = "90000"
	f.GST = "6900"
	f.PackageWithGST = true
	f.TotalCost = quotation.TotalCost(f)
	f.Hotels = []quotation.Hotel{
		{Name: "Sea Breeze Resort", City: "Kuta", MealPlan: "CP", CheckIn: "2025-03-10", CheckOut: "2025-03-13"},
	}
	f.ItineraryDays = []quotation.ItineraryDay{
		{DayNumber: 1, Date: "2025-03-10", Title: "Arrival", Activity: "Airport pickup and check-in"},
		{DayNumber: 2, Date: "2025-03-11", Title: "Ubud tour", Description: "Full day tour with lunch stop"},
		{DayNumber: 3, Date: "2025-03-12", Title: "Departure"},
	}
	f.Inclusions = []string{"Airport transfers", "Daily breakfast"}
	f.Exclusions = []string{"Travel insurance"}
	return f
}

func TestRenderer_Render(t *testing.T) {
	r := testRenderer(t)

	path, err := r.Render(fullForm())
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, content)
	assert.True(t, len(content) > 500, "expected a non-trivial document")
	assert.Equal(t, "%PDF", string(content[:4]), "output should be a PDF")
}

func TestRenderer_RenderSparseForm(t *testing.T) {
	r := testRenderer(t)

	f := quotation.NewForm()
	f.TripID = "T2"

	path, err := r.Render(f)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
