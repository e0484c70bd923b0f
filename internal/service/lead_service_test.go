package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voyagedesk/tripquote/internal/models"
)

func TestLeadService_Create(t *testing.T) {
	svc := NewLeadService(newMemLeadStore(), zap.NewNop())

	lead, err := svc.Create(CreateLeadInput{
		FullName:    "  Asha Verma  ",
		Contact:     "+91 98000 00000",
		Destination: "Bali",
		Days:        "5",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "Asha Verma", lead.FullName)
	assert.Equal(t, models.LeadStatusNew, lead.Status)

	got, err := svc.Get(lead.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, lead.ID, got.ID)
}

func TestLeadService_CreateRequiresName(t *testing.T) {
	svc := NewLeadService(newMemLeadStore(), zap.NewNop())

	_, err := svc.Create(CreateLeadInput{Contact: "+91 98000 00000"})
	assert.Error(t, err)
}

func TestLeadService_UpdateStatus(t *testing.T) {
	svc := NewLeadService(newMemLeadStore(), zap.NewNop())

	lead, err := svc.Create(CreateLeadInput{FullName: "Asha Verma"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(lead.ID, models.LeadStatusContacted))

	got, err := svc.Get(lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusContacted, got.Status)

	assert.Error(t, svc.UpdateStatus(lead.ID, "SOMETHING_ELSE"))
}

func TestLeadService_QuotationDefaults(t *testing.T) {
	svc := NewLeadService(newMemLeadStore(), zap.NewNop())

	lead, err := svc.Create(CreateLeadInput{
		FullName:    "Asha Verma",
		Email:       "asha@example.com",
		Destination: "Bali",
		TravelDate:  "2025-03-10",
		Days:        "5",
		AdultCount:  "2",
		Budget:      "150000",
	})
	require.NoError(t, err)

	form, err := svc.QuotationDefaults(lead.ID)
	require.NoError(t, err)

	assert.Equal(t, "Asha Verma", form.FullName)
	assert.Equal(t, "Bali", form.Destination)
	assert.Equal(t, "2025-03-10", form.TravelDate)
	assert.Equal(t, "5", form.Days)
	assert.Len(t, form.Hotels, 1, "defaults keep the blank hotel row")
}

func TestLeadService_QuotationDefaultsUnknownLead(t *testing.T) {
	svc := NewLeadService(newMemLeadStore(), zap.NewNop())

	_, err := svc.QuotationDefaults("nope")
	assert.Error(t, err)
}
