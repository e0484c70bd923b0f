package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voyagedesk/tripquote/internal/models"
)

func TestLeadRepository(t *testing.T) {
	repo := NewLeadRepository(testDB(t), zap.NewNop())

	lead := &models.Lead{
		ID:          "lead-1",
		FullName:    "Asha Verma",
		Contact:     "+91 98000 00000",
		Email:       "asha@example.com",
		Destination: "Bali",
		TravelDate:  "2025-03-10",
		Days:        "5",
		AdultCount:  "2",
		Budget:      "150000",
		Status:      models.LeadStatusNew,
	}

	t.Run("create and get", func(t *testing.T) {
		require.NoError(t, repo.Create(lead))

		got, err := repo.GetByID("lead-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Asha Verma", got.FullName)
		assert.Equal(t, "Bali", got.Destination)
		assert.Equal(t, models.LeadStatusNew, got.Status)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("get missing lead returns nil", func(t *testing.T) {
		got, err := repo.GetByID("nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list newest first", func(t *testing.T) {
		for i := 2; i <= 4; i++ {
			require.NoError(t, repo.Create(&models.Lead{
				ID:       fmt.Sprintf("lead-%d", i),
				FullName: fmt.Sprintf("Client %d", i),
				Status:   models.LeadStatusNew,
			}))
		}

		leads, err := repo.List(10, 0)
		require.NoError(t, err)
		require.Len(t, leads, 4)
	})

	t.Run("update status", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus("lead-1", models.LeadStatusQuoted))

		got, err := repo.GetByID("lead-1")
		require.NoError(t, err)
		assert.Equal(t, models.LeadStatusQuoted, got.Status)
	})

	t.Run("update status of missing lead fails", func(t *testing.T) {
		assert.Error(t, repo.UpdateStatus("nope", models.LeadStatusWon))
	})
}

func TestQuotationRepository(t *testing.T) {
	repo := NewQuotationRepository(testDB(t), zap.NewNop())

	q := &models.Quotation{
		TripID:      "T1",
		LeadID:      "lead-1",
		ClientName:  "Asha Verma",
		Destination: "Bali",
		TravelDate:  "2025-03-10",
		Days:        "5",
		TotalCost:   152000,
		Payload:     `{"tripId":"T1"}`,
	}

	t.Run("create assigns id and timestamp", func(t *testing.T) {
		require.NoError(t, repo.Create(q))
		assert.NotZero(t, q.ID)
		assert.False(t, q.SubmittedAt.IsZero())
	})

	t.Run("get by trip id", func(t *testing.T) {
		got, err := repo.GetByTripID("T1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 152000.0, got.TotalCost)
		assert.Equal(t, `{"tripId":"T1"}`, got.Payload)
	})

	t.Run("get missing quotation returns nil", func(t *testing.T) {
		got, err := repo.GetByTripID("nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate trip id rejected", func(t *testing.T) {
		dup := &models.Quotation{TripID: "T1", Payload: "{}"}
		assert.Error(t, repo.Create(dup))
	})
}
