package pricing_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/apperror"
	"github.com/iliyamo/cinema-box-office/internal/pricing"
)

func TestComputeWithoutAddOnsReturnsBase(t *testing.T) {
	q, err := pricing.Compute(12, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 12.0, q.Unit)
	assert.Equal(t, pricing.BaseDescription, q.Description)
}

func TestComputeOrderAffectsDescriptionOnly(t *testing.T) {
	ab, err := pricing.ForMovie("Inception", 12, []pricing.AddOn{pricing.Popcorn, pricing.Soda})
	require.NoError(t, err)
	ba, err := pricing.ForMovie("Inception", 12, []pricing.AddOn{pricing.Soda, pricing.Popcorn})
	require.NoError(t, err)

	assert.Equal(t, 24.0, ab.Unit)
	assert.Equal(t, ab.Unit, ba.Unit)
	assert.Equal(t, "Ticket: Inception, Popcorn, Soda", ab.Description)
	assert.Equal(t, "Ticket: Inception, Soda, Popcorn", ba.Description)
}

func TestComputeNeverBelowBase(t *testing.T) {
	q, err := pricing.Compute(0, "", []pricing.AddOn{pricing.Soda, pricing.Soda})
	require.NoError(t, err)
	assert.Equal(t, 8.0, q.Unit)
	assert.Equal(t, "Ticket, Soda, Soda", q.Description)
}

func TestComputeRejectsNegativeBase(t *testing.T) {
	_, err := pricing.Compute(-1, "", nil)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestParseAddOns(t *testing.T) {
	got, err := pricing.ParseAddOns([]string{"popcorn", " Soda "})
	require.NoError(t, err)
	assert.Equal(t, []pricing.AddOn{pricing.Popcorn, pricing.Soda}, got)
	assert.Equal(t, 8.0, pricing.Popcorn.Surcharge())
	assert.Equal(t, "Soda", pricing.Soda.Name())

	_, err = pricing.ParseAddOns([]string{"nachos"})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}
