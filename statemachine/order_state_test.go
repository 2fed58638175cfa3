package statemachine

import (
	"testing"

	"pharmacy-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedTransitions(t *testing.T) {
	cases := []struct {
		from  models.OrderStatus
		to    models.OrderStatus
		actor string
	}{
		{models.StatusPending, models.StatusAssigned, "courier"},
		{models.StatusAssigned, models.StatusDelivered, "courier"},
		{models.StatusAssigned, models.StatusCancelled, "courier"},
		{models.StatusPending, models.StatusCancelled, "customer"},
		{models.StatusAssigned, models.StatusCancelled, "customer"},
		{models.StatusPending, models.StatusCancelled, "system"},
	}
	for _, tc := range cases {
		assert.NoError(t, CanTransition(tc.from, tc.to, tc.actor),
			"%s -> %s by %s should be allowed", tc.from, tc.to, tc.actor)
	}
}

func TestDeniedTransitions(t *testing.T) {
	cases := []struct {
		from  models.OrderStatus
		to    models.OrderStatus
		actor string
	}{
		{models.StatusPending, models.StatusDelivered, "courier"}, // no skipping assignment
		{models.StatusPending, models.StatusAssigned, "customer"},
		{models.StatusDelivered, models.StatusCancelled, "customer"},
		{models.StatusCancelled, models.StatusAssigned, "courier"},
		{models.StatusDelivered, models.StatusPending, "system"},
	}
	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to, tc.actor)
		require.Error(t, err, "%s -> %s by %s should be denied", tc.from, tc.to, tc.actor)

		var terr *TransitionError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, tc.from, terr.From)
		assert.Equal(t, tc.to, terr.To)
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusDelivered))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.False(t, IsTerminal(models.StatusPending))
	assert.False(t, IsTerminal(models.StatusAssigned))
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusPending)
	assert.ElementsMatch(t, []models.OrderStatus{models.StatusAssigned, models.StatusCancelled}, nexts)

	nexts = ValidTransitionsFrom(models.StatusAssigned)
	assert.ElementsMatch(t, []models.OrderStatus{models.StatusDelivered, models.StatusCancelled}, nexts)

	assert.Empty(t, ValidTransitionsFrom(models.StatusDelivered))
}
