package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  OrderStatus
		ok    bool
	}{
		{name: "upper", input: "SHIPPED", want: OrderStatusShipped, ok: true},
		{name: "lower", input: "delivered", want: OrderStatusDelivered, ok: true},
		{name: "dash", input: "cancel-requested", want: OrderStatusCancelRequested, ok: true},
		{name: "space", input: " out for delivery ", want: OrderStatusOutForDelivery, ok: true},
		{name: "legacy", input: "success", want: OrderStatusSuccess, ok: true},
		{name: "unknown", input: "LOST", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseOrderStatus(tc.input)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestTransitionTableCoversEveryStatus(t *testing.T) {
	table := OrderTransitions()
	for _, role := range []ActorRole{ActorUser, ActorAdmin} {
		byStatus, ok := table[role]
		require.True(t, ok, "missing role %s", role)
		require.Len(t, byStatus, len(AllOrderStatuses))
		for _, from := range AllOrderStatuses {
			_, ok := byStatus[from]
			require.True(t, ok, "role %s missing status %s", role, from)
		}
	}
}

func TestUserTransitions(t *testing.T) {
	for _, from := range AllOrderStatuses {
		for _, to := range AllOrderStatuses {
			want := to == OrderStatusCancelled || to == OrderStatusCancelRequested
			assert.Equal(t, want, CanTransition(ActorUser, from, to), "%s -> %s", from, to)
		}
	}
}

func TestAdminTransitions(t *testing.T) {
	for _, from := range AllOrderStatuses {
		for _, to := range AllOrderStatuses {
			assert.True(t, CanTransition(ActorAdmin, from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransitionUnknownCurrentStatus(t *testing.T) {
	legacy := OrderStatus("paid")
	require.True(t, CanTransition(ActorAdmin, legacy, OrderStatusShipped))
	require.True(t, CanTransition(ActorUser, legacy, OrderStatusCancelled))
	require.False(t, CanTransition(ActorUser, legacy, OrderStatusShipped))
	require.False(t, CanTransition(ActorRole("guest"), OrderStatusPlaced, OrderStatusCancelled))
}

func TestOrderTransitionsReturnsCopy(t *testing.T) {
	table := OrderTransitions()
	table[ActorUser][OrderStatusPlaced] = append(table[ActorUser][OrderStatusPlaced], OrderStatusShipped)

	require.False(t, CanTransition(ActorUser, OrderStatusPlaced, OrderStatusShipped))
	require.Len(t, AllowedTransitions(ActorUser, OrderStatusPlaced), 2)
	require.Nil(t, AllowedTransitions(ActorRole("guest"), OrderStatusPlaced))
}
