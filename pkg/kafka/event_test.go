package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	ProfileID string  `json:"profile_id"`
	Subtotal  float64 `json:"subtotal"`
}

func TestNewEvent(t *testing.T) {
	event, err := NewEvent("storefront.cart.updated", "profile-1", "cart", "storefront",
		testPayload{ProfileID: "profile-1", Subtotal: 89.99})

	require.NoError(t, err)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "storefront.cart.updated", event.EventType)
	assert.Equal(t, "profile-1", event.AggregateID)
	assert.Equal(t, "cart", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.Equal(t, "storefront", event.Source)
	assert.False(t, event.Timestamp.IsZero())
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("test", "1", "cart", "storefront", make(chan int))
	require.Error(t, err)
}

func TestEvent_RoundTrip(t *testing.T) {
	event, err := NewEvent("storefront.wishlist.updated", "profile-1", "wishlist", "storefront",
		testPayload{ProfileID: "profile-1"})
	require.NoError(t, err)
	event.WithCorrelationID("corr-42")

	raw, err := event.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "corr-42", decoded.CorrelationID)

	var payload testPayload
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, "profile-1", payload.ProfileID)
}

func TestUnmarshalEvent_Malformed(t *testing.T) {
	_, err := UnmarshalEvent([]byte(`{not json`))
	require.Error(t, err)
}
