package httpServices

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPostsTemplateAndPayload(t *testing.T) {
	var got sendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sendResponse{Status: "queued"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	err := client.Send(TemplateBookingConfirmed, EmailPayload{
		To:             "customer@example.com",
		Origin:         "United States",
		Destination:    "Germany",
		Service:        "Express Air",
		Price:          195.62,
		DeliveryDays:   "1-2",
		WeightKg:       5.5,
		TrackingNumber: "SS-1A2B3C4D5E",
	})
	require.NoError(t, err)

	assert.Equal(t, TemplateBookingConfirmed, got.Template)
	assert.Equal(t, "customer@example.com", got.Payload.To)
	assert.Equal(t, "SS-1A2B3C4D5E", got.Payload.TrackingNumber)
}

func TestSendReturnsErrorOnNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	err := client.Send(TemplateStatusUpdate, EmailPayload{To: "customer@example.com"})
	assert.Error(t, err)
}
