package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"pharmacy-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInboxBroadcastAndDirect(t *testing.T) {
	r, db := newTestServer(t, stubVerifier{})
	_, adminToken := createUser(t, db, "boss", models.RoleAdmin)
	rider, riderToken := createUser(t, db, "rider1", models.RoleCourier)
	_, otherToken := createUser(t, db, "rider2", models.RoleCourier)

	// Broadcast reaches everyone
	w := doJSON(t, r, http.MethodPost, "/api/admin/messages", adminToken, map[string]interface{}{
		"title": "Schedule",
		"text":  "Night shift starts at 22:00",
	})
	mustStatus(t, w, http.StatusCreated)

	// Direct message reaches one courier
	w = doJSON(t, r, http.MethodPost, "/api/admin/messages", adminToken, map[string]interface{}{
		"courier_id": rider.ID,
		"title":      "Bonus",
		"text":       "You earned a bonus",
	})
	mustStatus(t, w, http.StatusCreated)

	body := mustStatus(t, doJSON(t, r, http.MethodGet, "/api/courier/messages", riderToken, nil), http.StatusOK)
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, float64(1), body["unread"])

	body = mustStatus(t, doJSON(t, r, http.MethodGet, "/api/courier/messages", otherToken, nil), http.StatusOK)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, float64(0), body["unread"])
}

func TestMarkMessageRead(t *testing.T) {
	r, db := newTestServer(t, stubVerifier{})
	rider, riderToken := createUser(t, db, "rider1", models.RoleCourier)
	_, otherToken := createUser(t, db, "rider2", models.RoleCourier)

	msg := models.CourierMessage{CourierID: &rider.ID, Title: "Hi", Text: "Direct"}
	require.NoError(t, db.Create(&msg).Error)

	path := fmt.Sprintf("/api/courier/messages/%d/read", msg.ID)

	// Another courier cannot mark it
	mustStatus(t, doJSON(t, r, http.MethodPut, path, otherToken, nil), http.StatusNotFound)

	mustStatus(t, doJSON(t, r, http.MethodPut, path, riderToken, nil), http.StatusOK)

	require.NoError(t, db.First(&msg, msg.ID).Error)
	assert.True(t, msg.IsRead)
}

func TestChatTranscript(t *testing.T) {
	r, db := newTestServer(t, stubVerifier{})
	rider, riderToken := createUser(t, db, "rider1", models.RoleCourier)

	// Inbound message from dispatch
	require.NoError(t, db.Create(&models.ChatMessage{CourierID: rider.ID, Text: "Where are you?"}).Error)

	// Courier replies
	w := doJSON(t, r, http.MethodPost, "/api/courier/chat", riderToken, map[string]interface{}{
		"text": "Five minutes away",
	})
	body := mustStatus(t, w, http.StatusCreated)
	assert.Equal(t, true, body["chat_message"].(map[string]interface{})["from_courier"])

	// Reading the transcript marks the inbound message as read
	body = mustStatus(t, doJSON(t, r, http.MethodGet, "/api/courier/chat", riderToken, nil), http.StatusOK)
	assert.Equal(t, float64(2), body["count"])

	var inbound models.ChatMessage
	require.NoError(t, db.Where("courier_id = ? AND from_courier = ?", rider.ID, false).First(&inbound).Error)
	assert.True(t, inbound.IsRead)
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	r, db := newTestServer(t, stubVerifier{})
	_, riderToken := createUser(t, db, "rider1", models.RoleCourier)

	w := doJSON(t, r, http.MethodPost, "/api/admin/messages", riderToken, map[string]interface{}{
		"text": "nope",
	})
	mustStatus(t, w, http.StatusForbidden)
}

func TestAdminOrderSummary(t *testing.T) {
	r, db := newTestServer(t, stubVerifier{})
	_, adminToken := createUser(t, db, "boss", models.RoleAdmin)
	_, customerToken := createUser(t, db, "alice", models.RoleCustomer)
	_, courierToken := createUser(t, db, "rider1", models.RoleCourier)
	product := seedProduct(t, db, "Paracetamol", 100)

	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/orders/create", customerToken, map[string]interface{}{
			"product_id":    product.ID,
			"quantity":      1,
			"address":       "Main street 1",
			"contact_phone": "+7 900 123 45 67",
		})
		mustStatus(t, w, http.StatusCreated)
	}

	// Deliver the first one
	var order models.DeliveryOrder
	require.NoError(t, db.Order("id asc").First(&order).Error)
	action := map[string]interface{}{"order_id": order.ID}
	mustStatus(t, doJSON(t, r, http.MethodPost, "/api/courier/orders/accept", courierToken, action), http.StatusOK)
	mustStatus(t, doJSON(t, r, http.MethodPost, "/api/courier/orders/complete", courierToken, action), http.StatusOK)

	body := mustStatus(t, doJSON(t, r, http.MethodGet, "/api/admin/orders", adminToken, nil), http.StatusOK)
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, 100.0, body["total_revenue"])
	summary := body["order_summary"].(map[string]interface{})
	assert.Equal(t, float64(1), summary["delivered"])
	assert.Equal(t, float64(1), summary["pending"])

	body = mustStatus(t, doJSON(t, r, http.MethodGet, "/api/admin/orders?status=pending", adminToken, nil), http.StatusOK)
	assert.Equal(t, float64(1), body["count"])
}
