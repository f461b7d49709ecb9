package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	svc := seedProvider(t, db)
	h := NewHandler(newTestService(NewGormStore(db), longBefore))

	r := gin.New()
	h.RegisterPublicRoutes(r.Group("/api/v1"))
	return r, svc.ID.String()
}

func doJSON(r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestHandler_GetSlots(t *testing.T) {
	r, serviceID := newTestRouter(t)

	w, env := doJSON(r, http.MethodGet, "/api/v1/providers/"+providerID+"/slots?service_id="+serviceID+"&date="+monday, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Slots []string `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Slots, 6)
	assert.Equal(t, "2030-01-07T09:00:00-04:00", data.Slots[0])
}

func TestHandler_GetSlotsBadInputIsEmpty(t *testing.T) {
	r, serviceID := newTestRouter(t)

	for _, q := range []string{
		"?service_id=" + serviceID + "&date=2030/01/07",
		"?service_id=nope&date=" + monday,
		"",
	} {
		w, env := doJSON(r, http.MethodGet, "/api/v1/providers/"+providerID+"/slots"+q, nil)
		require.Equal(t, http.StatusOK, w.Code, q)
		assert.JSONEq(t, `{"slots":[]}`, string(env.Data), q)
	}
}

func TestHandler_CreateGuestBooking(t *testing.T) {
	r, serviceID := newTestRouter(t)
	path := "/api/v1/providers/" + providerID + "/bookings"
	body := map[string]string{
		"service_id":  serviceID,
		"start_at":    "2030-01-07T11:30:00-04:00",
		"guest_name":  "Ana",
		"guest_email": "ana@example.com",
	}

	w, env := doJSON(r, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code)
	var data struct {
		OK        bool   `json:"ok"`
		BookingID string `json:"booking_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.OK)
	assert.NotEmpty(t, data.BookingID)

	w, env = doJSON(r, http.MethodPost, path, body)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SLOT_TAKEN", env.Error.Code)
	assert.Equal(t, "That time was just taken. Choose another slot.", env.Error.Message)

	body["start_at"] = "2030-01-07T10:10:00-04:00"
	w, env = doJSON(r, http.MethodPost, path, body)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SLOT_UNAVAILABLE", env.Error.Code)

	w, env = doJSON(r, http.MethodGet, "/api/v1/bookings/"+data.BookingID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Consulta")
}

func TestHandler_CreateGuestBookingRejections(t *testing.T) {
	r, serviceID := newTestRouter(t)
	path := "/api/v1/providers/" + providerID + "/bookings"

	cases := []struct {
		name   string
		body   map[string]string
		status int
		code   string
	}{
		{"missing name", map[string]string{"service_id": serviceID, "start_at": "2030-01-07T09:00:00-04:00", "guest_email": "a@example.com"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"no email or phone", map[string]string{"service_id": serviceID, "start_at": "2030-01-07T09:00:00-04:00", "guest_name": "Ana"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad start", map[string]string{"service_id": serviceID, "start_at": "soon", "guest_name": "Ana", "guest_email": "a@example.com"}, http.StatusBadRequest, "INVALID_SLOT"},
		{"past start", map[string]string{"service_id": serviceID, "start_at": "2001-01-01T09:00:00-04:00", "guest_name": "Ana", "guest_email": "a@example.com"}, http.StatusBadRequest, "PAST_SLOT"},
		{"unknown service", map[string]string{"service_id": "6f1c9a52-0000-4d8e-9a8f-1f2d3c4b5a60", "start_at": "2030-01-07T09:00:00-04:00", "guest_name": "Ana", "guest_email": "a@example.com"}, http.StatusNotFound, "SERVICE_NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := doJSON(r, http.MethodPost, path, tc.body)
			assert.Equal(t, tc.status, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestHandler_GetReserveData(t *testing.T) {
	r, serviceID := newTestRouter(t)

	w, env := doJSON(r, http.MethodGet, "/api/v1/providers/"+providerID+"?date="+monday, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data ReserveDataView
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Dra. Rivas", data.Provider.DisplayName)
	assert.Equal(t, serviceID, data.SelectedService.ID)
	assert.Len(t, data.Slots, 6)

	w, _ = doJSON(r, http.MethodGet, "/api/v1/providers/somebody-else", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_GetBookingUnknown(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := doJSON(r, http.MethodGet, "/api/v1/bookings/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doJSON(r, http.MethodGet, "/api/v1/bookings/0b7f5f3e-2f51-4e8b-9d3f-5c3c1b2a9e01", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ReserveDataView mirrors the JSON of ReserveData for decoding in tests.
type ReserveDataView struct {
	Provider struct {
		DisplayName string `json:"display_name"`
	} `json:"provider"`
	SelectedService struct {
		ID string `json:"id"`
	} `json:"selected_service"`
	Slots []string `json:"slots"`
}
