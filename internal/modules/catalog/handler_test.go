package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"agenda/internal/database"
	"agenda/internal/domain"
	"agenda/internal/middleware"
	"agenda/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T, providerID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, database.Options{LogLevel: gormlogger.Silent, MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, repository.NewProfileRepository(db).CreateIfMissing(t.Context(), &domain.Profile{
		UserID: providerID, Timezone: domain.DefaultTimezone, SlotDurationMinutes: 30,
	}))

	r := gin.New()
	me := r.Group("/me", func(c *gin.Context) {
		c.Set(middleware.ProviderIDKey, providerID)
		c.Next()
	})
	NewHandler(NewService(repository.NewServiceRepository(db))).RegisterRoutes(me)
	return r
}

func call(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_ServiceLifecycle(t *testing.T) {
	r := newTestRouter(t, "prov_1")

	w := call(r, http.MethodPost, "/me/services", gin.H{"name": "Consulta", "description": "General", "duration_minutes": 30})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			Service domain.Service `json:"service"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.Service.ID.String()

	w = call(r, http.MethodPatch, "/me/services/"+id, gin.H{"duration_minutes": 50})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"duration_minutes":50`)

	w = call(r, http.MethodGet, "/me/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Consulta")

	w = call(r, http.MethodDelete, "/me/services/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = call(r, http.MethodGet, "/me/services", nil)
	assert.NotContains(t, w.Body.String(), "Consulta")

	w = call(r, http.MethodDelete, "/me/services/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_CreateServiceValidation(t *testing.T) {
	r := newTestRouter(t, "prov_1")

	w := call(r, http.MethodPost, "/me/services", gin.H{"name": "Consulta", "duration_minutes": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "duration_minutes")

	// blank after trimming: passes binding, rejected by the service
	w = call(r, http.MethodPost, "/me/services", gin.H{"name": "   ", "duration_minutes": 30})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"required"`)

	w = call(r, http.MethodPatch, "/me/services/not-a-uuid", gin.H{"duration_minutes": 10})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
