package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"washbook/internal/config"
	"washbook/internal/entities"
	"washbook/internal/repository"
	"washbook/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSink struct {
	created int
}

func (s *stubSink) Create(_ context.Context, payload entities.BookingPayload) (*entities.BookingConfirmation, error) {
	s.created++
	return &entities.BookingConfirmation{
		BookingID:        s.created,
		ConfirmationCode: "00ABCDEF",
		Status:           "confirmed",
		TotalPrice:       payload.TotalPrice,
	}, nil
}

func newTestRouter(t *testing.T) (*mux.Router, *stubSink) {
	t.Helper()
	sink := &stubSink{}
	svc := service.NewWizardService(config.Default(), repository.NewMemoryDraftRepository(), sink)
	h := NewWizardHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/api/wizard", h.StartSession).Methods("POST")
	r.HandleFunc("/api/wizard/{id}", h.GetSession).Methods("GET")
	r.HandleFunc("/api/wizard/{id}", h.ApplyUpdate).Methods("PATCH")
	r.HandleFunc("/api/wizard/{id}/next", h.Next).Methods("POST")
	r.HandleFunc("/api/wizard/{id}/back", h.Back).Methods("POST")
	r.HandleFunc("/api/wizard/{id}/submit", h.Submit).Methods("POST")
	return r, sink
}

func doJSON(t *testing.T, r *mux.Router, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	decoded := map[string]interface{}{}
	if rec.Body.Len() > 0 && strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func startWizard(t *testing.T, r *mux.Router) string {
	t.Helper()
	rec, body := doJSON(t, r, "POST", "/api/wizard", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := body["session_id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestStartAndGetSession(t *testing.T) {
	r, _ := newTestRouter(t)
	id := startWizard(t, r)

	rec, body := doJSON(t, r, "GET", "/api/wizard/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["step"])
	assert.Equal(t, true, body["guest"])
}

func TestGetMissingSessionReturns404(t *testing.T) {
	r, _ := newTestRouter(t)
	rec, _ := doJSON(t, r, "GET", "/api/wizard/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplyUpdateCascadesAndPrices(t *testing.T) {
	r, _ := newTestRouter(t)
	id := startWizard(t, r)

	rec, _ := doJSON(t, r, "PATCH", "/api/wizard/"+id, `{"op":"set_category","category":"carwash"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, r, "PATCH", "/api/wizard/"+id, `{"op":"set_service","service":"classic"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	draft := body["draft"].(map[string]interface{})
	assert.Equal(t, float64(500), draft["base_price"])

	// switching category clears the chosen service
	rec, body = doJSON(t, r, "PATCH", "/api/wizard/"+id, `{"op":"set_category","category":"graphene_coating"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	draft = body["draft"].(map[string]interface{})
	assert.Equal(t, "", draft["service"])
	assert.Equal(t, float64(0), draft["base_price"])
}

func TestApplyUpdateUnknownOp(t *testing.T) {
	r, _ := newTestRouter(t)
	id := startWizard(t, r)

	rec, _ := doJSON(t, r, "PATCH", "/api/wizard/"+id, `{"op":"set_favorite_color","value":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHomeServiceRejectionRedirects(t *testing.T) {
	r, _ := newTestRouter(t)
	id := startWizard(t, r)

	doJSON(t, r, "PATCH", "/api/wizard/"+id, `{"op":"set_category","category":"auto_detailing"}`)
	rec, body := doJSON(t, r, "PATCH", "/api/wizard/"+id, `{"op":"set_service_type","service_type":"home"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, float64(1), body["redirect_step"])
	session := body["session"].(map[string]interface{})
	draft := session["draft"].(map[string]interface{})
	assert.Equal(t, "", draft["category"])
}

func TestNextReportsIssues(t *testing.T) {
	r, _ := newTestRouter(t)
	id := startWizard(t, r)

	rec, body := doJSON(t, r, "POST", "/api/wizard/"+id+"/next", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	issues := body["issues"].([]interface{})
	assert.Len(t, issues, 2) // category and service both missing
}

func TestFullWizardFlowOverHTTP(t *testing.T) {
	r, sink := newTestRouter(t)
	id := startWizard(t, r)

	updates := []string{
		`{"op":"set_category","category":"carwash"}`,
		`{"op":"set_service","service":"classic"}`,
		`{"op":"set_unit_type","unit_type":"car"}`,
		`{"op":"set_unit_size","unit_size":"sedan"}`,
		`{"op":"set_service_type","service_type":"branch"}`,
		`{"op":"set_schedule","schedule":{"date":"2025-06-01","time_slot":"9:00 AM","branch":"Tumaga"}}`,
		`{"op":"set_payment_method","method":"branch"}`,
		`{"op":"set_customer","customer":{"full_name":"Jane Doe","mobile":"09171234567","email":"jane@example.com"}}`,
		`{"op":"set_accepted_terms","accepted":true}`,
	}
	for _, u := range updates {
		rec, _ := doJSON(t, r, "PATCH", "/api/wizard/"+id, u)
		require.Equal(t, http.StatusOK, rec.Code, "update %s", u)
	}

	for step := 1; step < entities.LastStep; step++ {
		rec, _ := doJSON(t, r, "POST", "/api/wizard/"+id+"/next", "")
		require.Equal(t, http.StatusOK, rec.Code, "next from step %d", step)
	}

	rec, body := doJSON(t, r, "POST", "/api/wizard/"+id+"/submit", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "00ABCDEF", body["confirmation_code"])
	assert.Equal(t, float64(500), body["total_price"])
	assert.Equal(t, 1, sink.created)
}

func TestSubmitBeforeReviewStepConflicts(t *testing.T) {
	r, _ := newTestRouter(t)
	id := startWizard(t, r)

	rec, _ := doJSON(t, r, "POST", "/api/wizard/"+id+"/submit", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDecodeDraftUpdateShapes(t *testing.T) {
	u, err := DecodeDraftUpdate(bytes.NewReader([]byte(`{"op":"set_unit_type","unit_type":"motorcycle"}`)))
	require.NoError(t, err)
	setType, ok := u.(entities.SetUnitType)
	require.True(t, ok, fmt.Sprintf("got %T", u))
	assert.Equal(t, entities.UnitTypeMotorcycle, setType.UnitType)

	_, err = DecodeDraftUpdate(bytes.NewReader([]byte(`not json`)))
	assert.Error(t, err)
}
