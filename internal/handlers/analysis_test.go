package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/services"
)

type fakeAnalysisService struct {
	outcome  *services.AnalysisOutcome
	err      error
	gotOwner uuid.UUID
	gotPet   uuid.UUID
	calls    int
}

func (f *fakeAnalysisService) GeneratePredictiveAnalysis(ctx context.Context, ownerID, petID uuid.UUID) (*services.AnalysisOutcome, error) {
	f.calls++
	f.gotOwner, f.gotPet = ownerID, petID
	return f.outcome, f.err
}

func testAnalysisRouter(svc services.AnalysisService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAnalysisHandler(logger.NewNop(), svc)
	router.POST("/api/analysis/predictive", h.GeneratePredictive)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGeneratePredictiveSuccess(t *testing.T) {
	svc := &fakeAnalysisService{outcome: &services.AnalysisOutcome{
		Generated:     true,
		Predictions:   2,
		Warnings:      1,
		Interventions: 3,
		RiskScore:     68,
	}}
	router := testAnalysisRouter(svc)

	ownerID := uuid.New()
	petID := uuid.New()
	body := `{"petId":"` + petID.String() + `","ownerId":"` + ownerID.String() + `"}`
	rr := postJSON(router, "/api/analysis/predictive", body)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var out struct {
		Success   bool `json:"success"`
		Generated *struct {
			Predictions   int `json:"predictions"`
			Warnings      int `json:"warnings"`
			Interventions int `json:"interventions"`
			RiskScore     int `json:"riskScore"`
		} `json:"generated"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Success || out.Generated == nil {
		t.Fatalf("unexpected response: %+v", out)
	}
	if out.Generated.Predictions != 2 || out.Generated.RiskScore != 68 {
		t.Fatalf("unexpected counts: %+v", out.Generated)
	}
	if svc.gotOwner != ownerID || svc.gotPet != petID {
		t.Fatalf("service called with wrong ids: (%s, %s)", svc.gotOwner, svc.gotPet)
	}
}

func TestGeneratePredictiveMissingIDs(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "empty_body", body: `{}`},
		{name: "missing_owner", body: `{"petId":"` + uuid.New().String() + `"}`},
		{name: "missing_pet", body: `{"ownerId":"` + uuid.New().String() + `"}`},
		{name: "malformed_uuid", body: `{"petId":"not-a-uuid","ownerId":"also-not"}`},
		{name: "not_json", body: `pet please`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeAnalysisService{}
			router := testAnalysisRouter(svc)
			rr := postJSON(router, "/api/analysis/predictive", tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status=%d, want 400; body=%s", rr.Code, rr.Body.String())
			}
			if svc.calls != 0 {
				t.Fatalf("pipeline must not run on invalid input")
			}
		})
	}
}

func TestGeneratePredictiveInsufficientData(t *testing.T) {
	svc := &fakeAnalysisService{outcome: &services.AnalysisOutcome{
		Generated: false,
		Message:   "insufficient data: add diary entries or health metrics before requesting an analysis",
	}}
	router := testAnalysisRouter(svc)

	body := `{"petId":"` + uuid.New().String() + `","ownerId":"` + uuid.New().String() + `"}`
	rr := postJSON(router, "/api/analysis/predictive", body)

	if rr.Code != http.StatusOK {
		t.Fatalf("insufficient data is not an error; status=%d", rr.Code)
	}
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Success {
		t.Fatalf("success must be false on short-circuit")
	}
	if !strings.Contains(out.Message, "insufficient data") {
		t.Fatalf("message should mention insufficient data: %q", out.Message)
	}
}

func TestGeneratePredictiveFatalFailure(t *testing.T) {
	svc := &fakeAnalysisService{err: errors.New("inference call: openai http 500")}
	router := testAnalysisRouter(svc)

	body := `{"petId":"` + uuid.New().String() + `","ownerId":"` + uuid.New().String() + `"}`
	rr := postJSON(router, "/api/analysis/predictive", body)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", rr.Code)
	}
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Success || out.Error == "" {
		t.Fatalf("expected failure envelope: %+v", out)
	}
}
