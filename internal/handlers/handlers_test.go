package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/apierror"
	"github.com/JonnyWalker81/wellness/backend/internal/middleware"
	"github.com/JonnyWalker81/wellness/backend/internal/models"
	"github.com/JonnyWalker81/wellness/backend/internal/repository"
	"github.com/JonnyWalker81/wellness/backend/internal/service"
	"github.com/gin-gonic/gin"
)

var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

type stubInsightService struct {
	err     error
	gotNow  time.Time
	gotUser string
}

func (s *stubInsightService) BuildInsightReport(ctx context.Context, subjectID string, now time.Time) (*models.InsightReport, error) {
	s.gotNow, s.gotUser = now, subjectID
	if s.err != nil {
		return nil, s.err
	}
	return &models.InsightReport{
		TopFeelings:       []models.FeelingFrequency{},
		Weekly:            []models.DailyBucket{},
		PhaseCorrelations: []models.PhaseCorrelation{},
		Trends:            []models.TrendEntry{},
		GeneratedAt:       now,
		Timezone:          now.Location().String(),
	}, nil
}

type stubCheckInService struct {
	createErr error
	created   *models.CreateCheckInRequest
	listStart time.Time
	listEnd   time.Time
}

func (s *stubCheckInService) CreateCheckIn(ctx context.Context, subjectID string, req *models.CreateCheckInRequest) (*models.FeelingCheckIn, error) {
	s.created = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.FeelingCheckIn{ID: "c1", SubjectID: subjectID, CategoryID: req.CategoryID, Label: req.Label, OccurredAt: req.OccurredAt}, nil
}

func (s *stubCheckInService) ListCheckIns(ctx context.Context, subjectID string, start, end time.Time) ([]models.FeelingCheckIn, error) {
	s.listStart, s.listEnd = start, end
	return []models.FeelingCheckIn{}, nil
}

type stubPhaseTagService struct {
	setDay   models.Date
	setPhase string
}

func (s *stubPhaseTagService) SetPhaseTag(ctx context.Context, subjectID string, day models.Date, phase string) (*models.PhaseTag, error) {
	s.setDay, s.setPhase = day, phase
	return &models.PhaseTag{SubjectID: subjectID, Date: day, Phase: phase}, nil
}

func (s *stubPhaseTagService) ListPhaseTags(ctx context.Context, subjectID string, start, end models.Date) ([]models.PhaseTag, error) {
	if end.Before(start) {
		return nil, service.ErrInvalidRange
	}
	return []models.PhaseTag{}, nil
}

type testServer struct {
	router    *gin.Engine
	insights  *stubInsightService
	checkIns  *stubCheckInService
	phaseTags *stubPhaseTagService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		insights:  &stubInsightService{},
		checkIns:  &stubCheckInService{},
		phaseTags: &stubPhaseTagService{},
	}

	insightsHandler := NewInsightsHandler(ts.insights, time.UTC)
	insightsHandler.now = func() time.Time { return fixedNow }
	checkInHandler := NewCheckInHandler(ts.checkIns)
	checkInHandler.now = func() time.Time { return fixedNow }
	phaseTagHandler := NewPhaseTagHandler(ts.phaseTags, time.UTC)
	phaseTagHandler.now = func() time.Time { return fixedNow }

	ts.router = NewRouter(RouterConfig{
		Env:       "test",
		Verifier:  middleware.DevTokenVerifier{},
		Insights:  insightsHandler,
		CheckIns:  checkInHandler,
		PhaseTags: phaseTagHandler,
	})
	return ts
}

func (ts *testServer) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer user-1")
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) apierror.ProblemDetails {
	t.Helper()
	var problem apierror.ProblemDetails
	if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
		t.Fatalf("expected problem+json body, got %q", w.Body.String())
	}
	return problem
}

func TestHealthIsPublic(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/health", "", false)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestMetricsEndpointIsPublic(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/metrics", "", false)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestUnknownRouteIsProblem(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/nope", "", false)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if p := decodeProblem(t, w); p.Type != apierror.TypeNotFound {
		t.Errorf("type = %q", p.Type)
	}
}

func TestInsightsRequiresAuth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/api/v1/insights/checkins", "", false)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestGetCheckInInsights(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/insights/checkins", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ts.insights.gotUser != "user-1" {
		t.Errorf("subject = %q, want user-1", ts.insights.gotUser)
	}
	if !ts.insights.gotNow.Equal(fixedNow) || ts.insights.gotNow.Location() != time.UTC {
		t.Errorf("now = %v, want fixed now in UTC", ts.insights.gotNow)
	}

	// Empty lists must encode as [] not null
	for _, key := range []string{`"top_feelings":[]`, `"weekly":[]`, `"phase_correlations":[]`, `"trends":[]`} {
		if !strings.Contains(w.Body.String(), key) {
			t.Errorf("expected %s in %s", key, w.Body.String())
		}
	}
}

func TestGetCheckInInsights_Timezone(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/insights/checkins?tz=America/New_York", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if got := ts.insights.gotNow.Location().String(); got != "America/New_York" {
		t.Errorf("location = %q, want America/New_York", got)
	}

	w = ts.do(http.MethodGet, "/api/v1/insights/checkins?tz=Not/AZone", "", true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for bad tz", w.Code)
	}
}

func TestGetCheckInInsights_StoreFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.insights.err = fmt.Errorf("failed to fetch check-ins: %w", errors.New("timeout"))

	w := ts.do(http.MethodGet, "/api/v1/insights/checkins", "", true)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	p := decodeProblem(t, w)
	if p.Type != apierror.TypeUnavailable || p.Detail != "insights unavailable" {
		t.Errorf("problem = %+v", p)
	}
	if strings.Contains(w.Body.String(), "timeout") {
		t.Error("upstream error leaked to client")
	}
}

func TestCreateCheckIn(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantType   string
		wantFields []string
	}{
		{
			name:       "valid",
			body:       `{"category_id":"tired","label":"Tired","occurred_at":"2026-03-01T08:00:00Z"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "aggregates every missing field",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierror.TypeValidation,
			wantFields: []string{"category_id", "label", "occurred_at"},
		},
		{
			name:       "bad timestamp",
			body:       `{"category_id":"tired","label":"Tired","occurred_at":"yesterday"}`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierror.TypeValidation,
			wantFields: []string{"occurred_at"},
		},
		{
			name:       "malformed json",
			body:       `{"category_id":`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierror.TypeBadRequest,
		},
		{
			name:       "non v7 id",
			body:       `{"id":"abc","category_id":"tired","label":"Tired","occurred_at":"2026-03-01T08:00:00Z"}`,
			serviceErr: service.ErrInvalidUUID,
			wantStatus: http.StatusBadRequest,
			wantType:   apierror.TypeInvalidUUID,
		},
		{
			name:       "duplicate id",
			body:       `{"category_id":"tired","label":"Tired","occurred_at":"2026-03-01T08:00:00Z"}`,
			serviceErr: fmt.Errorf("check-in x: %w", repository.ErrDuplicate),
			wantStatus: http.StatusConflict,
			wantType:   apierror.TypeConflict,
		},
		{
			name:       "store failure",
			body:       `{"category_id":"tired","label":"Tired","occurred_at":"2026-03-01T08:00:00Z"}`,
			serviceErr: errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   apierror.TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.checkIns.createErr = tt.serviceErr

			w := ts.do(http.MethodPost, "/api/v1/checkins", tt.body, true)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantType == "" {
				return
			}

			p := decodeProblem(t, w)
			if p.Type != tt.wantType {
				t.Errorf("type = %q, want %q", p.Type, tt.wantType)
			}
			if len(tt.wantFields) > 0 {
				if len(p.Errors) != len(tt.wantFields) {
					t.Fatalf("errors = %+v, want fields %v", p.Errors, tt.wantFields)
				}
				for i, field := range tt.wantFields {
					if p.Errors[i].Field != field {
						t.Errorf("errors[%d].field = %q, want %q", i, p.Errors[i].Field, field)
					}
				}
			}
		})
	}
}

func TestGetCheckIns_DefaultRange(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/checkins", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !ts.checkIns.listEnd.Equal(fixedNow) || !ts.checkIns.listStart.Equal(fixedNow.AddDate(0, 0, -30)) {
		t.Errorf("range = %v..%v, want last 30 days", ts.checkIns.listStart, ts.checkIns.listEnd)
	}

	w = ts.do(http.MethodGet, "/api/v1/checkins?start=bad", "", true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSetPhaseTag(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{"valid", "/api/v1/phase-tags/2026-03-03", `{"phase":"luteal"}`, http.StatusOK},
		{"bad date", "/api/v1/phase-tags/03-03-2026", `{"phase":"luteal"}`, http.StatusBadRequest},
		{"unknown phase", "/api/v1/phase-tags/2026-03-03", `{"phase":"spring"}`, http.StatusBadRequest},
		{"missing phase", "/api/v1/phase-tags/2026-03-03", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			w := ts.do(http.MethodPut, tt.path, tt.body, true)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				want := models.Date{Year: 2026, Month: time.March, Day: 3}
				if ts.phaseTags.setDay != want || ts.phaseTags.setPhase != models.PhaseLuteal {
					t.Errorf("service got %s/%s", ts.phaseTags.setDay, ts.phaseTags.setPhase)
				}
			}
		})
	}
}

func TestGetPhaseTags_InvalidRange(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/phase-tags?start=2026-03-10&end=2026-03-01", "", true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	w = ts.do(http.MethodGet, "/api/v1/phase-tags", "", true)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for default range", w.Code)
	}
}
