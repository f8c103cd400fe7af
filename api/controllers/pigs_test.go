package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/api/middleware"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/pigs"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/logger"
)

type testPigsService struct {
	createFn func(ctx context.Context, actorID int64, req pigs.CreatePigRequest) (*pigs.PigDTO, error)
	getFn    func(ctx context.Context, id int64) (*pigs.PigDTO, error)
	listFn   func(ctx context.Context, filter pigs.ListFilter) ([]pigs.PigDTO, error)
	updateFn func(ctx context.Context, actorID, id int64, req pigs.UpdatePigRequest) (*pigs.PigDTO, error)
	deleteFn func(ctx context.Context, actorID, id int64) error
}

func (s *testPigsService) Create(ctx context.Context, actorID int64, req pigs.CreatePigRequest) (*pigs.PigDTO, error) {
	if s.createFn != nil {
		return s.createFn(ctx, actorID, req)
	}
	return &pigs.PigDTO{}, nil
}

func (s *testPigsService) Get(ctx context.Context, id int64) (*pigs.PigDTO, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return &pigs.PigDTO{}, nil
}

func (s *testPigsService) List(ctx context.Context, filter pigs.ListFilter) ([]pigs.PigDTO, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return nil, nil
}

func (s *testPigsService) Update(ctx context.Context, actorID, id int64, req pigs.UpdatePigRequest) (*pigs.PigDTO, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, actorID, id, req)
	}
	return &pigs.PigDTO{}, nil
}

func (s *testPigsService) Delete(ctx context.Context, actorID, id int64) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, actorID, id)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreatePigSuccess(t *testing.T) {
	called := false
	svc := &testPigsService{
		createFn: func(ctx context.Context, actorID int64, req pigs.CreatePigRequest) (*pigs.PigDTO, error) {
			called = true
			if actorID != 7 {
				t.Fatalf("unexpected actor %d", actorID)
			}
			if req.SowIdentifier == nil || *req.SowIdentifier != "SOW-9" {
				t.Fatalf("unexpected sow identifier %v", req.SowIdentifier)
			}
			return &pigs.PigDTO{ID: 42, Status: "alive"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pigs", strings.NewReader(`{"sow_identifier":"SOW-9"}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))

	resp := httptest.NewRecorder()
	CreatePig(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if !called {
		t.Fatal("expected service called")
	}
	var envelope struct {
		Data pigs.PigDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.ID != 42 {
		t.Fatalf("expected pig 42 got %d", envelope.Data.ID)
	}
}

func TestCreatePigMissingUserContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pigs", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	CreatePig(&testPigsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestGetPigRejectsBadID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pigs/abc", nil)
	req = addRouteParam(req, "pigID", "abc")
	resp := httptest.NewRecorder()
	GetPig(&testPigsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListPigsParsesFilters(t *testing.T) {
	svc := &testPigsService{
		listFn: func(ctx context.Context, filter pigs.ListFilter) ([]pigs.PigDTO, error) {
			if filter.LitterID == nil || *filter.LitterID != 4 {
				t.Fatalf("unexpected litter filter %v", filter.LitterID)
			}
			if filter.Status == nil || *filter.Status != "sold" {
				t.Fatalf("unexpected status filter %v", filter.Status)
			}
			if filter.Pagination.Skip != 5 || filter.Pagination.Limit != 20 {
				t.Fatalf("unexpected pagination %+v", filter.Pagination)
			}
			return []pigs.PigDTO{{ID: 1}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pigs?litter_id=4&status=sold&skip=5&limit=20", nil)
	resp := httptest.NewRecorder()
	ListPigs(svc, testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestDeletePigReturnsDetail(t *testing.T) {
	svc := &testPigsService{
		deleteFn: func(ctx context.Context, actorID, id int64) error {
			if actorID != 7 || id != 12 {
				t.Fatalf("unexpected args %d %d", actorID, id)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/pigs/12", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	req = addRouteParam(req, "pigID", "12")
	resp := httptest.NewRecorder()
	DeletePig(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["detail"] != "Pig deleted" {
		t.Fatalf("unexpected detail %q", envelope.Data["detail"])
	}
}
