package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/corpoativo/gymapi/internal/domain/plan"
	"github.com/corpoativo/gymapi/internal/http/handlers"
)

type fakePlansRepo struct {
	listFn   func(ctx context.Context) ([]plan.Plan, error)
	createFn func(ctx context.Context, p plan.Plan) (plan.Plan, error)
	updateFn func(ctx context.Context, id string, req plan.UpdatePlanRequest) (plan.Plan, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakePlansRepo) List(ctx context.Context) ([]plan.Plan, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}

	return []plan.Plan{}, nil
}

func (f *fakePlansRepo) Create(ctx context.Context, p plan.Plan) (plan.Plan, error) {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}

	return p, nil
}

func (f *fakePlansRepo) Update(ctx context.Context, id string, req plan.UpdatePlanRequest) (plan.Plan, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}

	return plan.Plan{ID: id}, nil
}

func (f *fakePlansRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}

	return nil
}

func TestCreatePlanReturnsRefreshedCollection(t *testing.T) {
	repo := &fakePlansRepo{
		listFn: func(ctx context.Context) ([]plan.Plan, error) {
			return []plan.Plan{
				{ID: "p1", Name: "Black", Featured: true},
				{ID: "p2", Name: "Start"},
			}, nil
		},
	}

	h := handlers.NewPlansHandler(repo)
	r := setupRouter(http.MethodPost, "/api/admin/plans", h.Create)

	w := doJSON(r, http.MethodPost, "/api/admin/plans", `{"name":"Black","price":"R$ 159/mês","description":"Tudo liberado","featured":true}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}

	var body struct {
		Plans []plan.Plan `json:"plans"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}

	if len(body.Plans) != 2 {
		t.Fatalf("expected the refreshed list, got %d plans", len(body.Plans))
	}

	if !body.Plans[0].Featured {
		t.Error("featured plan should lead the list")
	}
}

func TestCreatePlanValidation(t *testing.T) {
	h := handlers.NewPlansHandler(&fakePlansRepo{})
	r := setupRouter(http.MethodPost, "/api/admin/plans", h.Create)

	w := doJSON(r, http.MethodPost, "/api/admin/plans", `{"price":"R$ 99"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUpdatePlanNotFound(t *testing.T) {
	repo := &fakePlansRepo{
		updateFn: func(ctx context.Context, id string, req plan.UpdatePlanRequest) (plan.Plan, error) {
			return plan.Plan{}, plan.ErrNotFound
		},
	}

	h := handlers.NewPlansHandler(repo)
	r := setupRouter(http.MethodPut, "/api/admin/plans/:id", h.Update)

	w := doJSON(r, http.MethodPut, "/api/admin/plans/missing", `{"name":"X","price":"R$ 1","description":"d"}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %s)", w.Code, w.Body.String())
	}
}

func TestDeletePlanIsIdempotent(t *testing.T) {
	deletedID := ""

	repo := &fakePlansRepo{
		deleteFn: func(ctx context.Context, id string) error {
			deletedID = id

			// absent rows are not an error
			return nil
		},
	}

	h := handlers.NewPlansHandler(repo)
	r := setupRouter(http.MethodDelete, "/api/admin/plans/:id", h.Delete)

	w := doJSON(r, http.MethodDelete, "/api/admin/plans/ghost", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if deletedID != "ghost" {
		t.Errorf("deleted id = %q, want ghost", deletedID)
	}
}
