package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
	"github.com/agrovia/farm-system/internal/core/service"
)

type stubFieldRepo struct {
	fields    map[int64]*domain.Field
	lastPatch ports.FieldPatch
}

func (r *stubFieldRepo) Create(_ context.Context, f *domain.Field) (*domain.Field, error) {
	return f, nil
}

func (r *stubFieldRepo) FindByID(_ context.Context, id int64) (*domain.Field, error) {
	f, ok := r.fields[id]
	if !ok {
		return nil, domain.ErrFieldNotFound
	}
	return f, nil
}

func (r *stubFieldRepo) List(context.Context) ([]*domain.Field, error) {
	return nil, nil
}

func (r *stubFieldRepo) Update(_ context.Context, id int64, patch ports.FieldPatch) (*domain.Field, error) {
	f, ok := r.fields[id]
	if !ok {
		return nil, domain.ErrFieldNotFound
	}
	r.lastPatch = patch
	if patch.Name != nil {
		f.Name = *patch.Name
	}
	if patch.Location != nil {
		f.Location = *patch.Location
	}
	if patch.SizeHectares != nil {
		f.SizeHectares = *patch.SizeHectares
	}
	return f, nil
}

func (r *stubFieldRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.fields[id]; !ok {
		return domain.ErrFieldNotFound
	}
	delete(r.fields, id)
	return nil
}

func TestFieldHandler_Update_PartialPatch(t *testing.T) {
	e := newTestEcho()
	repo := &stubFieldRepo{fields: map[int64]*domain.Field{
		7: {ID: 7, Name: "North Plot", Location: "sector 2", SizeHectares: 4.5},
	}}
	handler := NewFieldHandler(service.NewFieldService(repo, zerolog.Nop()))

	body := strings.NewReader(`{"location":"sector 3"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/fields/7", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if repo.lastPatch.Name != nil || repo.lastPatch.SizeHectares != nil {
		t.Fatalf("untouched fields leaked into patch: %+v", repo.lastPatch)
	}
	if repo.lastPatch.Location == nil || *repo.lastPatch.Location != "sector 3" {
		t.Fatalf("location not patched: %+v", repo.lastPatch)
	}

	var resp domain.Field
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Name != "North Plot" || resp.Location != "sector 3" || resp.SizeHectares != 4.5 {
		t.Fatalf("unexpected field payload: %+v", resp)
	}
}

func TestFieldHandler_Update_NotFound(t *testing.T) {
	e := newTestEcho()
	handler := NewFieldHandler(service.NewFieldService(&stubFieldRepo{fields: map[int64]*domain.Field{}}, zerolog.Nop()))

	req := httptest.NewRequest(http.MethodPut, "/v1/fields/99", strings.NewReader(`{"f_name":"West Plot"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := handler.Update(c)
	if !errors.Is(err, domain.ErrFieldNotFound) {
		t.Fatalf("err = %v, want ErrFieldNotFound", err)
	}
}
