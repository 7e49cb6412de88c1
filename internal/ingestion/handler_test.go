package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/freitasmatheusrn/liquid-catalog/pkg/rest"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

type MockTrigger struct {
	status  *RunStatus
	err     error
	trigger string
}

func (m *MockTrigger) RunNow(ctx context.Context, trigger string) (*RunStatus, error) {
	m.trigger = trigger
	return m.status, m.err
}

type MockStatusReader struct {
	status *RunStatus
	err    error
}

func (m *MockStatusReader) LastRun(ctx context.Context) (*RunStatus, error) {
	return m.status, m.err
}

func serve(h echo.HandlerFunc, method string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(method, "/admin/ingestions", nil), rec)
	return rec, h(c)
}

func apiCode(t *testing.T, err error) int {
	t.Helper()
	var apiErr *rest.ApiErr
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *rest.ApiErr, got %v", err)
	}
	return apiErr.Code
}

func TestHandler_TriggerRun(t *testing.T) {
	trigger := &MockTrigger{status: &RunStatus{RunID: "run-1", Succeeded: true}}
	h := NewHandler(trigger, &MockStatusReader{})

	rec, err := serve(h.TriggerRun, http.MethodPost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got RunStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.RunID != "run-1" || !got.Succeeded {
		t.Errorf("body = %+v", got)
	}
	if trigger.trigger != TriggerManual {
		t.Errorf("trigger = %q", trigger.trigger)
	}
}

func TestHandler_TriggerRun_Conflict(t *testing.T) {
	h := NewHandler(&MockTrigger{err: ErrRunInProgress}, &MockStatusReader{})
	_, err := serve(h.TriggerRun, http.MethodPost)
	if code := apiCode(t, err); code != http.StatusConflict {
		t.Errorf("code = %d, want 409", code)
	}
}

func TestHandler_TriggerRun_Failure(t *testing.T) {
	h := NewHandler(&MockTrigger{status: &RunStatus{RunID: "run-2"}, err: errors.New("boom")}, &MockStatusReader{})
	_, err := serve(h.TriggerRun, http.MethodPost)
	if code := apiCode(t, err); code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", code)
	}
	apiErr := err.(*rest.ApiErr)
	if len(apiErr.Causes) != 2 || apiErr.Causes[1].Message != "run-2" {
		t.Errorf("causes = %+v", apiErr.Causes)
	}
}

func TestHandler_LastRun(t *testing.T) {
	h := NewHandler(&MockTrigger{}, &MockStatusReader{status: &RunStatus{RunID: "run-3"}})
	rec, err := serve(h.LastRun, http.MethodGet)
	if err != nil || rec.Code != http.StatusOK {
		t.Fatalf("got %v, status %d", err, rec.Code)
	}

	h = NewHandler(&MockTrigger{}, &MockStatusReader{})
	_, err = serve(h.LastRun, http.MethodGet)
	if code := apiCode(t, err); code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", code)
	}

	h = NewHandler(&MockTrigger{}, &MockStatusReader{err: errors.New("redis down")})
	_, err = serve(h.LastRun, http.MethodGet)
	if code := apiCode(t, err); code != http.StatusServiceUnavailable {
		t.Errorf("code = %d, want 503", code)
	}
}

func TestHandler_TriggerRun_ReplaceFailure(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", TableName: "product_tags", ConstraintName: "product_tags_product_fk"}
	h := NewHandler(&MockTrigger{
		status: &RunStatus{RunID: "run-4"},
		err:    &ReplaceFailure{Err: fmt.Errorf("copy product_tags: %w", pgErr)},
	}, &MockStatusReader{})

	_, err := serve(h.TriggerRun, http.MethodPost)
	if code := apiCode(t, err); code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", code)
	}
	apiErr := err.(*rest.ApiErr)
	if len(apiErr.Causes) != 2 || apiErr.Causes[0].Field != "product_tags" {
		t.Errorf("causes = %+v", apiErr.Causes)
	}
}
