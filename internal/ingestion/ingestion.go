package ingestion

import (
	"context"
	"errors"
	"time"

	"github.com/freitasmatheusrn/liquid-catalog/internal/catalog"
)

// Trigger labels recorded on every run.
const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
	TriggerStartup   = "startup"
)

// ErrRunInProgress is returned when a trigger arrives while another run holds
// the ingestion lock.
var ErrRunInProgress = errors.New("ingestion run already in progress")

// SheetSource reads one worksheet range as rows of cell text.
type SheetSource interface {
	FetchSheet(ctx context.Context, name, cellRange string) ([][]string, error)
}

// CatalogSink persists a whole generation atomically.
type CatalogSink interface {
	ReplaceCatalog(ctx context.Context, gen *catalog.Generation) error
}

type RunStatusStore interface {
	SaveRun(ctx context.Context, status RunStatus) error
	LastRun(ctx context.Context) (*RunStatus, error)
}

// Locker is a lock shared by every process that can run an ingestion.
type Locker interface {
	Acquire(ctx context.Context, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, token string) error
}

type SheetSpec struct {
	Name    string
	Range   string
	Channel catalog.Channel
}

type Config struct {
	Sheets     []SheetSpec
	CoilsSheet string
	CoilsRange string
	LockTTL    time.Duration
}

type RunStatus struct {
	RunID        string         `json:"run_id"`
	Trigger      string         `json:"trigger"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
	Succeeded    bool           `json:"succeeded"`
	GenerationID string         `json:"generation_id,omitempty"`
	Report       catalog.Report `json:"report"`
	Sanitized    int            `json:"sanitized"`
	Error        string         `json:"error,omitempty"`
}

func (s RunStatus) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
