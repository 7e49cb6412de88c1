package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/freitasmatheusrn/liquid-catalog/internal/email"
	"github.com/freitasmatheusrn/liquid-catalog/internal/ingestion"
	"github.com/freitasmatheusrn/liquid-catalog/pkg/notification"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Minute

// Ingester runs one catalog ingestion.
type Ingester interface {
	Run(ctx context.Context, trigger string) (*ingestion.RunStatus, error)
}

type Config struct {
	Timeout         time.Duration
	AlertRecipients []string
	AlertPhones     []string
}

type Scheduler struct {
	cron            *cron.Cron
	ingester        Ingester
	logger          *zap.Logger
	email           email.Email
	sms             notification.Notification
	alertRecipients []string
	alertPhones     []string
	timeout         time.Duration
}

// NewScheduler wires the ingestion job. e and sms may be nil when no alert
// channel is configured.
func NewScheduler(ingester Ingester, logger *zap.Logger, e email.Email, sms notification.Notification, cfg Config) *Scheduler {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Scheduler{
		cron:            cron.New(cron.WithSeconds()),
		ingester:        ingester,
		logger:          logger,
		email:           e,
		sms:             sms,
		alertRecipients: cfg.AlertRecipients,
		alertPhones:     cfg.AlertPhones,
		timeout:         cfg.Timeout,
	}
}

// Start initializes the scheduler with the ingestion job
// cronExpr uses 6 fields: seconds, minutes, hours, day of month, month, day of week
// Example: "0 0,30 * * * *" runs every half hour
func (s *Scheduler) Start(cronExpr string) error {
	_, err := s.cron.AddFunc(cronExpr, s.runIngestionJob)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("cron_expression", cronExpr))

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("stopping scheduler")
	return s.cron.Stop()
}

func (s *Scheduler) runIngestionJob() {
	s.RunNow(context.Background(), ingestion.TriggerScheduled)
}

// RunNow executes an ingestion immediately and waits for it. The run is
// detached from ctx cancellation but bounded by the configured timeout.
// ErrRunInProgress is returned untouched and never alerts.
func (s *Scheduler) RunNow(ctx context.Context, trigger string) (*ingestion.RunStatus, error) {
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	status, err := s.ingester.Run(runCtx, trigger)
	if errors.Is(err, ingestion.ErrRunInProgress) {
		s.logger.Info("ingestion skipped, another run is active", zap.String("trigger", trigger))
		return nil, err
	}
	if err != nil {
		s.notifyError(status, err)
		return status, err
	}

	if needsReview(status) {
		s.sendRunReportEmail(status)
	}
	return status, nil
}

func needsReview(status *ingestion.RunStatus) bool {
	r := status.Report
	return r.SkippedRows > 0 || r.Anomalies > 0 || r.Unresolved > 0 || status.Sanitized > 0
}

// sendRunReportEmail tells operators that a successful run left rows behind.
func (s *Scheduler) sendRunReportEmail(status *ingestion.RunStatus) {
	if s.email == nil || len(s.alertRecipients) == 0 {
		return
	}

	subject := "Catalogo atualizado com pendencias"
	r := status.Report
	rows := [][2]string{
		{"Run", status.RunID},
		{"Geracao", status.GenerationID},
		{"Linhas lidas", fmt.Sprint(r.Rows)},
		{"Produtos", fmt.Sprint(r.Products)},
		{"Linhas ignoradas", fmt.Sprint(r.SkippedRows)},
		{"Duplicados", fmt.Sprint(r.Duplicates)},
		{"Anomalias de agrupamento", fmt.Sprint(r.Anomalies)},
		{"Marcas nao resolvidas", fmt.Sprint(r.Unresolved)},
		{"Registros descartados", fmt.Sprint(status.Sanitized)},
	}

	var text strings.Builder
	text.WriteString("A ultima atualizacao do catalogo terminou, mas algumas linhas foram ignoradas:\n\n")
	for _, row := range rows {
		text.WriteString(row[0] + ": " + row[1] + "\n")
	}

	var body strings.Builder
	body.WriteString(`<!DOCTYPE html>
<html>
<head>
	<style>
		body { font-family: Arial, sans-serif; }
		table { border-collapse: collapse; width: 100%; margin-top: 20px; }
		th, td { border: 1px solid #ddd; padding: 12px; text-align: left; }
		th { background-color: #4CAF50; color: white; }
		tr:nth-child(even) { background-color: #f2f2f2; }
		h2 { color: #333; }
	</style>
</head>
<body>
	<h2>Catalogo atualizado com pendencias</h2>
	<p>A ultima atualizacao terminou, mas algumas linhas da planilha foram ignoradas. Verifique os logs da execucao.</p>
	<table>
		<tr><th>Item</th><th>Valor</th></tr>`)
	for _, row := range rows {
		body.WriteString("<tr><td>" + row[0] + "</td><td>" + html.EscapeString(row[1]) + "</td></tr>")
	}
	body.WriteString(`
	</table>
</body>
</html>`)

	if err := s.email.Send(subject, text.String(), body.String(), s.alertRecipients); err != nil {
		s.logger.Error("failed to send run report email",
			zap.Error(err),
			zap.String("run_id", status.RunID),
		)
		return
	}

	s.logger.Info("run report email sent",
		zap.String("run_id", status.RunID),
		zap.Int("recipients_count", len(s.alertRecipients)),
	)
}

// notifyError logs the error and alerts recipients by email and SMS
func (s *Scheduler) notifyError(status *ingestion.RunStatus, err error) {
	runID := ""
	if status != nil {
		runID = status.RunID
	}
	context := "falha na atualizacao do catalogo"
	var rf *ingestion.ReplaceFailure
	if errors.As(err, &rf) {
		context = "falha ao publicar o catalogo, versao anterior mantida"
	}

	s.logger.Error(context, zap.String("run_id", runID), zap.Error(err))

	if s.email != nil && len(s.alertRecipients) > 0 {
		subject := "⚠️ Erro no Scheduler - " + context
		timestamp := time.Now().Format("2006-01-02 15:04:05")

		textBody := fmt.Sprintf("Contexto: %s\nRun: %s\nErro: %v\nHorário: %s", context, runID, err, timestamp)

		htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<style>
		body { font-family: Arial, sans-serif; }
		.error-box { background-color: #ffebee; border-left: 4px solid #f44336; padding: 16px; margin: 20px 0; }
		.label { font-weight: bold; color: #333; }
		.value { color: #666; }
	</style>
</head>
<body>
	<h2 style="color: #f44336;">⚠️ Erro no Scheduler</h2>
	<div class="error-box">
		<p><span class="label">Contexto:</span> <span class="value">%s</span></p>
		<p><span class="label">Run:</span> <span class="value">%s</span></p>
		<p><span class="label">Erro:</span> <span class="value">%s</span></p>
		<p><span class="label">Horário:</span> <span class="value">%s</span></p>
	</div>
</body>
</html>`, context, runID, html.EscapeString(err.Error()), timestamp)

		if sendErr := s.email.Send(subject, textBody, htmlBody, s.alertRecipients); sendErr != nil {
			s.logger.Error("failed to send error notification email",
				zap.Error(sendErr),
				zap.String("original_error_context", context),
			)
		}
	}

	if s.sms == nil {
		return
	}
	msg := notification.RunFailureMessage(runID, err)
	for _, phone := range s.alertPhones {
		if sendErr := s.sms.Send(phone, msg); sendErr != nil {
			s.logger.Error("failed to send error notification sms",
				zap.Error(sendErr),
				zap.String("phone", phone),
			)
		}
	}
}
