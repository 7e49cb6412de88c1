//go:build integration

package scheduler

import (
	"errors"
	"os"
	"strconv"
	"testing"

	"github.com/freitasmatheusrn/liquid-catalog/internal/catalog"
	"github.com/freitasmatheusrn/liquid-catalog/internal/email/smtp"
	"github.com/freitasmatheusrn/liquid-catalog/internal/ingestion"
	"go.uber.org/zap"
)

// TestSendRealEmail_Integration sends real alert emails to verify formatting
// Run with: go test -v -tags=integration ./internal/scheduler/... -run TestSendRealEmail_Integration
//
// Required environment variables:
//   - SMTP_HOST
//   - SMTP_PORT
//   - SMTP_USER
//   - SMTP_PASS
//   - TEST_EMAIL_RECIPIENT (your email to receive the test)
func TestSendRealEmail_Integration(t *testing.T) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	recipient := os.Getenv("TEST_EMAIL_RECIPIENT")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" || recipient == "" {
		t.Skip("Skipping integration test: SMTP_HOST, SMTP_USER, SMTP_PASS and TEST_EMAIL_RECIPIENT not set")
	}

	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		smtpPort = 587
	}

	emailClient := smtp.New(smtpHost, smtpUser, smtpPass, os.Getenv("SMTP_FROM"), smtpPort)
	logger, _ := zap.NewDevelopment()

	scheduler := NewScheduler(nil, logger, emailClient, nil, Config{
		AlertRecipients: []string{recipient},
	})

	scheduler.sendRunReportEmail(&ingestion.RunStatus{
		RunID:        "integration-run",
		GenerationID: "integration-generation",
		Report:       catalog.Report{Rows: 120, Products: 80, SkippedRows: 2, Anomalies: 1},
	})
	scheduler.notifyError(&ingestion.RunStatus{RunID: "integration-run"},
		&ingestion.ReplaceFailure{Err: errors.New("connection refused")})

	t.Log("Emails sent - check inbox at:", recipient)
}
