package notification

import "fmt"

const smsLimit = 160

type Notification interface {
	Send(to, msg string) error
}

// RunFailureMessage is the short text sent by SMS when an ingestion run fails.
func RunFailureMessage(runID string, err error) string {
	msg := fmt.Sprintf("liquid-catalog: falha na atualizacao do catalogo (run %s): %v", runID, err)
	if r := []rune(msg); len(r) > smsLimit {
		msg = string(r[:smsLimit-3]) + "..."
	}
	return msg
}
