package email

// Email delivers one message to a list of recipients. text is the plain
// alternative of html.
type Email interface {
	Send(subject, text, html string, recipients []string) error
}
