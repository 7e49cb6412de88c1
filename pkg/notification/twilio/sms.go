package twilio

import (
	"regexp"
	"strings"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

const defaultCountryCode = "55"

var nonDigits = regexp.MustCompile(`\D`)

type Sms struct {
	kind   string
	from   string
	client *twilio.RestClient
}

func InitClient(accountSid, authToken string) *twilio.RestClient {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	return client
}

func NewSMS(from string, client *twilio.RestClient) *Sms {
	return &Sms{
		kind:   "sms",
		from:   from,
		client: client,
	}
}

func (s *Sms) Send(to, msg string) error {
	params := &api.CreateMessageParams{}
	params.SetBody(msg)
	params.SetFrom(s.from)
	params.SetTo(formatNumber(to))

	_, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	return nil
}

// formatNumber normalizes to E.164. Numbers without an explicit "+" get the
// default country code.
func formatNumber(phone string) string {
	phone = strings.TrimSpace(phone)
	digits := nonDigits.ReplaceAllString(phone, "")
	if strings.HasPrefix(phone, "+") {
		return "+" + digits
	}
	return "+" + defaultCountryCode + digits
}
