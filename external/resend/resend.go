package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/MelaShop/Mela-Shop-bd/internal/telemetry"
)

const DefaultBaseURL = "https://api.resend.com"

type ResendMailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewResendMailer(apiKey, from string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errors.New("RESEND_API_KEY not set")
	}

	return &ResendMailer{
		apiKey:  apiKey,
		from:    from,
		client:  telemetry.Client(5 * time.Second),
		baseURL: DefaultBaseURL,
	}, nil
}

// WithBaseURL points the mailer at another API host.
func (m *ResendMailer) WithBaseURL(u string) *ResendMailer {
	m.baseURL = strings.TrimRight(u, "/")
	return m
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

// SendOrderEmail mails an order summary. The plain text is sent as is and
// also wrapped in <pre> for HTML clients.
func (m *ResendMailer) SendOrderEmail(
	ctx context.Context,
	toEmail string,
	subject string,
	text string,
) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: subject,
		HTML:    "<pre>" + html.EscapeString(text) + "</pre>",
		Text:    text,
	}

	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New(
			"failed to send order email: " + buf.String(),
		)
	}

	return nil
}
