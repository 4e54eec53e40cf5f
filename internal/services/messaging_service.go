package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const maxMessageLength = 1600

// phoneRegex accepts E.164-style numbers: country code plus subscriber
// number. North American (+1) numbers additionally require a full ten
// subscriber digits.
var phoneRegex = regexp.MustCompile(`^\+[0-9]{10,15}$`)

// SendMessageInput is the request for a single outbound message.
type SendMessageInput struct {
	To      string `json:"to"`
	Message string `json:"message"`
	// TenantName, when set, wraps the message in a localized greeting
	// and closing signature.
	TenantName string `json:"tenant_name,omitempty"`
	Locale     string `json:"locale,omitempty"` // defaults to "en"
}

// SendResult carries success or failure as data; the messaging path
// never surfaces an error through a Go error return.
type SendResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	MessageSID string `json:"message_sid,omitempty"`
}

// MessageGateway is the external SMS provider boundary.
type MessageGateway interface {
	Send(ctx context.Context, to, body string) (sid string, err error)
}

type MessagingService interface {
	Dispatch(ctx context.Context, input *SendMessageInput) *SendResult
	SendPaymentReminder(ctx context.Context, to, tenantName string, amount float64, dueDate time.Time, locale string) *SendResult
	SendLeaseRenewalReminder(ctx context.Context, to, tenantName string, endDate time.Time, locale string) *SendResult
}

type messagingService struct {
	gateway MessageGateway
}

func NewMessagingService(gateway MessageGateway) MessagingService {
	return &messagingService{gateway: gateway}
}

type localeStrings struct {
	greeting        string
	closing         string
	paymentReminder string // fmt: amount, due date
	renewalReminder string // fmt: end date
}

var locales = map[string]localeStrings{
	"en": {
		greeting:        "Hello",
		closing:         "Thank you,\nYour Property Manager",
		paymentReminder: "This is a friendly reminder that your rent payment of $%.2f is due on %s.",
		renewalReminder: "Your lease ends on %s. Please contact us to discuss renewal options.",
	},
	"es": {
		greeting:        "Hola",
		closing:         "Gracias,\nSu Administrador de Propiedades",
		paymentReminder: "Este es un recordatorio de que su pago de renta de $%.2f vence el %s.",
		renewalReminder: "Su contrato de arrendamiento termina el %s. Contáctenos para hablar sobre la renovación.",
	},
	"fr": {
		greeting:        "Bonjour",
		closing:         "Merci,\nVotre Gestionnaire Immobilier",
		paymentReminder: "Ceci est un rappel que votre loyer de %.2f $ est dû le %s.",
		renewalReminder: "Votre bail se termine le %s. Veuillez nous contacter pour discuter du renouvellement.",
	},
}

func localeFor(code string) localeStrings {
	if ls, ok := locales[code]; ok {
		return ls
	}
	return locales["en"]
}

// Dispatch validates, normalizes and sends. Validation runs before any
// phone formatting, and no network call happens for invalid input.
func (s *messagingService) Dispatch(ctx context.Context, input *SendMessageInput) *SendResult {
	if strings.TrimSpace(input.To) == "" {
		return &SendResult{Error: "recipient phone number is required"}
	}
	if strings.TrimSpace(input.Message) == "" {
		return &SendResult{Error: "message body is required"}
	}
	if utf8.RuneCountInString(input.Message) > maxMessageLength {
		return &SendResult{Error: fmt.Sprintf("message exceeds %d characters", maxMessageLength)}
	}

	to, err := NormalizePhone(input.To)
	if err != nil {
		return &SendResult{Error: err.Error()}
	}

	body := input.Message
	if input.TenantName != "" {
		ls := localeFor(input.Locale)
		body = fmt.Sprintf("%s %s,\n\n%s\n\n%s", ls.greeting, input.TenantName, input.Message, ls.closing)
	}

	sid, err := s.gateway.Send(ctx, to, body)
	if err != nil {
		log.Printf("message dispatch to %s failed: %v", to, err)
		return &SendResult{Error: fmt.Sprintf("failed to send message: %v", err)}
	}
	return &SendResult{Success: true, Message: "message sent", MessageSID: sid}
}

func (s *messagingService) SendPaymentReminder(ctx context.Context, to, tenantName string, amount float64, dueDate time.Time, locale string) *SendResult {
	ls := localeFor(locale)
	return s.Dispatch(ctx, &SendMessageInput{
		To:         to,
		Message:    fmt.Sprintf(ls.paymentReminder, amount, dueDate.Format("January 2, 2006")),
		TenantName: tenantName,
		Locale:     locale,
	})
}

func (s *messagingService) SendLeaseRenewalReminder(ctx context.Context, to, tenantName string, endDate time.Time, locale string) *SendResult {
	ls := localeFor(locale)
	return s.Dispatch(ctx, &SendMessageInput{
		To:         to,
		Message:    fmt.Sprintf(ls.renewalReminder, endDate.Format("January 2, 2006")),
		TenantName: tenantName,
		Locale:     locale,
	})
}

// NormalizePhone strips formatting, assumes +1 when no country code is
// present, and validates the result.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	hasPlus := strings.HasPrefix(raw, "+")

	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	var normalized string
	if hasPlus {
		normalized = "+" + digits.String()
	} else {
		normalized = "+1" + digits.String()
	}

	if !phoneRegex.MatchString(normalized) {
		return "", fmt.Errorf("invalid phone number: %s", raw)
	}
	// NANP numbers are country code 1 plus exactly ten digits.
	if strings.HasPrefix(normalized, "+1") && len(normalized) != 12 {
		return "", fmt.Errorf("invalid phone number: %s", raw)
	}
	return normalized, nil
}

// twilioGateway sends SMS through a Twilio-compatible REST endpoint.
type twilioGateway struct {
	accountSID string
	authToken  string
	fromNumber string
	baseURL    string
	http       *http.Client
}

func NewTwilioGateway(accountSID, authToken, fromNumber, baseURL string) MessageGateway {
	if baseURL == "" {
		baseURL = "https://api.twilio.com/2010-04-01"
	}
	return &twilioGateway{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		baseURL:    baseURL,
		http:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *twilioGateway) Send(ctx context.Context, to, body string) (string, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", g.fromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", g.baseURL, g.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create gateway request: %v", err)
	}
	req.SetBasicAuth(g.accountSID, g.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gateway response: %v", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return "", fmt.Errorf("gateway returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var payload struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return "", fmt.Errorf("failed to parse gateway response: %v", err)
	}
	return payload.SID, nil
}
