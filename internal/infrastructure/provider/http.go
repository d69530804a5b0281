package provider

import (
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	domain "github.com/yama-bushi/messaging-service/internal/domain/provider"
)

// sendPayload is the wire shape POSTed to vendor endpoints.
type sendPayload struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	Type        string   `json:"type"`
	Body        string   `json:"body"`
	Attachments []string `json:"attachments,omitempty"`
}

// sendResponse is the accepted-send shape vendors reply with.
type sendResponse struct {
	MessageID string `json:"message_id"`
}

func newClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
}

// classify maps a vendor HTTP exchange onto the outcome taxonomy. Transport
// errors are transient by definition; 429 carries a Retry-After hint; 5xx
// is transient; any other non-2xx is permanent. Outcomes are data for the
// ingester to record, never raised as errors.
func classify(resp *resty.Response, result *sendResponse, err error) domain.Outcome {
	if err != nil {
		return domain.Outcome{
			Status: domain.StatusTemporaryFailure,
			Reason: err.Error(),
		}
	}

	code := resp.StatusCode()
	switch {
	case code >= 200 && code < 300:
		return domain.Outcome{
			Status:            domain.StatusSuccess,
			ProviderMessageID: result.MessageID,
		}
	case code == 429:
		return domain.Outcome{
			Status:     domain.StatusRateLimited,
			RetryAfter: parseRetryAfter(resp.Header().Get("Retry-After")),
		}
	case code >= 500:
		return domain.Outcome{
			Status: domain.StatusTemporaryFailure,
			Reason: resp.Status(),
		}
	default:
		return domain.Outcome{
			Status: domain.StatusPermanentFailure,
			Reason: resp.String(),
		}
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
