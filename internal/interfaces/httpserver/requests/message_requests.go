package requests

import "time"

// SendSMSRequest represents an outbound SMS or MMS send.
type SendSMSRequest struct {
	From        string    `json:"from" binding:"required"`
	To          string    `json:"to" binding:"required"`
	Type        string    `json:"type" binding:"required,oneof=sms mms"`
	Body        string    `json:"body" binding:"required"`
	Attachments []string  `json:"attachments"`
	Timestamp   time.Time `json:"timestamp" binding:"required"`
}

// SendEmailRequest represents an outbound email send.
type SendEmailRequest struct {
	From        string    `json:"from" binding:"required"`
	To          string    `json:"to" binding:"required"`
	Body        string    `json:"body" binding:"required"`
	Attachments []string  `json:"attachments"`
	Timestamp   time.Time `json:"timestamp" binding:"required"`
}

// SMSWebhookRequest represents an inbound SMS/MMS delivery from the
// messaging vendor. MessagingProviderID is the vendor's identifier for the
// message and drives replay detection.
type SMSWebhookRequest struct {
	From                string    `json:"from" binding:"required"`
	To                  string    `json:"to" binding:"required"`
	Type                string    `json:"type" binding:"required,oneof=sms mms"`
	MessagingProviderID string    `json:"messaging_provider_id" binding:"required"`
	Body                string    `json:"body" binding:"required"`
	Attachments         []string  `json:"attachments"`
	Timestamp           time.Time `json:"timestamp" binding:"required"`
}

// EmailWebhookRequest represents an inbound email delivery from the email
// vendor. XillioID is the vendor's identifier for the message.
type EmailWebhookRequest struct {
	From        string    `json:"from" binding:"required"`
	To          string    `json:"to" binding:"required"`
	XillioID    string    `json:"xillio_id" binding:"required"`
	Body        string    `json:"body" binding:"required"`
	Attachments []string  `json:"attachments"`
	Timestamp   time.Time `json:"timestamp" binding:"required"`
}
