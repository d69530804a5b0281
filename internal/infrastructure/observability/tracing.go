package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "messaging-service"
)

// GetTracer returns the tracer for the messaging service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// MessageAttributes returns common attributes for message spans.
func MessageAttributes(direction, channel, messageType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("message.direction", direction),
		attribute.String("message.channel", channel),
		attribute.String("message.type", messageType),
	}
}

// ConversationAttributes returns common attributes for conversation spans.
func ConversationAttributes(conversationID string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("conversation.id", conversationID),
	}
}

// StartIngestSpan starts a new span for message ingestion.
func StartIngestSpan(ctx context.Context, direction, channel, messageType string) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "message.ingest."+direction,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(MessageAttributes(direction, channel, messageType)...),
	)
	return ctx, span
}

// StartProviderSendSpan starts a new span for a provider send attempt.
func StartProviderSendSpan(ctx context.Context, channel string) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "provider.send."+channel,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("provider.channel", channel)),
	)
	return ctx, span
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// AddDuplicateEvent marks a span as a replayed webhook delivery.
func AddDuplicateEvent(span trace.Span, providerType, providerMessageID string) {
	span.AddEvent("webhook.duplicate",
		trace.WithAttributes(
			attribute.String("provider.type", providerType),
			attribute.String("provider.message_id", providerMessageID),
		),
	)
}
