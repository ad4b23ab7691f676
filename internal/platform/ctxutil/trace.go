package ctxutil

import "context"

type requestMetaKey struct{}

// RequestMeta identifies one inbound request across the access log, trace
// exports and the echo headers on the response.
type RequestMeta struct {
	TraceID   string
	RequestID string
}

// LogFields flattens the meta into key/value pairs for the structured logger.
func (m *RequestMeta) LogFields() []interface{} {
	if m == nil {
		return nil
	}
	fields := make([]interface{}, 0, 4)
	if m.TraceID != "" {
		fields = append(fields, "trace_id", m.TraceID)
	}
	if m.RequestID != "" {
		fields = append(fields, "request_id", m.RequestID)
	}
	return fields
}

func WithRequestMeta(ctx context.Context, m *RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, m)
}

func RequestMetaFrom(ctx context.Context) *RequestMeta {
	m, _ := ctx.Value(requestMetaKey{}).(*RequestMeta)
	return m
}
