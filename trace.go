package vaultclient

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/peakview/go-vaultclient"

const (
	pathKey   = attribute.Key("vault.path")
	policyKey = attribute.Key("vault.policy")
	keysKey   = attribute.Key("vault.keys")
)

func pathAttr(name string) attribute.KeyValue {
	return pathKey.String(name)
}

func policyAttr(name string) attribute.KeyValue {
	return policyKey.String(name)
}

func keysAttr(n int) attribute.KeyValue {
	return keysKey.Int(n)
}

func (c *Client) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, op, trace.WithAttributes(attrs...))
}

func recordError(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
	}

	return err
}
