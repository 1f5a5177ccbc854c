package talkpage

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope spans are recorded under.
const tracerName = "impractical.co/talkpage"

const (
	spanRender          = "talkpage.Render"
	eventThemeFallback  = "talkpage.theme_fallback"
	attrVariant         = attribute.Key("talkpage.variant")
	attrRedisplay       = attribute.Key("talkpage.redisplay")
	attrCommentsBytes   = attribute.Key("talkpage.comments.bytes")
	attrThemed          = attribute.Key("talkpage.themed")
	attrFallbackFailure = attribute.Key("talkpage.fallback.error")
)

func newTracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(tracerName)
}

func startRenderSpan(ctx context.Context, tracer trace.Tracer, variant Variant, rc RenderContext, themed bool) (context.Context, trace.Span) {
	return tracer.Start(ctx, spanRender, trace.WithAttributes(
		attrVariant.String(variant.String()),
		attrRedisplay.Bool(rc.Redisplay),
		attrCommentsBytes.Int(len(rc.Comments)),
		attrThemed.Bool(themed),
	))
}

func recordFallback(span trace.Span, err error) {
	span.AddEvent(eventThemeFallback, trace.WithAttributes(
		attrFallbackFailure.String(err.Error()),
	))
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
