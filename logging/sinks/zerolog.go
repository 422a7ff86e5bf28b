package sinks

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/unmarco/tickengine/logging"
)

// ZerologConfig configures the structured zerolog sink.
type ZerologConfig struct {
	Component string
}

// ZerologSink writes events as structured zerolog records.
type ZerologSink struct {
	log zerolog.Logger
}

// NewZerolog constructs a sink writing newline-delimited structured
// records to w, tagged with cfg.Component.
func NewZerolog(w io.Writer, cfg ZerologConfig) *ZerologSink {
	log := zerolog.New(w).With().Timestamp().Logger()
	if cfg.Component != "" {
		log = log.With().Str("component", cfg.Component).Logger()
	}
	return &ZerologSink{log: log}
}

func (s *ZerologSink) Write(event logging.Event) error {
	evt := zerologLevel(s.log, event.Severity).
		Str("type", string(event.Type)).
		Str("category", string(event.Category)).
		Uint64("tick", event.Tick).
		Str("actor", formatEntity(event.Actor))
	if len(event.Targets) > 0 {
		evt = evt.Str("targets", formatTargets(event.Targets))
	}
	if event.Payload != nil {
		evt = evt.Interface("payload", event.Payload)
	}
	if event.TraceID != "" {
		evt = evt.Str("trace_id", event.TraceID)
	}
	for k, v := range event.Extra {
		evt = evt.Interface(k, v)
	}
	evt.Msg(string(event.Type))
	return nil
}

func (s *ZerologSink) Close(context.Context) error { return nil }

func zerologLevel(log zerolog.Logger, sev logging.Severity) *zerolog.Event {
	switch sev {
	case logging.SeverityDebug:
		return log.Debug()
	case logging.SeverityWarn:
		return log.Warn()
	case logging.SeverityError:
		return log.Error()
	default:
		return log.Info()
	}
}
