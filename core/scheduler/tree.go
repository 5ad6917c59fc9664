package scheduler

import (
	"time"

	"github.com/thejerf/suture/v4"
	"go.uber.org/zap"
)

// NewSupervisor builds the root supervisor with supervisor events logged through zap.
func NewSupervisor(name string, logger *zap.Logger) *suture.Supervisor {
	return suture.New(name, suture.Spec{
		EventHook:        EventHook(logger),
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		Timeout:          10 * time.Second,
	})
}

// EventHook logs suture events. Panics and backoff are warnings, the rest is info.
func EventHook(logger *zap.Logger) suture.EventHook {
	return func(e suture.Event) {
		fields := make([]zap.Field, 0, len(e.Map()))
		for k, v := range e.Map() {
			fields = append(fields, zap.Any(k, v))
		}
		switch e.Type() {
		case suture.EventTypeServicePanic, suture.EventTypeBackoff, suture.EventTypeServiceTerminate:
			logger.Warn(e.String(), fields...)
		default:
			logger.Info(e.String(), fields...)
		}
	}
}
