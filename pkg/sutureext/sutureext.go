package sutureext

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/thejerf/suture/v4"
)

func NewSimple(name string) *suture.Supervisor {
	return suture.New(name, suture.Spec{
		EventHook: EventHook(slog.Default()),
	})
}

// EventHook logs supervisor events to logger.
func EventHook(logger *slog.Logger) suture.EventHook {
	return func(ei suture.Event) {
		switch e := ei.(type) {
		case suture.EventStopTimeout:
			logger.Info("Service failed to terminate in a timely manner", "supervisor", e.SupervisorName, "service", e.ServiceName)
		case suture.EventServicePanic:
			logger.Warn("Caught a service panic", "supervisor", e.SupervisorName, "service", e.ServiceName, "panic", e.PanicMsg)
			logger.Debug(e.Stacktrace)
		case suture.EventServiceTerminate:
			logger.Error("Service failed", "error", e.Err, "supervisor", e.SupervisorName, "service", e.ServiceName, "restarting", e.Restarting)
		case suture.EventBackoff:
			logger.Debug("Too many service failures - entering the backoff state", "supervisor", e.SupervisorName)
		case suture.EventResume:
			logger.Debug("Exiting backoff state", "supervisor", e.SupervisorName)
		default:
			b, _ := json.Marshal(e)
			logger.Warn("Unknown suture supervisor event", "type", int(e.Type()), "event", string(b))
		}
	}
}

// Service forces the use of the String method
type Service interface {
	String() string
	suture.Service
}

func Add(super *suture.Supervisor, service Service) suture.ServiceToken {
	return super.Add(sanitizeService{Service: service})
}

type sanitizeService struct {
	Service
}

func (s sanitizeService) Serve(ctx context.Context) error {
	return SanitizeError(ctx, s.Service.Serve(ctx))
}

// SanitizeError keeps a service error from looking like a context error
// unless ctx is actually done, since suture stops services that return one.
func SanitizeError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if !(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return err
	}

	errs := []error{errors.New(err.Error())}
	if errors.Is(err, suture.ErrDoNotRestart) {
		errs = append(errs, suture.ErrDoNotRestart)
	}
	if errors.Is(err, suture.ErrTerminateSupervisorTree) {
		errs = append(errs, suture.ErrTerminateSupervisorTree)
	}

	return errors.Join(errs...)
}
