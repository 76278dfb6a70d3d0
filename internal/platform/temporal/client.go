package temporal

import (
	"errors"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	platformobservability "github.com/Apurer/brtx-marketplace/internal/platform/observability"
)

// ErrDisabled is returned by Dial when Temporal is switched off.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED env")

// Config names the cluster endpoint.
type Config struct {
	Address   string
	Namespace string
	Disabled  bool
}

// Dial connects a traced, slog-backed Temporal client. component names the tracer.
func Dial(cfg Config, instruments *platformobservability.Instruments, component string) (client.Client, error) {
	if cfg.Disabled {
		return nil, ErrDisabled
	}
	options, err := clientOptions(cfg, instruments, component)
	if err != nil {
		return nil, err
	}
	return client.Dial(options)
}

func clientOptions(cfg Config, instruments *platformobservability.Instruments, component string) (client.Options, error) {
	address := cfg.Address
	if address == "" {
		address = client.DefaultHostPort
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = client.DefaultNamespace
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(component),
	})
	if err != nil {
		return client.Options{}, err
	}
	options := client.Options{
		HostPort:  address,
		Namespace: namespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return options, nil
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
