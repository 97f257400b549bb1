package otel

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/propagators/jaeger"
	"go.opentelemetry.io/contrib/propagators/ot"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/arkandha/feastly/internal/config"
	"github.com/arkandha/feastly/internal/log"
	"github.com/arkandha/feastly/internal/otel/metric"
	"github.com/arkandha/feastly/internal/otel/trace"
)

type ShutdownFunc func(context.Context) error

func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
		jaeger.Jaeger{},
		ot.OT{},
	)
}

func InitOtelSdk(
	c context.Context,
	serviceName string,
	cfg config.Otel,
) (shutdownFuncs []ShutdownFunc, err error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "InitOtelSdk").
		Logger()

	logger.Info().Str(log.KeyProcess, "init propagator").Msg("initializing otel propagator")
	otel.SetTextMapPropagator(newPropagator())
	logger.Info().Str(log.KeyProcess, "init propagator").Msg("initialized otel propagator")

	logger.Info().
		Str(log.KeyProcess, "init tracerProvider").
		Msg("initializing otel tracerProvider")
	tracerProvider, err := trace.InitTracerProvider(c, cfg.Endpoint(), serviceName)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "init tracerProvider").
			Msgf("failed initializing otel tracerProvider with error=%s", err.Error())
		return nil, err
	}
	otel.SetTracerProvider(tracerProvider)
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	logger.Info().
		Str(log.KeyProcess, "init tracerProvider").
		Msg("initialized otel tracerProvider")

	logger.Info().Str(log.KeyProcess, "init meterProvider").Msg("initializing meterProvider")
	meterProvider, err := metric.InitMetricProvider(c, cfg.Endpoint())
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "init meterProvider").
			Msgf("failed initializing otel meterProvider with error=%s", err.Error())
		return shutdownFuncs, err
	}
	otel.SetMeterProvider(meterProvider)
	shutdownFuncs = append(shutdownFuncs, meterProvider.Shutdown)
	logger.Info().Str(log.KeyProcess, "init meterProvider").Msg("initialized meterProvider")

	return shutdownFuncs, nil
}

func ShutdownOtel(c context.Context, shutdownFuncs []ShutdownFunc) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, shutdown := range shutdownFuncs {
		wg.Add(1)
		go func(shutdown ShutdownFunc) {
			defer wg.Done()
			if err := shutdown(c); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(shutdown)
	}
	wg.Wait()
	return errors.Join(errs...)
}
