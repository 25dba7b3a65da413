// Package tracing wires OpenTelemetry into the ledger command pipeline. Each
// transaction gets one span carrying its sender, height and committed records.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporter names accepted by Config.Exporter.
const (
	ExporterNone   = "none"
	ExporterFile   = "file"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

const (
	defaultOTLPEndpoint = "localhost:4317"
	defaultServiceName  = "qnet-ledger"
	instrumentationName = "github.com/folashadea/Quantum-Entanglement-Network/internal/ledger"
)

// Config controls span export. Field tags match the tracing section of
// config.yaml.
type Config struct {
	Enabled      bool    `mapstructure:"enabled" yaml:"enabled"`
	Exporter     string  `mapstructure:"exporter" yaml:"exporter"`           // none, file, stdout or otlp
	FilePath     string  `mapstructure:"file_path" yaml:"file_path"`         // JSONL target; the CLI fills it from the data dir
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"` // collector host:port
	SampleRate   float64 `mapstructure:"sample_rate" yaml:"sample_rate"`     // 0 < rate <= 1
	ServiceName  string  `mapstructure:"service_name" yaml:"service_name"`
}

// DefaultConfig returns tracing off, with the file exporter selected for when
// it is switched on.
func DefaultConfig() Config {
	return Config{
		Exporter:     ExporterFile,
		OTLPEndpoint: defaultOTLPEndpoint,
		SampleRate:   1.0,
		ServiceName:  defaultServiceName,
	}
}

// exporterFactory builds the span exporter for one backend. A nil exporter
// with a nil error means spans are created but not shipped anywhere.
type exporterFactory func(Config) (sdktrace.SpanExporter, error)

var exporterFactories = map[string]exporterFactory{
	ExporterNone: func(Config) (sdktrace.SpanExporter, error) { return nil, nil },
	ExporterFile: func(cfg Config) (sdktrace.SpanExporter, error) {
		if cfg.FilePath == "" {
			return nil, errors.New("file_path required for file exporter")
		}
		return NewFileExporter(cfg.FilePath)
	},
	ExporterStdout: func(Config) (sdktrace.SpanExporter, error) {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	},
	ExporterOTLP: func(cfg Config) (sdktrace.SpanExporter, error) {
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = defaultOTLPEndpoint
		}
		return otlptracegrpc.New(context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
	},
}

// Exporters lists the accepted exporter names.
func Exporters() []string {
	names := make([]string, 0, len(exporterFactories))
	for name := range exporterFactories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Provider owns the SDK tracer provider for one ledger process.
type Provider struct {
	sdk    *sdktrace.TracerProvider // nil when disabled
	tracer trace.Tracer
}

// NewProvider builds a Provider from cfg. A disabled config yields a no-op
// tracer and never touches the global provider.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(instrumentationName)}, nil
	}

	name := cfg.Exporter
	if name == "" {
		name = ExporterNone
	}
	factory, ok := exporterFactories[name]
	if !ok {
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}
	exporter, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("create %s exporter: %w", name, err)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	rate := cfg.SampleRate
	if rate <= 0 || rate > 1 {
		rate = 1.0
	}

	opts := []sdktrace.TracerProviderOption{
		// Schemaless so the resource merges with whatever the SDK defaults carry.
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
			attribute.String("qnet.trace.exporter", name),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	sdk := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(sdk)

	return &Provider{sdk: sdk, tracer: sdk.Tracer(instrumentationName)}, nil
}

// Tracer returns the tracer ledger middleware should use.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled reports whether spans are recorded.
func (p *Provider) Enabled() bool {
	return p.sdk != nil
}

// Shutdown flushes buffered spans and releases the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
