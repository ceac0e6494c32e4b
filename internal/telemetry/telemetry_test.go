package telemetry

import (
	"context"
	"testing"

	"accrete-server/internal/shared/config"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TelemetryConfig
	}{
		{"no endpoint", config.TelemetryConfig{Enabled: true, ServiceName: "test"}},
		{"disabled", config.TelemetryConfig{Enabled: false, Endpoint: "http://localhost:4318", ServiceName: "test"}},
		// Non-routable address so nothing is exported.
		{"endpoint set", config.TelemetryConfig{Enabled: true, Endpoint: "http://192.0.2.1:4318", ServiceName: "test"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := Setup(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("Setup() error = %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown error = %v", err)
			}
		})
	}
}

func TestTracer(t *testing.T) {
	_, span := Tracer().Start(context.Background(), "test")
	defer span.End()
	if span == nil {
		t.Fatal("nil span")
	}
}
