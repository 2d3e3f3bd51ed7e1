package telemetry

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/MelaShop/Mela-Shop-bd/internal/config"
)

func TestSetup_None(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{Exporter: config.ExporterNone}, nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_Unknown(t *testing.T) {
	_, err := Setup(context.Background(), config.TelemetryConfig{Exporter: "zipkin"}, nil)
	assert.Error(t, err)
}

func TestSetup_StdoutExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{
		Exporter:    config.ExporterStdout,
		ServiceName: "mela-test",
	}, &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "place-order")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "place-order")
	assert.Contains(t, buf.String(), "mela-test")
}

func TestHandlerAndClient(t *testing.T) {
	h := Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), "test")
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := Client(time.Second).Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}
