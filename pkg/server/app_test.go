package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"ChurnScope/pkg/config"
	applogger "ChurnScope/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeSource struct{ closed bool }

func (s *closeSource) Name() string                         { return "test" }
func (s *closeSource) Format() string                       { return "json" }
func (s *closeSource) Read(context.Context) ([]byte, error) { return nil, nil }
func (s *closeSource) Close() error                         { s.closed = true; return nil }

type pingHandler struct{}

func (pingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
}

func testConfig(t *testing.T, port int) *config.Config {
	t.Helper()
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = port
	cfg.Metrics.Enabled = false
	return cfg
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestApp_RunContextServesAndShutsDown(t *testing.T) {
	port := freePort(t)
	src := &closeSource{}
	app := New(testConfig(t, port), pingHandler{}, src, applogger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/ping"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.True(t, src.closed)
}

func TestApp_RunContextReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	src := &closeSource{}
	app := New(testConfig(t, ln.Addr().(*net.TCPAddr).Port), pingHandler{}, src, applogger.Nop())

	err = app.RunContext(context.Background())
	assert.Error(t, err)
	assert.True(t, src.closed)
}
