package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestID_Generates(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		rid, _ := c.Get("request_id").(string)
		if rid == "" {
			t.Error("expected request id in context")
		}
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected request id response header")
	}
}

func TestRequestID_HonorsInbound(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-supplied-id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "client-supplied-id" {
		t.Errorf("expected inbound id echoed back, got %q", got)
	}
}

func TestLogger_EmitsRequestLine(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	e.Use(RequestID())
	e.Use(Logger(logger))
	e.GET("/datasets/patients", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/datasets/patients", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	out := buf.String()
	if !strings.Contains(out, `"path":"/datasets/patients"`) {
		t.Errorf("log line missing path: %s", out)
	}
	if !strings.Contains(out, `"status":200`) {
		t.Errorf("log line missing status: %s", out)
	}
	if !strings.Contains(out, `"request_id"`) {
		t.Errorf("log line missing request id: %s", out)
	}
}

func TestRecovery_ConvertsPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	e.Use(Recovery(logger))
	e.GET("/boom", func(c echo.Context) error { panic("exploded") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Error("expected panic log entry")
	}
}

func TestBodyLimit_RejectsOversized(t *testing.T) {
	e := echo.New()
	e.Use(BodyLimit("1K"))
	e.POST("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	body := strings.NewReader(strings.Repeat("x", 2048))
	req := httptest.NewRequest(http.MethodPost, "/", body)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestBodyLimit_AllowsSmall(t *testing.T) {
	e := echo.New()
	e.Use(BodyLimit("1K"))
	e.POST("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("ok"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestParseLimit(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1K", 1 << 10},
		{"1M", 1 << 20},
		{"2G", 2 << 30},
		{"512", 512},
		{"", 1 << 20},
		{"garbage", 1 << 20},
	}
	for _, tc := range cases {
		if got := parseLimit(tc.in); got != tc.want {
			t.Errorf("parseLimit(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRequestTimeout_Expires(t *testing.T) {
	e := echo.New()
	e.Use(RequestTimeout(20 * time.Millisecond))
	e.GET("/slow", func(c echo.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/slow", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", rec.Code)
	}
}

func TestRequestTimeout_SkipsExportPaths(t *testing.T) {
	e := echo.New()
	e.Use(RequestTimeout(10 * time.Millisecond))
	e.GET("/export/csv/patients", func(c echo.Context) error {
		time.Sleep(30 * time.Millisecond)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/export/csv/patients", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected export to bypass the timeout, got %d", rec.Code)
	}
}

func TestRateLimit_Enforces(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2}))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("burst requests should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("third request should be limited, got %v", codes)
	}
}
