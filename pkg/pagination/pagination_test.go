package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/datasets/patients"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return FromContext(c)
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

func TestFromContext_Explicit(t *testing.T) {
	p := paramsFor(t, "?limit=250&offset=500")
	if p.Limit != 250 {
		t.Errorf("expected limit 250, got %d", p.Limit)
	}
	if p.Offset != 500 {
		t.Errorf("expected offset 500, got %d", p.Offset)
	}
}

func TestFromContext_CapsLimit(t *testing.T) {
	p := paramsFor(t, "?limit=99999")
	if p.Limit != MaxLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
}

func TestFromContext_NegativeValues(t *testing.T) {
	p := paramsFor(t, "?limit=-5&offset=-10")
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit for negative input, got %d", p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0 for negative input, got %d", p.Offset)
	}
}

func TestParams_Slice(t *testing.T) {
	cases := []struct {
		name       string
		p          Params
		total      int
		start, end int
	}{
		{"first page", Params{Limit: 10, Offset: 0}, 25, 0, 10},
		{"middle page", Params{Limit: 10, Offset: 10}, 25, 10, 20},
		{"partial last page", Params{Limit: 10, Offset: 20}, 25, 20, 25},
		{"offset past end", Params{Limit: 10, Offset: 100}, 25, 25, 25},
		{"empty collection", Params{Limit: 10, Offset: 0}, 0, 0, 0},
	}
	for _, tc := range cases {
		start, end := tc.p.Slice(tc.total)
		if start != tc.start || end != tc.end {
			t.Errorf("%s: expected [%d, %d), got [%d, %d)", tc.name, tc.start, tc.end, start, end)
		}
	}
}

func TestParams_HasNext(t *testing.T) {
	p := Params{Limit: 10, Offset: 10}
	if !p.HasNext(25) {
		t.Error("expected HasNext true with more rows remaining")
	}
	if p.HasNext(20) {
		t.Error("expected HasNext false at the last page")
	}
	if p.NextOffset() != 20 {
		t.Errorf("expected next offset 20, got %d", p.NextOffset())
	}
}

func TestNewResponse(t *testing.T) {
	r := NewResponse([]int{1, 2, 3}, 30, 10, 0)
	if r.Total != 30 {
		t.Errorf("expected total 30, got %d", r.Total)
	}
	if !r.HasMore {
		t.Error("expected HasMore true")
	}

	last := NewResponse([]int{1}, 30, 10, 29)
	if last.HasMore {
		t.Error("expected HasMore false on last page")
	}
}
