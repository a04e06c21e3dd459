package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/fantasy-market/internal/platform/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	final := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "handler") })

	chain(final, mark("a"), mark("b")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"a", "b", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order=%v want=%v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order=%v want=%v", order, want)
		}
	}
}

func TestWithRecovery_WritesInternalError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger := logging.FromZap(zap.New(core))

	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	rec := httptest.NewRecorder()
	withRecovery(logger)(panicky).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/market", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Fatalf("expected one panic log entry, got %d", logs.Len())
	}
}

func TestWithRequestLog_RecordsStatusAndBytes(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := logging.FromZap(zap.New(core))

	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("done"))
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/me/team/init", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	withRequestLog(logger)(h).ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("http request").AllUntimed()
	if len(entries) != 1 {
		t.Fatalf("expected one request log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusCreated) {
		t.Fatalf("unexpected status field: %#v", fields["status"])
	}
	if fields["bytes"] != int64(4) {
		t.Fatalf("unexpected bytes field: %#v", fields["bytes"])
	}
	if fields["client_ip"] != "203.0.113.7" {
		t.Fatalf("unexpected client_ip field: %#v", fields["client_ip"])
	}
}

func TestResolveClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "fly header wins", headers: map[string]string{"Fly-Client-IP": "198.51.100.4", "X-Real-IP": "10.0.0.2"}, remote: "10.0.0.9:443", want: "198.51.100.4"},
		{name: "forwarded list", headers: map[string]string{"X-Forwarded-For": " 203.0.113.7 , 10.0.0.1"}, remote: "10.0.0.9:443", want: "203.0.113.7"},
		{name: "garbage header falls through", headers: map[string]string{"X-Forwarded-For": "unknown"}, remote: "[2001:db8::1]:8080", want: "2001:db8::1"},
		{name: "mapped ipv4 remote", remote: "[::ffff:192.0.2.10]:1234", want: "192.0.2.10"},
		{name: "nothing usable", remote: "pipe", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := resolveClientIP(req.Context(), req); got != tt.want {
				t.Fatalf("resolveClientIP=%q want=%q", got, tt.want)
			}
		})
	}
}
