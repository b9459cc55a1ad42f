package registry

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func get(t *testing.T, r *Registry) string {
	t.Helper()
	req := httptest.NewRequest("GET", DefaultPath, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Header().Get(ServersHeader)
}

func post(t *testing.T, r *Registry, addr string) {
	t.Helper()
	req := httptest.NewRequest("POST", DefaultPath, nil)
	req.Header.Set(ServerHeader, addr)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("POST status = %d", w.Code)
	}
}

func TestRegistry_PutAndList(t *testing.T) {
	r := New(time.Minute)
	if got := get(t, r); got != "" {
		t.Fatalf("fresh registry lists %q", got)
	}
	post(t, r, "tcp@10.0.0.2:9999")
	post(t, r, "tcp@10.0.0.1:9999")
	post(t, r, "tcp@10.0.0.2:9999") // heartbeat refresh, no duplicate
	if got, want := get(t, r), "tcp@10.0.0.1:9999,tcp@10.0.0.2:9999"; got != want {
		t.Fatalf("servers = %q, want %q (sorted)", got, want)
	}
}

func TestRegistry_Expiry(t *testing.T) {
	r := New(time.Millisecond * 20)
	post(t, r, "tcp@10.0.0.1:9999")
	time.Sleep(time.Millisecond * 40)
	if got := get(t, r); got != "" {
		t.Fatalf("expired server still listed: %q", got)
	}
}

func TestRegistry_PostWithoutAddr(t *testing.T) {
	r := New(time.Minute)
	req := httptest.NewRequest("POST", DefaultPath, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("POST without server header status = %d", w.Code)
	}
}

func TestRegistry_MethodNotAllowed(t *testing.T) {
	r := New(time.Minute)
	req := httptest.NewRequest("DELETE", DefaultPath, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE status = %d", w.Code)
	}
}

func TestHeartbeat(t *testing.T) {
	r := New(time.Minute)
	ts := httptest.NewServer(r)
	defer ts.Close()
	Heartbeat(ts.URL, "tcp@127.0.0.1:7777", time.Minute)
	if got := get(t, r); got != "tcp@127.0.0.1:7777" {
		t.Fatalf("servers after heartbeat = %q", got)
	}
}

func TestSendHeartbeat_RepeatedTicks(t *testing.T) {
	r := New(time.Minute)
	ts := httptest.NewServer(r)
	defer ts.Close()
	// every tick must hand its keep-alive connection back, so many in a row
	// neither error nor pile up
	for i := 0; i < 20; i++ {
		if err := sendHeartbeat(ts.URL, "tcp@127.0.0.1:8888"); err != nil {
			t.Fatalf("heartbeat %d err: %v", i, err)
		}
	}
	if got := get(t, r); got != "tcp@127.0.0.1:8888" {
		t.Fatalf("servers after heartbeats = %q", got)
	}
}
