package etcd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"
)

func TestLeaderStats(t *testing.T) {
	t.Parallel()

	cli, requests, done := testServer(t, 200,
		`{"leader":"272e204152","followers":{"2225373f43":{"latency":{"average":0.15}}}}`)
	defer done()

	doc, err := cli.LeaderStats(context.Background())
	if err != nil {
		t.Fatalf("LeaderStats failed: %v", err)
	}
	leader, err := doc.Field("leader")
	if err != nil {
		t.Fatalf("Field(leader) failed: %v", err)
	}
	if s, _ := leader.Str(); s != "272e204152" {
		t.Errorf("leader failed: want (272e204152), got (%v)", s)
	}
	if req := lastRequest(t, requests); req.Path != "/v2/stats/leader" {
		t.Errorf("path failed: want (/v2/stats/leader), got (%v)", req.Path)
	}
}

func TestVersionUsesBaseURL(t *testing.T) {
	t.Parallel()

	cli, requests, done := testServer(t, 200,
		`{"etcdserver":"2.3.8","etcdcluster":"2.3.0"}`)
	defer done()

	doc, err := cli.Version(context.Background())
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	v, err := doc.Field("etcdserver")
	if err != nil {
		t.Fatalf("Field(etcdserver) failed: %v", err)
	}
	if s, _ := v.Str(); s != "2.3.8" {
		t.Errorf("version failed: want (2.3.8), got (%v)", s)
	}

	// Version lives outside the /v2 namespace.
	if req := lastRequest(t, requests); req.Path != "/version" {
		t.Errorf("path failed: want (/version), got (%v)", req.Path)
	}
}

func TestHealthErrorIsBare(t *testing.T) {
	t.Parallel()

	cli, _, done := testServer(t, 503, `{"message":"must not be extracted"}`)
	defer done()

	_, err := cli.Health(context.Background())
	se, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("want StatusError, got %T: %v", err, err)
	}
	if se.Message != "" {
		t.Errorf("base endpoints report the bare status line, got message (%v)", se.Message)
	}
}

func TestDebugVarsPath(t *testing.T) {
	t.Parallel()

	cli, requests, done := testServer(t, 200, `{"cmdline":["etcd"]}`)
	defer done()

	if _, err := cli.DebugVars(context.Background()); err != nil {
		t.Fatalf("DebugVars failed: %v", err)
	}
	if req := lastRequest(t, requests); req.Path != "/debug/vars" {
		t.Errorf("path failed: want (/debug/vars), got (%v)", req.Path)
	}
}

func TestSetLogLevel(t *testing.T) {
	t.Parallel()

	cli, requests, done := testServer(t, 200, "")
	defer done()

	if err := cli.SetLogLevel(context.Background(), "DEBUG"); err != nil {
		t.Fatalf("SetLogLevel failed: %v", err)
	}
	req := lastRequest(t, requests)
	if req.Method != http.MethodPut || req.Path != "/v2/config/local/log" {
		t.Errorf("request failed: want (PUT /v2/config/local/log), got (%v %v)", req.Method, req.Path)
	}
	if req.Body != `{"Level":"DEBUG"}` {
		t.Errorf("body failed: want ({\"Level\":\"DEBUG\"}), got (%v)", req.Body)
	}
}

func TestSetLogLevelRejectsUnknown(t *testing.T) {
	t.Parallel()

	cli, requests, done := testServer(t, 200, "")
	defer done()

	if err := cli.SetLogLevel(context.Background(), "TRACE"); err == nil {
		t.Errorf("SetLogLevel should reject unknown levels")
	}
	if len(*requests) != 0 {
		t.Errorf("no request should be issued for an invalid level")
	}
}

func TestWaitHealthy(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(503)
			return
		}
		w.Write([]byte(`{"health":"true"}`))
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	port, _ := strconv.Atoi(u.Port())
	cli, err := NewClient(u.Hostname(), WithPort(port))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	doc, err := cli.WaitHealthy(time.Millisecond, 10)
	if err != nil {
		t.Fatalf("WaitHealthy failed: %v", err)
	}
	h, err := doc.Field("health")
	if err != nil {
		t.Fatalf("Field(health) failed: %v", err)
	}
	if s, _ := h.Str(); s != "true" {
		t.Errorf("health failed: want (true), got (%v)", s)
	}
	if calls != 3 {
		t.Errorf("polls failed: want (3), got (%v)", calls)
	}
}
