package statsd

import (
	"net"
	"strings"
	"testing"
	"time"
)

func TestMetricName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" session/login ": "session_login",
		"foo..bar":        "foo.bar",
		"a:b|c":           "a_b_c",
		"..":              "",
	}

	for input, want := range tests {
		if got := metricName(input); got != want {
			t.Fatalf("metricName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFormatLine(t *testing.T) {
	t.Parallel()

	got := formatLine("ui.session.op", "1", "c", mergeTags(
		map[string]string{"env": "prod", "service": "ui"},
		map[string]string{" result ": " success ", "": "ignored", "env": "stage"},
	))
	want := "ui.session.op:1|c|#env:stage,result:success,service:ui"
	if got != want {
		t.Fatalf("formatLine mismatch\n got: %q\nwant: %q", got, want)
	}

	if got := formatLine("", "1", "c", nil); got != "" {
		t.Fatalf("formatLine with empty name = %q, want empty", got)
	}
	if got := formatLine("x", "2.5", "ms", nil); got != "x:2.5|ms" {
		t.Fatalf("formatLine without tags = %q", got)
	}
}

func TestNilClientIsSafe(t *testing.T) {
	t.Parallel()

	var c *Client
	c.Count("x", 1, nil)
	c.Timing("x", time.Second, nil)
	if c.Enabled() {
		t.Fatalf("nil client must report disabled")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close on nil client: %v", err)
	}
}

func TestDisabledClientDropsMetrics(t *testing.T) {
	t.Parallel()

	c, err := NewClient(Config{Enabled: false, Address: "127.0.0.1:1"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.Enabled() {
		t.Fatalf("expected disabled client")
	}
	c.Count("x", 1, nil)
}

func TestClientEmitsOverUDP(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("udp not available: %v", err)
	}
	defer pc.Close()

	c, err := NewClient(Config{
		Enabled:    true,
		Address:    pc.LocalAddr().String(),
		Prefix:     ".accounts_ui.",
		GlobalTags: map[string]string{"env": "test"},
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer c.Close()

	c.Count("session.operation", 1, map[string]string{"op": "login"})

	buf := make([]byte, 512)
	if err := pc.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	line := string(buf[:n])
	if !strings.HasPrefix(line, "accounts_ui.session.operation:1|c|#") {
		t.Fatalf("unexpected line %q", line)
	}
	if !strings.Contains(line, "env:test") || !strings.Contains(line, "op:login") {
		t.Fatalf("expected tags in %q", line)
	}
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder
	r.Count("a", 2, map[string]string{"k": "v"})
	r.Timing("b", time.Millisecond, nil)

	if got := r.Counts(); len(got) != 1 || got[0].Count != 2 || got[0].Tags["k"] != "v" {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got := r.Timings(); len(got) != 1 || got[0].Duration != time.Millisecond {
		t.Fatalf("unexpected timings: %+v", got)
	}
}
