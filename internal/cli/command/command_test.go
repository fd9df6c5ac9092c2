package command

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/strandkv/strand/internal/server"
	"github.com/strandkv/strand/internal/store"
)

func startServer(t *testing.T) string {
	t.Helper()

	s := server.New(&server.Config{Addr: "127.0.0.1:0"}, store.New(), nil, nil)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Shutdown(ctx)
	})
	return s.Addr()
}

// runCLI runs the app in single-command mode and returns its output.
func runCLI(t *testing.T, addr string, args ...string) string {
	t.Helper()

	app := App()
	var out bytes.Buffer
	app.Writer = &out

	argv := append([]string{"strand-cli", "--server", addr}, args...)
	if err := app.Run(argv); err != nil {
		t.Fatalf("Run(%v) error = %v", args, err)
	}
	return out.String()
}

func TestCLI_Ping(t *testing.T) {
	addr := startServer(t)
	if got := runCLI(t, addr, "ping"); !strings.Contains(got, "PONG") {
		t.Errorf("ping output = %q, want PONG", got)
	}
}

func TestCLI_Echo(t *testing.T) {
	addr := startServer(t)
	if got := runCLI(t, addr, "echo", "hello"); !strings.Contains(got, "hello") {
		t.Errorf("echo output = %q, want hello", got)
	}
}

func TestCLI_SetGet(t *testing.T) {
	addr := startServer(t)

	if got := runCLI(t, addr, "set", "k", "v"); !strings.Contains(got, "OK") {
		t.Errorf("set output = %q, want OK", got)
	}
	if got := runCLI(t, addr, "get", "k"); !strings.Contains(got, `"v"`) {
		t.Errorf("get output = %q, want quoted v", got)
	}
}

func TestCLI_GetMissing(t *testing.T) {
	addr := startServer(t)
	if got := runCLI(t, addr, "get", "missing"); !strings.Contains(got, "(nil)") {
		t.Errorf("get output = %q, want (nil)", got)
	}
}

func TestCLI_SetNXConflict(t *testing.T) {
	addr := startServer(t)

	runCLI(t, addr, "set", "k", "v1")
	if got := runCLI(t, addr, "set", "--nx", "k", "v2"); !strings.Contains(got, "(nil)") {
		t.Errorf("set --nx on existing key output = %q, want (nil)", got)
	}
	if got := runCLI(t, addr, "get", "k"); !strings.Contains(got, `"v1"`) {
		t.Errorf("value changed despite NX: %q", got)
	}
}

func TestCLI_SetWithGetFlag(t *testing.T) {
	addr := startServer(t)

	runCLI(t, addr, "set", "k", "old")
	if got := runCLI(t, addr, "set", "--get", "k", "new"); !strings.Contains(got, `"old"`) {
		t.Errorf("set --get output = %q, want previous value", got)
	}
}

func TestCLI_EchoArity(t *testing.T) {
	app := App()
	app.Writer = new(bytes.Buffer)
	if err := app.Run([]string{"strand-cli", "echo"}); err == nil {
		t.Error("echo with no args should error")
	}
}
