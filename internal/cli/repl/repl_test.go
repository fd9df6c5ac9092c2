package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/strandkv/strand/internal/cli/client"
	"github.com/strandkv/strand/internal/server"
	"github.com/strandkv/strand/internal/store"
)

// ============================================================
// Tokenizer
// ============================================================

func TestTokenize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{"plain words", "SET key value", []string{"SET", "key", "value"}, false},
		{"extra spaces", "  GET   key  ", []string{"GET", "key"}, false},
		{"double quotes", `SET key "two words"`, []string{"SET", "key", "two words"}, false},
		{"single quotes", "ECHO 'a b c'", []string{"ECHO", "a b c"}, false},
		{"empty quoted arg", `SET key ""`, []string{"SET", "key", ""}, false},
		{"adjacent quoted", `SET key a"b c"d`, []string{"SET", "key", "ab cd"}, false},
		{"empty line", "", nil, false},
		{"unterminated quote", `ECHO "oops`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Tokenize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %q, want %q", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// ============================================================
// History
// ============================================================

func TestHistory_AddGet(t *testing.T) {
	h := &History{maxSize: 3}

	h.Add("first")
	h.Add("second")
	h.Add("third")

	if got := h.Get(0); got != "third" {
		t.Errorf("Get(0) = %q, want %q", got, "third")
	}
	if got := h.Get(2); got != "first" {
		t.Errorf("Get(2) = %q, want %q", got, "first")
	}
	if got := h.Get(3); got != "" {
		t.Errorf("Get(3) = %q, want empty", got)
	}

	h.Add("fourth")
	if got := h.Get(3); got != "second" {
		t.Errorf("after overflow, Get(3) = %q, want %q", got, "second")
	}
}

// ============================================================
// Loop
// ============================================================

func TestREPL_Run(t *testing.T) {
	s := server.New(&server.Config{Addr: "127.0.0.1:0"}, store.New(), nil, nil)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start server: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Shutdown(ctx)
	}()

	c := client.New(s.Addr(), client.WithTimeout(5*time.Second))
	defer c.Close()

	var out bytes.Buffer
	r := &REPL{
		input:   strings.NewReader("PING\nSET k v\nGET k\nexit\n"),
		output:  &out,
		client:  c,
		history: &History{maxSize: 10, file: "/dev/null"},
	}

	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"PONG", "OK", `"v"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
