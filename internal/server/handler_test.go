package server

import (
	"testing"

	"github.com/strandkv/strand/internal/command"
	"github.com/strandkv/strand/internal/resp"
	"github.com/strandkv/strand/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(&Config{Addr: "127.0.0.1:0"}, store.New(), nil, nil)
}

func req(args ...string) resp.Value {
	elems := make([]resp.Value, len(args))
	for i, a := range args {
		elems[i] = resp.NewBulkString([]byte(a))
	}
	return resp.NewArray(elems...)
}

// ============================================================
// Dispatch Tests
// ============================================================

func TestDispatch_Ping(t *testing.T) {
	s := newTestServer(t)
	reply := s.dispatch(nil, req("PING"))
	if !resp.Equal(reply, resp.NewSimpleString("PONG")) {
		t.Errorf("reply = %+v, want +PONG", reply)
	}
}

func TestDispatch_PingWithArgument(t *testing.T) {
	s := newTestServer(t)
	reply := s.dispatch(nil, req("PING", "extra"))
	if reply.Kind != resp.SimpleError {
		t.Errorf("reply = %+v, want simple error", reply)
	}
}

func TestDispatch_Echo(t *testing.T) {
	s := newTestServer(t)
	reply := s.dispatch(nil, req("ECHO", "hello"))
	if !resp.Equal(reply, resp.NewSimpleString("hello")) {
		t.Errorf("reply = %+v, want +hello", reply)
	}
}

func TestDispatch_SetThenGet(t *testing.T) {
	s := newTestServer(t)

	if reply := s.dispatch(nil, req("SET", "k", "v")); !resp.Equal(reply, resp.NewSimpleString("OK")) {
		t.Fatalf("SET reply = %+v, want +OK", reply)
	}
	if reply := s.dispatch(nil, req("GET", "k")); !resp.Equal(reply, resp.NewBulkString([]byte("v"))) {
		t.Errorf("GET reply = %+v, want $v", reply)
	}
}

func TestDispatch_GetMissingKey(t *testing.T) {
	s := newTestServer(t)
	if reply := s.dispatch(nil, req("GET", "nope")); reply.Kind != resp.Null {
		t.Errorf("reply = %+v, want null", reply)
	}
}

func TestDispatch_SetConditionRejected(t *testing.T) {
	s := newTestServer(t)

	s.dispatch(nil, req("SET", "k", "v1", "NX"))
	if reply := s.dispatch(nil, req("SET", "k", "v2", "NX")); reply.Kind != resp.Null {
		t.Fatalf("second NX reply = %+v, want null", reply)
	}
	if reply := s.dispatch(nil, req("GET", "k")); !resp.Equal(reply, resp.NewBulkString([]byte("v1"))) {
		t.Errorf("GET reply = %+v, want v1 untouched", reply)
	}

	if reply := s.dispatch(nil, req("SET", "absent", "v", "XX")); reply.Kind != resp.Null {
		t.Errorf("XX on absent key reply = %+v, want null", reply)
	}
	if reply := s.dispatch(nil, req("GET", "absent")); reply.Kind != resp.Null {
		t.Errorf("GET after rejected XX = %+v, want null", reply)
	}
}

func TestDispatch_SetWithGetFlag(t *testing.T) {
	s := newTestServer(t)

	// First write: no previous value.
	if reply := s.dispatch(nil, req("SET", "k", "v1", "GET")); reply.Kind != resp.Null {
		t.Fatalf("reply = %+v, want null for fresh key", reply)
	}
	// Overwrite: the old value comes back.
	if reply := s.dispatch(nil, req("SET", "k", "v2", "GET")); !resp.Equal(reply, resp.NewBulkString([]byte("v1"))) {
		t.Errorf("reply = %+v, want previous v1", reply)
	}
}

func TestDispatch_UnknownCommand(t *testing.T) {
	s := newTestServer(t)
	reply := s.dispatch(nil, req("FOO", "bar"))
	if reply.Kind != resp.SimpleError {
		t.Fatalf("reply = %+v, want simple error", reply)
	}
	if got := string(reply.Str); got != "ERR unknown command 'FOO'" {
		t.Errorf("error text = %q, want it to name FOO", got)
	}
}

func TestDispatch_WrongEnvelope(t *testing.T) {
	s := newTestServer(t)
	reply := s.dispatch(nil, resp.NewSimpleString("PING"))
	if reply.Kind != resp.SimpleError {
		t.Errorf("reply = %+v, want simple error", reply)
	}
}

func TestExecute_BinaryValues(t *testing.T) {
	s := newTestServer(t)

	key := string([]byte{0x00, 0x01})
	val := string([]byte{0xff, '\r', '\n', 0x00})
	s.dispatch(nil, req("SET", key, val))

	reply := s.dispatch(nil, req("GET", key))
	if !resp.Equal(reply, resp.NewBulkString([]byte(val))) {
		t.Errorf("reply = %q, want binary payload intact", reply.Str)
	}
}

// ============================================================
// Rate Limiter Tests
// ============================================================

func TestDispatch_RateLimit(t *testing.T) {
	s := New(&Config{Addr: "127.0.0.1:0", RateLimit: 2}, store.New(), nil, nil)

	lim := s.limiter
	if lim == nil {
		t.Fatal("limiter not constructed for RateLimit > 0")
	}

	ip := "192.0.2.7"
	allowed := 0
	for i := 0; i < 10; i++ {
		if lim.allow(ip) {
			allowed++
		}
	}
	if allowed != 2 {
		t.Errorf("allowed %d commands, want burst of 2", allowed)
	}

	// A different IP has its own bucket.
	if !lim.allow("192.0.2.8") {
		t.Error("second IP should not share the exhausted bucket")
	}
}

func TestExecute_AllCommandVariants(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		cmd  command.Command
		want resp.Kind
	}{
		{"ping", command.Ping{}, resp.SimpleString},
		{"echo", command.Echo{Msg: []byte("x")}, resp.SimpleString},
		{"get absent", command.Get{Key: []byte("a")}, resp.Null},
		{"set", command.Set{Key: []byte("a"), Val: []byte("b")}, resp.SimpleString},
		{"get present", command.Get{Key: []byte("a")}, resp.BulkString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if reply := s.execute(tt.cmd); reply.Kind != tt.want {
				t.Errorf("reply kind = %v, want %v", reply.Kind, tt.want)
			}
		})
	}
}
