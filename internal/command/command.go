package command

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongType reports a request envelope that is not an array whose
	// every element is a bulk string.
	ErrWrongType = errors.New("wrong protocol data type")

	// ErrWrongArguments reports a recognized command with an invalid
	// argument list: bad arity, an unknown or conflicting SET option, or
	// a non-numeric expiration operand.
	ErrWrongArguments = errors.New("wrong arguments")
)

// UnknownCommandError reports a command name outside the supported set.
// Name carries the normalized (uppercased) name for diagnostics.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command '%s'", e.Name)
}

// Command is one validated client request. The set of implementations is
// closed: Ping, Echo, Get and Set.
type Command interface {
	// CommandName returns the normalized command name.
	CommandName() string
}

// Ping carries no payload and expects a PONG reply.
type Ping struct{}

func (Ping) CommandName() string { return "PING" }

// Echo asks the server to reply with its own message.
type Echo struct {
	Msg []byte
}

func (Echo) CommandName() string { return "ECHO" }

// Get reads the value stored under Key.
type Get struct {
	Key []byte
}

func (Get) CommandName() string { return "GET" }

// Cond restricts when a Set may write.
type Cond uint8

const (
	// CondNone places no restriction on the write.
	CondNone Cond = iota
	// CondNX writes only when the key is absent.
	CondNX
	// CondXX writes only when the key is present.
	CondXX
)

// ExpireKind selects how the expiration operand is interpreted.
type ExpireKind uint8

const (
	// ExpireNone drops any previous TTL and stores the entry without
	// an expiration.
	ExpireNone ExpireKind = iota
	// ExpireEX interprets the operand as relative seconds.
	ExpireEX
	// ExpirePX interprets the operand as relative milliseconds.
	ExpirePX
	// ExpireEXAT interprets the operand as absolute unix seconds.
	ExpireEXAT
	// ExpirePXAT interprets the operand as absolute unix milliseconds.
	ExpirePXAT
	// ExpireKeepTTL carries the pre-existing entry's expiration forward.
	ExpireKeepTTL
)

// Expire is a parsed expiration option. Value is meaningless for
// ExpireNone and ExpireKeepTTL.
type Expire struct {
	Kind  ExpireKind
	Value int64
}

// Set writes Val under Key, subject to an optional condition and an
// optional expiration. At most one condition and one expiration kind may
// be present per command.
type Set struct {
	Key []byte
	Val []byte

	// Cond gates the write on the key's existence.
	Cond Cond

	// GetOld requests the previous value in the reply instead of OK.
	GetOld bool

	// Expire resolves to the entry's expiration timestamp at execution
	// time.
	Expire Expire
}

func (Set) CommandName() string { return "SET" }
