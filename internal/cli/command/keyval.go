// Package command provides CLI command definitions for strand-cli.
package command

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/strandkv/strand/internal/cli/format"
)

// PingCommand returns the ping command.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:  "ping",
		Usage: "Check server liveness",
		Action: func(c *cli.Context) error {
			return run(c, "PING")
		},
	}
}

// EchoCommand returns the echo command.
func EchoCommand() *cli.Command {
	return &cli.Command{
		Name:      "echo",
		Usage:     "Echo a message back from the server",
		ArgsUsage: "<message>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("echo requires exactly one argument")
			}
			return run(c, "ECHO", c.Args().First())
		},
	}
}

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get the value of a key",
		ArgsUsage: "<key>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("get requires exactly one argument")
			}
			return run(c, "GET", c.Args().First())
		},
	}
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set a key to a value",
		ArgsUsage: "<key> <value>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "nx", Usage: "Only set if the key does not exist"},
			&cli.BoolFlag{Name: "xx", Usage: "Only set if the key already exists"},
			&cli.BoolFlag{Name: "get", Usage: "Return the previous value"},
			&cli.Int64Flag{Name: "ex", Usage: "Expire after `SECONDS`", Value: -1},
			&cli.Int64Flag{Name: "px", Usage: "Expire after `MILLIS`", Value: -1},
			&cli.Int64Flag{Name: "exat", Usage: "Expire at unix `SECONDS`", Value: -1},
			&cli.Int64Flag{Name: "pxat", Usage: "Expire at unix `MILLIS`", Value: -1},
			&cli.BoolFlag{Name: "keepttl", Usage: "Keep the existing expiration"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("set requires exactly two arguments")
			}
			args, err := setArgs(c)
			if err != nil {
				return err
			}
			return run(c, args...)
		},
	}
}

// setArgs translates set flags into wire arguments. Conflicting
// combinations are left for the server to reject.
func setArgs(c *cli.Context) ([]string, error) {
	args := []string{"SET", c.Args().Get(0), c.Args().Get(1)}

	if c.Bool("nx") {
		args = append(args, "NX")
	}
	if c.Bool("xx") {
		args = append(args, "XX")
	}
	if c.Bool("get") {
		args = append(args, "GET")
	}
	for _, opt := range []string{"ex", "px", "exat", "pxat"} {
		if v := c.Int64(opt); v >= 0 {
			args = append(args, upper(opt), strconv.FormatInt(v, 10))
		}
	}
	if c.Bool("keepttl") {
		args = append(args, "KEEPTTL")
	}
	return args, nil
}

func upper(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if ch >= 'a' && ch <= 'z' {
			b[i] = ch - 'a' + 'A'
		}
	}
	return string(b)
}

// run executes one command against the server and prints the reply.
func run(c *cli.Context, args ...string) error {
	cl := dial(c)
	defer cl.Close()

	reply, err := cl.Do(args...)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, format.Render(reply))
	return nil
}
