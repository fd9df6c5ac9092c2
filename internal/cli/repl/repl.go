// Package repl provides the interactive mode for strand-cli.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/strandkv/strand/internal/cli/client"
	"github.com/strandkv/strand/internal/cli/format"
)

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input   io.Reader
	output  io.Writer
	client  *client.Client
	history *History
}

// New creates a REPL connected through the given client.
func New(c *client.Client) *REPL {
	return &REPL{
		input:   os.Stdin,
		output:  os.Stdout,
		client:  c,
		history: NewHistory(),
	}
}

// Run starts the loop. It returns when the input ends or the user
// types exit or quit.
func (r *REPL) Run() error {
	_ = r.history.Load()
	defer r.history.Save()

	reader := bufio.NewReader(r.input)
	for {
		fmt.Fprint(r.output, "strand> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		if err := r.execute(line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

func (r *REPL) execute(line string) error {
	args, err := Tokenize(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	reply, err := r.client.Do(args...)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.output, format.Render(reply))
	return nil
}

// Tokenize splits a command line into arguments. Single and double
// quotes group words; there is no escape processing inside quotes.
func Tokenize(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	var quote byte
	inToken := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				cur.WriteByte(ch)
			}
		case ch == '\'' || ch == '"':
			quote = ch
			inToken = true
		case ch == ' ' || ch == '\t':
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteByte(ch)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}
