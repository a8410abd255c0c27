// Package client provides the interactive console front end of the bank.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompter asks questions on an output stream and reads the answers, one line
// each, from an input stream.
type Prompter struct {
	out     io.Writer
	in      io.Reader
	lines   chan line
	started bool
}

type line struct {
	text string
	err  error
}

// NewPrompter creates a Prompter reading from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Ask writes prompt and blocks until one line of input arrives or ctx is done.
// Input that ends before a line is read yields io.EOF.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}

	p.startReader()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

// Println writes one line of output.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf writes formatted output.
func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// startReader launches the single goroutine that owns the input stream.
// A cancelled Ask leaves it running for the next Ask.
func (p *Prompter) startReader() {
	if p.started {
		return
	}
	p.started = true
	p.lines = make(chan line)

	go func() {
		defer close(p.lines)
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			p.lines <- line{text: strings.TrimRight(scanner.Text(), "\r")}
		}
		if err := scanner.Err(); err != nil {
			p.lines <- line{err: err}
		}
	}()
}
