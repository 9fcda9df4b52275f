package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// NamePrompter implements ports.Namer on stdin/stdout. Lines are read by a
// single background goroutine so an abandoned prompt does not leave a
// second reader racing for input.
type NamePrompter struct {
	in    io.Reader
	out   io.Writer
	lines chan string
	err   error
	once  sync.Once
}

// NewNamePrompter constructs a prompter referencing stdio.
func NewNamePrompter(in io.Reader, out io.Writer) *NamePrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &NamePrompter{in: in, out: out, lines: make(chan string)}
}

func (p *NamePrompter) start() {
	go func() {
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			p.lines <- scanner.Text()
		}
		p.err = scanner.Err()
		close(p.lines)
	}()
}

// PromptName asks for a name. End of input counts as cancel.
func (p *NamePrompter) PromptName(ctx context.Context, title string) (string, bool, error) {
	p.once.Do(p.start)
	fmt.Fprintf(p.out, "%s [Ctrl-D cancels]: ", title)

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", false, ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			fmt.Fprintln(p.out)
			return "", false, p.err
		}
		return strings.TrimRight(line, "\r"), true, nil
	}
}

var _ ports.Namer = (*NamePrompter)(nil)
