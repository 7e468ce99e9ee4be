package adaptor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"cinema-ticketing/pkg/utils"
)

// Console is the operator's terminal: line-based input and plain text output.
type Console struct {
	out   io.Writer
	lines <-chan string
}

// NewConsole starts reading in on a background goroutine so a pending read
// can be abandoned when the context is cancelled.
func NewConsole(in io.Reader, out io.Writer) *Console {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	return &Console{out: out, lines: lines}
}

// Prompt prints label and returns the trimmed answer. It returns io.EOF when
// input is exhausted and ctx.Err() when the context ends first.
func (c *Console) Prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			fmt.Fprintln(c.out)
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := c.Prompt(ctx, question+" (y/n)")
	if err != nil {
		return false, err
	}
	return utils.IsYes(answer), nil
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

func (c *Console) Title(title string) {
	fmt.Fprintf(c.out, "\n=== %s ===\n", title)
}
