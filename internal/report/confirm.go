package report

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"repo-stats-admin/internal/lib/console"
	"repo-stats-admin/internal/service/cleaner"
)

type lineResult struct {
	line string
	err  error
}

// ConfirmFromReader warns on w and reads one line from r as the operator's answer.
// Only the line terminator is stripped, so surrounding spaces make the answer wrong.
// The wait ends early when ctx is cancelled; the pending read is then abandoned.
func ConfirmFromReader(r io.Reader, w io.Writer) cleaner.Confirmer {
	p := console.New(w)
	br := bufio.NewReader(r)

	return func(ctx context.Context, _ *cleaner.Plan) (string, error) {
		warn := p.StatusIcon("warning")
		fmt.Fprintf(w, "\n%s %s\n", warn, p.Warning.Render("WARNING: This operation will permanently delete ALL selected database objects!"))
		fmt.Fprintf(w, "%s %s\n", warn, p.Warning.Render("This includes ALL DATA in all tables!"))
		fmt.Fprintf(w, "\nAre you absolutely sure you want to continue? (type '%s' to confirm): ", cleaner.ConfirmationPhrase)

		lines := make(chan lineResult, 1)
		go func() {
			line, err := br.ReadString('\n')
			lines <- lineResult{line: line, err: err}
		}()

		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return "", ctx.Err()
		case res := <-lines:
			if res.err != nil && !(errors.Is(res.err, io.EOF) && res.line != "") {
				fmt.Fprintln(w)
				return "", res.err
			}
			return strings.TrimRight(res.line, "\r\n"), nil
		}
	}
}
