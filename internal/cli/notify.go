package cli

import (
	"fmt"
	"io"

	"dayboard/internal/cli/formatter"
	"dayboard/internal/mutation"
)

// toastNotifier prints mutation outcomes as one-line toasts.
type toastNotifier struct {
	out    io.Writer
	errOut io.Writer
}

// NewToastNotifier returns a mutation.Notifier that writes success lines to
// out and failure lines to errOut.
func NewToastNotifier(out, errOut io.Writer) mutation.Notifier {
	return &toastNotifier{out: out, errOut: errOut}
}

func (n *toastNotifier) Success(msg string) {
	fmt.Fprintf(n.out, "%s %s\n", formatter.StyleGreen.Render("✔"), msg)
}

func (n *toastNotifier) Failure(msg string) {
	fmt.Fprintf(n.errOut, "%s %s\n", formatter.StyleRed.Render("✖"), msg)
}
