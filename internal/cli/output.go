// Output rendering for the journal CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/unicode/norm"

	"github.com/mesh-intelligence/journal/pkg/types"
)

const ellipsis = "..."

// lineFolder keeps a preview on a single line.
var lineFolder = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// preview shortens content for display to at most n runes followed by an
// ellipsis when anything was cut. Stored content is never changed.
func preview(content string, n int) string {
	s := lineFolder.Replace(norm.NFC.String(content))
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + ellipsis
}

// printer writes handler results in text or JSON form.
type printer struct {
	out      io.Writer
	errOut   io.Writer
	jsonMode bool

	successColor *color.Color
	noticeColor  *color.Color
}

// newPrinter returns a printer with its own colors. noColor turns them off
// for this printer only; color.NoColor still applies when stdout is not a
// terminal.
func newPrinter(out, errOut io.Writer, jsonMode, noColor bool) printer {
	p := printer{
		out:          out,
		errOut:       errOut,
		jsonMode:     jsonMode,
		successColor: color.New(color.FgGreen),
		noticeColor:  color.New(color.FgYellow),
	}
	if noColor {
		p.successColor.DisableColor()
		p.noticeColor.DisableColor()
	}
	return p
}

// success reports a completed mutation. In JSON mode the caller prints the
// result instead.
func (p printer) success(format string, args ...any) {
	p.successColor.Fprintf(p.out, format+"\n", args...)
}

// notice reports a user-facing rejection such as a bad date or a missing
// entry. In JSON mode it goes to errOut so stdout stays parseable.
func (p printer) notice(format string, args ...any) {
	w := p.out
	if p.jsonMode {
		w = p.errOut
	}
	p.noticeColor.Fprintf(w, format+"\n", args...)
}

func (p printer) json(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(p.out, string(data))
	return err
}

func (p printer) entryLine(e types.Entry, previewLength int) {
	fmt.Fprintf(p.out, "Date: %s - Entry: %s\n", e.Date, preview(e.Content, previewLength))
}

func (p printer) entryFull(e types.Entry) {
	fmt.Fprintf(p.out, "Date: %s\n%s\n", e.Date, e.Content)
}

func (p printer) entryList(entries []types.Entry, previewLength int) {
	if len(entries) == 0 {
		fmt.Fprintln(p.out, "No entries found.")
		return
	}
	fmt.Fprintln(p.out, "Journal Entries:")
	fmt.Fprintln(p.out, "----------------")
	for _, e := range entries {
		p.entryLine(e, previewLength)
	}
}
