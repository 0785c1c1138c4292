package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

const browserDone = "Close report"

// Browser is an interactive expand/collapse view over the report entries.
// Each row toggles independently; any number of panels may be open at once.
type Browser struct {
	entries []Entry
	open    []bool
	out     io.Writer

	// selectRow runs the row prompt and returns the chosen index.
	// Replaceable in tests.
	selectRow func(items []string) (int, error)
}

func NewBrowser(entries []Entry) *Browser {
	b := &Browser{
		entries: entries,
		open:    make([]bool, len(entries)),
		out:     os.Stdout,
	}
	b.selectRow = b.promptRow

	return b
}

// Toggle flips the panel state of row i, leaving every other row untouched.
func (b *Browser) Toggle(i int) {
	if i < 0 || i >= len(b.open) {
		return
	}
	b.open[i] = !b.open[i]
}

func (b *Browser) IsOpen(i int) bool {
	return i >= 0 && i < len(b.open) && b.open[i]
}

// Render returns the current view: one summary row per entry, followed by the
// detail panel for open rows. Terminal output interprets no markup, so the
// text is printed verbatim.
func (b *Browser) Render() string {
	var sb strings.Builder
	for i, e := range b.entries {
		marker := "+"
		if b.open[i] {
			marker = "-"
		}
		fmt.Fprintf(&sb, "[%s] %s  %s\n", marker, e.FileName, e.FormattedPercent())
		if b.open[i] {
			fmt.Fprintf(&sb, "    raw score: %v\n", e.RawScore)
			for _, line := range strings.Split(e.Text, "\n") {
				fmt.Fprintf(&sb, "    %s\n", line)
			}
		}
	}

	return sb.String()
}

// Run loops the report view until the user closes it. Selecting a row toggles
// its panel and re-renders.
func (b *Browser) Run() error {
	for {
		fmt.Fprint(b.out, "\n"+b.Render())

		items := make([]string, 0, len(b.entries)+1)
		for i, e := range b.entries {
			items = append(items, fmt.Sprintf("%s (%s)", e.FileName, b.toggleLabel(i)))
		}
		items = append(items, browserDone)

		idx, err := b.selectRow(items)
		if err != nil {
			return err
		}

		if idx == len(b.entries) {
			return nil
		}

		b.Toggle(idx)
	}
}

func (b *Browser) toggleLabel(i int) string {
	if b.open[i] {
		return "collapse"
	}
	return "expand"
}

func (b *Browser) promptRow(items []string) (int, error) {
	prompt := promptui.Select{
		Label: "Toggle a file and press ENTER",
		Items: items,
		Size:  len(items),
	}

	idx, _, err := prompt.Run()
	return idx, err
}
