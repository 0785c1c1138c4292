package report

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"
)

// WriteHTML renders the entries as a standalone report with one collapsible
// block per file. Extracted text is untrusted and escaped for the reserved
// markup characters; static strings are developer-controlled and left as-is.
func WriteHTML(w io.Writer, entries []Entry) error {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n<title>Match report</title>\n")
	b.WriteString("<style>\n")
	b.WriteString("body { font-family: sans-serif; margin: 2em; }\n")
	b.WriteString("details { border: 1px solid #ccc; border-radius: 4px; margin-bottom: 0.5em; }\n")
	b.WriteString("summary { cursor: pointer; padding: 0.5em; }\n")
	b.WriteString(".panel { padding: 0.5em 1em; }\n")
	b.WriteString("pre { white-space: pre-wrap; }\n")
	b.WriteString("</style>\n</head>\n<body>\n<h1>Match report</h1>\n")

	for _, e := range entries {
		b.WriteString("<details>\n")
		fmt.Fprintf(&b, "<summary>%s &mdash; %s</summary>\n",
			html.EscapeString(e.FileName), e.FormattedPercent())
		b.WriteString("<div class=\"panel\">\n")
		fmt.Fprintf(&b, "<p>Raw score: %v</p>\n", e.RawScore)
		fmt.Fprintf(&b, "<pre>%s</pre>\n", html.EscapeString(e.Text))
		b.WriteString("</div>\n</details>\n")
	}

	b.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteHTMLFile writes the report to the given path.
func WriteHTMLFile(path string, entries []Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteHTML(file, entries)
}
