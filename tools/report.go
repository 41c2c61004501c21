package tools

import (
	"fmt"
	"io"
	"strings"

	md "github.com/russross/blackfriday/v2"

	"github.com/scxmlgo/scxml/core"
)

// DiagnosticsMarkdown renders a core.Diagnostics as a Markdown
// document: a heading, then an "Errors" section and a "Warnings"
// section, each a bullet list. Suitable as input to blackfriday, or
// to read on its own.
func DiagnosticsMarkdown(name string, diags *core.Diagnostics) string {
	var b strings.Builder

	title := name
	if title == "" {
		title = "document"
	}
	fmt.Fprintf(&b, "# Diagnostics: %s\n\n", title)

	if diags == nil || (len(diags.Errors) == 0 && len(diags.Warnings) == 0) {
		b.WriteString("No errors or warnings.\n")
		return b.String()
	}

	if 0 < len(diags.Errors) {
		b.WriteString("## Errors\n\n")
		for _, d := range diags.Errors {
			fmt.Fprintf(&b, "- **%s**: %s\n", d.Check, d.String())
		}
		b.WriteString("\n")
	}

	if 0 < len(diags.Warnings) {
		b.WriteString("## Warnings\n\n")
		for _, d := range diags.Warnings {
			fmt.Fprintf(&b, "- **%s**: %s\n", d.Check, d.String())
		}
	}

	return b.String()
}

// RenderDiagnosticsHTML writes a standalone HTML page with the
// Markdown diagnostics report rendered to HTML via blackfriday.
func RenderDiagnosticsHTML(name string, diags *core.Diagnostics, out io.Writer) error {
	body := md.Run([]byte(DiagnosticsMarkdown(name, diags)))

	_, err := fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head><title>%s diagnostics</title></head>
  <body>
%s
  </body>
</html>
`, name, body)
	return err
}
