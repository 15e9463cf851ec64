// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"strings"
)

// RenderHTML renders citations as an HTML ordered list fragment.
// Citation text is inserted verbatim: entries routinely carry <i> and
// <a href> markup, and escaping would break it.
func RenderHTML(citations []string) string {
	var b strings.Builder
	b.WriteString("<ol>\n")
	for _, c := range citations {
		b.WriteString("<li>")
		b.WriteString(c)
		b.WriteString("</li>\n")
	}
	b.WriteString("</ol>")
	return b.String()
}

// WriteOutput writes html to path as UTF-8, replacing any existing file.
// The parent directory must already exist.
func WriteOutput(html, path string) error {
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w: %w", path, ErrWrite, err)
	}
	return nil
}
