// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/staranto/linkctl/internal/links"
)

//go:embed templates/*.html
var templatesFS embed.FS

var linksTemplate = template.Must(template.ParseFS(templatesFS, "templates/links.html"))

// RenderHTML writes an unordered list with one link per record, in order.
// URLs and names are escaped for their HTML context; URLs with an unsafe
// scheme such as javascript: are replaced.
func RenderHTML(w io.Writer, records []links.Record) error {
	if records == nil {
		records = []links.Record{}
	}
	if err := linksTemplate.ExecuteTemplate(w, "links.html", records); err != nil {
		return fmt.Errorf("failed to render links: %w", err)
	}
	return nil
}
