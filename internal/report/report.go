// Package report renders a study session summary as markdown and converts it to PDF.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/kotoba/internal/quiz"
)

// SessionReport is the data passed to the session report template.
type SessionReport struct {
	Title       string
	Date        time.Time
	Mode        quiz.Mode
	Direction   quiz.Direction
	Categories  []string
	SearchQuery string
	Stats       quiz.Stats
	Progress    []quiz.ProgressRow
	History     []quiz.Attempt
}

func NewSessionReport(engine *quiz.Engine, date time.Time) SessionReport {
	options := engine.Options()
	return SessionReport{
		Title:       "Study session",
		Date:        date,
		Mode:        options.Mode,
		Direction:   options.Direction,
		Categories:  options.Categories,
		SearchQuery: options.SearchQuery,
		Stats:       engine.Stats(),
		Progress:    engine.ProgressRows(),
		History:     engine.History(),
	}
}

// WriteSessionReport renders the report with the template at templatePath,
// or with the embedded template when the path is empty or cannot be parsed.
func WriteSessionReport(output io.Writer, templatePath string, data SessionReport) error {
	tmpl, err := parseTemplateWithFallback(templatePath, sessionReportTemplateName, fallbackSessionReportTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
