package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mandolyte/mdtopdf"
)

// WriteSessionPDF renders the session report as markdown and lays it out as an A4 PDF at pdfPath.
// It returns the absolute path of the written file.
func WriteSessionPDF(pdfPath string, templatePath string, data SessionReport) (string, error) {
	if filepath.Ext(pdfPath) != ".pdf" {
		return "", fmt.Errorf("output file must have .pdf extension: %s", pdfPath)
	}

	var markdown bytes.Buffer
	if err := WriteSessionReport(&markdown, templatePath, data); err != nil {
		return "", fmt.Errorf("WriteSessionReport() > %w", err)
	}

	if dir := filepath.Dir(pdfPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(markdown.Bytes()); err != nil {
		return "", fmt.Errorf("renderer.Process(%s) > %w", pdfPath, err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
