package ingest

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfPageCount parses the PDF and returns its page count.
func pdfPageCount(rs io.ReadSeeker) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(rs, model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("parse pdf: %w", err)
	}
	return ctx.PageCount, nil
}
