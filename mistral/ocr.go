package mistral

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/hazyhaar/tariffpipe/tariff"
)

// ocrRequest is the /v1/ocr request payload.
type ocrRequest struct {
	Model    string      `json:"model"`
	Document ocrDocument `json:"document"`
}

type ocrDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url"`
}

// ocrResponse is the /v1/ocr response payload.
type ocrResponse struct {
	Pages []ocrPage `json:"pages"`
}

type ocrPage struct {
	Index    int    `json:"index"`
	Markdown string `json:"markdown"`
}

// ExtractText runs the OCR model over doc and returns the page markdowns
// joined with newlines. Local bytes are sent inline as a base64 data URI;
// a document that only carries a URL is fetched by the service itself.
func (c *Client) ExtractText(ctx context.Context, doc tariff.Document) (string, error) {
	url := doc.URL
	if len(doc.Data) > 0 {
		url = "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(doc.Data)
	}
	if url == "" {
		return "", fmt.Errorf("document %q has neither data nor URL", doc.Name)
	}

	req := ocrRequest{
		Model: c.cfg.OCRModel,
		Document: ocrDocument{
			Type:        "document_url",
			DocumentURL: url,
		},
	}

	var resp ocrResponse
	if err := c.post(ctx, "/v1/ocr", req, &resp); err != nil {
		return "", fmt.Errorf("ocr %q: %w", doc.Name, err)
	}

	pages := make([]string, 0, len(resp.Pages))
	for _, p := range resp.Pages {
		pages = append(pages, p.Markdown)
	}
	text := strings.Join(pages, "\n")

	c.logger.Info("OCR complete",
		"document", doc.Name,
		"pages", len(resp.Pages),
		"chars", len(text))
	return text, nil
}
