package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/hazyhaar/tariffpipe/tariff"
)

const tariffText = `| Room Category | Plan | Price |
| --- | --- | --- |
| Deluxe | MAPAI | 6000 |
`

type stubOCR struct {
	text string
	err  error
}

func (s stubOCR) ExtractText(_ context.Context, _ tariff.Document) (string, error) {
	return s.text, s.err
}

func testService(t *testing.T, ocr tariff.OCRProvider) *Service {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.UploadDir = filepath.Join(dir, "uploads")
	cfg.OutputDir = filepath.Join(dir, "output")
	cfg.DBPath = filepath.Join(dir, "runs.db")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := NewService(cfg, logger, WithCollaborators(ocr, nil))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func testRouter(svc *Service) *chi.Mux {
	r := chi.NewRouter()
	svc.RegisterHTTP(r)
	return r
}

func multipartPDF(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	svc := testService(t, stubOCR{text: tariffText})
	r := testRouter(svc)

	// Junk after the magic prefix: pdf validation is advisory and must
	// not block extraction.
	body, ctype := multipartPDF(t, "file", "grand_azure.pdf", []byte("%PDF-1.4 not a real pdf"))
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Document string       `json:"document"`
		Count    int          `json:"count"`
		Rows     []tariff.Row `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "grand_azure.pdf", resp.Document)
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "MAP", resp.Rows[0][tariff.KeyPlan])
	require.Equal(t, "grand_azure", resp.Rows[0][tariff.KeyHotel])
}

func TestUpload_EmptyResultIsNotAnError(t *testing.T) {
	svc := testService(t, stubOCR{text: "no tables in this document"})
	r := testRouter(svc)

	body, ctype := multipartPDF(t, "file", "empty.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Count int          `json:"count"`
		Rows  []tariff.Row `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Count)
	require.NotNil(t, resp.Rows)
}

func TestUpload_Rejections(t *testing.T) {
	svc := testService(t, stubOCR{text: tariffText})
	r := testRouter(svc)

	tests := []struct {
		name     string
		field    string
		filename string
		data     []byte
	}{
		{"wrong field", "document", "a.pdf", []byte("%PDF-1.4")},
		{"not a pdf extension", "file", "a.docx", []byte("%PDF-1.4")},
		{"wrong magic", "file", "a.pdf", []byte("GIF89a not a pdf")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ctype := multipartPDF(t, tt.field, tt.filename, tt.data)
			req := httptest.NewRequest("POST", "/upload", body)
			req.Header.Set("Content-Type", ctype)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRuns(t *testing.T) {
	svc := testService(t, stubOCR{text: tariffText})
	r := testRouter(svc)

	body, ctype := multipartPDF(t, "file", "grand_azure.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/runs", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var runs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	require.Equal(t, "generic_table", runs[0]["strategy"])
}

func TestHealthz(t *testing.T) {
	svc := testService(t, stubOCR{text: ""})
	r := testRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ok")
}

func TestNewService_RequiresAPIKey(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.UploadDir = filepath.Join(dir, "uploads")
	cfg.OutputDir = filepath.Join(dir, "output")
	cfg.DBPath = filepath.Join(dir, "runs.db")
	cfg.Mistral.APIKeyEnv = "TARIFFPIPE_TEST_ABSENT_KEY"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := NewService(cfg, logger)
	require.Error(t, err)
}
