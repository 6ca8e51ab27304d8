package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/client"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/session"
	"alfredoptarigan/resume-analyzer/internal/uploader"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")

type stubService struct {
	calls  int32
	result *models.AnalysisResult
	err    error
	file   uploader.SelectedFile
}

func (s *stubService) Analyze(_ context.Context, file uploader.SelectedFile) (*models.AnalysisResult, error) {
	atomic.AddInt32(&s.calls, 1)
	s.file = file
	return s.result, s.err
}

func newPageApp(service uploader.AnalysisService) *fiber.App {
	h := handlers.NewPageHandler(session.NewStore(service, time.Hour), 1<<20)

	app := fiber.New()
	app.Get("/", h.HandlePage)
	app.Post("/upload", h.HandleUpload)
	app.Post("/analyze", h.HandleAnalyze)
	return app
}

func TestPageIdle(t *testing.T) {
	t.Parallel()

	b := &browser{t: t, app: newPageApp(&stubService{})}
	doc := b.page()

	require.NotNil(t, b.cookie)
	assert.True(t, b.cookie.HttpOnly)
	_, disabled := doc.Find("#analyze").Attr("disabled")
	assert.True(t, disabled)
	assert.Zero(t, doc.Find("#dashboard").Length())
	assert.Zero(t, doc.Find("#error").Length())
}

// A resume is dropped, analyzed through the real client and shown on the
// dashboard.
func TestPageDropAnalyzeAndRender(t *testing.T) {
	t.Parallel()

	var received atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		file, header, err := r.FormFile("file")
		if err != nil || header.Filename != "resume.pdf" {
			http.Error(w, "bad upload", http.StatusBadRequest)
			return
		}
		file.Close()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"classification":"Web Developer","confidence":0.87,"experience_years":5,` +
			`"experience_level":"Senior","name":"Jane Doe","email":"jane@example.com","phone":null,` +
			`"education":["BSc Computer Science"],"skills":["React","CSS"]}`))
	}))
	defer server.Close()

	b := &browser{t: t, app: newPageApp(client.New(server.URL, 5*time.Second))}
	b.page()

	resp := b.do(multipartRequest(t, "/upload", "file", upload{"resume.pdf", "application/pdf", pdfBytes}))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	doc := b.page()
	assert.Equal(t, "resume.pdf", strings.TrimSpace(doc.Find("#file-name").Text()))
	_, disabled := doc.Find("#analyze").Attr("disabled")
	assert.False(t, disabled)

	resp = b.do(httptest.NewRequest(http.MethodPost, "/analyze", nil))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, int32(1), received.Load())

	doc = b.page()
	assert.Equal(t, "Web Developer", doc.Find("#classification").Text())
	assert.Equal(t, "87%", doc.Find("#confidence").Text())
	assert.True(t, doc.Find("#confidence-bar").HasClass("strong"))
	assert.Equal(t, "5", doc.Find("#experience-years").Text())
	assert.True(t, doc.Find("#experience-level").HasClass("senior"))
	assert.Equal(t, "Jane Doe", doc.Find("#candidate-name").Text())
	assert.Equal(t, "jane@example.com", doc.Find("#candidate-email").Text())
	assert.Equal(t, "N/A", doc.Find("#candidate-phone").Text())
	assert.Equal(t, []string{"BSc Computer Science"}, doc.Find("#education li").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	}))
	assert.Equal(t, []string{"React", "CSS"}, doc.Find("#skills .skill-name").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	}))
	assert.Zero(t, doc.Find("#error").Length())
}

func TestPageRejectsNonPDF(t *testing.T) {
	t.Parallel()

	service := &stubService{}
	b := &browser{t: t, app: newPageApp(service)}

	b.do(multipartRequest(t, "/upload", "file", upload{"notes.txt", "text/plain", []byte("hello")}))
	b.do(httptest.NewRequest(http.MethodPost, "/analyze", nil))

	doc := b.page()
	assert.Equal(t, uploader.RejectionMessage, strings.TrimSpace(doc.Find("#error").Text()))
	assert.Zero(t, doc.Find("#file-name").Length())
	assert.Zero(t, atomic.LoadInt32(&service.calls))
}

func TestPageUploadTooLarge(t *testing.T) {
	t.Parallel()

	service := &stubService{}
	b := &browser{t: t, app: newPageApp(service)}

	b.do(multipartRequest(t, "/upload", "file", upload{"resume.pdf", "application/pdf", pdfBytes}))

	oversized := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{' '}, 1<<20)...)
	resp := b.do(multipartRequest(t, "/upload", "file", upload{"huge.pdf", "application/pdf", oversized}))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	doc := b.page()
	assert.Equal(t, fmt.Sprintf("File too large. Max size: %d bytes", 1<<20), strings.TrimSpace(doc.Find("#error").Text()))
	assert.Equal(t, "resume.pdf", strings.TrimSpace(doc.Find("#file-name").Text()), "previous selection is kept")
}

func TestPageUploadMalformedForm(t *testing.T) {
	t.Parallel()

	b := &browser{t: t, app: newPageApp(&stubService{})}

	resp := b.do(httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("not a form")))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	doc := b.page()
	assert.Equal(t, "Failed to read uploaded file", strings.TrimSpace(doc.Find("#error").Text()))
	assert.Zero(t, doc.Find("#file-name").Length())
}

func TestPageUploadConsidersFirstFileOnly(t *testing.T) {
	t.Parallel()

	service := &stubService{result: &models.AnalysisResult{Classification: "Data Scientist"}}
	b := &browser{t: t, app: newPageApp(service)}

	b.do(multipartRequest(t, "/upload", "file",
		upload{"first.pdf", "application/pdf", pdfBytes},
		upload{"second.pdf", "application/pdf", pdfBytes},
	))
	b.do(httptest.NewRequest(http.MethodPost, "/analyze", nil))

	assert.Equal(t, "first.pdf", service.file.Name)
	assert.Equal(t, pdfBytes, service.file.Data)
}

func TestPageUploadInfersTypeFromExtension(t *testing.T) {
	t.Parallel()

	service := &stubService{result: &models.AnalysisResult{Classification: "Data Scientist"}}
	b := &browser{t: t, app: newPageApp(service)}

	b.do(multipartRequest(t, "/upload", "file", upload{"cv.pdf", "application/octet-stream", pdfBytes}))
	b.do(httptest.NewRequest(http.MethodPost, "/analyze", nil))

	assert.Equal(t, uploader.PDFMimeType, service.file.Type)
	assert.Equal(t, "Data Scientist", b.page().Find("#classification").Text())
}

func TestPageAnalysisFailure(t *testing.T) {
	t.Parallel()

	service := &stubService{err: errors.New("PDF has no readable text")}
	b := &browser{t: t, app: newPageApp(service)}

	b.do(multipartRequest(t, "/upload", "file", upload{"resume.pdf", "application/pdf", pdfBytes}))
	b.do(httptest.NewRequest(http.MethodPost, "/analyze", nil))

	doc := b.page()
	assert.Equal(t, "PDF has no readable text", strings.TrimSpace(doc.Find("#error").Text()))
	assert.Zero(t, doc.Find("#dashboard").Length())
	_, disabled := doc.Find("#analyze").Attr("disabled")
	assert.False(t, disabled)
}

func TestPageAnalyzeWithoutFile(t *testing.T) {
	t.Parallel()

	service := &stubService{}
	b := &browser{t: t, app: newPageApp(service)}

	resp := b.do(httptest.NewRequest(http.MethodPost, "/analyze", nil))

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Zero(t, atomic.LoadInt32(&service.calls))
}

func TestPageSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	app := newPageApp(&stubService{})
	alice := &browser{t: t, app: app}
	bob := &browser{t: t, app: app}

	alice.do(multipartRequest(t, "/upload", "file", upload{"alice.pdf", "application/pdf", pdfBytes}))

	assert.Equal(t, "alice.pdf", strings.TrimSpace(alice.page().Find("#file-name").Text()))
	assert.Zero(t, bob.page().Find("#file-name").Length())
}
