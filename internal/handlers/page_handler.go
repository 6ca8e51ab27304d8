package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/render"
	"alfredoptarigan/resume-analyzer/internal/session"
	"alfredoptarigan/resume-analyzer/internal/uploader"
)

const uploadReadMessage = "Failed to read uploaded file"

var errFileTooLarge = errors.New("file too large")

// PageHandler serves the server-rendered upload page. Each browser gets its
// own upload controller through the session cookie.
type PageHandler struct {
	sessions    *session.Store
	maxFileSize int64
}

func NewPageHandler(sessions *session.Store, maxFileSize int64) *PageHandler {
	return &PageHandler{
		sessions:    sessions,
		maxFileSize: maxFileSize,
	}
}

func (h *PageHandler) HandlePage(c *fiber.Ctx) error {
	ctrl := h.controller(c)

	c.Type("html", "utf-8")
	return render.Page(c, render.NewPageData(ctrl.State()))
}

// HandleUpload feeds the first file of the "file" field into the session's
// controller, the same way a drop onto the page does.
func (h *PageHandler) HandleUpload(c *fiber.Ctx) error {
	ctrl := h.controller(c)

	form, err := c.MultipartForm()
	if err != nil {
		log.Printf("⚠️  Failed to parse upload form: %v\n", err)
		ctrl.Reject(uploadReadMessage)
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	files := form.File["file"]
	if len(files) == 0 {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	selected, err := h.readFile(files[0])
	if err != nil {
		log.Printf("⚠️  Failed to read uploaded file: %v\n", err)
		if errors.Is(err, errFileTooLarge) {
			ctrl.Reject(fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize))
		} else {
			ctrl.Reject(uploadReadMessage)
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	ctrl.Drop([]uploader.SelectedFile{*selected})
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleAnalyze runs the analysis for the session's file and waits for it,
// so the redirected page shows the outcome.
func (h *PageHandler) HandleAnalyze(c *fiber.Ctx) error {
	ctrl := h.controller(c)

	ctrl.Analyze(c.UserContext())
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *PageHandler) controller(c *fiber.Ctx) *uploader.Controller {
	id, ctrl := h.sessions.Get(c.Cookies(session.CookieName))

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return ctrl
}

func (h *PageHandler) readFile(header *multipart.FileHeader) (*uploader.SelectedFile, error) {
	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes, max %d", errFileTooLarge, header.Size, h.maxFileSize)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return &uploader.SelectedFile{
		Name: header.Filename,
		Type: partType(header),
		Data: data,
	}, nil
}

// partType is the MIME type the browser declared for the part, or the one
// its extension implies when the browser sent none.
func partType(header *multipart.FileHeader) string {
	declared := header.Header.Get(fiber.HeaderContentType)
	if declared != "" && declared != fiber.MIMEOctetStream {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil {
			return mediaType
		}
		return declared
	}

	if byExt := mime.TypeByExtension(filepath.Ext(header.Filename)); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
	}
	return declared
}
