package render

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	texttemplate "text/template"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/uploader"
)

//go:embed templates/*
var templateFS embed.FS

var (
	pageTemplate = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/page.html"))
	textTemplate = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/dashboard.txt"))
)

// PageData is what the upload page needs from one session's state. Drag
// hover is not part of it; the page script toggles the dropzone highlight.
type PageData struct {
	FileName   string
	HasFile    bool
	Loading    bool
	CanAnalyze bool
	Error      string
	Dashboard  *Dashboard
}

func NewPageData(state uploader.State) PageData {
	data := PageData{
		Loading:    state.Loading,
		CanAnalyze: state.CanAnalyze(),
		Error:      state.Error,
	}

	if state.File != nil {
		data.HasFile = true
		data.FileName = state.File.Name
	}

	if state.Result != nil {
		d := NewDashboard(*state.Result)
		data.Dashboard = &d
	}

	return data
}

// Page writes the full upload page.
func Page(w io.Writer, data PageData) error {
	if err := pageTemplate.ExecuteTemplate(w, "page.html", data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// Text writes the dashboard of result as plain text.
func Text(w io.Writer, result models.AnalysisResult) error {
	if err := textTemplate.ExecuteTemplate(w, "dashboard.txt", NewDashboard(result)); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}
