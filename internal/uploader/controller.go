package uploader

import (
	"context"
	"fmt"
	"log"
	"sync"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// AnalysisService submits a selected file for analysis.
type AnalysisService interface {
	Analyze(ctx context.Context, file SelectedFile) (*models.AnalysisResult, error)
}

// Controller owns one page session's State and serialises every transition.
type Controller struct {
	mu      sync.Mutex
	state   State
	service AnalysisService
}

func NewController(service AnalysisService) *Controller {
	return &Controller{service: service}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) CanAnalyze() bool {
	return c.State().CanAnalyze()
}

func (c *Controller) dispatch(e Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, e)
	return c.state
}

// SelectFile gates a candidate file. Non-PDFs set the rejection message and
// leave the current selection alone.
func (c *Controller) SelectFile(candidate SelectedFile) State {
	return c.dispatch(FileChosen{File: candidate})
}

func (c *Controller) DragOver() State {
	return c.dispatch(DragOver{})
}

func (c *Controller) DragLeave() State {
	return c.dispatch(DragLeave{})
}

// Reject shows message without touching the selection, for uploads that
// never produced a file to gate.
func (c *Controller) Reject(message string) State {
	return c.dispatch(SelectionRejected{Message: message})
}

func (c *Controller) Drop(files []SelectedFile) State {
	return c.dispatch(Dropped{Files: files})
}

// Analyze runs one analysis of the selected file. It returns false without
// doing anything when no file is selected or another analysis is in flight.
func (c *Controller) Analyze(ctx context.Context) (started bool) {
	c.mu.Lock()
	if !c.state.CanAnalyze() {
		c.mu.Unlock()
		return false
	}
	c.state = Reduce(c.state, AnalysisStarted{})
	selection := c.state.File
	file := *selection
	c.mu.Unlock()
	started = true

	var outcome Event = AnalysisFailed{File: selection, Message: "analysis did not complete"}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Analysis of %s panicked: %v\n", file.Name, r)
			outcome = AnalysisFailed{File: selection, Message: fmt.Sprint(r)}
		}
		c.dispatch(outcome)
	}()

	result, err := c.service.Analyze(ctx, file)
	switch {
	case err != nil:
		log.Printf("⚠️  Analysis of %s failed: %v\n", file.Name, err)
		outcome = AnalysisFailed{File: selection, Message: err.Error()}
	case result == nil:
		outcome = AnalysisFailed{File: selection, Message: "empty analysis result"}
	default:
		log.Printf("✅ Analysis of %s completed: %s\n", file.Name, result.Classification)
		outcome = AnalysisSucceeded{File: selection, Result: *result}
	}

	return true
}
