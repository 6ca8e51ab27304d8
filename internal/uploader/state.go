package uploader

import "alfredoptarigan/resume-analyzer/internal/models"

const (
	PDFMimeType      = "application/pdf"
	RejectionMessage = "Only PDF files allowed"
)

// SelectedFile is a file handed over by the picker or a drop.
type SelectedFile struct {
	Name string
	Type string
	Data []byte
}

func (f SelectedFile) IsPDF() bool {
	return f.Type == PDFMimeType
}

// State is everything the upload page shows.
type State struct {
	File       *SelectedFile
	Result     *models.AnalysisResult
	Loading    bool
	Error      string
	DragActive bool
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFileSelected
	PhaseAnalyzing
	PhaseResult
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFileSelected:
		return "file_selected"
	case PhaseAnalyzing:
		return "analyzing"
	case PhaseResult:
		return "result"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseAnalyzing
	case s.Error != "":
		return PhaseError
	case s.Result != nil:
		return PhaseResult
	case s.File != nil:
		return PhaseFileSelected
	default:
		return PhaseIdle
	}
}

// CanAnalyze reports whether the submit affordance is enabled.
func (s State) CanAnalyze() bool {
	return s.File != nil && !s.Loading
}

type Event interface {
	apply(s State) State
}

type FileChosen struct {
	File SelectedFile
}

type DragOver struct{}

type DragLeave struct{}

// Dropped carries every file of a drop payload; only the first one counts.
type Dropped struct {
	Files []SelectedFile
}

type AnalysisStarted struct{}

// AnalysisSucceeded and AnalysisFailed name the selection they were started
// for. When File no longer matches the state's selection the outcome only
// ends the loading phase. A nil File applies unconditionally.
type AnalysisSucceeded struct {
	File   *SelectedFile
	Result models.AnalysisResult
}

type AnalysisFailed struct {
	File    *SelectedFile
	Message string
}

// SelectionRejected reports a file that could not be taken from the upload
// at all. The current selection is kept.
type SelectionRejected struct {
	Message string
}

// Reduce returns the state that follows s after e. It never mutates s.
func Reduce(s State, e Event) State {
	if e == nil {
		return s
	}
	return e.apply(s)
}

func (e FileChosen) apply(s State) State {
	if !e.File.IsPDF() {
		s.Error = RejectionMessage
		return s
	}
	file := e.File
	s.File = &file
	s.Error = ""
	s.Result = nil
	return s
}

func (DragOver) apply(s State) State {
	s.DragActive = true
	return s
}

func (DragLeave) apply(s State) State {
	s.DragActive = false
	return s
}

func (e Dropped) apply(s State) State {
	s.DragActive = false
	if len(e.Files) == 0 {
		return s
	}
	return FileChosen{File: e.Files[0]}.apply(s)
}

func (AnalysisStarted) apply(s State) State {
	if !s.CanAnalyze() {
		return s
	}
	s.Loading = true
	s.Error = ""
	return s
}

func (e AnalysisSucceeded) apply(s State) State {
	s.Loading = false
	if e.File != nil && e.File != s.File {
		return s
	}
	result := e.Result.WithDefaults()
	s.Error = ""
	s.Result = &result
	return s
}

func (e AnalysisFailed) apply(s State) State {
	s.Loading = false
	if e.File != nil && e.File != s.File {
		return s
	}
	s.Error = e.Message
	return s
}

func (e SelectionRejected) apply(s State) State {
	s.Error = e.Message
	return s
}
