package client

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/uploader"
)

// FormField is the multipart field the analysis service reads the PDF from.
const FormField = "file"

type Client struct {
	serviceURL string
	timeout    time.Duration
}

// New returns a client for the analysis endpoint at serviceURL. A zero
// timeout leaves the request unbounded.
func New(serviceURL string, timeout time.Duration) *Client {
	return &Client{
		serviceURL: serviceURL,
		timeout:    timeout,
	}
}

type reply struct {
	code int
	body []byte
	errs []error
}

// Analyze uploads file and decodes the service answer. It makes exactly one
// attempt.
func (c *Client) Analyze(ctx context.Context, file uploader.SelectedFile) (*models.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, networkError(err)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); timeout == 0 || left < timeout {
			timeout = left
		}
	}

	agent := fiber.Post(c.serviceURL)
	agent.FileData(&fiber.FormFile{
		Fieldname: FormField,
		Name:      file.Name,
		Content:   file.Data,
	})
	agent.MultipartForm(nil)
	if timeout > 0 {
		agent.Timeout(timeout)
	}

	done := make(chan reply, 1)
	go func() {
		code, body, errs := agent.Bytes()
		done <- reply{code: code, body: body, errs: errs}
	}()

	var r reply
	select {
	case <-ctx.Done():
		return nil, networkError(ctx.Err())
	case r = <-done:
	}

	if len(r.errs) > 0 {
		return nil, networkError(r.errs[0])
	}

	return decode(r.code, r.body)
}

func decode(code int, body []byte) (*models.AnalysisResult, error) {
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return nil, statusError(code)
	}

	var resp models.AnalyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	if resp.Error != "" {
		return nil, &ServiceError{Message: resp.Error}
	}

	result := resp.AnalysisResult.WithDefaults()
	return &result, nil
}
