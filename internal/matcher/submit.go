package matcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rmoralesp/jobfit/internal/utils"
)

const (
	jobTextField = "job_text"
	fileField    = "file"

	previewLogLength = 120
)

// File is one resume attached to a submission.
type File struct {
	Name    string
	Content io.Reader
}

// Submit sends the job text and the resume files to the matching service in a
// single multipart request. Files are attached under a repeated field so the
// server receives them as an ordered list.
func (c *Client) Submit(jobText string, files []File) (*MatchResult, error) {
	requestID := uuid.NewString()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	field, err := w.CreateFormField(jobTextField)
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(field, strings.NewReader(jobText)); err != nil {
		return nil, err
	}

	for _, f := range files {
		part, err := w.CreateFormFile(fileField, f.Name)
		if err != nil {
			return nil, err
		}
		if _, err = io.Copy(part, f.Content); err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
	}
	w.Close()

	resumeURL := fmt.Sprintf("%s%s", c.APIURL, resumePath)

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, resumeURL, &b)
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("submitting resumes",
		zap.String("request_id", requestID),
		zap.Int("files", len(files)),
	)

	resp, err := c.request(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, data)
	}

	var result *MatchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding match result: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("malformed response: empty body")
	}

	if err := result.validate(); err != nil {
		return nil, err
	}

	for i, text := range result.ExtractedTexts {
		c.logger.Debug("extracted text",
			zap.String("request_id", requestID),
			zap.Int("index", i),
			zap.Float64("score", result.PredictionScores[i]),
			zap.String("preview", utils.TruncateForLog(text, previewLogLength)),
		)
	}

	return result, nil
}
