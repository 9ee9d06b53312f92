// Package scoring is a client for the external resume scoring service.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PaulBabatuyi/jobboard/internal/data"
)

const (
	singlePath = "/api/single-resume-check"
	batchPath  = "/api/resume-checker"
	statusPath = "/api/status"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 4 << 20

// File is an in-memory upload.
type File struct {
	Name string
	Data []byte
}

// SingleRequest scores one resume against one job description, given either
// as text or as a file.
type SingleRequest struct {
	Resume             File
	JobDescription     string
	JobDescriptionFile *File
	MaxScore           int
	CutoffScore        int
}

// Validate checks the request before anything is sent.
func (r SingleRequest) Validate() error {
	if len(r.Resume.Data) == 0 {
		return fmt.Errorf("%w: resume file is required", data.ErrInvalid)
	}
	if r.JobDescriptionFile == nil && strings.TrimSpace(r.JobDescription) == "" {
		return fmt.Errorf("%w: job description text or file is required", data.ErrInvalid)
	}
	if r.MaxScore <= 0 {
		return fmt.Errorf("%w: max score must be positive", data.ErrInvalid)
	}
	if r.CutoffScore < 0 || r.CutoffScore > r.MaxScore {
		return fmt.Errorf("%w: cutoff score must be between 0 and %d", data.ErrInvalid, r.MaxScore)
	}
	return nil
}

// Result is the service's verdict for one resume and job description.
type Result struct {
	Score                float64 `json:"score"`
	Reasoning            string  `json:"reasoning"`
	ResumeName           string  `json:"resume_name"`
	JobDescriptionSource string  `json:"job_description_source,omitempty"`
	JobDescription       string  `json:"job_description,omitempty"`
	ChunksUsed           int     `json:"chunks_used"`
}

// BatchRequest scores every resume against every job description.
type BatchRequest struct {
	Resumes             []File
	JobDescriptions     []string
	JobDescriptionFiles []File
}

// BatchResult is the response of a batch check.
type BatchResult struct {
	Results              []Result `json:"results"`
	TotalProcessed       int      `json:"total_processed"`
	ResumesCount         int      `json:"resumes_count"`
	JobDescriptionsCount int      `json:"job_descriptions_count"`
}

// APIError is a non-2xx answer from the scoring service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scoring service returned status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the scoring service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CheckSingle scores one resume.
func (c *Client) CheckSingle(ctx context.Context, req SingleRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, contentType, err := buildForm(func(w *multipart.Writer) error {
		if err := writeFile(w, "resume", req.Resume); err != nil {
			return err
		}
		if req.JobDescriptionFile != nil {
			if err := writeFile(w, "job_description_file", *req.JobDescriptionFile); err != nil {
				return err
			}
		} else if err := w.WriteField("job_description", req.JobDescription); err != nil {
			return err
		}
		if err := w.WriteField("max_score", strconv.Itoa(req.MaxScore)); err != nil {
			return err
		}
		return w.WriteField("cutoff_score", strconv.Itoa(req.CutoffScore))
	})
	if err != nil {
		return nil, err
	}

	var result Result
	if err := c.post(ctx, singlePath, body, contentType, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckBatch scores several resumes against several job descriptions.
func (c *Client) CheckBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if len(req.Resumes) == 0 {
		return nil, fmt.Errorf("%w: no resume files provided", data.ErrInvalid)
	}
	if len(req.JobDescriptions) == 0 && len(req.JobDescriptionFiles) == 0 {
		return nil, fmt.Errorf("%w: no job descriptions provided", data.ErrInvalid)
	}

	body, contentType, err := buildForm(func(w *multipart.Writer) error {
		for i, f := range req.Resumes {
			if err := writeFile(w, fmt.Sprintf("resume_%d", i), f); err != nil {
				return err
			}
		}
		for i, jd := range req.JobDescriptions {
			if err := w.WriteField(fmt.Sprintf("job_description_%d", i), jd); err != nil {
				return err
			}
		}
		for i, f := range req.JobDescriptionFiles {
			if err := writeFile(w, fmt.Sprintf("job_description_file_%d", i), f); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var result BatchResult
	if err := c.post(ctx, batchPath, body, contentType, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ping checks that the service is up.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+statusPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: scoring status: %w", data.ErrFetch, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body *bytes.Buffer, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: scoring request: %w", data.ErrFetch, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read scoring response: %w", data.ErrFetch, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(bodyBytes)}
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode scoring response: %w", err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} from a failure body, or returns it raw.
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}

func buildForm(fill func(w *multipart.Writer) error) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := fill(w); err != nil {
		return nil, "", fmt.Errorf("failed to build form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to build form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, field string, f File) error {
	name := f.Name
	if name == "" {
		name = field + ".pdf"
	}
	part, err := w.CreateFormFile(field, name)
	if err != nil {
		return err
	}
	_, err = part.Write(f.Data)
	return err
}
