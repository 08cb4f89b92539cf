package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
	"github.com/netmon-lab/tacdesk/pkg/utils/safe"
)

// ProgressFunc receives upload progress as bytes are written to the wire
type ProgressFunc func(sent, total int64)

// UploadOption configures an upload request
type UploadOption func(*uploadConfig)

type uploadConfig struct {
	progress ProgressFunc
}

// WithProgress registers a callback invoked as the request body is sent
func WithProgress(fn ProgressFunc) UploadOption {
	return func(cfg *uploadConfig) {
		cfg.progress = fn
	}
}

// countingReader reports cumulative bytes read from the request body
type countingReader struct {
	r        io.Reader
	total    int64
	sent     int64
	progress ProgressFunc
}

func (x *countingReader) Read(p []byte) (int, error) {
	n, err := x.r.Read(p)
	if n > 0 {
		x.sent += int64(n)
		if x.progress != nil {
			x.progress(x.sent, x.total)
		}
	}
	return n, err
}

// UploadKnowledgeBase ingests a document into the agent's knowledge base.
// The returned message is the backend's ingestion summary.
func (c *Client) UploadKnowledgeBase(ctx context.Context, filename string, file io.Reader, opts ...UploadOption) (string, error) {
	fields := []multipartField{{name: "file", filename: filename, r: file}}

	var result struct {
		Message string `json:"message"`
	}
	if err := c.postMultipart(ctx, "/upload_kb", fields, &result, opts...); err != nil {
		return "", err
	}
	return result.Message, nil
}

// AnalyzeRequest starts a log analysis for a case
type AnalyzeRequest struct {
	CaseID        types.CaseID
	ReportedIssue string
	LogFilename   string
	LogFile       io.Reader
}

// AnalyzeCase uploads an extracted log file and starts the analysis task.
// Progress of the resulting task is polled via GetTaskStatus.
func (c *Client) AnalyzeCase(ctx context.Context, req AnalyzeRequest, opts ...UploadOption) (types.TaskID, error) {
	if err := req.CaseID.Validate(); err != nil {
		return "", goerr.Wrap(err, "invalid case ID")
	}
	if req.ReportedIssue == "" {
		return "", goerr.New("reported issue is required")
	}
	if req.LogFile == nil {
		return "", goerr.New("log file is required")
	}

	fields := []multipartField{
		{name: "case_id", value: req.CaseID.String()},
		{name: "reported_issue", value: req.ReportedIssue},
		{name: "log_file", filename: req.LogFilename, r: req.LogFile},
	}

	var result struct {
		TaskID types.TaskID `json:"task_id"`
	}
	if err := c.postMultipart(ctx, "/analyze_case", fields, &result, opts...); err != nil {
		return "", err
	}
	return result.TaskID, nil
}

// multipartField is either a plain form value or a file part
type multipartField struct {
	name     string
	value    string
	filename string
	r        io.Reader
}

func (c *Client) postMultipart(ctx context.Context, path string, fields []multipartField, out any, opts ...UploadOption) error {
	var cfg uploadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	// The body is assembled up front so the total size is known for
	// byte-level progress reporting.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		if f.r == nil {
			if err := mw.WriteField(f.name, f.value); err != nil {
				return goerr.Wrap(err, "failed to write form field", goerr.V("field", f.name))
			}
			continue
		}
		part, err := mw.CreateFormFile(f.name, f.filename)
		if err != nil {
			return goerr.Wrap(err, "failed to create form file", goerr.V("field", f.name))
		}
		if _, err := io.Copy(part, f.r); err != nil {
			return goerr.Wrap(err, "failed to read upload file", goerr.V("field", f.name))
		}
	}
	if err := mw.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize multipart body")
	}

	body := &countingReader{r: &buf, total: int64(buf.Len()), progress: cfg.progress}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), body)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("path", path))
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = body.total

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request failed", goerr.V("path", path))
	}
	defer safe.Close(ctx, resp.Body)

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode response", goerr.V("path", path))
	}
	return nil
}
