// Package client submits evaluation requests to the scoring service.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/alexisbeaulieu97/rankview/internal/evaluation"
	"github.com/alexisbeaulieu97/rankview/internal/logger"
	apperrors "github.com/alexisbeaulieu97/rankview/pkg/errors"
)

// Multipart field names expected by the evaluation service.
const (
	JobDescriptionField = "jd"
	CandidatesField     = "resumes"
	EvaluatePath        = "/evaluate"
)

// Form is the submit-time snapshot of the form fields.
type Form struct {
	JobDescription string
	Candidates     []string
	Fields         map[string]string
}

// Options configures a Client.
type Options struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Client talks to one evaluation endpoint.
type Client struct {
	url     string
	timeout time.Duration
	http    *http.Client
	log     *logger.Logger
}

// New builds a Client. Endpoint is the service base URL; the evaluate path
// is appended to it.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(opts.Endpoint))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, apperrors.NewValidationError("endpoint", fmt.Sprintf("invalid endpoint %q", opts.Endpoint), err)
	}
	base.Path = strings.TrimSuffix(base.Path, "/") + EvaluatePath

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		url:     base.String(),
		timeout: opts.Timeout,
		http:    httpClient,
		log:     opts.Logger,
	}, nil
}

// URL returns the full evaluate URL.
func (c *Client) URL() string {
	return c.url
}

// Evaluate posts the form and returns the parsed result set. Failures are
// TransportError, DecodeError or ServiceError.
func (c *Client) Evaluate(ctx context.Context, form Form) (evaluation.ResultSet, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, contentType, err := encodeForm(form)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, apperrors.NewTransportError("build request", err)
	}
	req.Header.Set("Content-Type", contentType)

	c.log.WithFields(map[string]any{
		"url":        c.url,
		"candidates": len(form.Candidates),
	}).Debug("posting evaluation request")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.NewTransportError("evaluation request timed out", err)
		}
		return nil, apperrors.NewTransportError("evaluation request failed", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransportError("read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := evaluation.DecodeServiceError(resp.StatusCode, payload)
		c.log.WithFields(map[string]any{"status": resp.StatusCode}).Error(err, "evaluation rejected")
		return nil, err
	}

	set, err := evaluation.DecodeResultSet(payload)
	if err != nil {
		c.log.Error(err, "evaluation response malformed")
		return nil, err
	}

	c.log.WithFields(map[string]any{"results": len(set)}).Info("evaluation completed")
	return set, nil
}

// encodeForm builds the multipart body. Part content types are sniffed from
// file contents the way a browser labels picked files.
func encodeForm(form Form) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if form.JobDescription != "" {
		if err := writeFile(w, JobDescriptionField, form.JobDescription); err != nil {
			return nil, "", err
		}
	}
	for _, path := range form.Candidates {
		if err := writeFile(w, CandidatesField, path); err != nil {
			return nil, "", err
		}
	}

	keys := make([]string, 0, len(form.Fields))
	for k := range form.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, form.Fields[k]); err != nil {
			return nil, "", apperrors.NewTransportError("encode form", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", apperrors.NewTransportError("encode form", err)
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFile(w *multipart.Writer, field, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewTransportError("read "+filepath.Base(path), err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(field), quoteEscaper.Replace(filepath.Base(path))))
	header.Set("Content-Type", mimetype.Detect(data).String())

	part, err := w.CreatePart(header)
	if err != nil {
		return apperrors.NewTransportError("encode form", err)
	}
	if _, err := part.Write(data); err != nil {
		return apperrors.NewTransportError("encode form", err)
	}
	return nil
}
