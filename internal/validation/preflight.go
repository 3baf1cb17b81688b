package validation

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/rankview/internal/client"
	apperrors "github.com/alexisbeaulieu97/rankview/pkg/errors"
)

// Role says which form field a document belongs to.
type Role string

const (
	RoleJobDescription Role = "job description"
	RoleCandidate      Role = "candidate"
)

// Result captures the outcome of checking a single document.
type Result struct {
	Role    Role
	Path    string
	Passed  bool
	Message string
	Error   error
}

// Report is the outcome of a preflight run.
type Report struct {
	Results []Result
	// TotalBytes is the combined size of every document.
	TotalBytes int64
	// OverLimit is set when TotalBytes exceeds the upload limit.
	OverLimit bool
}

// Failed returns the results that did not pass, optionally limited to one role.
func (r Report) Failed(role Role) []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Passed && (role == "" || res.Role == role) {
			failed = append(failed, res)
		}
	}
	return failed
}

// Preflight checks every document of form. A failing job description is
// returned as an error because the service rejects the whole request for
// it; failing candidates are only reported since the service skips them.
// A limit of zero disables the size check.
func Preflight(form client.Form, limit int64) (Report, error) {
	report := Report{Results: make([]Result, 0, len(form.Candidates)+1)}

	report.Results = append(report.Results, check(RoleJobDescription, form.JobDescription))
	for _, path := range form.Candidates {
		report.Results = append(report.Results, check(RoleCandidate, path))
	}

	paths := append([]string{form.JobDescription}, form.Candidates...)
	report.TotalBytes = TotalSize(paths)
	report.OverLimit = limit > 0 && report.TotalBytes > limit

	if failed := report.Failed(RoleJobDescription); len(failed) > 0 {
		return report, apperrors.NewValidationError("jd", failed[0].Message, failed[0].Error)
	}
	if len(form.Candidates) > 0 && len(report.Failed(RoleCandidate)) == len(form.Candidates) {
		messages := make([]string, 0, len(form.Candidates))
		for _, res := range report.Failed(RoleCandidate) {
			messages = append(messages, res.Message)
		}
		return report, apperrors.NewValidationError("resumes", fmt.Sprintf("no usable candidates: %s", strings.Join(messages, "; ")), nil)
	}
	return report, nil
}

func check(role Role, path string) Result {
	result := Result{Role: role, Path: path}

	for _, fn := range []func(string) error{CheckFileExists, CheckExtension, CheckNotEmpty} {
		if err := fn(path); err != nil {
			result.Message = err.Error()
			result.Error = err
			return result
		}
	}

	result.Passed = true
	result.Message = "passed"
	return result
}
