// Package submission owns the evaluation request lifecycle: a strict
// Idle -> Submitting -> (Idle | Error -> Idle) cycle with a single owner.
package submission

import (
	"github.com/google/uuid"
)

// Phase is the UI phase governing the submit control.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Labels of the submit control.
const (
	IdleLabel       = "Evaluate Capabilities"
	SubmittingLabel = "Analyzing..."
)

// Attempt identifies one submission. Completions for any attempt other
// than the current one are ignored.
type Attempt struct {
	Seq uint64
	ID  string
}

// Controller is the single owner of the submit phase. The zero value is an
// idle controller.
type Controller struct {
	phase   Phase
	current Attempt
	seq     uint64
	message string
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Current returns the attempt in flight or awaiting acknowledgement.
func (c *Controller) Current() Attempt {
	return c.current
}

// Begin acquires the submit control. It returns false while any attempt is
// in flight or its error is still on screen; that is the disabled-button gate.
func (c *Controller) Begin() (Attempt, bool) {
	if c.phase != PhaseIdle {
		return Attempt{}, false
	}
	c.seq++
	c.current = Attempt{Seq: c.seq, ID: uuid.NewString()}
	c.phase = PhaseSubmitting
	c.message = ""
	return c.current, true
}

// Succeed completes the attempt and releases the control.
func (c *Controller) Succeed(a Attempt) bool {
	if !c.owns(a) {
		return false
	}
	c.release()
	return true
}

// Fail moves the attempt to the error phase. The control stays held until
// the notification is acknowledged.
func (c *Controller) Fail(a Attempt, err error) bool {
	if !c.owns(a) {
		return false
	}
	c.phase = PhaseError
	c.message = NotificationText(err)
	return true
}

// Acknowledge dismisses the error notification and releases the control.
func (c *Controller) Acknowledge() bool {
	if c.phase != PhaseError {
		return false
	}
	c.release()
	return true
}

// Message returns the notification text while in the error phase.
func (c *Controller) Message() string {
	return c.message
}

// SubmitEnabled reports whether the submit control accepts input.
func (c *Controller) SubmitEnabled() bool {
	return c.phase == PhaseIdle
}

// ButtonLabel returns the submit control's text.
func (c *Controller) ButtonLabel() string {
	if c.phase == PhaseIdle {
		return IdleLabel
	}
	return SubmittingLabel
}

// Loading reports whether the loading indicator is visible.
func (c *Controller) Loading() bool {
	return c.phase != PhaseIdle
}

func (c *Controller) owns(a Attempt) bool {
	return c.phase == PhaseSubmitting && a.Seq == c.current.Seq
}

func (c *Controller) release() {
	c.phase = PhaseIdle
	c.message = ""
}

// NotificationText formats an error for the blocking notification.
func NotificationText(err error) string {
	if err == nil {
		return "Error: unknown error"
	}
	return "Error: " + err.Error()
}
