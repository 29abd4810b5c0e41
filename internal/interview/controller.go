package interview

import (
	"errors"

	"github.com/hireform/hireform/internal/models"
	"github.com/hireform/hireform/internal/utils"
)

// ErrExhausted signals that the follow-up budget is spent and the only valid
// next action is submission of the full history.
var ErrExhausted = errors.New("follow-up questions exhausted")

// ErrDisabled signals that AI follow-ups are switched off on the form.
var ErrDisabled = errors.New("ai follow-ups disabled")

// State of the bounded follow-up conversation.
type State int

const (
	NotStarted State = iota
	AwaitingAnswer
	Exhausted
)

// Controller is the conversation state machine for one candidate response.
//
// The server keeps no session memory between calls: the controller is
// rebuilt on every request from the replayed history the caller resends, in
// fixed base-then-AI order. Correctness therefore depends on the caller
// faithfully replaying history, and on calls within one conversation being
// serialized by the caller.
type Controller struct {
	aiEnabled bool
	maxAI     int
	used      int
	awaiting  bool
}

// NewController derives the controller state from the form's settings and
// the replayed history. Every history entry past the base questions is a
// recorded AI follow-up pair; an outstanding unanswered question is never
// part of history. baseQuestions is the list the history actually replays —
// when a caller previews with a draft list, the draft, not the stored form
// value, is what the count runs against.
func NewController(form *models.Form, baseQuestions []string, history []models.QA) *Controller {
	used := len(history) - len(baseQuestions)
	if used < 0 {
		used = 0
	}
	return &Controller{
		aiEnabled: form.AIEnabled,
		maxAI:     form.MaxAIQuestions,
		used:      used,
	}
}

func (c *Controller) State() State {
	switch {
	case c.awaiting:
		return AwaitingAnswer
	case c.used >= c.maxAI:
		return Exhausted
	default:
		return NotStarted
	}
}

// Used reports how many AI follow-ups have been asked and answered.
func (c *Controller) Used() int { return c.used }

// RequestNext validates the request_next transition. Valid only from
// NotStarted or immediately after an answer has been recorded, and only
// while budget remains. Returns ErrExhausted when the cap is reached and
// ErrDisabled when the form has AI switched off; any other error is a
// caller protocol violation.
func (c *Controller) RequestNext() error {
	const op = "interview.Controller.RequestNext"

	if c.awaiting {
		return utils.E(utils.CodeConflict, op, "previous question is still unanswered", nil)
	}
	if !c.aiEnabled {
		return ErrDisabled
	}
	if c.used >= c.maxAI {
		return ErrExhausted
	}
	c.awaiting = true
	return nil
}

// RecordAnswer records the answer to the outstanding question and consumes
// one unit of budget. After this the controller is either ready for another
// RequestNext or Exhausted.
func (c *Controller) RecordAnswer() {
	c.awaiting = false
	c.used++
}
