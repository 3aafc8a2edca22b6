package order

import (
	"github.com/takayama/storefront/internal/logger"
)

// Step is a wizard position. StepCompleted is terminal.
type Step int

const (
	StepType Step = iota + 1
	StepBot
	StepServices
	StepSummary
	StepCompleted
)

// LastEditableStep is the highest step advance can reach.
const LastEditableStep = StepSummary

func (s Step) String() string {
	switch s {
	case StepType:
		return "type"
	case StepBot:
		return "bot"
	case StepServices:
		return "services"
	case StepSummary:
		return "summary"
	case StepCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Session is one wizard run: a configuration, the current step and, once
// completed, the issued ticket. A Session is owned by a single flow and is
// not safe for concurrent use.
type Session struct {
	kind      Kind
	generator *Generator

	step   Step
	config Config
	ticket *Ticket
}

// Open starts a fresh session. A nil generator uses NewGenerator().
func Open(kind Kind, generator *Generator) *Session {
	if generator == nil {
		generator = NewGenerator()
	}
	return &Session{
		kind:      kind,
		generator: generator,
		step:      StepType,
	}
}

// Kind returns the kind of ticket this session issues.
func (s *Session) Kind() Kind { return s.kind }

// Step returns the current step.
func (s *Session) Step() Step { return s.step }

// Config returns a copy of the current selections.
func (s *Session) Config() Config { return s.config }

// Ticket returns the issued ticket, if any.
func (s *Session) Ticket() (Ticket, bool) {
	if s.ticket == nil {
		return Ticket{}, false
	}
	return *s.ticket, true
}

// IsComplete reports whether the session reached the terminal step.
func (s *Session) IsComplete() bool { return s.step == StepCompleted }

// Total is the price of the current selections.
func (s *Session) Total() Amount { return Total(s.config) }

// CanAdvance reports whether Advance would move forward.
func (s *Session) CanAdvance() bool {
	if s.step >= LastEditableStep {
		return false
	}
	return s.step != StepType || s.config.ServerType.Selected()
}

// CanRetreat reports whether Retreat would move back.
func (s *Session) CanRetreat() bool {
	return s.step > StepType && s.step != StepCompleted
}

// CanFinalize reports whether Finalize would issue a ticket.
func (s *Session) CanFinalize() bool {
	return !s.IsComplete() && s.config.ServerType.Selected()
}

// Editable reports whether a field belongs to the current step. Hosts use it
// to decide which controls to show; Toggle itself does not check it.
func (s *Session) Editable(f Field) bool {
	return f.Step() == s.step
}

// SelectType sets the server type. Last write wins.
func (s *Session) SelectType(t ServerType) bool {
	if s.IsComplete() || !t.Selected() {
		logger.Debug("order: select type %q absorbed at step %s", t, s.step)
		return false
	}
	if s.config.ServerType == t {
		return false
	}
	s.config.ServerType = t
	return true
}

// Advance moves to the next step when CanAdvance holds.
func (s *Session) Advance() bool {
	if !s.CanAdvance() {
		logger.Debug("order: advance absorbed at step %s", s.step)
		return false
	}
	s.step++
	return true
}

// Retreat moves to the previous step when CanRetreat holds. The
// configuration is left untouched.
func (s *Session) Retreat() bool {
	if !s.CanRetreat() {
		logger.Debug("order: retreat absorbed at step %s", s.step)
		return false
	}
	s.step--
	return true
}

// Toggle flips an option. Clearing WithBot clears BotManaged.
func (s *Session) Toggle(f Field) bool {
	if s.IsComplete() {
		logger.Debug("order: toggle %s absorbed on completed session", f)
		return false
	}
	return s.config.Toggle(f)
}

// Finalize issues the ticket and enters the terminal step.
func (s *Session) Finalize() bool {
	if !s.CanFinalize() {
		logger.Debug("order: finalize absorbed at step %s", s.step)
		return false
	}
	t := s.generator.New(s.kind)
	s.ticket = &t
	s.step = StepCompleted
	logger.Info("order: issued %s for %s server, total %d", t.Reference, s.config.ServerType, s.Total())
	return true
}

// Reset returns the session to its opening state.
func (s *Session) Reset() {
	s.step = StepType
	s.config = Config{}
	s.ticket = nil
}

// Snapshot is the read-only state shells render after each operation.
type Snapshot struct {
	Step            Step   `json:"step"`
	Config          Config `json:"config"`
	TicketReference string `json:"ticket_reference,omitempty"`
	Total           Amount `json:"total"`
	Complete        bool   `json:"complete"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Step:     s.step,
		Config:   s.config,
		Total:    s.Total(),
		Complete: s.IsComplete(),
	}
	if s.ticket != nil {
		snap.TicketReference = s.ticket.Reference
	}
	return snap
}
