package mwapi

// ActionDefinition is the static declaration of an action kind: its
// capability-table identifier, the versions it works on, and the token kind
// it needs before its primary request. This is the only place version
// gating and token requirements are configured.
type ActionDefinition struct {
	ID        string
	Supported VersionSet
	Token     TokenKind
}

// Action is one composite wiki operation: an ordered sequence of wire
// requests driven by a Sequencer. Implementations form a closed set of
// action kinds (delete, edit, list, ...); they build requests and consume
// response documents but never perform I/O themselves.
type Action interface {
	// Definition returns the static action definition.
	Definition() ActionDefinition

	// TokenScope returns the page title the action's token must be scoped
	// to. Ignored for tokenless actions.
	TokenScope() string

	// BuildPrimary builds the substantive request. tok is nil for
	// tokenless actions and guaranteed non-nil otherwise.
	BuildPrimary(tok *Token) (*ActionRequest, error)

	// ProcessPrimary consumes the primary (or a continuation) response,
	// after the sequencer has already ruled out an embedded error node.
	// Returning StepContinue requests a continuation round.
	ProcessPrimary(doc Document) (StepOutcome, error)
}

// ContinuableAction is implemented by read/list actions that may page
// through results via a continuation marker.
type ContinuableAction interface {
	Action

	// BuildContinuation repeats the original query with the continuation
	// value captured by the previous ProcessPrimary call.
	BuildContinuation() (*ActionRequest, error)
}

// StepOutcome is the result of processing one response.
type StepOutcome int

const (
	// StepDone means the action has its result; no more requests follow.
	StepDone StepOutcome = iota

	// StepContinue means more requests remain: either the token step just
	// finished, or the response carried a continuation marker.
	StepContinue
)

// SequenceState tracks where a composite action stands. Each Sequencer
// owns exactly one; it is never shared between instances.
type SequenceState int

const (
	// StateAwaitingToken: the next request is the token fetch.
	StateAwaitingToken SequenceState = iota

	// StateAwaitingPrimary: the next request is the substantive one.
	StateAwaitingPrimary

	// StateAwaitingContinuation: the next request repeats the query with
	// the continuation marker.
	StateAwaitingContinuation

	// StateDone is terminal.
	StateDone
)

// String returns the state name for logging.
func (s SequenceState) String() string {
	switch s {
	case StateAwaitingToken:
		return "awaiting-token"
	case StateAwaitingPrimary:
		return "awaiting-primary"
	case StateAwaitingContinuation:
		return "awaiting-continuation"
	case StateDone:
		return "done"
	default:
		return "invalid"
	}
}

// Sequencer yields the wire requests of one composite action in order and
// advances on each processed response. The caller loop is:
//
//	for seq.HasNext() {
//		req, err := seq.Next()
//		// perform the HTTP exchange, parse the body
//		_, err = seq.Process(req, doc)
//	}
//
// A Sequencer executes strictly sequentially, one outstanding request at a
// time, and is not safe for concurrent use. Run independent actions on
// independent Sequencers instead.
type Sequencer struct {
	action Action
	cont   ContinuableAction // nil when the action cannot page
	fetch  *TokenAcquisition // nil when the action is tokenless
	token  *Token
	state  SequenceState
	logger Logger
}

// NewSequencer gates the action against the negotiated version and sets up
// its request sequence. Unsupported actions fail here, before any network
// interaction.
func NewSequencer(action Action, version Version, logger Logger) (*Sequencer, error) {
	def := action.Definition()

	if !IsSupported(def.ID, version) {
		return nil, &ConfigurationError{
			Action: def.ID,
			Reason: "not supported by MediaWiki " + version.String() +
				" (supported: " + def.Supported.String() + ")",
		}
	}

	seq := &Sequencer{
		action: action,
		state:  StateAwaitingPrimary,
		logger: ensureLogger(logger),
	}

	if cont, ok := action.(ContinuableAction); ok {
		seq.cont = cont
	}

	// The token fetch, when required, is always the first request; its
	// response is fully processed before the primary request is built.
	if def.Token != TokenNone {
		seq.fetch = NewTokenAcquisition(def.Token, action.TokenScope())
		seq.state = StateAwaitingToken
	}

	return seq, nil
}

// State returns the current sequence state.
func (s *Sequencer) State() SequenceState {
	return s.state
}

// HasNext reports whether another request remains.
func (s *Sequencer) HasNext() bool {
	return s.state != StateDone
}

// Next builds the next request of the sequence. Calling Next after the
// sequence finished is caller misuse and returns ErrSequenceExhausted.
func (s *Sequencer) Next() (*ActionRequest, error) {
	switch s.state {
	case StateAwaitingToken:
		return s.fetch.BuildRequest(), nil

	case StateAwaitingPrimary:
		req, err := s.action.BuildPrimary(s.token)
		if err != nil {
			s.state = StateDone

			return nil, err
		}

		return req, nil

	case StateAwaitingContinuation:
		req, err := s.cont.BuildContinuation()
		if err != nil {
			s.state = StateDone

			return nil, err
		}

		return req, nil

	default:
		return nil, ErrSequenceExhausted
	}
}

// Process consumes the parsed response to the request previously returned
// by Next and advances the state machine exactly once. A response carrying
// an error node stops the sequence immediately, even for action kinds that
// would otherwise continue. Processing a response after the sequence
// finished returns ErrSequenceExhausted.
func (s *Sequencer) Process(req *ActionRequest, doc Document) (StepOutcome, error) {
	if s.state == StateDone {
		return StepDone, ErrSequenceExhausted
	}

	if domainErr := ExtractError(doc); domainErr != nil {
		s.logger.Warn("wiki rejected request", map[string]interface{}{
			"action": s.action.Definition().ID,
			"uri":    req.URI(),
			"code":   domainErr.Code,
			"info":   domainErr.Info,
		})

		if domainErr.Hint != "" {
			s.logger.Error(domainErr.Hint, map[string]interface{}{"code": domainErr.Code})
		}

		s.state = StateDone

		return StepDone, domainErr
	}

	switch s.state {
	case StateAwaitingToken:
		token, err := s.fetch.ConsumeResponse(doc)
		if err != nil {
			s.state = StateDone

			return StepDone, err
		}

		s.token = token
		s.state = StateAwaitingPrimary

		return StepContinue, nil

	default: // StateAwaitingPrimary, StateAwaitingContinuation
		outcome, err := s.action.ProcessPrimary(doc)
		if err != nil {
			s.state = StateDone

			return StepDone, err
		}

		if outcome == StepContinue && s.cont != nil {
			s.state = StateAwaitingContinuation
		} else {
			s.state = StateDone
		}

		return outcome, nil
	}
}
