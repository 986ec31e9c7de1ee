// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/wuchat-tui/internal/assistant"
	"github.com/jeranaias/wuchat-tui/internal/model"
	"github.com/jeranaias/wuchat-tui/internal/session"
)

// =============================================================================
// MODES
// =============================================================================

// Mode is the conversation phase.
type Mode int

const (
	// ModeAwaitingYesNo is the opening phase: the welcome message asked
	// whether the user wants to share their name.
	ModeAwaitingYesNo Mode = iota

	// ModeAwaitingName means the user agreed and the next input is taken
	// verbatim as their name.
	ModeAwaitingName

	// ModeChatting is the normal question/answer phase.
	ModeChatting
)

func (m Mode) String() string {
	switch m {
	case ModeAwaitingYesNo:
		return "awaiting-yes-no"
	case ModeAwaitingName:
		return "awaiting-name"
	case ModeChatting:
		return "chatting"
	default:
		return "unknown"
	}
}

// FallbackName addresses users who declined to share a name.
const FallbackName = "friend"

// =============================================================================
// CANNED TEXT
// =============================================================================

const (
	welcomeText = "Hey there! 👋 I'm wuchat, your virtual guide to Wichita State University. " +
		"Ask me about admissions, programs, events, or anything else! 🌾 " +
		"Before we get started, can you share your name, that way I know who I'm chatting with?"

	askNameText = "Great! Please tell me your name so I can address you properly. 😊"

	skipNameText = "No problem! I'll just call you 'friend' then. How can I help you today? 😊"
)

func greetText(name string) string {
	return "Nice to meet you, " + name + "! 😊 I'm excited to help you with any questions " +
		"about Wichita State University. What would you like to know?"
}

// =============================================================================
// ENGINE
// =============================================================================

// Errors returned by Submit.
var (
	// ErrBusy means a backend request is already in flight. The engine
	// serializes asks; the UI surfaces this as a disabled input.
	ErrBusy = errors.New("a request is already in flight")

	// ErrEmptyInput means the submitted text was blank.
	ErrEmptyInput = errors.New("empty input")
)

// Options tune a new engine.
type Options struct {
	// HistoryWindow is how many recent messages ride along as request
	// context. Zero selects the default of 10.
	HistoryWindow int

	// SourceDomain resolves bare source file names into URLs.
	SourceDomain string

	// UserName, when set, skips the name-collection flow entirely.
	UserName string
}

// Engine owns the conversation: the message log, the onboarding state
// machine, the session identity, and dispatch to the backend. Safe for
// concurrent use; backend resolution happens off the caller's goroutine
// and commits back under the engine lock.
type Engine struct {
	mu sync.Mutex

	client   *assistant.Client
	sessions *session.Manager
	conv     *model.Conversation

	mode       Mode
	userName   string
	presetName string
	greeted    bool

	busy      bool
	pendingID string

	// epoch fences asynchronous completions. Reset and Abort bump it;
	// anything tagged with an older epoch is discarded on arrival.
	epoch uint64

	historyWindow int
	sourceDomain  string
}

// NewEngine creates an engine and seeds the welcome message.
func NewEngine(client *assistant.Client, opts Options) *Engine {
	window := opts.HistoryWindow
	if window <= 0 {
		window = 10
	}
	e := &Engine{
		client:        client,
		sessions:      session.NewManager(),
		conv:          model.NewConversation(),
		presetName:    strings.TrimSpace(opts.UserName),
		historyWindow: window,
		sourceDomain:  opts.SourceDomain,
	}
	e.seed()
	return e
}

// seed resets onboarding state and appends the welcome message.
// Caller holds the lock (or is the constructor).
func (e *Engine) seed() {
	e.userName = e.presetName
	e.greeted = false
	e.busy = false
	e.pendingID = ""
	if e.presetName != "" {
		e.mode = ModeChatting
	} else {
		e.mode = ModeAwaitingYesNo
	}
	e.conv.Add(model.NewAssistantMessage(welcomeText))
}

// =============================================================================
// SUBMIT
// =============================================================================

// Turn describes what happened to one piece of user input.
type Turn struct {
	// User is the appended user message, in the sending state.
	User *model.Message

	// Reply is the locally produced assistant reply, set during
	// onboarding. Nil when the turn needs the backend.
	Reply *model.Message

	// NeedsBackend tells the caller to follow up with Resolve.
	NeedsBackend bool

	// Epoch tags the turn for MarkSent and Resolve.
	Epoch uint64
}

// Submit feeds one line of user input through the state machine. During
// onboarding the reply is computed locally and appended before Submit
// returns; in the chatting phase the caller must invoke Resolve (off the
// UI goroutine) to produce the reply.
func (e *Engine) Submit(text string) (*Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.busy {
		return nil, ErrBusy
	}

	// Only one message may sit in the sending state. Any straggler whose
	// sent tick has not fired yet gets promoted now.
	for _, m := range e.conv.Messages {
		if m.IsUser && m.Status == model.StatusSending {
			m.Status = model.StatusSent
		}
	}

	user := model.NewUserMessage(text)
	e.conv.Add(user)
	turn := &Turn{User: user, Epoch: e.epoch}

	switch e.mode {
	case ModeAwaitingYesNo, ModeAwaitingName:
		turn.Reply = e.advanceOnboarding(text)
	default:
		e.busy = true
		e.pendingID = user.ID
		turn.NeedsBackend = true
	}
	return turn, nil
}

// advanceOnboarding runs one onboarding step and appends the reply.
// Caller holds the lock.
func (e *Engine) advanceOnboarding(text string) *model.Message {
	var reply string

	switch e.mode {
	case ModeAwaitingYesNo:
		lower := strings.ToLower(text)
		switch {
		case containsAny(lower, "yes", "sure", "ok"):
			e.mode = ModeAwaitingName
			reply = askNameText
		case containsAny(lower, "no", "not", "skip"):
			e.userName = FallbackName
			e.mode = ModeChatting
			reply = skipNameText
		default:
			// Anything else is taken as the name itself.
			e.userName = text
			e.mode = ModeChatting
			reply = greetText(text)
		}
	case ModeAwaitingName:
		e.userName = text
		e.mode = ModeChatting
		reply = greetText(text)
	}

	log.Debug().Str("mode", e.mode.String()).Msg("onboarding advanced")

	msg := model.NewAssistantMessage(reply)
	e.conv.Add(msg)
	return msg
}

// containsAny reports whether s contains any of the tokens.
func containsAny(s string, tokens ...string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// =============================================================================
// RESOLVE
// =============================================================================

// Resolve sends the question to the backend and commits the reply into
// the log. Blocking; run it off the UI goroutine. Returns the appended
// assistant message, or nil when the result arrived after a reset or
// abort and was discarded.
func (e *Engine) Resolve(ctx context.Context, epoch uint64, question string) *model.Message {
	e.mu.Lock()
	if epoch != e.epoch {
		e.mu.Unlock()
		return nil
	}
	id := e.sessions.Identity()
	req := assistant.AskRequest{
		Q:         question,
		UserID:    id.UserID,
		SessionID: id.SessionID,
		Context: assistant.AskContext{
			UserName:            e.userName,
			ConversationHistory: e.conv.History(e.historyWindow),
		},
	}
	domain := e.sourceDomain
	e.mu.Unlock()

	payload, err := e.client.Ask(ctx, req)

	var res *assistant.Result
	switch {
	case errors.Is(err, context.Canceled):
		// Deliberate abort; Abort already cleaned up under a new epoch.
		return nil
	case err != nil:
		res = assistant.FallbackResult(err)
	default:
		res, err = assistant.Normalize(payload, domain)
		if err != nil {
			res = assistant.FallbackResult(err)
		}
	}

	return e.commit(epoch, res)
}

// commit applies a resolved result under the lock.
func (e *Engine) commit(epoch uint64, res *assistant.Result) *model.Message {
	e.mu.Lock()
	defer e.mu.Unlock()

	if epoch != e.epoch {
		log.Debug().Msg("discarding stale backend result")
		return nil
	}

	e.busy = false
	if pending := e.conv.Find(e.pendingID); pending != nil {
		if res.OK() {
			pending.Status = model.StatusDelivered
		} else {
			pending.Status = model.StatusError
		}
	}
	e.pendingID = ""

	content := res.Answer.Text
	if res.OK() && !e.greeted {
		if e.userName != "" && e.userName != FallbackName {
			content = "Hi " + e.userName + "! " + content
		}
		e.greeted = true
	}

	msg := model.NewAssistantMessage(content)
	msg.Confidence = res.Answer.Confidence
	msg.SourceURL = res.Source.URL
	msg.SourceQuote = res.Source.Quote
	if !res.OK() {
		msg.Status = model.StatusError
	}
	e.conv.Add(msg)
	return msg
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// MarkSent promotes a user message from sending to sent. Scheduled by the
// UI shortly after submit; a stale epoch means the conversation was reset
// in between and the tick is ignored.
func (e *Engine) MarkSent(id string, epoch uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if epoch != e.epoch {
		return
	}
	if m := e.conv.Find(id); m != nil && m.Status == model.StatusSending {
		m.Status = model.StatusSent
	}
}

// Abort cancels the in-flight request from the engine's point of view:
// the pending user message is marked failed and any late result will be
// discarded. The caller is responsible for canceling the request context.
func (e *Engine) Abort() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.busy {
		return
	}
	e.epoch++
	e.busy = false
	if m := e.conv.Find(e.pendingID); m != nil {
		m.Status = model.StatusError
	}
	e.pendingID = ""
	log.Debug().Msg("in-flight request aborted")
}

// Reset clears the conversation and starts over: fresh session identity,
// empty log, onboarding from the top. In-flight results are discarded on
// arrival. Safe to call repeatedly. Returns the new welcome message.
func (e *Engine) Reset() *model.Message {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.epoch++
	e.conv.Clear()
	e.sessions.Reset()
	e.seed()

	log.Info().Str("session", e.sessions.Identity().SessionID).Msg("conversation reset")
	return e.conv.Last()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Messages returns a snapshot of the message log.
func (e *Engine) Messages() []*model.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*model.Message, len(e.conv.Messages))
	copy(out, e.conv.Messages)
	return out
}

// Snapshot returns a deep copy of the conversation for export.
func (e *Engine) Snapshot() *model.Conversation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.conv.Clone()
}

// Mode returns the current conversation phase.
func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// UserName returns the collected name, or "" before onboarding finishes.
func (e *Engine) UserName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.userName
}

// Busy reports whether a backend request is in flight.
func (e *Engine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// Identity returns the current session identity.
func (e *Engine) Identity() session.Identity {
	return e.sessions.Identity()
}

// LastQuestion returns the most recent user input, or "" when there is
// none. Feeds the retry affordance.
func (e *Engine) LastQuestion() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if m := e.conv.LastUser(); m != nil {
		return m.Content
	}
	return ""
}
