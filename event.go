package main

import (
	"fmt"
	"strings"
)

const (
	eventTypeURLVerification = "url_verification"
	eventTypeCallback        = "event_callback"
)

const (
	subtypeBotMessage     = "bot_message"
	subtypeMessageChanged = "message_changed"
)

// responseOK is the body Slack expects for every processed callback.
// Anything else makes Slack treat the delivery as failed and redeliver.
const responseOK = "OK"

// InboundEvent is the envelope the Slack Events API delivers to the
// events endpoint.
type InboundEvent struct {
	Type      string        `json:"type" binding:"required,slackevent"`
	Token     string        `json:"token" binding:"required"`
	Challenge string        `json:"challenge,omitempty"`
	Event     *MessageEvent `json:"event,omitempty"`
}

// MessageEvent is the message payload inside an event_callback envelope.
type MessageEvent struct {
	Type     string `json:"type"`
	Subtype  string `json:"subtype,omitempty"`
	BotID    string `json:"bot_id,omitempty"`
	Text     string `json:"text"`
	Channel  string `json:"channel"`
	Ts       string `json:"ts"`
	ThreadTs string `json:"thread_ts,omitempty"`
}

// Suggestion is a single correction returned by the proofreading service.
type Suggestion struct {
	Original  string
	Suggested string
	Reason    string
}

// Proofreader checks a text and returns its correction suggestions.
type Proofreader interface {
	Proofread(text string) ([]Suggestion, error)
}

// Poster posts a message into a channel, in-thread when threadTS is set.
type Poster interface {
	PostMessage(channel, threadTS, text string) error
}

// Dispatcher routes one inbound event into at most one proofreading call
// and at most one outbound post.
type Dispatcher struct {
	credentials *Credentials
	proofreader Proofreader
	poster      Poster
}

// NewDispatcher function
func NewDispatcher(credentials *Credentials, proofreader Proofreader, poster Poster) *Dispatcher {
	return &Dispatcher{
		credentials: credentials,
		proofreader: proofreader,
		poster:      poster,
	}
}

// Dispatch handles one inbound event and returns the body for the
// synchronous reply to Slack: the challenge during the verification
// handshake, "OK" otherwise.
func (d *Dispatcher) Dispatch(ev *InboundEvent) (string, error) {
	if ev.Token != d.credentials.AppAuthToken {
		return "", errAuthentication
	}

	if ev.Type == eventTypeURLVerification {
		return ev.Challenge, nil
	}

	if ev.Event == nil {
		return "", errMissingEvent
	}

	// Bot-authored messages and edits must never trigger a post,
	// otherwise the bot keeps correcting its own corrections. The same
	// guard keeps redelivered events from looping after a timeout.
	if ev.Event.shouldBeIgnored() {
		logger.Infof("ignoring event in %s: type %q, subtype %q, bot_id %q",
			ev.Event.Channel, ev.Event.Type, ev.Event.Subtype, ev.Event.BotID)
		return responseOK, nil
	}

	text := strings.TrimSpace(ev.Event.Text)
	if text == "" {
		return responseOK, nil
	}

	suggestions, err := d.proofreader.Proofread(text)
	if err != nil {
		return "", err
	}

	if len(suggestions) == 0 {
		return responseOK, nil
	}

	err = d.poster.PostMessage(ev.Event.Channel, ev.Event.threadTS(), formatSuggestions(suggestions))
	if err != nil {
		return "", err
	}

	return responseOK, nil
}

func (e *MessageEvent) shouldBeIgnored() bool {
	if e.Type != "message" {
		return true
	}

	if e.BotID != "" {
		return true
	}

	return e.Subtype == subtypeBotMessage || e.Subtype == subtypeMessageChanged
}

// threadTS returns the timestamp a reply should attach to. Messages
// already inside a thread carry thread_ts; replying to it keeps the
// answer in the existing thread instead of forking a new one.
func (e *MessageEvent) threadTS() string {
	if e.ThreadTs != "" {
		return e.ThreadTs
	}

	return e.Ts
}

func formatSuggestions(suggestions []Suggestion) string {
	var b strings.Builder

	b.WriteString(getLocalizedMessage("reply_header"))
	for _, s := range suggestions {
		b.WriteString(fmt.Sprintf("\n%s → %s (%s)",
			escapeMessageText(s.Original), escapeMessageText(s.Suggested), s.Reason))
	}

	return b.String()
}
