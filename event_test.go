package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProofreader struct {
	suggestions []Suggestion
	err         error
	calls       int
	lastText    string
}

func (f *fakeProofreader) Proofread(text string) ([]Suggestion, error) {
	f.calls++
	f.lastText = text
	return f.suggestions, f.err
}

type fakePoster struct {
	err         error
	calls       int
	lastChannel string
	lastThread  string
	lastText    string
}

func (f *fakePoster) PostMessage(channel, threadTS, text string) error {
	f.calls++
	f.lastChannel = channel
	f.lastThread = threadTS
	f.lastText = text
	return f.err
}

func newTestDispatcher(pr *fakeProofreader, po *fakePoster) *Dispatcher {
	return NewDispatcher(&Credentials{
		AppAuthToken:    "test-app-token",
		BotAccessToken:  "test-bot-token",
		ProofreadAPIKey: "test-api-key",
	}, pr, po)
}

func messageEvent(text string) *InboundEvent {
	return &InboundEvent{
		Type:  eventTypeCallback,
		Token: "test-app-token",
		Event: &MessageEvent{
			Type:    "message",
			Text:    text,
			Channel: "C12345678",
			Ts:      "1503435956.000247",
		},
	}
}

func TestDispatch_invalidToken(t *testing.T) {
	pr, po := &fakeProofreader{}, &fakePoster{}
	d := newTestDispatcher(pr, po)

	ev := messageEvent("これは日本語の不自然な文章です")
	ev.Token = "spoofed"

	_, err := d.Dispatch(ev)

	assert.Equal(t, errAuthentication, err)
	assert.Equal(t, 0, pr.calls)
	assert.Equal(t, 0, po.calls)
}

func TestDispatch_urlVerification(t *testing.T) {
	pr, po := &fakeProofreader{}, &fakePoster{}
	d := newTestDispatcher(pr, po)

	body, err := d.Dispatch(&InboundEvent{
		Type:      eventTypeURLVerification,
		Token:     "test-app-token",
		Challenge: "abc123",
	})

	require.NoError(t, err)
	assert.Equal(t, "abc123", body)
	assert.Equal(t, 0, pr.calls)
	assert.Equal(t, 0, po.calls)
}

func TestDispatch_ignoredEvents(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*MessageEvent)
	}{
		{"bot_id set", func(e *MessageEvent) { e.BotID = "B024BE7LH" }},
		{"bot_message", func(e *MessageEvent) { e.Subtype = subtypeBotMessage }},
		{"message_changed", func(e *MessageEvent) { e.Subtype = subtypeMessageChanged }},
		{"non-message event", func(e *MessageEvent) { e.Type = "reaction_added" }},
		{"empty text", func(e *MessageEvent) { e.Text = "" }},
		{"whitespace text", func(e *MessageEvent) { e.Text = " \n\t " }},
	}

	for _, tc := range cases {
		name, mutate := tc.name, tc.mutate
		pr, po := &fakeProofreader{}, &fakePoster{}
		d := newTestDispatcher(pr, po)

		ev := messageEvent("これは日本語の不自然な文章です")
		mutate(ev.Event)

		body, err := d.Dispatch(ev)

		require.NoError(t, err, name)
		assert.Equal(t, responseOK, body, name)
		assert.Equal(t, 0, pr.calls, name)
		assert.Equal(t, 0, po.calls, name)
	}
}

func TestDispatch_missingEventPayload(t *testing.T) {
	d := newTestDispatcher(&fakeProofreader{}, &fakePoster{})

	_, err := d.Dispatch(&InboundEvent{Type: eventTypeCallback, Token: "test-app-token"})

	assert.Equal(t, errMissingEvent, err)
}

func TestDispatch_correctionPosted(t *testing.T) {
	pr := &fakeProofreader{suggestions: []Suggestion{
		{Original: "不自然な文章", Suggested: "自然な文章", Reason: "表現"},
	}}
	po := &fakePoster{}
	d := newTestDispatcher(pr, po)

	body, err := d.Dispatch(messageEvent("これは日本語の不自然な文章です"))

	require.NoError(t, err)
	assert.Equal(t, responseOK, body)
	assert.Equal(t, 1, pr.calls)
	assert.Equal(t, "これは日本語の不自然な文章です", pr.lastText)
	require.Equal(t, 1, po.calls)
	assert.Equal(t, "C12345678", po.lastChannel)
	assert.Equal(t, "1503435956.000247", po.lastThread)
	assert.Contains(t, po.lastText, "不自然な文章")
	assert.Contains(t, po.lastText, "自然な文章")
	assert.Contains(t, po.lastText, getLocalizedMessage("reply_header"))
	assert.Contains(t, po.lastText, "表現")
}

func TestDispatch_threadedReply(t *testing.T) {
	pr := &fakeProofreader{suggestions: []Suggestion{
		{Original: "不自然な文章", Suggested: "自然な文章", Reason: "表現"},
	}}
	po := &fakePoster{}
	d := newTestDispatcher(pr, po)

	ev := messageEvent("これは日本語の不自然な文章です")
	ev.Event.ThreadTs = "1503435900.000100"

	_, err := d.Dispatch(ev)

	require.NoError(t, err)
	assert.Equal(t, "1503435900.000100", po.lastThread)
}

func TestDispatch_noSuggestions(t *testing.T) {
	pr, po := &fakeProofreader{}, &fakePoster{}
	d := newTestDispatcher(pr, po)

	body, err := d.Dispatch(messageEvent("正しい日本語です"))

	require.NoError(t, err)
	assert.Equal(t, responseOK, body)
	assert.Equal(t, 1, pr.calls)
	assert.Equal(t, 0, po.calls)
}

func TestDispatch_proofreaderFailure(t *testing.T) {
	serviceErr := &ServiceUnavailableError{Service: "proofreading"}
	pr := &fakeProofreader{err: serviceErr}
	po := &fakePoster{}
	d := newTestDispatcher(pr, po)

	_, err := d.Dispatch(messageEvent("これは日本語の不自然な文章です"))

	assert.Equal(t, serviceErr, err)
	assert.Equal(t, 0, po.calls)
}

func TestDispatch_posterFailure(t *testing.T) {
	serviceErr := &ServiceUnavailableError{Service: "slack"}
	pr := &fakeProofreader{suggestions: []Suggestion{
		{Original: "不自然な文章", Suggested: "自然な文章", Reason: "表現"},
	}}
	po := &fakePoster{err: serviceErr}
	d := newTestDispatcher(pr, po)

	_, err := d.Dispatch(messageEvent("これは日本語の不自然な文章です"))

	assert.Equal(t, serviceErr, err)
	assert.Equal(t, 1, po.calls)
}

func TestFormatSuggestions_escapesFragments(t *testing.T) {
	msg := formatSuggestions([]Suggestion{
		{Original: "a<b", Suggested: "a & b", Reason: "表現"},
	})

	assert.Contains(t, msg, "a&lt;b")
	assert.Contains(t, msg, "a &amp; b")
	assert.NotContains(t, msg, "a<b")
}
