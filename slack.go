package main

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

const slackPostMessageURL = "https://slack.com/api/chat.postMessage"

// SlackClient posts messages through the Slack Web API.
type SlackClient struct {
	Token  string
	Client *http.Client
}

// NewSlackClient function
func NewSlackClient(token string) *SlackClient {
	return &SlackClient{
		Token:  token,
		Client: http.DefaultClient,
	}
}

type postMessageRequest struct {
	Channel  string `json:"channel"`
	ThreadTs string `json:"thread_ts,omitempty"`
	Text     string `json:"text"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// PostMessage posts text into a channel, in-thread when threadTS is set.
// The acknowledgment body is checked and discarded.
func (s *SlackClient) PostMessage(channel, threadTS, text string) error {
	body, err := json.Marshal(postMessageRequest{
		Channel:  channel,
		ThreadTs: threadTS,
		Text:     text,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, slackPostMessageURL, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+s.Token)

	res, err := s.Client.Do(req)
	if err != nil {
		return &ServiceUnavailableError{Service: "slack", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return &ServiceUnavailableError{Service: "slack", Err: errors.Errorf("status code %d", res.StatusCode)}
	}

	var pr postMessageResponse
	if err := json.NewDecoder(res.Body).Decode(&pr); err != nil {
		return &ServiceUnavailableError{Service: "slack", Err: err}
	}

	if !pr.OK {
		return &ServiceUnavailableError{Service: "slack", Err: errors.Errorf("api error %q", pr.Error)}
	}

	return nil
}
