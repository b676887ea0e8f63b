package main

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const defaultProofreadingURL = "https://api.a3rt.recruit-tech.co.jp/proofreading/v1/typo"

// Alert codes returned by the proofreading service. Code 0 flags text
// that is only "a little unnatural" and produces far more noise than
// signal, so it never reaches the channel.
const (
	alertCodeLittleUnnatural = 0
	alertCodeUnnatural       = 1
	alertCodeTypo            = 2
)

// ProofreadClient calls the remote proofreading service.
type ProofreadClient struct {
	URL    string
	APIKey string
	Client *http.Client
}

// NewProofreadClient function
func NewProofreadClient(url, apiKey string) *ProofreadClient {
	return &ProofreadClient{
		URL:    url,
		APIKey: apiKey,
		Client: http.DefaultClient,
	}
}

type proofreadResponse struct {
	Status  int              `json:"status"`
	Message string           `json:"message"`
	Alerts  []proofreadAlert `json:"alerts"`
}

type proofreadAlert struct {
	Word            string   `json:"word"`
	Suggestions     []string `json:"suggestions"`
	AlertCode       int      `json:"alertCode"`
	RankingScore    float64  `json:"rankingScore"`
	CheckedSentence string   `json:"checkedSentence"`
}

// Proofread submits text to the service and returns its suggestions,
// most suspicious fragment first.
func (p *ProofreadClient) Proofread(text string) ([]Suggestion, error) {
	form := url.Values{
		"apikey":   {p.APIKey},
		"sentence": {text},
	}

	res, err := p.Client.PostForm(p.URL, form)
	if err != nil {
		return nil, &ServiceUnavailableError{Service: "proofreading", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, &ServiceUnavailableError{Service: "proofreading", Err: errors.Errorf("status code %d", res.StatusCode)}
	}

	var pr proofreadResponse
	if err := json.NewDecoder(res.Body).Decode(&pr); err != nil {
		return nil, &ServiceUnavailableError{Service: "proofreading", Err: err}
	}

	// Status 1 means checked with findings, anything else has nothing
	// worth reporting.
	if pr.Status != 1 {
		return nil, nil
	}

	var alerts []proofreadAlert
	for _, a := range pr.Alerts {
		if a.AlertCode == alertCodeLittleUnnatural {
			continue
		}
		alerts = append(alerts, a)
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].RankingScore > alerts[j].RankingScore
	})

	suggestions := make([]Suggestion, len(alerts))
	for i, a := range alerts {
		suggestions[i] = Suggestion{
			Original:  a.Word,
			Suggested: strings.Join(a.Suggestions, " / "),
			Reason:    reasonForAlertCode(a.AlertCode),
		}
	}

	return suggestions, nil
}

func reasonForAlertCode(code int) string {
	switch code {
	case alertCodeUnnatural:
		return getLocalizedMessage("reason_unnatural")
	case alertCodeTypo:
		return getLocalizedMessage("reason_typo")
	}

	return getLocalizedMessage("reason_other")
}
