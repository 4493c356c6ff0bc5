package redemption

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Client is the HTTP Issuer used by the student app. It speaks the
// slocal-core ticket API and maps its response envelope onto typed outcomes.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient builds an issuer client for the given API base URL and student
// bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type issueRequestBody struct {
	DealID string `json:"deal_id"`
}

type issueResponseBody struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Code          string     `json:"code"`
		IssuedAt      time.Time  `json:"issued_at"`
		MultiUse      bool       `json:"multi_use"`
		CooldownUntil *time.Time `json:"cooldown_until"`
	} `json:"data"`
}

// Issue implements Issuer. The server derives the student from the bearer
// token, so the studentID argument goes unused on this transport. Transport
// failures and 5xx responses come back as NETWORK_ERROR so the panel resets
// the swipe and allows a retry; typed rejections pass through unchanged.
func (c *Client) Issue(ctx context.Context, _, dealID string) (*IssueResult, error) {
	payload, err := json.Marshal(issueRequestBody{DealID: dealID})
	if err != nil {
		return nil, &Error{Code: CodeNetworkError, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/tickets/issue", bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Code: CodeNetworkError, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{Code: CodeNetworkError, Message: err.Error()}
	}
	defer resp.Body.Close()

	var body issueResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &Error{Code: CodeNetworkError, Message: err.Error()}
	}

	if !body.Success {
		return nil, mapFailure(resp.StatusCode, body.Code, body.Message)
	}

	return &IssueResult{
		Code:          body.Data.Code,
		IssuedAt:      body.Data.IssuedAt,
		MultiUse:      body.Data.MultiUse,
		CooldownUntil: body.Data.CooldownUntil,
	}, nil
}

func mapFailure(statusCode int, code, message string) *Error {
	switch OutcomeCode(code) {
	case CodeAlreadyRedeemed, CodeOutOfInventory, CodeCooldownActive:
		return &Error{Code: OutcomeCode(code), Message: message}
	}
	if statusCode >= 500 {
		return &Error{Code: CodeNetworkError, Message: message}
	}
	// Unknown 4xx: surface as terminal-free network error so the user can
	// retry rather than dead-end.
	return &Error{Code: CodeNetworkError, Message: message}
}
