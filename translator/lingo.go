package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const DefaultLingoApiUrl string = "https://engine.lingo.dev"

type lingoParams struct {
	WorkflowId string `json:"workflowId"`
	Fast       bool   `json:"fast"`
}

type lingoLocale struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type lingoData struct {
	Text string `json:"text"`
}

type lingoRequest struct {
	Params lingoParams `json:"params"`
	Locale lingoLocale `json:"locale"`
	Data   lingoData   `json:"data"`
}

type lingoResponse struct {
	Data  map[string]json.RawMessage `json:"data"`
	Error json.RawMessage            `json:"error"`
}

// LingoEngine talks to the Lingo.dev localization engine.
type LingoEngine struct {
	verbose    bool
	apiUrl     string
	credential string
	httpClient *http.Client
}

func (l *LingoEngine) Name() string {
	return EngineLingo
}

func (l *LingoEngine) QuickTranslate(ctx context.Context, text string, sourceLocale string, targetLocale string) (string, error) {
	reqBody := &lingoRequest{
		Params: lingoParams{
			WorkflowId: uuid.NewString(),
			Fast:       true,
		},
		Locale: lingoLocale{
			Source: sourceLocale,
			Target: targetLocale,
		},
		Data: lingoData{
			Text: text,
		},
	}
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("can not marshal request to json: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.apiUrl+"/i18n", bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("can not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+l.credential)
	if l.verbose {
		log.Printf("lingo request: workflowId = %v, %v -> %v", reqBody.Params.WorkflowId, sourceLocale, targetLocale)
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("can not send request: %w", err)
	}
	defer resp.Body.Close()
	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("can not read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", lingoStatusError(resp.StatusCode, respBytes)
	}
	var lingoResp lingoResponse
	if err := json.Unmarshal(respBytes, &lingoResp); err != nil {
		return "", fmt.Errorf("can not unmarshal response: %w", err)
	}
	// An empty data object counts as missing.
	if len(lingoResp.Data) == 0 {
		if msg := errorText(lingoResp.Error); msg != "" {
			return "", errors.New(msg)
		}
		return "", nil
	}
	rawText, ok := lingoResp.Data["text"]
	if !ok {
		return "", nil
	}
	var translatedText string
	if err := json.Unmarshal(rawText, &translatedText); err != nil {
		return "", fmt.Errorf("can not unmarshal translated text: %w", err)
	}
	return translatedText, nil
}

func lingoStatusError(status int, body []byte) error {
	reason := http.StatusText(status)
	text := strings.TrimSpace(string(body))
	switch {
	case status >= 500 && status < 600:
		return fmt.Errorf("Server error (%d): %v. %v. This may be due to temporary service issues.", status, reason, text)
	case status == http.StatusBadRequest:
		return fmt.Errorf("Invalid request (%d): %v", status, reason)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{Status: status, Message: text}
	default:
		return errors.New(text)
	}
}

func errorText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func newLingoEngine(credential string, opts *engineOptions) *LingoEngine {
	apiUrl := opts.apiUrl
	if apiUrl == "" {
		apiUrl = DefaultLingoApiUrl
	}
	return &LingoEngine{
		verbose:    opts.verbose,
		apiUrl:     strings.TrimRight(apiUrl, "/"),
		credential: credential,
		httpClient: opts.httpClient,
	}
}
