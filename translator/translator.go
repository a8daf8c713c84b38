package translator

import (
	"context"
	"fmt"
	"net/http"
)

const (
	EngineLingo  string = "lingo"
	EngineGoogle        = "google"
)

type engineOptions struct {
	verbose    bool
	apiUrl     string
	httpClient *http.Client
}

func defaultEngineOptions() *engineOptions {
	return &engineOptions{
		verbose:    false,
		apiUrl:     "",
		httpClient: &http.Client{},
	}
}

type EngineOption func(*engineOptions)

func EngineVerbose(verbose bool) EngineOption {
	return func(opts *engineOptions) {
		opts.verbose = verbose
	}
}

// EngineApiUrl overrides the engine endpoint. Empty keeps the engine default.
func EngineApiUrl(apiUrl string) EngineOption {
	return func(opts *engineOptions) {
		opts.apiUrl = apiUrl
	}
}

func EngineHttpClient(httpClient *http.Client) EngineOption {
	return func(opts *engineOptions) {
		if httpClient == nil {
			return
		}
		opts.httpClient = httpClient
	}
}

// Engine is a remote translation service bound to a credential.
type Engine interface {
	Name() string
	QuickTranslate(ctx context.Context, text string, sourceLocale string, targetLocale string) (string, error)
}

// AuthError is returned when the remote service rejects the credential.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("credential rejected (%d)", e.Status)
	}
	return e.Message
}

func NewEngine(name string, credential string, opts ...EngineOption) (Engine, error) {
	baseOpts := defaultEngineOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(baseOpts)
	}
	switch name {
	case "", EngineLingo:
		return newLingoEngine(credential, baseOpts), nil
	case EngineGoogle:
		return newGoogleEngine(credential, baseOpts), nil
	default:
		return nil, fmt.Errorf("unsupported engine: %v", name)
	}
}
