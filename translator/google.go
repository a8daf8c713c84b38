package translator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GoogleEngine uses Google Cloud Translation (v2) with an API key credential.
type GoogleEngine struct {
	verbose    bool
	apiUrl     string
	credential string
}

func (g *GoogleEngine) Name() string {
	return EngineGoogle
}

func (g *GoogleEngine) clientOptions() []option.ClientOption {
	opts := []option.ClientOption{option.WithAPIKey(g.credential)}
	if g.apiUrl != "" {
		opts = append(opts, option.WithEndpoint(g.apiUrl))
	}
	return opts
}

func (g *GoogleEngine) QuickTranslate(ctx context.Context, text string, sourceLocale string, targetLocale string) (string, error) {
	targetTag, err := language.Parse(targetLocale)
	if err != nil {
		return "", fmt.Errorf("can not parse target locale %v: %w", targetLocale, err)
	}
	sourceTag, err := language.Parse(sourceLocale)
	if err != nil {
		return "", fmt.Errorf("can not parse source locale %v: %w", sourceLocale, err)
	}
	client, err := translate.NewClient(ctx, g.clientOptions()...)
	if err != nil {
		return "", fmt.Errorf("can not create translation client: %w", err)
	}
	defer client.Close()
	if g.verbose {
		log.Printf("google request: %v -> %v", sourceTag, targetTag)
	}
	translations, err := client.Translate(ctx, []string{text}, targetTag, &translate.Options{
		Source: sourceTag,
		Format: translate.Text,
	})
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
			return "", &AuthError{Status: apiErr.Code, Message: apiErr.Message}
		}
		return "", fmt.Errorf("can not translate text: %w", err)
	}
	if len(translations) == 0 {
		return "", errors.New("no translation returned")
	}
	return translations[0].Text, nil
}

func newGoogleEngine(credential string, opts *engineOptions) *GoogleEngine {
	return &GoogleEngine{
		verbose:    opts.verbose,
		apiUrl:     opts.apiUrl,
		credential: credential,
	}
}
