package credential

const (
	EnvLingoApiKey       string = "LINGO_API_KEY"
	EnvLingoDotDevApiKey        = "LINGODOTDEV_API_KEY"
	// Placeholder is rejected by the remote service.
	Placeholder = "api_xxxxxxxxxxxxxxxx"
)

const prefixLen = 10

type LookupFunc func(key string) (string, bool)

// Resolve returns the first non-empty credential from the environment,
// or Placeholder when none is set.
func Resolve(lookup LookupFunc) string {
	for _, key := range []string{EnvLingoApiKey, EnvLingoDotDevApiKey} {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
	}
	return Placeholder
}

// Prefix is the loggable form of a credential.
func Prefix(credential string) string {
	r := []rune(credential)
	if len(r) > prefixLen {
		r = r[:prefixLen]
	}
	return string(r) + "..."
}
