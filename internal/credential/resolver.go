package credential

import (
	"errors"
	"os"
	"strings"
)

// DefaultKeyEnv is the environment variable checked for the panel API key
// when the config does not name another one.
const DefaultKeyEnv = "PANELCTL_API_KEY"

// ErrNotSupported is returned by sources that do not support persisting values.
var ErrNotSupported = errors.New("store operation not supported")

// Source defines a credential source.
type Source interface {
	Name() string
	Get(envName string) (string, bool)
	Store(envName string, value string) error
}

// Resolver resolves the panel API key by checking sources in order.
type Resolver struct {
	sources []Source
}

// NewResolver creates a resolver with a fixed source order.
func NewResolver(sources ...Source) *Resolver {
	resolverSources := make([]Source, len(sources))
	copy(resolverSources, sources)

	return &Resolver{sources: resolverSources}
}

// DefaultResolver checks the process environment first, then the
// credentials file.
func DefaultResolver() *Resolver {
	return NewResolver(NewEnvSource(), NewFileSource(""))
}

// EnvSource reads the panel API key from a process environment variable.
// It is the first source DefaultResolver consults, so an exported
// variable always wins over the credentials file.
type EnvSource struct{}

// NewEnvSource returns a source over the process environment.
func NewEnvSource() EnvSource {
	return EnvSource{}
}

func (EnvSource) Name() string {
	return "environment"
}

// Get looks up the named variable. Blank names and unset variables both miss.
func (EnvSource) Get(envName string) (string, bool) {
	name := strings.TrimSpace(envName)
	if name == "" {
		return "", false
	}

	return os.LookupEnv(name)
}

// Store rejects writes; exporting a variable is the user's own shell's job.
func (EnvSource) Store(string, string) error {
	return ErrNotSupported
}

// Resolve tries each source in order.
//
// It returns the value, source name, and whether a value was found.
func (r *Resolver) Resolve(envName string) (value string, source string, found bool) {
	if r == nil {
		return "", "", false
	}

	trimmedName := strings.TrimSpace(envName)
	if trimmedName == "" {
		return "", "", false
	}

	for _, src := range r.sources {
		if src == nil {
			continue
		}

		resolvedValue, ok := src.Get(trimmedName)
		if !ok {
			continue
		}

		return resolvedValue, src.Name(), true
	}

	return "", "", false
}

// APIKey resolves the panel API key. An empty envName falls back to
// DefaultKeyEnv.
func (r *Resolver) APIKey(envName string) (string, bool) {
	name := strings.TrimSpace(envName)
	if name == "" {
		name = DefaultKeyEnv
	}

	value, _, found := r.Resolve(name)
	return value, found
}
