// Package rawurl builds public raw-file URLs for repository paths
package rawurl

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultHost serves raw files of public GitHub repositories
const DefaultHost = "https://raw.githubusercontent.com"

// ErrIncomplete is returned when neither a base URL nor user, repo and branch are set
var ErrIncomplete = errors.New("raw URL config needs a base URL or user, repo and branch")

// Config identifies where repository files are published
type Config struct {
	BaseURL string `yaml:"base_url" json:"base_url,omitempty"` // Overrides the GitHub layout when set
	User    string `yaml:"user" json:"user"`
	Repo    string `yaml:"repo" json:"repo"`
	Branch  string `yaml:"branch" json:"branch"`
}

// Validate checks that a base URL can be derived
func (c Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid base URL %q: scheme must be http or https", c.BaseURL)
		}
		if u.Host == "" {
			return fmt.Errorf("invalid base URL %q: missing host", c.BaseURL)
		}
		return nil
	}

	if c.User == "" || c.Repo == "" || c.Branch == "" {
		return ErrIncomplete
	}
	return nil
}

// Base returns the URL prefix for repository files, ending in one slash
func (c Config) Base() string {
	base := c.BaseURL
	if base == "" {
		base = fmt.Sprintf("%s/%s/%s/%s", DefaultHost, c.User, c.Repo, c.Branch)
	}
	return strings.TrimRight(base, "/") + "/"
}

// Builder turns repository-relative paths into URLs
type Builder struct {
	base string
}

// NewBuilder validates cfg and returns a Builder for it
func NewBuilder(cfg Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{base: cfg.Base()}, nil
}

// Base returns the prefix every URL starts with
func (b *Builder) Base() string {
	return b.base
}

// subDelims are left alone by url.PathEscape; encoding them as well keeps
// only letters, digits and "-._~" literal in a segment.
var subDelims = strings.NewReplacer(
	"$", "%24", "&", "%26", "+", "%2B", ",", "%2C",
	":", "%3A", ";", "%3B", "=", "%3D", "@", "%40",
)

// URL percent-encodes each segment of the slash separated path p and
// appends it to the base. Spaces and non-ASCII names are always encoded.
func (b *Builder) URL(p string) string {
	segments := strings.Split(strings.TrimLeft(p, "/"), "/")
	for i, s := range segments {
		segments[i] = subDelims.Replace(url.PathEscape(s))
	}
	return b.base + strings.Join(segments, "/")
}
