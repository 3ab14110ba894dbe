package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ErrMissingCredentials is returned when the environment does not carry usable credentials.
var ErrMissingCredentials = errors.New("missing trade me credentials")

// Session is an opaque authenticated handle consumed by the API client.
type Session interface {
	// Authorize attaches credentials to an outgoing request.
	Authorize(req *http.Request)
}

// Provider acquires a session for a single tool invocation.
type Provider interface {
	// Acquire returns a ready-to-use session or an authentication error.
	Acquire(ctx context.Context) (Session, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (Session, error)

// Acquire calls f.
func (f ProviderFunc) Acquire(ctx context.Context) (Session, error) {
	return f(ctx)
}

// Credentials are the OAuth 1.0a keys issued by Trade Me.
type Credentials struct {
	// ConsumerKey identifies the registered application.
	ConsumerKey string `env:"TRADEME_CONSUMER_KEY,required,notEmpty"`
	// ConsumerSecret signs requests for the application.
	ConsumerSecret string `env:"TRADEME_CONSUMER_SECRET,required,notEmpty"`
	// Token is the member access token; optional for public endpoints.
	Token string `env:"TRADEME_OAUTH_TOKEN"`
	// TokenSecret signs requests for the member.
	TokenSecret string `env:"TRADEME_OAUTH_TOKEN_SECRET"`
}

// EnvProvider reads credentials from the process environment on every acquisition.
type EnvProvider struct {
	// Environment overrides os.Environ when non-nil.
	Environment map[string]string
}

// Acquire parses credentials and returns a PLAINTEXT OAuth session.
func (p EnvProvider) Acquire(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := env.Options{}
	if p.Environment != nil {
		opts.Environment = p.Environment
	}
	creds, err := env.ParseAsWithOptions[Credentials](opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingCredentials, err)
	}
	if strings.TrimSpace(creds.Token) != "" && strings.TrimSpace(creds.TokenSecret) == "" {
		return nil, fmt.Errorf("%w: TRADEME_OAUTH_TOKEN_SECRET is required when TRADEME_OAUTH_TOKEN is set", ErrMissingCredentials)
	}
	return NewOAuthSession(creds), nil
}

// OAuthSession signs requests with the OAuth 1.0a PLAINTEXT method.
type OAuthSession struct {
	creds Credentials
}

// NewOAuthSession wraps credentials into a session.
func NewOAuthSession(creds Credentials) *OAuthSession {
	return &OAuthSession{creds: creds}
}

// Authorize sets the OAuth Authorization header.
func (s *OAuthSession) Authorize(req *http.Request) {
	if s == nil || req == nil {
		return
	}
	req.Header.Set("Authorization", s.header())
}

func (s *OAuthSession) header() string {
	signature := percentEncode(s.creds.ConsumerSecret) + "&" + percentEncode(s.creds.TokenSecret)
	params := []string{
		param("oauth_consumer_key", s.creds.ConsumerKey),
	}
	if s.creds.Token != "" {
		params = append(params, param("oauth_token", s.creds.Token))
	}
	params = append(params,
		param("oauth_signature_method", "PLAINTEXT"),
		param("oauth_signature", signature),
	)
	return "OAuth " + strings.Join(params, ", ")
}

func param(key, value string) string {
	return fmt.Sprintf("%s=%q", key, percentEncode(value))
}

// percentEncode applies RFC 3986 encoding as required by OAuth 1.0a.
func percentEncode(value string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
