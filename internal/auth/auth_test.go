package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullEnv() map[string]string {
	return map[string]string{
		"TRADEME_CONSUMER_KEY":       "consumer",
		"TRADEME_CONSUMER_SECRET":    "c&secret",
		"TRADEME_OAUTH_TOKEN":        "token",
		"TRADEME_OAUTH_TOKEN_SECRET": "t secret",
	}
}

func TestEnvProviderAcquire(t *testing.T) {
	session, err := EnvProvider{Environment: fullEnv()}.Acquire(context.Background())
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "https://api.example.test/v1/Listings/1.json", nil)
	require.NoError(t, err)
	session.Authorize(req)

	assert.Equal(t,
		`OAuth oauth_consumer_key="consumer", oauth_token="token", oauth_signature_method="PLAINTEXT", oauth_signature="c%2526secret%26t%2520secret"`,
		req.Header.Get("Authorization"))
}

func TestEnvProviderWithoutMemberToken(t *testing.T) {
	env := fullEnv()
	delete(env, "TRADEME_OAUTH_TOKEN")
	delete(env, "TRADEME_OAUTH_TOKEN_SECRET")

	session, err := EnvProvider{Environment: env}.Acquire(context.Background())
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "https://api.example.test", nil)
	session.Authorize(req)
	header := req.Header.Get("Authorization")
	assert.NotContains(t, header, "oauth_token=")
	assert.Contains(t, header, `oauth_signature="c%2526secret%26"`)
}

func TestEnvProviderMissingCredentials(t *testing.T) {
	cases := map[string]func(map[string]string){
		"no consumer key":  func(env map[string]string) { delete(env, "TRADEME_CONSUMER_KEY") },
		"empty secret":     func(env map[string]string) { env["TRADEME_CONSUMER_SECRET"] = "" },
		"token w/o secret": func(env map[string]string) { delete(env, "TRADEME_OAUTH_TOKEN_SECRET") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			env := fullEnv()
			mutate(env)
			_, err := EnvProvider{Environment: env}.Acquire(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingCredentials)
		})
	}
}

func TestEnvProviderReadsProcessEnvironment(t *testing.T) {
	for key, value := range fullEnv() {
		t.Setenv(key, value)
	}
	_, err := EnvProvider{}.Acquire(context.Background())
	require.NoError(t, err)
}

func TestEnvProviderCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := EnvProvider{Environment: fullEnv()}.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProviderFunc(t *testing.T) {
	want := NewOAuthSession(Credentials{ConsumerKey: "k"})
	p := ProviderFunc(func(context.Context) (Session, error) { return want, nil })
	got, err := p.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestPercentEncode(t *testing.T) {
	assert.Equal(t, "abc-._~123", percentEncode("abc-._~123"))
	assert.Equal(t, "a%20b%2Bc%2F%3D", percentEncode("a b+c/="))
}
