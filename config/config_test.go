package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("ACCEPTED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, 12*time.Hour, cfg.AdminTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AcceptedOrigins)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
}

type fakeSSM struct {
	pages []*ssm.GetParametersByPathOutput
	calls int
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, _ *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func TestFetchParametersFollowsPages(t *testing.T) {
	client := &fakeSSM{pages: []*ssm.GetParametersByPathOutput{
		{
			Parameters: []types.Parameter{{Name: aws.String("/portfolio/prod/DB_PASSWORD"), Value: aws.String("secret")}},
			NextToken:  aws.String("next"),
		},
		{
			Parameters: []types.Parameter{{Name: aws.String("/portfolio/prod/ADMIN_JWT_SECRET"), Value: aws.String("jwt")}},
		},
	}}

	params, err := fetchParameters(context.Background(), client, "/portfolio/prod")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"DB_PASSWORD": "secret", "ADMIN_JWT_SECRET": "jwt"}, params)
	assert.Equal(t, 2, client.calls)
}

func TestApplyParametersKeepsExistingEnv(t *testing.T) {
	env := map[string]string{"DB_PASSWORD": "local"}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }
	set := func(k, v string) error { env[k] = v; return nil }

	applied := applyParameters(map[string]string{"DB_PASSWORD": "remote", "REDIS_URL": "redis://x"}, lookup, set)

	assert.Equal(t, 1, applied)
	assert.Equal(t, "local", env["DB_PASSWORD"])
	assert.Equal(t, "redis://x", env["REDIS_URL"])
}
