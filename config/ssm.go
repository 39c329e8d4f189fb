package config

import (
	"context"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// overlaySSM copies every parameter under prefix into the environment. The
// last path segment is the variable name; variables already set win.
func overlaySSM(ctx context.Context, prefix string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}
	client := ssm.NewFromConfig(awsCfg)

	params, err := fetchParameters(ctx, client, prefix)
	if err != nil {
		return err
	}

	applied := applyParameters(params, os.LookupEnv, os.Setenv)
	log.Info().Str("path", prefix).Int("applied", applied).Msg("Loaded parameters from SSM")
	return nil
}

type parametersByPathAPI interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

func fetchParameters(ctx context.Context, client parametersByPathAPI, prefix string) (map[string]string, error) {
	params := make(map[string]string)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range page.Parameters {
			name := path.Base(aws.ToString(p.Name))
			if name == "" || name == "/" || name == "." {
				continue
			}
			params[name] = aws.ToString(p.Value)
		}
	}
	return params, nil
}

func applyParameters(params map[string]string, lookup func(string) (string, bool), set func(string, string) error) int {
	applied := 0
	for key, value := range params {
		if _, exists := lookup(key); exists {
			continue
		}
		if err := set(key, value); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to apply SSM parameter")
			continue
		}
		applied++
	}
	return applied
}
