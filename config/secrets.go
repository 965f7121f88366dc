package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ParameterGetter is the subset of the SSM client used to resolve secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewSSMClient builds an SSM client from the default AWS credential chain.
func NewSSMClient(ctx context.Context) (*ssm.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(awsCfg), nil
}

// ResolveSecret returns the value for key. When <key>_SSM_PARAMETER is set the value
// is read (decrypted) from SSM Parameter Store instead of the environment.
func ResolveSecret(ctx context.Context, config map[string]string, key string, client ParameterGetter) (string, error) {
	paramName := GetString(config, key+"_SSM_PARAMETER", "")
	if paramName == "" {
		value := GetString(config, key, "")
		if value == "" {
			return "", fmt.Errorf("%s is not set", key)
		}
		return value, nil
	}

	if client == nil {
		return "", fmt.Errorf("%s_SSM_PARAMETER is set but no SSM client is available", key)
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("read ssm parameter %s: %w", paramName, err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", fmt.Errorf("ssm parameter %s is empty", paramName)
	}

	log.Info().Str("parameter", paramName).Msgf("Loaded %s from SSM", key)
	return aws.ToString(out.Parameter.Value), nil
}
