package main

import (
	"context"
	"fmt"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/callable"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/config"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/docstore"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
)

func defaultClients() Clients {
	return Clients{
		Docs: func(ctx context.Context, opts *RootOptions) (docstore.Documents, error) {
			cfg, err := config.Load(opts.EnvFile)
			if err != nil {
				return nil, err
			}
			var extra []func(*awsconfig.LoadOptions) error
			if cfg.UsesEmulator() {
				extra = append(extra, awsconfig.WithCredentialsProvider(
					credentials.NewStaticCredentialsProvider("local", "local", "")))
			}
			awsCfg, err := loadAWSConfig(ctx, opts, extra...)
			if err != nil {
				return nil, err
			}
			return docstore.NewClient(awsCfg, cfg.Table, cfg.Endpoint), nil
		},
		Lambda: func(ctx context.Context, opts *RootOptions) (callable.LambdaClient, error) {
			awsCfg, err := loadAWSConfig(ctx, opts)
			if err != nil {
				return nil, err
			}
			return lambda.NewFromConfig(awsCfg), nil
		},
		Cognito: func(ctx context.Context, opts *RootOptions) (CognitoClient, error) {
			awsCfg, err := loadAWSConfig(ctx, opts)
			if err != nil {
				return nil, err
			}
			return cognitoidentityprovider.NewFromConfig(awsCfg), nil
		},
	}
}

func loadAWSConfig(ctx context.Context, opts *RootOptions, extra ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
	loadOpts := extra
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	otelaws.AppendMiddlewares(&cfg.APIOptions)
	return cfg, nil
}
