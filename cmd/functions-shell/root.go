package main

import (
	"context"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/callable"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/docstore"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	EnvFile string
	Region  string
	Memory  bool
}

// CognitoClient is the Cognito surface used to load real users
type CognitoClient interface {
	AdminGetUser(ctx context.Context, params *cognitoidentityprovider.AdminGetUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminGetUserOutput, error)
}

// Clients creates the backends a command needs, on first use
type Clients struct {
	Docs    func(ctx context.Context, opts *RootOptions) (docstore.Documents, error)
	Lambda  func(ctx context.Context, opts *RootOptions) (callable.LambdaClient, error)
	Cognito func(ctx context.Context, opts *RootOptions) (CognitoClient, error)
}

// NewRootCommand creates the functions-shell root command
func NewRootCommand(clients Clients) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "functions-shell",
		Short: "Invoke functions outside their triggers",
		Long: `Invoke functions outside their triggers.

Document and user triggers write through the configured document table
(PROJECT_ID, DYNAMODB_TABLE, DYNAMODB_ENDPOINT, read from the environment
and --env-file), or through an in-memory store with --memory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.Region, "region", "", "AWS region (default from the AWS config chain)")
	cmd.PersistentFlags().BoolVar(&opts.Memory, "memory", false, "write documents to an in-memory store")

	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewInvokeCommand(opts, clients))

	return cmd
}
