package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/config"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/docstore"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Emulator container settings
const (
	EmulatorImage  = "amazon/dynamodb-local:2.5.2"
	emulatorPort   = "8000/tcp"
	emulatorRegion = "us-east-1"
	tableWait      = 30 * time.Second
)

// Emulator is a DynamoDB Local instance holding a document table
type Emulator struct {
	container testcontainers.Container
	endpoint  string
	table     string
	store     *docstore.Store
}

// StartEmulator runs DynamoDB Local in a container and provisions the
// document table for cfg.ProjectID
func StartEmulator(ctx context.Context, cfg config.Config) (*Emulator, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        EmulatorImage,
			ExposedPorts: []string{emulatorPort},
			Cmd:          []string{"-jar", "DynamoDBLocal.jar", "-inMemory", "-sharedDb"},
			WaitingFor:   wait.ForListeningPort(emulatorPort).WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start emulator: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, emulatorPort, "http")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to resolve emulator endpoint: %w", err)
	}

	e, err := connect(ctx, endpoint, cfg.Table)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	e.container = container
	return e, nil
}

// ConnectEmulator attaches to an already running emulator at cfg.Endpoint
func ConnectEmulator(ctx context.Context, cfg config.Config) (*Emulator, error) {
	if !cfg.UsesEmulator() {
		return nil, fmt.Errorf("%s is not set", config.EnvDynamoDBEndpoint)
	}
	return connect(ctx, cfg.Endpoint, cfg.Table)
}

func connect(ctx context.Context, endpoint, table string) (*Emulator, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(emulatorRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	admin := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	if err := docstore.EnsureTable(ctx, admin, table, tableWait); err != nil {
		return nil, err
	}

	return &Emulator{
		endpoint: endpoint,
		table:    table,
		store:    docstore.NewClient(awsCfg, table, endpoint),
	}, nil
}

// Endpoint returns the emulator's base URL
func (e *Emulator) Endpoint() string {
	return e.endpoint
}

// Store returns a document store backed by the emulator
func (e *Emulator) Store() *docstore.Store {
	return e.store
}

// Terminate stops the container if StartEmulator created it
func (e *Emulator) Terminate(ctx context.Context) error {
	if e.container == nil {
		return nil
	}
	return e.container.Terminate(ctx)
}
