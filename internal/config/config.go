package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvProjectID        = "PROJECT_ID"
	EnvDynamoDBTable    = "DYNAMODB_TABLE"
	EnvDynamoDBEndpoint = "DYNAMODB_ENDPOINT"
)

// ErrMissingProjectID is returned when PROJECT_ID is not set
var ErrMissingProjectID = errors.New(EnvProjectID + " environment variable is required")

// Config holds the settings shared by the functions and the test harness.
// ProjectID is the namespace every other setting derives from.
type Config struct {
	ProjectID string
	Table     string
	Endpoint  string // empty outside the emulator
}

// UsesEmulator reports whether requests are routed to a local emulator endpoint
func (c Config) UsesEmulator() bool {
	return c.Endpoint != ""
}

// Load reads configuration from the process environment. Values found in
// the given dotenv files (default ".env") are applied first without
// overriding variables that are already set. Missing dotenv files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an environment lookup function
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	projectID, _ := lookup(EnvProjectID)
	if projectID == "" {
		return Config{}, ErrMissingProjectID
	}

	table, _ := lookup(EnvDynamoDBTable)
	if table == "" {
		table = DefaultTable(projectID)
	}

	endpoint, _ := lookup(EnvDynamoDBEndpoint)

	return Config{
		ProjectID: projectID,
		Table:     table,
		Endpoint:  endpoint,
	}, nil
}

// DefaultTable returns the document table name for a project
func DefaultTable(projectID string) string {
	return projectID + "-documents"
}
