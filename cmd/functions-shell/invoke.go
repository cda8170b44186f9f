package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/auth"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/callable"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/functions"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/harness"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/trigger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/spf13/cobra"
)

// InvokeOptions holds flags for the invoke command
type InvokeOptions struct {
	*RootOptions
	Data     string
	Params   map[string]string
	Query    map[string]string
	Path     string
	EventID  string
	Remote   bool
	FromPool string
	Username string
	Timeout  time.Duration
}

// userInput is the --data shape accepted by user triggers
type userInput struct {
	UID           string         `json:"uid"`
	Email         string         `json:"email"`
	EmailVerified bool           `json:"emailVerified"`
	DisplayName   string         `json:"displayName"`
	PhotoURL      string         `json:"photoURL"`
	PhoneNumber   string         `json:"phoneNumber"`
	Disabled      bool           `json:"disabled"`
	PasswordHash  string         `json:"passwordHash"`
	PasswordSalt  string         `json:"passwordSalt"`
	CustomClaims  map[string]any `json:"customClaims"`
	TenantID      string         `json:"tenantId"`
}

// NewInvokeCommand creates the invoke command
func NewInvokeCommand(rootOpts *RootOptions, clients Clients) *cobra.Command {
	opts := &InvokeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "invoke <function>",
		Short: "Invoke a function with a fake payload",
		Long: `Invoke a function with a fake payload.

Examples:
  functions-shell invoke simpleHttp --query text=hello
  functions-shell invoke simpleCallable --data '{"a":1,"b":2}'
  functions-shell invoke firestoreUppercase --data '{"text":"hello"}' --param id=foo --memory
  functions-shell invoke userSaver --data @user.yaml
  functions-shell invoke userSaver --from-pool us-east-1_abc --username alice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()
			return runInvoke(ctx, opts, clients, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Data, "data", "", "payload as JSON, or @file (.json, .yaml, .yml)")
	cmd.Flags().StringToStringVar(&opts.Params, "param", nil, "path parameter for document triggers (name=value)")
	cmd.Flags().StringToStringVar(&opts.Query, "query", nil, "query parameter for HTTP functions (name=value)")
	cmd.Flags().StringVar(&opts.Path, "path", "", "path of the fake document snapshot (default from --param)")
	cmd.Flags().StringVar(&opts.EventID, "event-id", "", "event ID delivered in the context (default random)")
	cmd.Flags().BoolVar(&opts.Remote, "remote", false, "invoke the deployed callable instead of running it locally")
	cmd.Flags().StringVar(&opts.FromPool, "from-pool", "", "load the user record from this Cognito user pool")
	cmd.Flags().StringVar(&opts.Username, "username", "", "username to load with --from-pool")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "invocation deadline")

	return cmd
}

func runInvoke(ctx context.Context, opts *InvokeOptions, clients Clients, name string, out io.Writer) error {
	def, err := functions.Definitions().Get(name)
	if err != nil {
		return err
	}
	if opts.Remote && def.Kind != functions.KindCallable {
		return fmt.Errorf("--remote is only supported for callable functions, %s is %s", def.Name, def.Kind)
	}

	data, err := parseData(opts.Data)
	if err != nil {
		return err
	}

	switch def.Name {
	case functions.NameSimpleHTTP:
		body, err := harness.InvokeHTTP(ctx, functions.SimpleHTTP, opts.Query)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, body)
		return nil

	case functions.NameSimpleCallable:
		if opts.Remote {
			lc, err := clients.Lambda(ctx, opts.RootOptions)
			if err != nil {
				return err
			}
			result, err := callable.NewInvoker(lc).Call(ctx, def.Lambda, data, nil)
			if err != nil {
				return err
			}
			return writeJSON(out, result)
		}
		result, err := harness.WrapCallable(functions.SimpleCallable)(ctx, data, harness.ContextOptions{})
		if err != nil {
			return err
		}
		return writeJSON(out, result)

	case functions.NameFirestoreUppercase:
		fields, err := dataObject(data)
		if err != nil {
			return err
		}
		pattern, err := trigger.ParsePattern(def.Resource)
		if err != nil {
			return err
		}
		path := opts.Path
		if path == "" {
			// leave the snapshot unlabelled when params are missing; the
			// wrapped trigger reports the missing param
			path, _ = pattern.Expand(opts.Params)
		}

		h, err := openHarness(ctx, opts, clients)
		if err != nil {
			return err
		}
		wrapped := harness.WrapDocumentTrigger(pattern, h.Functions().UppercaseOnCreate)
		snap := harness.MakeDocumentSnapshot(fields, path)
		if err := wrapped(ctx, snap, harness.ContextOptions{Params: opts.Params, EventID: opts.EventID}); err != nil {
			return err
		}
		return printWritten(ctx, out, h)

	case functions.NameUserSaver:
		user, err := loadUser(ctx, opts, clients, data)
		if err != nil {
			return err
		}

		h, err := openHarness(ctx, opts, clients)
		if err != nil {
			return err
		}
		wrapped := harness.WrapAuthTrigger(h.Functions().SaveUserOnCreate)
		if err := wrapped(ctx, user, harness.ContextOptions{EventID: opts.EventID, UserPool: opts.FromPool}); err != nil {
			return err
		}
		return printWritten(ctx, out, h)
	}

	return fmt.Errorf("%w: %s has no local invoker", functions.ErrUnknownFunction, def.Name)
}

func openHarness(ctx context.Context, opts *InvokeOptions, clients Clients) (*harness.Harness, error) {
	if opts.Memory {
		return harness.New(harness.NewMemoryStore()), nil
	}
	docs, err := clients.Docs(ctx, opts.RootOptions)
	if err != nil {
		return nil, err
	}
	return harness.New(docs), nil
}

func loadUser(ctx context.Context, opts *InvokeOptions, clients Clients, data any) (auth.UserRecord, error) {
	if opts.FromPool == "" {
		if opts.Username != "" {
			return auth.UserRecord{}, errors.New("--username requires --from-pool")
		}
		var in userInput
		if err := decodeInto(data, &in); err != nil {
			return auth.UserRecord{}, fmt.Errorf("invalid user data: %w", err)
		}
		return harness.MakeUserRecord(harness.UserRecordFields{
			UID:           in.UID,
			Email:         in.Email,
			EmailVerified: in.EmailVerified,
			DisplayName:   in.DisplayName,
			PhotoURL:      in.PhotoURL,
			PhoneNumber:   in.PhoneNumber,
			Disabled:      in.Disabled,
			PasswordHash:  in.PasswordHash,
			PasswordSalt:  in.PasswordSalt,
			CustomClaims:  in.CustomClaims,
			TenantID:      in.TenantID,
		}), nil
	}

	if opts.Username == "" {
		return auth.UserRecord{}, errors.New("--from-pool requires --username")
	}
	client, err := clients.Cognito(ctx, opts.RootOptions)
	if err != nil {
		return auth.UserRecord{}, err
	}
	output, err := client.AdminGetUser(ctx, &cognitoidentityprovider.AdminGetUserInput{
		UserPoolId: aws.String(opts.FromPool),
		Username:   aws.String(opts.Username),
	})
	if err != nil {
		return auth.UserRecord{}, fmt.Errorf("failed to get user %s: %w", opts.Username, err)
	}
	return auth.FromUserType(types.UserType{
		Username:             output.Username,
		Attributes:           output.UserAttributes,
		Enabled:              output.Enabled,
		UserCreateDate:       output.UserCreateDate,
		UserLastModifiedDate: output.UserLastModifiedDate,
		UserStatus:           output.UserStatus,
	}), nil
}

func printWritten(ctx context.Context, out io.Writer, h *harness.Harness) error {
	for _, p := range h.Paths() {
		snap, err := h.Store().Get(ctx, p)
		if err != nil {
			return err
		}
		body, err := json.Marshal(snap.Data())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", p, body)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(body))
	return nil
}
