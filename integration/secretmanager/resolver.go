package secretmanager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	googleauth "golang.org/x/oauth2/google"
)

// Config holds secret resolver configuration with environment variable
// support.
type Config struct {
	Project      string `env:"GCP_PROJECT" envDefault:""`
	CloudProject string `env:"GOOGLE_CLOUD_PROJECT" envDefault:""`
}

// ProjectResolver is one named step in the project resolution chain.
type ProjectResolver struct {
	Name    string
	Resolve func(ctx context.Context) (string, error)
}

// ProjectResolvers builds the ordered resolution chain for the given
// configuration: explicit env values first, ambient credentials last.
func ProjectResolvers(cfg Config) []ProjectResolver {
	fixed := func(value string) func(context.Context) (string, error) {
		return func(context.Context) (string, error) { return value, nil }
	}

	return []ProjectResolver{
		{Name: "env:GCP_PROJECT", Resolve: fixed(cfg.Project)},
		{Name: "env:GOOGLE_CLOUD_PROJECT", Resolve: fixed(cfg.CloudProject)},
		{Name: "ambient:application-default", Resolve: ambientProject},
	}
}

// ambientProject discovers the project from application-default credentials.
func ambientProject(ctx context.Context) (string, error) {
	creds, err := googleauth.FindDefaultCredentials(ctx)
	if err != nil {
		return "", err
	}
	return creds.ProjectID, nil
}

// ResolveProject walks the chain in order and returns the first non-empty
// project id, logging which resolver won. Resolver errors are non-fatal for
// the chain; only full exhaustion is an error.
func ResolveProject(ctx context.Context, resolvers []ProjectResolver, logger *slog.Logger) (string, error) {
	for _, r := range resolvers {
		projectID, err := r.Resolve(ctx)
		if err != nil {
			logger.DebugContext(ctx, "project resolver failed",
				slog.String("resolver", r.Name), slog.Any("error", err))
			continue
		}
		if projectID != "" {
			logger.InfoContext(ctx, "resolved gcp project",
				slog.String("resolver", r.Name), slog.String("project_id", projectID))
			return projectID, nil
		}
	}

	logger.ErrorContext(ctx, "no project resolver produced a project id")
	return "", ErrProjectNotResolved
}

// Resolver fetches secret payloads from the managed secret store.
type Resolver struct {
	projectID string
	logger    *slog.Logger
}

// Option is a functional option for configuring the resolver.
type Option func(*Resolver)

// WithLogger sets the resolver's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New resolves the project context and returns a Resolver bound to it.
// Returns ErrProjectNotResolved when no source can supply a project id.
func New(ctx context.Context, cfg Config, opts ...Option) (*Resolver, error) {
	r := &Resolver{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(r)
	}

	projectID, err := ResolveProject(ctx, ProjectResolvers(cfg), r.logger)
	if err != nil {
		return nil, err
	}
	r.projectID = projectID

	return r, nil
}

// ProjectID returns the resolved cloud project.
func (r *Resolver) ProjectID() string {
	return r.projectID
}

// Secret fetches the payload of the named secret version.
func (r *Resolver) Secret(ctx context.Context, name, version string) ([]byte, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, errors.Join(ErrSecretAccess, err)
	}
	defer client.Close()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/%s", r.projectID, name, version),
	})
	if err != nil {
		return nil, errors.Join(ErrSecretAccess, err)
	}

	return resp.GetPayload().GetData(), nil
}
