package secretmanager_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickearl/authgate/integration/secretmanager"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveProject(t *testing.T) {
	t.Parallel()

	t.Run("first non-empty resolver wins", func(t *testing.T) {
		t.Parallel()

		resolvers := []secretmanager.ProjectResolver{
			{Name: "empty", Resolve: func(context.Context) (string, error) { return "", nil }},
			{Name: "primary", Resolve: func(context.Context) (string, error) { return "proj-a", nil }},
			{Name: "secondary", Resolve: func(context.Context) (string, error) { return "proj-b", nil }},
		}

		projectID, err := secretmanager.ResolveProject(context.Background(), resolvers, discardLogger())
		require.NoError(t, err)
		assert.Equal(t, "proj-a", projectID)
	})

	t.Run("resolver errors are skipped", func(t *testing.T) {
		t.Parallel()

		resolvers := []secretmanager.ProjectResolver{
			{Name: "broken", Resolve: func(context.Context) (string, error) { return "", errors.New("no creds") }},
			{Name: "fallback", Resolve: func(context.Context) (string, error) { return "proj-c", nil }},
		}

		projectID, err := secretmanager.ResolveProject(context.Background(), resolvers, discardLogger())
		require.NoError(t, err)
		assert.Equal(t, "proj-c", projectID)
	})

	t.Run("exhausted chain returns ErrProjectNotResolved", func(t *testing.T) {
		t.Parallel()

		resolvers := []secretmanager.ProjectResolver{
			{Name: "empty", Resolve: func(context.Context) (string, error) { return "", nil }},
			{Name: "broken", Resolve: func(context.Context) (string, error) { return "", errors.New("no creds") }},
		}

		_, err := secretmanager.ResolveProject(context.Background(), resolvers, discardLogger())
		require.ErrorIs(t, err, secretmanager.ErrProjectNotResolved)
	})
}

func TestProjectResolvers(t *testing.T) {
	t.Parallel()

	t.Run("env vars take priority in declared order", func(t *testing.T) {
		t.Parallel()

		resolvers := secretmanager.ProjectResolvers(secretmanager.Config{
			Project:      "explicit-proj",
			CloudProject: "cloud-proj",
		})
		require.Len(t, resolvers, 3)
		assert.Equal(t, "env:GCP_PROJECT", resolvers[0].Name)
		assert.Equal(t, "env:GOOGLE_CLOUD_PROJECT", resolvers[1].Name)
		assert.Equal(t, "ambient:application-default", resolvers[2].Name)

		projectID, err := secretmanager.ResolveProject(context.Background(), resolvers, discardLogger())
		require.NoError(t, err)
		assert.Equal(t, "explicit-proj", projectID)
	})

	t.Run("falls through empty project to cloud project", func(t *testing.T) {
		t.Parallel()

		resolvers := secretmanager.ProjectResolvers(secretmanager.Config{CloudProject: "cloud-proj"})
		projectID, err := secretmanager.ResolveProject(context.Background(), resolvers[:2], discardLogger())
		require.NoError(t, err)
		assert.Equal(t, "cloud-proj", projectID)
	})
}
