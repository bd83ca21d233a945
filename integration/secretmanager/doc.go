// Package secretmanager fetches the OAuth client identity from Google Cloud
// Secret Manager at startup.
//
// The cloud project context is resolved through an explicit, ordered chain of
// named resolvers: the GCP_PROJECT environment value, then
// GOOGLE_CLOUD_PROJECT, then ambient application-default credentials. Each
// resolver is independently testable and the final outcome is logged. When no
// resolver yields a project, startup fails; the system cannot safely start
// without its OAuth client identity while federated login is enabled.
package secretmanager
