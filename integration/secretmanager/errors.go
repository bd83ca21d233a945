package secretmanager

import "errors"

var (
	// ErrProjectNotResolved indicates no configured or ambient source could
	// supply a cloud project id. Fatal at startup when federated login is
	// enabled.
	ErrProjectNotResolved = errors.New("gcp project id not resolved, set GCP_PROJECT or GOOGLE_CLOUD_PROJECT or sign in with application-default credentials")

	// ErrSecretAccess indicates the secret version could not be fetched.
	ErrSecretAccess = errors.New("failed to access secret version")
)
