// Package healthcheck provides the HTTP health probe for the service.
//
// The probe reports cache connectivity: 200 "ok" when every dependency
// check passes, 503 "degraded" otherwise.
package healthcheck
