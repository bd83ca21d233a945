// Package redis provides Redis client initialization and health checking for
// the shared credential cache.
//
// Connect validates the connection URL, dials with retry and exponential
// backoff for transient network issues, and verifies connectivity with a ping
// before returning the client. Healthcheck returns a probe function suitable
// for readiness endpoints.
//
//	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: "redis://localhost:6379/0"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	probe := redis.Healthcheck(client)
package redis
