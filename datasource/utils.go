// Copyright (c) of parts are held by the various contributors (see the CLA)
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package datasource

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
)

// Default values for FetchExponentialBackOff.
const (
	DefaultInitialInterval     = 800 * time.Millisecond
	DefaultRandomizationFactor = 0.5
	DefaultMultiplier          = 1.5
	DefaultMaxInterval         = 3 * time.Second
	DefaultMaxElapsedTime      = 10 * time.Second // max 10 seconds
)

// FetchExponentialBackOff creates an instance of ExponentialBackOff
func FetchExponentialBackOff() *backoff.ExponentialBackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     DefaultInitialInterval,
		RandomizationFactor: DefaultRandomizationFactor,
		Multiplier:          DefaultMultiplier,
		MaxInterval:         DefaultMaxInterval,
		MaxElapsedTime:      DefaultMaxElapsedTime,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return b
}

// NewHTTPClient is swapped out by unit tests
var NewHTTPClient = func() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// statusError classifies a non 200 response. Client errors other than rate
// limiting will not get better by retrying.
func statusError(resp *http.Response) error {
	err := fmt.Errorf("unexpected response status %s", resp.Status)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return backoff.Permanent(err)
	}
	return err
}
