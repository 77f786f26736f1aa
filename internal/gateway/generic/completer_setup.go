package generic

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

// Setup the completer with an explicit credential. The credential is never
// looked up here, it's resolved once at startup by the config layer.
func (c *Completer) Setup(apiKey, url, debugEnv string) error {
	if apiKey == "" {
		return errors.New("api key is empty")
	}
	if c.client == nil {
		c.client = &http.Client{}
	}
	c.apiKey = apiKey
	if c.URL == "" {
		c.URL = url
	}

	if misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_GATEWAY")) || misc.Truthy(os.Getenv(debugEnv)) {
		c.debug = true
	}

	return nil
}

func (c *Completer) SetRateLimiter(rl RateLimiter) {
	c.limiter = rl
}

// RateLimiterMaxWait of the current rate limiter.
func (c *Completer) RateLimiterMaxWait() time.Duration {
	return c.limiter.MaxWait
}

// SetHTTPClient replaces the client used for requests.
func (c *Completer) SetHTTPClient(client *http.Client) {
	c.client = client
}
