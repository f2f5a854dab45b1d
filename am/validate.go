package am

import "github.com/teranos/qntx-braket/errors"

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Braket.DefaultShots <= 0 {
		return errors.Newf("braket.default_shots must be > 0, got %d", c.Braket.DefaultShots)
	}
	if c.Braket.MaxShots <= 0 {
		return errors.Newf("braket.max_shots must be > 0, got %d", c.Braket.MaxShots)
	}
	if c.Braket.DefaultShots > c.Braket.MaxShots {
		return errors.Newf("braket.default_shots (%d) exceeds braket.max_shots (%d)", c.Braket.DefaultShots, c.Braket.MaxShots)
	}
	if c.Braket.RequestsPerSecond <= 0 {
		return errors.Newf("braket.requests_per_second must be > 0, got %g", c.Braket.RequestsPerSecond)
	}
	if c.Braket.Burst < 0 {
		return errors.Newf("braket.burst must be >= 0, got %d", c.Braket.Burst)
	}

	switch c.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if c.Server.Address == "" {
			return errors.New("server.address cannot be empty when server.transport is http")
		}
	default:
		return errors.WithHint(
			errors.Newf("server.transport must be %q or %q, got %q", TransportStdio, TransportHTTP, c.Server.Transport),
			"use stdio for local MCP clients",
		)
	}
	return nil
}
