package pool

import (
	"fmt"

	"github.com/longerwu/wrpc-go/client"
	"github.com/longerwu/wrpc-go/config"
)

// FromConfig assembles a pool from a validated config: either by asking the
// configured registry, or by dialing the static endpoint list in order.
func FromConfig(cfg *config.Config) (*Pool, error) {
	opts := cfg.Options()
	if cfg.Registry != "" {
		return FromRegistry(cfg.Registry, opts...)
	}
	p := New()
	var clients []*client.Client
	for _, addr := range cfg.Endpoints {
		c, err := client.XDial(addr, opts...)
		if err != nil {
			closeAll(clients)
			return nil, fmt.Errorf("wrpc pool: dial %s: %w", addr, err)
		}
		clients = append(clients, c)
		p.Add(c)
	}
	return p, nil
}
