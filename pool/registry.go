package pool

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/longerwu/wrpc-go/client"
	"github.com/longerwu/wrpc-go/registry"
	"github.com/longerwu/wrpc-go/server"
)

var _ Queryable = (*client.Client)(nil)

// FromRegistry builds a pool holding one client per wallet server the
// registry currently reports alive, in the order the registry lists them.
// Any dial failure fails the whole build; a half-connected pool would make
// the rotation unpredictable.
func FromRegistry(registryAddr string, opts ...server.OptionFunc) (*Pool, error) {
	resp, err := http.Get(registryAddr)
	if err != nil {
		return nil, fmt.Errorf("wrpc pool: registry %s unreachable: %w", registryAddr, err)
	}
	defer resp.Body.Close()
	p := New()
	var clients []*client.Client
	for _, addr := range strings.Split(resp.Header.Get(registry.ServersHeader), ",") {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
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

// closeAll releases clients dialed before a pool build failed; a failed
// build must not leave connections behind.
func closeAll(clients []*client.Client) {
	for _, c := range clients {
		_ = c.Close()
	}
}
