package registry

import (
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// Registry tracks live wallet servers by address over plain HTTP: servers
// POST heartbeats, clients GET the alive list. A server that has not
// heartbeated within the timeout is dropped.
type Registry struct {
	timeout time.Duration
	mu      sync.Mutex
	servers map[string]*serverItem
}

type serverItem struct {
	addr  string
	start time.Time
}

const (
	DefaultPath    = "/_wrpc_/registry"
	DefaultTimeout = time.Minute * 5

	ServerHeader  = "X-WRPC-Server"
	ServersHeader = "X-WRPC-Servers"
)

func New(timeout time.Duration) *Registry {
	return &Registry{
		servers: make(map[string]*serverItem),
		timeout: timeout,
	}
}

var DefaultRegistry = New(DefaultTimeout)

func (r *Registry) putServer(addr string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.servers[addr]
	if s == nil {
		r.servers[addr] = &serverItem{
			addr:  addr,
			start: time.Now(),
		}
	} else {
		s.start = time.Now()
	}
}

func (r *Registry) aliveServers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var alive []string
	for _, s := range r.servers {
		if r.timeout == 0 || s.start.Add(r.timeout).After(time.Now()) {
			alive = append(alive, s.addr)
		} else {
			delete(r.servers, s.addr)
		}
	}
	sort.Strings(alive)
	return alive
}

func (r *Registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case "GET":
		w.Header().Set(ServersHeader, strings.Join(r.aliveServers(), ","))
	case "POST":
		addr := req.Header.Get(ServerHeader)
		if addr == "" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		r.putServer(addr)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (r *Registry) HandleHTTP(registryPath string) {
	http.Handle(registryPath, r)
	log.Println("wrpc registry path:", registryPath)
}

func HandleHTTP() {
	DefaultRegistry.HandleHTTP(DefaultPath)
}

// Heartbeat announces addr to the registry now and then every period, in
// the background, until the process exits.
func Heartbeat(registry, addr string, period time.Duration) {
	if period == 0 {
		period = DefaultTimeout - time.Duration(1)*time.Minute
	}
	if err := sendHeartbeat(registry, addr); err != nil {
		log.Println("wrpc registry: heartbeat err:", err)
	}
	go func() {
		ticker := time.NewTicker(period)
		for {
			<-ticker.C
			if err := sendHeartbeat(registry, addr); err != nil {
				log.Println("wrpc registry: heartbeat err:", err)
			}
		}
	}()
}

func sendHeartbeat(registry, addr string) error {
	log.Println(addr, "send heartbeat to registry", registry)
	httpClient := &http.Client{}
	req, _ := http.NewRequest("POST", registry, nil)
	req.Header.Set(ServerHeader, addr)
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}
