package client

import "fmt"

// Call is one in-flight wallet RPC invocation.
type Call struct {
	Seq    uint64
	Method string
	Params []interface{}
	Reply  interface{}
	Error  error
	Done   chan *Call
}

func (c *Call) done() {
	c.Done <- c
}

// WalletError is a failure reported by the wallet server itself, as opposed
// to a transport failure on the way there.
type WalletError struct {
	Method  string
	Message string
}

func (e *WalletError) Error() string {
	return fmt.Sprintf("wallet error on %q: %s", e.Method, e.Message)
}
