package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/longerwu/wrpc-go/codec"
	"github.com/longerwu/wrpc-go/server"
)

// Client is a single wallet server connection. It exposes the same Query
// surface a pool does, so a bare client and a pool of clients are
// interchangeable to callers.
type Client struct {
	cc       codec.Codec
	opt      *server.Option
	sending  sync.Mutex
	header   codec.Header
	mu       sync.Mutex
	pending  map[uint64]*Call
	seq      uint64
	closing  bool // user called Close
	shutdown bool // receive loop hit an unrecoverable error
}

var _ io.Closer = (*Client)(nil)

var ErrShutdown = errors.New("connection is shutdown")

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closing {
		return ErrShutdown
	}
	c.closing = true
	return c.cc.Close()
}

func (c *Client) IsAvailable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closing && !c.shutdown
}

func (c *Client) registerCall(call *Call) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closing || c.shutdown {
		return 0, ErrShutdown
	}
	call.Seq = c.seq
	c.pending[c.seq] = call
	c.seq++
	return call.Seq, nil
}

func (c *Client) removeCall(seq uint64) *Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	target := c.pending[seq]
	delete(c.pending, seq)
	return target
}

func (c *Client) terminateCalls(err error) {
	c.sending.Lock()
	defer c.sending.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shutdown = true
	for _, call := range c.pending {
		call.Error = err
		call.done()
	}
}

func (c *Client) send(call *Call) {
	c.sending.Lock()
	defer c.sending.Unlock()
	seq, err := c.registerCall(call)
	if err != nil {
		call.Error = err
		call.done()
		return
	}
	c.header.Seq = seq
	c.header.Method = call.Method
	c.header.Error = ""
	if err := c.cc.Write(&c.header, call.Params); err != nil {
		if call := c.removeCall(seq); call != nil {
			call.Error = err
			call.done()
		}
	}
}

func (c *Client) Go(method string, params []interface{}, reply interface{}, done chan *Call) *Call {
	if done == nil {
		done = make(chan *Call, 10)
	} else if cap(done) == 0 {
		panic("wrpc client: done channel is unbuffered")
	}
	call := &Call{
		Method: method,
		Params: params,
		Reply:  reply,
		Done:   done,
	}
	c.send(call)
	return call
}

func (c *Client) Call(ctx context.Context, method string, params []interface{}, reply interface{}) error {
	done := make(chan *Call, 1)
	call := c.Go(method, params, reply, done)
	select {
	case <-ctx.Done():
		c.removeCall(call.Seq)
		return errors.New("wrpc client: call failed: " + ctx.Err().Error())
	case call := <-call.Done:
		return call.Error
	}
}

// Query runs one wallet method on this connection and hands back whatever
// the server returned. Server-side failures come back as *WalletError;
// transport failures as anything else.
func (c *Client) Query(ctx context.Context, method string, params ...interface{}) (interface{}, error) {
	var reply interface{}
	if err := c.Call(ctx, method, params, &reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *Client) receive() {
	var err error
	for err == nil {
		var h codec.Header
		if err = c.cc.ReadHeader(&h); err != nil {
			break
		}
		call := c.removeCall(h.Seq)
		switch {
		case call == nil:
			err = c.cc.ReadBody(nil)
		case h.Error != "":
			err = c.cc.ReadBody(nil)
			call.Error = &WalletError{Method: h.Method, Message: h.Error}
			call.done()
		default:
			err = c.cc.ReadBody(call.Reply)
			if err != nil {
				call.Error = errors.New("error reading body: " + err.Error())
			}
			call.done()
		}
	}
	c.terminateCalls(err)
}

type clientResult struct {
	client *Client
	err    error
}

type newClientFunc func(conn net.Conn, opt *server.Option) (*Client, error)

func DialTimeout(f newClientFunc, network, address string, opts ...server.OptionFunc) (client *Client, err error) {
	opt := server.DefaultOption
	for _, optFunc := range opts {
		optFunc(&opt)
	}
	conn, err := net.DialTimeout(network, address, opt.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	defer func() {
		if client == nil {
			_ = conn.Close()
		}
	}()
	ch := make(chan *clientResult, 1)
	go func() {
		c, err := f(conn, &opt)
		ch <- &clientResult{
			client: c,
			err:    err,
		}
	}()
	if opt.ConnectTimeout == 0 {
		ret := <-ch
		return ret.client, ret.err
	}
	select {
	case <-time.After(opt.ConnectTimeout):
		// the handshake may still finish after we gave up; close its client
		go func() {
			if ret := <-ch; ret.client != nil {
				_ = ret.client.Close()
			}
		}()
		return nil, fmt.Errorf("wrpc client: connect timeout: expect within %s", opt.ConnectTimeout)
	case ret := <-ch:
		return ret.client, ret.err
	}
}

func Dial(network, address string, opts ...server.OptionFunc) (*Client, error) {
	return DialTimeout(NewClient, network, address, opts...)
}

func NewClient(conn net.Conn, opt *server.Option) (*Client, error) {
	f := codec.CodecTypeMap[opt.CodecType]
	if f == nil {
		err := fmt.Errorf("wrpc client: invalid codec type %v", opt.CodecType)
		log.Println("NewClient err:", err)
		return nil, err
	}
	// send option
	if err := json.NewEncoder(conn).Encode(opt); err != nil {
		log.Println("wrpc client: send option err:", err)
		return nil, err
	}
	return newClientCodec(f(conn, opt.SerializationType, opt.CompressType), opt), nil
}

func newClientCodec(cc codec.Codec, opt *server.Option) *Client {
	c := &Client{
		seq:     1,
		cc:      cc,
		opt:     opt,
		pending: map[uint64]*Call{},
	}
	go c.receive()
	return c
}

func NewHTTPClient(conn net.Conn, opt *server.Option) (*Client, error) {
	_, _ = io.WriteString(conn, fmt.Sprintf("CONNECT %s HTTP/1.0\n\n", server.DefaultRPCPath))
	resp, err := http.ReadResponse(bufio.NewReader(conn), &http.Request{Method: "CONNECT"})
	if err == nil && resp.Status == server.Connected {
		return NewClient(conn, opt)
	}
	if err == nil {
		err = errors.New("unexpected HTTP response: " + resp.Status)
	}
	return nil, err
}

func DialHTTP(network, address string, opts ...server.OptionFunc) (*Client, error) {
	return DialTimeout(NewHTTPClient, network, address, opts...)
}

// XDial connects to a wallet server given in the general form
// protocol@addr, eg. http@10.0.0.1:7001, tcp@10.0.0.1:9999,
// unix@/tmp/wallet.sock.
func XDial(rpcAddr string, opts ...server.OptionFunc) (*Client, error) {
	parts := strings.Split(rpcAddr, "@")
	if len(parts) != 2 {
		return nil, fmt.Errorf("wrpc client: wrong address %q, expect protocol@addr", rpcAddr)
	}
	protocol, addr := parts[0], parts[1]
	switch protocol {
	case "http":
		return DialHTTP("tcp", addr, opts...)
	default:
		return Dial(protocol, addr, opts...)
	}
}
