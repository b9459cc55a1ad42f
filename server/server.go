package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/longerwu/wrpc-go/codec"
)

const MagicNumber = 0x7a11e7

const (
	Connected      = "200 Connected to wrpc"
	DefaultRPCPath = "/_wrpc_"
)

// Option is exchanged as plain JSON before framed traffic starts, so both
// ends agree on the codec before the codec exists. ConnectTimeout is a
// client-side dial knob and never travels.
type Option struct {
	MagicNumber       int             `json:"magic_number"`
	CodecType         codec.CodecType `json:"codec_type"`
	SerializationType int             `json:"serialization_type"`
	CompressType      int             `json:"compress_type"`
	ConnectTimeout    time.Duration   `json:"-"`
}

type OptionFunc func(option *Option)

func WithCodecType(codecType codec.CodecType) OptionFunc {
	return func(option *Option) {
		option.CodecType = codecType
	}
}

func WithSerializationType(serializationType int) OptionFunc {
	return func(option *Option) {
		option.SerializationType = serializationType
	}
}

func WithCompressType(compressType int) OptionFunc {
	return func(option *Option) {
		option.CompressType = compressType
	}
}

func WithConnectTimeout(timeout time.Duration) OptionFunc {
	return func(option *Option) {
		option.ConnectTimeout = timeout
	}
}

var DefaultOption = Option{
	MagicNumber:       MagicNumber,
	CodecType:         codec.CodecTypeFrame,
	SerializationType: codec.SerializationTypeJson,
	CompressType:      codec.CompressTypeNoop,
	ConnectTimeout:    time.Second * 10,
}

// Server answers wallet RPC calls with methods registered via Register.
type Server struct {
	methods sync.Map // wallet method name -> *boundMethod
}

type boundMethod struct {
	svc *service
	m   *methodType
}

func NewServer() *Server {
	return &Server{}
}

// Register publishes every wallet-shaped method of rcvr (see service.go)
// under its lowercased name. Registering a name twice is an error.
func (s *Server) Register(rcvr interface{}) error {
	svc := newService(rcvr)
	if len(svc.methods) == 0 {
		return fmt.Errorf("wrpc server: %s exposes no wallet methods", svc.name)
	}
	for name, m := range svc.methods {
		if _, dup := s.methods.LoadOrStore(name, &boundMethod{svc: svc, m: m}); dup {
			return fmt.Errorf("wrpc server: method %q already registered", name)
		}
	}
	return nil
}

func (s *Server) Accept(lis net.Listener) error {
	for {
		conn, err := lis.Accept()
		if err != nil {
			return err
		}
		go s.ServeConn(conn)
	}
}

func (s *Server) ServeConn(conn net.Conn) {
	defer func() {
		_ = conn.Close()
	}()
	dec := json.NewDecoder(conn)
	var opt Option
	if err := dec.Decode(&opt); err != nil {
		log.Println("wrpc server: decode option err:", err)
		return
	}
	if opt.MagicNumber != MagicNumber {
		log.Printf("wrpc server: invalid magic number %x", opt.MagicNumber)
		return
	}
	f := codec.CodecTypeMap[opt.CodecType]
	if f == nil {
		log.Printf("wrpc server: invalid codec type %v", opt.CodecType)
		return
	}
	// The option decoder may have buffered the beginning of the framed
	// stream; hand the leftover bytes to the codec.
	rwc := &bufferedConn{reader: io.MultiReader(dec.Buffered(), conn), Conn: conn}
	s.serveCodec(f(rwc, opt.SerializationType, opt.CompressType))
}

type bufferedConn struct {
	reader io.Reader
	net.Conn
}

func (b *bufferedConn) Read(p []byte) (int, error) {
	return b.reader.Read(p)
}

// invalidRequest is a placeholder for the response body when an error occurs.
var invalidRequest = struct{}{}

func (s *Server) serveCodec(c codec.Codec) {
	wg := &sync.WaitGroup{}
	mu := &sync.Mutex{}
	for {
		req, err := s.readRequest(c)
		if err != nil {
			if req == nil || err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			req.h.Error = err.Error()
			_ = s.sendResponse(c, req.h, invalidRequest, mu)
			continue
		}
		wg.Add(1)
		go s.handleRequest(c, req, wg, mu)
	}
	wg.Wait()
}

type request struct {
	h      *codec.Header
	params []interface{}
}

func (s *Server) readRequest(c codec.Codec) (*request, error) {
	h := &codec.Header{}
	if err := c.ReadHeader(h); err != nil {
		return nil, err
	}
	req := &request{h: h}
	if err := c.ReadBody(&req.params); err != nil {
		log.Println("wrpc server: read params err:", err)
		return req, err
	}
	return req, nil
}

func (s *Server) handleRequest(c codec.Codec, req *request, wg *sync.WaitGroup, mu *sync.Mutex) {
	defer wg.Done()
	v, ok := s.methods.Load(req.h.Method)
	if !ok {
		req.h.Error = fmt.Sprintf("method %q not found", req.h.Method)
		_ = s.sendResponse(c, req.h, invalidRequest, mu)
		return
	}
	b := v.(*boundMethod)
	result, err := b.svc.call(b.m, req.params)
	if err != nil {
		req.h.Error = err.Error()
		_ = s.sendResponse(c, req.h, invalidRequest, mu)
		return
	}
	_ = s.sendResponse(c, req.h, result, mu)
}

func (s *Server) sendResponse(c codec.Codec, h *codec.Header, body interface{}, mu *sync.Mutex) error {
	mu.Lock()
	defer mu.Unlock()
	if err := c.Write(h, body); err != nil {
		log.Println("wrpc server: send response err:", err)
		return err
	}
	return nil
}

// ServeHTTP answers a CONNECT with a bare 200 and then speaks wallet RPC
// over the hijacked connection.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != "CONNECT" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = io.WriteString(w, "405 must CONNECT\n")
		return
	}
	conn, _, err := w.(http.Hijacker).Hijack()
	if err != nil {
		log.Println("wrpc server: hijack", req.RemoteAddr, "err:", err)
		return
	}
	_, _ = io.WriteString(conn, "HTTP/1.0 "+Connected+"\n\n")
	s.ServeConn(conn)
}

func (s *Server) HandleHTTP() {
	http.Handle(DefaultRPCPath, s)
}
