package server

import (
	"fmt"
	"go/ast"
	"log"
	"reflect"
	"strings"
	"sync/atomic"
)

var (
	typeOfParams = reflect.TypeOf([]interface{}(nil))
	typeOfResult = reflect.TypeOf((*interface{})(nil)).Elem()
	typeOfError  = reflect.TypeOf((*error)(nil)).Elem()
)

type methodType struct {
	method  reflect.Method
	numCall uint64
}

// NumCall reports how many times the method has been invoked.
func (m *methodType) NumCall() uint64 {
	return atomic.LoadUint64(&m.numCall)
}

type service struct {
	name    string
	typ     reflect.Type
	rcvr    reflect.Value
	methods map[string]*methodType
}

func newService(rcvr interface{}) *service {
	s := &service{
		rcvr: reflect.ValueOf(rcvr),
		typ:  reflect.TypeOf(rcvr),
	}
	s.name = reflect.Indirect(s.rcvr).Type().Name()
	if !ast.IsExported(s.name) {
		panic(fmt.Sprintf("wrpc server: %s is not a valid service name", s.name))
	}
	s.registerMethods()
	return s
}

// Wallet methods are exported methods with the shape
//
//	func (recv) Name(params []interface{}) (interface{}, error)
//
// exposed on the wire under their lowercased name, the way wallet RPC
// methods are spelled (GetBalance -> "getbalance"). Anything else on the
// receiver is skipped.
func (s *service) registerMethods() {
	s.methods = make(map[string]*methodType)
	for i := 0; i < s.typ.NumMethod(); i++ {
		method := s.typ.Method(i)
		mType := method.Type
		if mType.NumIn() != 2 || mType.NumOut() != 2 {
			continue
		}
		if mType.In(1) != typeOfParams {
			continue
		}
		if mType.Out(0) != typeOfResult || mType.Out(1) != typeOfError {
			continue
		}
		name := strings.ToLower(method.Name)
		s.methods[name] = &methodType{method: method}
		log.Printf("wrpc server: %s.%s registered as %q", s.name, method.Name, name)
	}
}

func (s *service) call(m *methodType, params []interface{}) (interface{}, error) {
	atomic.AddUint64(&m.numCall, 1)
	f := m.method.Func
	ret := f.Call([]reflect.Value{s.rcvr, reflect.ValueOf(params)})
	if errInter := ret[1].Interface(); errInter != nil {
		return nil, errInter.(error)
	}
	return ret[0].Interface(), nil
}
