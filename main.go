package main

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/longerwu/wrpc-go/client"
	"github.com/longerwu/wrpc-go/pool"
	"github.com/longerwu/wrpc-go/server"
)

// Wallet is a demo backend. Each server instance answers with its own
// balance so the round-robin rotation is visible in the output.
type Wallet struct {
	Balance float64
}

func (w *Wallet) GetBalance(params []interface{}) (interface{}, error) {
	return w.Balance, nil
}

func (w *Wallet) GetInfo(params []interface{}) (interface{}, error) {
	return map[string]interface{}{"balance": w.Balance, "version": "wrpc-demo"}, nil
}

func startServer(balance float64, addr chan string) {
	s := server.NewServer()
	if err := s.Register(&Wallet{Balance: balance}); err != nil {
		panic("register err:" + err.Error())
	}
	lis, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	addr <- lis.Addr().String()
	fmt.Println("server started at:", lis.Addr().String())
	if err := s.Accept(lis); err != nil {
		panic(err)
	}
}

func main() {
	addr := make(chan string)
	go startServer(1, addr)
	first := <-addr
	go startServer(2, addr)
	second := <-addr

	p := pool.New()
	for _, address := range []string{first, second} {
		c, err := client.Dial("tcp", address)
		if err != nil {
			panic(err)
		}
		defer func() {
			_ = c.Close()
		}()
		p.Add(c)
	}
	fmt.Println("pool size:", p.Count())

	for i := 0; i < 6; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		result, err := p.Query(ctx, "getbalance")
		cancel()
		if err != nil {
			fmt.Println("query err:", err)
			continue
		}
		fmt.Println("getbalance:", result)
	}
}
