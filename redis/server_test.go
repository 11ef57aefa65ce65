package redis

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
)

// fakeRedisServer is a simple TCP server that speaks enough RESP2 to satisfy go-redis
// for PING, GET and SET. HELLO is rejected so the client falls back to RESP2.
type fakeRedisServer struct {
	listener net.Listener
	wg       sync.WaitGroup
	quit     chan struct{}
	conns    sync.Map

	mux  sync.Mutex
	data map[string][]byte
}

func newFakeRedisServer() (*fakeRedisServer, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return nil, err
	}
	s := &fakeRedisServer{
		listener: l,
		quit:     make(chan struct{}),
		data:     make(map[string][]byte),
	}
	s.wg.Add(1)
	go s.serve()
	return s, nil
}

func (s *fakeRedisServer) Addr() string {
	return s.listener.Addr().String()
}

func (s *fakeRedisServer) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return
			default:
				continue
			}
		}
		s.wg.Add(1)
		s.conns.Store(conn, struct{}{})
		go s.handleConn(conn)
	}
}

func readArgs(reader *bufio.Reader) ([][]byte, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		return nil, err
	}
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "*") {
		return nil, nil
	}
	numArgs, err := strconv.Atoi(line[1:])
	if err != nil {
		return nil, err
	}
	args := make([][]byte, 0, numArgs)
	for i := 0; i < numArgs; i++ {
		hdr, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(hdr)[1:])
		if err != nil {
			return nil, err
		}
		buf := make([]byte, n+2)
		if _, err := io.ReadFull(reader, buf); err != nil {
			return nil, err
		}
		args = append(args, buf[:n])
	}
	return args, nil
}

func (s *fakeRedisServer) handleConn(c net.Conn) {
	defer s.wg.Done()
	defer func() {
		c.Close()
		s.conns.Delete(c)
	}()
	reader := bufio.NewReader(c)

	for {
		select {
		case <-s.quit:
			return
		default:
		}

		args, err := readArgs(reader)
		if err != nil {
			return
		}
		if len(args) == 0 {
			continue
		}

		switch strings.ToUpper(string(args[0])) {
		case "PING":
			c.Write([]byte("+PONG\r\n"))
		case "HELLO":
			c.Write([]byte("-ERR unknown command 'HELLO'\r\n"))
		case "SET":
			if len(args) < 3 {
				c.Write([]byte("-ERR wrong number of arguments for 'set' command\r\n"))
				continue
			}
			s.mux.Lock()
			s.data[string(args[1])] = append([]byte(nil), args[2]...)
			s.mux.Unlock()
			c.Write([]byte("+OK\r\n"))
		case "GET":
			if len(args) < 2 {
				c.Write([]byte("-ERR wrong number of arguments for 'get' command\r\n"))
				continue
			}
			s.mux.Lock()
			v, ok := s.data[string(args[1])]
			s.mux.Unlock()
			if !ok {
				c.Write([]byte("$-1\r\n"))
				continue
			}
			c.Write([]byte(fmt.Sprintf("$%d\r\n", len(v))))
			c.Write(v)
			c.Write([]byte("\r\n"))
		default:
			// CLIENT SETINFO, SELECT and the like.
			c.Write([]byte("+OK\r\n"))
		}
	}
}

func (s *fakeRedisServer) Stop() {
	select {
	case <-s.quit:
		return
	default:
	}
	close(s.quit)
	s.listener.Close()
	s.conns.Range(func(key, value interface{}) bool {
		key.(net.Conn).Close()
		return true
	})
	s.wg.Wait()
}
