// Command tcplistener is a diagnostic tool: it accepts raw TCP
// connections, runs the StateMachine directly (not FromReader) so it can
// print the event-flag snapshot alongside the parsed request, and echoes
// a trivial response.
package main

import (
	"fmt"
	"io"
	"net"
	"os"
	"sort"
	"time"

	"streamhttp/internal/request"
)

const listenAddr = ":42069"

func main() {
	tcp, err := net.Listen("tcp", listenAddr)
	if err != nil {
		fmt.Println("ERROR: failed to open.\n", err.Error())
		os.Exit(1)
	}
	defer tcp.Close()

	fmt.Println("Listening for TCP traffic on", listenAddr)
	for {
		conn, err := tcp.Accept()
		if err != nil {
			fmt.Println("ERROR: failed to accept.\n", err)
			continue
		}
		go handleConn(conn)
	}
}

func handleConn(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	sm := request.New()
	buf := make([]byte, 4096)
	for !sm.Events().MessageComplete {
		n, err := conn.Read(buf)
		if n > 0 {
			if feedErr := sm.Feed(buf[:n]); feedErr != nil {
				fmt.Println("ERROR: failed to parse request:", feedErr)
				return
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			fmt.Println("ERROR: connection read failed:", err)
			return
		}
	}

	if err := sm.HTTPError(); err != nil {
		fmt.Println("ERROR: failed to parse request:", err)
		return
	}

	req := sm.Request()
	ev := sm.Events()

	fmt.Printf("Request line:\n- Method: %s\n- Target: %s\n- Version: %d.%d\n",
		req.Method, req.RawTarget, req.Major, req.Minor)

	fmt.Printf("Events: request-line=%v headers=%v body-started=%v body-complete=%v trailers=%v complete=%v\n",
		ev.RequestLineSeen, ev.HeadersSeen, ev.BodyStarted, ev.BodyComplete, ev.TrailersProcessed, ev.MessageComplete)

	fmt.Println("Headers:")
	keys := req.Headers.Keys()
	if len(keys) == 0 {
		fmt.Println("- (none)")
	} else {
		sort.Strings(keys)
		for _, k := range keys {
			for _, v := range req.Headers.Values(k) {
				fmt.Printf("- %s: %s\n", k, v)
			}
		}
	}

	fmt.Println("Body:")
	if m, ok := req.Body.(interface{ Bytes() []byte }); ok && m.Bytes() != nil {
		fmt.Println(string(m.Bytes()))
	} else {
		fmt.Println("- (none)")
	}

	resp := "HTTP/1.1 200 OK\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Length: 2\r\n" +
		"Connection: close\r\n" +
		"\r\n" +
		"OK"
	_, _ = io.WriteString(conn, resp)
}
