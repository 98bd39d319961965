// File: cmd/demo/main.go
package main

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"codegen-agent-gateway/internal/config"
	"codegen-agent-gateway/internal/infra/adapters/codegen"
	"codegen-agent-gateway/internal/infra/logging"
	"codegen-agent-gateway/internal/usecase"
)

// Drives one full run against a scripted stand-in for the Codegen API: the
// task reports pending twice, then completes. No credentials or network
// access required.
func main() {
	// 1. Scripted Codegen API on a loopback port.
	polls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /organizations/demo-org/agent/run", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1001, "status": "pending"})
	})
	mux.HandleFunc("GET /organizations/demo-org/agent/run/1001", func(w http.ResponseWriter, _ *http.Request) {
		polls++
		reply := map[string]any{"id": 1001, "status": "pending"}
		if polls >= 2 {
			reply["status"] = "completed"
			reply["result"] = "demo patch applied"
		}
		_ = json.NewEncoder(w).Encode(reply)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	fake := &http.Server{Handler: mux}
	go func() { _ = fake.Serve(ln) }()
	defer fake.Close()

	// 2. Real client and use case, pointed at the fake, on a fast poll cadence.
	logger := logging.New(config.LogConfig{Level: "debug", Format: "console"}, true)
	agent, err := codegen.NewClient("demo-org", "demo-token", "http://"+ln.Addr().String(), 5*time.Second, logger)
	if err != nil {
		log.Fatalf("client: %v", err)
	}
	runUC := usecase.NewAgentRunUseCase(agent, 10*time.Second, 200*time.Millisecond, logger)

	// 3. One run end to end.
	res, err := runUC.Run(context.Background(), "add a health endpoint")
	if err != nil {
		log.Fatalf("run: %v", err)
	}
	log.Printf("run finished: %+v", *res)
}
