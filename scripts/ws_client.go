// Package main runs a demo WebSocket client for run events.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	base := fmt.Sprintf("http://localhost:%s", port)

	// Connect WS first so the run's events are not missed
	u := url.URL{Scheme: "ws", Host: "localhost:" + port, Path: "/v1/runs/ws"}
	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer func() { _ = c.Close() }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var m map[string]any
			if err := c.ReadJSON(&m); err != nil {
				log.Printf("read: %v", err)
				return
			}
			log.Printf("WS <- %v", m)
		}
	}()

	// Trigger a run
	body := []byte(`{"delivery_points":[{"id":"a","lat":12.97,"lon":77.59},{"id":"b","lat":12.98,"lon":77.60},{"id":"c","lat":12.95,"lon":77.57}],"constraints":{"algorithm":"hybrid"},"seed":42}`)
	req, _ := http.NewRequest(http.MethodPost, base+"/v1/optimize/route", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	var optResp struct {
		RunID         string   `json:"run_id"`
		Route         []string `json:"optimized_route"`
		AlgorithmUsed string   `json:"algorithm_used"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&optResp); err != nil {
		log.Fatal(err)
	}
	log.Printf("run %s via %s: %v", optResp.RunID, optResp.AlgorithmUsed, optResp.Route)

	// Wait briefly to receive the lifecycle events
	select {
	case <-time.After(2 * time.Second):
	case <-done:
	}
}
