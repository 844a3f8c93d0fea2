package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Load client for the execution endpoint: hammers POST /execute from several
// goroutines and reports responses per second.
const (
	executeURL  = "http://localhost:8080/execute"
	clientCount = 10
)

type testCase struct {
	Description    string `json:"description"`
	Assertion      string `json:"assertion,omitempty"`
	ExpectedOutput string `json:"expectedOutput,omitempty"`
}

type executeRequest struct {
	Language  string     `json:"language"`
	Code      string     `json:"code"`
	TestCases []testCase `json:"testCases,omitempty"`
}

func failOnError(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %s", msg, err)
	}
}

func client(wg *sync.WaitGroup, done <-chan struct{}, body []byte, count *uint64) {
	defer wg.Done()

	httpClient := &http.Client{Timeout: 30 * time.Second}
	for {
		select {
		case <-done:
			return
		default:
			resp, err := httpClient.Post(executeURL, "application/json", bytes.NewReader(body))
			if err != nil {
				log.Printf("request failed: %s", err)
				continue
			}
			resp.Body.Close()
			atomic.AddUint64(count, 1)
		}
	}
}

func reporter(done <-chan struct{}, count *uint64) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			log.Printf("%d responses/sec", atomic.SwapUint64(count, 0))
		}
	}
}

func main() {
	req := executeRequest{
		Language: "python",
		Code:     "print(sum(range(10)))",
		TestCases: []testCase{
			{Description: "sums first ten", Assertion: "sum(range(10)) == 45"},
		},
	}
	body, err := json.Marshal(req)
	failOnError(err, "failed to marshal request")

	var wg sync.WaitGroup
	var count uint64
	done := make(chan struct{})

	for i := 0; i < clientCount; i++ {
		wg.Add(1)
		go client(&wg, done, body, &count)
	}
	go reporter(done, &count)
	log.Printf("started %d clients against %s, press CTRL+C to stop", clientCount, executeURL)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	close(done)
	wg.Wait()
}
