package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	numWorkers    = 50
	numShoppers   = 20
	conversations = 5
)

var (
	baseURL      = flag.String("url", "http://127.0.0.1:3000", "kinstore base url")
	testDuration = flag.Duration("duration", 10*time.Second, "length of each phase")
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// acceptedMessages counts addMessage calls the server answered with 200.
var acceptedMessages atomic.Int64

func main() {
	flag.Parse()

	fmt.Println("=== kinstore Load Test ===")
	fmt.Printf("Target: %s | Workers: %d | Phase: %s\n\n", *baseURL, numWorkers, *testDuration)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	runID := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	convIDs := seedConversations(runID)
	before := countMessages(convIDs)

	fmt.Println("\n--- Phase 1: Storefront reads ---")
	runPhase(func(rng *rand.Rand) result {
		switch r := rng.Float64(); {
		case r < 0.40:
			return doGet("/api/offers?active=true")
		case r < 0.60:
			return doGet("/api/offers/carousel")
		case r < 0.90:
			return doGet("/api/products")
		default:
			return doGet("/api/auth/status")
		}
	})

	fmt.Println("\n--- Phase 2: Chat traffic (60% addMessage, 40% GET /api/chat) ---")
	runPhase(func(rng *rand.Rand) result {
		if rng.Float64() < 0.60 {
			return doAddMessage(rng, convIDs)
		}
		return doGet("/api/chat")
	})

	after := countMessages(convIDs)
	stored := after - before
	sent := acceptedMessages.Load()
	fmt.Println("\n--- Chat document consistency ---")
	fmt.Printf("  Accepted addMessage: %d | Stored: %d | Lost: %d\n", sent, stored, sent-int64(stored))
	if sent > int64(stored) {
		fmt.Println("  Concurrent read-modify-write dropped messages (last writer wins).")
	}
}

func seedConversations(runID string) []string {
	ids := make([]string, conversations)
	for i := range ids {
		ids[i] = fmt.Sprintf("load-%s-%d", runID, i)
		payload := map[string]interface{}{
			"id":     ids[i],
			"user":   map[string]string{"id": fmt.Sprintf("shopper-%d", i), "name": fmt.Sprintf("Shopper %d", i)},
			"status": "active",
		}
		if r := postChat("addConversation", payload); r.err {
			fmt.Printf("seeding conversation %s failed with status %d\n", ids[i], r.status)
		}
	}
	return ids
}

func countMessages(convIDs []string) int {
	resp, err := httpClient.Get(*baseURL + "/api/chat")
	if err != nil {
		return 0
	}
	defer resp.Body.Close()

	var chat struct {
		Messages []struct {
			ConversationID string `json:"conversationId"`
		} `json:"messages"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return 0
	}
	wanted := make(map[string]struct{}, len(convIDs))
	for _, id := range convIDs {
		wanted[id] = struct{}{}
	}
	n := 0
	for _, m := range chat.Messages {
		if _, ok := wanted[m.ConversationID]; ok {
			n++
		}
	}
	return n
}

func runPhase(workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(*testDuration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, *testDuration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-30s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 96))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-30s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 96))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doGet(path string) result {
	endpoint := "GET " + strings.SplitN(path, "?", 2)[0]
	start := time.Now()
	resp, err := httpClient.Get(*baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode >= 500}
}

func doAddMessage(rng *rand.Rand, convIDs []string) result {
	conv := convIDs[rng.Intn(len(convIDs))]
	shopper := rng.Intn(numShoppers)
	r := postChat("addMessage", map[string]interface{}{
		"conversationId": conv,
		"sender":         map[string]string{"id": fmt.Sprintf("shopper-%d", shopper), "name": fmt.Sprintf("Shopper %d", shopper)},
		"content":        fmt.Sprintf("Is item %d still in stock?", rng.Intn(100)),
	})
	if !r.err {
		acceptedMessages.Add(1)
	}
	return r
}

func postChat(kind string, payload interface{}) result {
	data, _ := json.Marshal(map[string]interface{}{"type": kind, "payload": payload})
	endpoint := "POST /api/chat " + kind
	start := time.Now()
	resp, err := httpClient.Post(*baseURL+"/api/chat", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
