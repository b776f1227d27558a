package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ChatReply configures the fake backend's answer to one chat request
type ChatReply struct {
	Success  bool
	Response string
	Error    string
	Status   int
}

// StartChatBackend starts a fake assistant backend answering /api/chat
// with the given reply and /api/health with 200. Captured requests are
// appended to the returned slice pointer.
func StartChatBackend(t *testing.T, reply ChatReply) (*httptest.Server, *[]map[string]interface{}) {
	t.Helper()

	captured := &[]map[string]interface{}{}
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		*captured = append(*captured, body)

		w.Header().Set("Content-Type", "application/json")
		if reply.Status != 0 {
			w.WriteHeader(reply.Status)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  reply.Success,
			"response": reply.Response,
			"error":    reply.Error,
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, captured
}
