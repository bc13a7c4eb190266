package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hexaghost/wallora/config"
	"github.com/hexaghost/wallora/pkg/channel"
	"github.com/hexaghost/wallora/util/log"
)

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "running",
		"channel": config.ChannelName,
		"version": config.AppVersion,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleInvoke handles a single method call sent as the POST body.
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCallBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	mc, err := s.codec.DecodeCall(body)
	if err != nil {
		s.writeReply(w, http.StatusBadRequest, malformedReply(err))
		return
	}

	reply, err := s.invoke(r.Context(), mc)
	if err != nil {
		log.Printf("channel: dropped %s %s: %v", mc.ID, mc.Method, err)
		http.Error(w, "Request cancelled", http.StatusServiceUnavailable)
		return
	}
	s.writeReply(w, http.StatusOK, reply)
}

func (s *Server) writeReply(w http.ResponseWriter, status int, reply channel.Reply) {
	data, err := s.codec.EncodeReply(reply)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// handleWebSocket upgrades the connection and answers each call message in order.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxCallBytes)

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()
	log.Println("channel: client connected", conn.RemoteAddr())

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
		log.Println("channel: client disconnected", conn.RemoteAddr())
	}()

	// Reading happens on its own goroutine so a disconnect cancels queued calls.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	messages := make(chan []byte)
	go func() {
		defer cancel()
		defer close(messages)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			select {
			case messages <- data:
			case <-ctx.Done():
				return
			}
		}
	}()

	for data := range messages {
		var reply channel.Reply
		mc, err := s.codec.DecodeCall(data)
		if err != nil {
			reply = malformedReply(err)
		} else if reply, err = s.invoke(ctx, mc); err != nil {
			log.Printf("channel: dropped %s %s: %v", mc.ID, mc.Method, err)
			return
		}

		out, err := s.codec.EncodeReply(reply)
		if err != nil {
			log.Printf("channel: encoding reply failed: %v", err)
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			log.Printf("channel: write failed: %v", err)
			return
		}
	}
}
