// Command bridge_tester sends one setWallpaper call over the local WebSocket
// channel and prints the reply.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hexaghost/wallora/config"
	"github.com/hexaghost/wallora/pkg/channel"
)

func main() {
	file := flag.String("file", "", "image file to set as wallpaper")
	target := flag.Int("type", 0, "0 home, 1 lock, 2 both")
	port := flag.Int("port", config.DefaultPort, "channel server port")
	method := flag.String("method", channel.MethodSetWallpaper, "method to invoke")
	flag.Parse()

	args := map[string]any{"type": *target}
	if *file != "" {
		args["filePath"] = *file
	}
	raw, err := json.Marshal(args)
	if err != nil {
		log.Fatal("Encode error:", err)
	}

	u := url.URL{Scheme: "ws", Host: net.JoinHostPort(config.ListenHost, strconv.Itoa(*port)), Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal("Dial error:", err)
	}
	defer conn.Close()

	call := channel.MethodCall{
		ID:        uuid.NewString(),
		Channel:   config.ChannelName,
		Method:    *method,
		Arguments: raw,
	}
	if err := conn.WriteJSON(call); err != nil {
		log.Fatal("Write error:", err)
	}
	log.Printf("Sent %s (%s) to %s", call.Method, call.ID, u.String())

	_ = conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	var reply channel.Reply
	if err := conn.ReadJSON(&reply); err != nil {
		log.Fatal("Read error:", err)
	}

	out, _ := json.MarshalIndent(reply, "", "  ")
	fmt.Println(string(out))
	if reply.Status != channel.StatusSuccess {
		os.Exit(1)
	}
}
