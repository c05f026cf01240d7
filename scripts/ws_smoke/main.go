package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/marketwire/marketwire-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:5000/ws", "WebSocket address")
	role := flag.String("role", "customer", "role to register as: customer, seller or admin")
	id := flag.String("id", "smoke-1", "participant id (ignored for admin)")
	name := flag.String("name", "smoke tester", "display name")
	to := flag.String("to", "", "recipient id to message after registering (optional)")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(typ string, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", typ, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
			return fmt.Errorf("send %s: %w", typ, err)
		}
		return nil
	}

	var registerType, messageType string
	switch *role {
	case "customer":
		registerType, messageType = proto.InboundTypeRegisterCustomer, proto.InboundTypeCustomerMessage
	case "seller":
		registerType, messageType = proto.InboundTypeRegisterSeller, proto.InboundTypeSellerMessage
	case "admin":
		registerType, messageType = proto.InboundTypeRegisterAdmin, proto.InboundTypeAdminMessage
	default:
		return fmt.Errorf("unknown role %q", *role)
	}

	regData := proto.RegisterData{Profile: proto.Profile{Name: *name}}
	if *role != "admin" {
		regData.ID = *id
	}
	if err := send(registerType, regData); err != nil {
		return err
	}

	if *to != "" {
		payload, err := json.Marshal(map[string]string{"text": *text})
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		if err := send(messageType, proto.MessageData{To: *to, Payload: payload}); err != nil {
			return err
		}
	}

	// Print whatever the server pushes until the timeout hits.
	for {
		var frame map[string]any
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		out, _ := json.Marshal(frame)
		fmt.Println(string(out))
	}
}
