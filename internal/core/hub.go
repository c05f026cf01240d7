package core

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ErrHubClosed is returned by queries once the event loop has exited.
var ErrHubClosed = errors.New("hub closed")

type clientCommand struct {
	client *Client
	cmd    *Command
}

// Hub owns the presence registry and processes every connection event
// (attach, register, relay, detach) on a single goroutine. Registry
// mutations are therefore never concurrent and each compound step
// (mutate, then broadcast) runs to completion before the next event.
type Hub struct {
	log *zerolog.Logger

	registry *Registry
	clients  map[*Client]struct{}
	byHandle map[string]*Client

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
	snapshots  chan chan Snapshot
	done       chan struct{}
}

// NewHub creates a hub with an empty registry.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		log:        logger,
		registry:   NewRegistry(),
		clients:    make(map[*Client]struct{}),
		byHandle:   make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand),
		snapshots:  make(chan chan Snapshot),
		done:       make(chan struct{}),
	}
}

// RegisterClient attaches a connection to the hub and starts pumping
// its commands into the event loop. The pump exits when the caller
// closes c.Commands or the hub shuts down.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		return
	}
	go func() {
		for cmd := range c.Commands {
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-h.done:
				return
			}
		}
	}()
}

// UnregisterClient detaches a connection and removes every registry
// entry it owns. Idempotent: detaching twice is a no-op.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// CurrentSnapshot asks the event loop for the present registry state.
func (h *Hub) CurrentSnapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	select {
	case h.snapshots <- reply:
	case <-h.done:
		return Snapshot{}, ErrHubClosed
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Run processes events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.byHandle[c.ID] = c
			h.log.Debug().Str("conn", c.ID).Msg("connection attached")
		case c := <-h.unregister:
			if _, ok := h.clients[c]; !ok {
				continue
			}
			delete(h.clients, c)
			delete(h.byHandle, c.ID)
			h.registry.RemoveByHandle(c.ID)
			h.broadcastDisconnect()
			h.log.Debug().Str("conn", c.ID).Msg("connection detached")
		case cc := <-h.commands:
			if _, ok := h.clients[cc.client]; !ok {
				// Command raced with detach; the entry is gone and must
				// not be resurrected.
				continue
			}
			h.handle(cc.client, cc.cmd)
		case reply := <-h.snapshots:
			reply <- h.registry.Snapshot()
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handle(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandRegisterCustomer:
		h.registry.RegisterCustomer(cmd.ParticipantID, c.ID, cmd.Profile)
		h.log.Info().Str("customer", cmd.ParticipantID).Str("conn", c.ID).Msg("customer registered")
		h.broadcastPresence()
	case CommandRegisterSeller:
		h.registry.RegisterSeller(cmd.ParticipantID, c.ID, cmd.Profile)
		h.log.Info().Str("seller", cmd.ParticipantID).Str("conn", c.ID).Msg("seller registered")
		h.broadcastPresence()
	case CommandRegisterAdmin:
		h.registry.RegisterAdmin(c.ID, cmd.Profile)
		h.log.Info().Str("conn", c.ID).Msg("admin registered")
		h.broadcastPresence()
	default:
		h.route(cmd)
	}
}

// broadcastPresence emits one presence cycle after a registration:
// seller list, customer list, then the admin flag, all computed from
// the post-mutation snapshot.
func (h *Hub) broadcastPresence() {
	snap := h.registry.Snapshot()
	h.broadcast(&Event{Kind: EventSellerList, Sellers: snap.Sellers})
	h.broadcast(&Event{Kind: EventCustomerList, Customers: snap.Customers})
	h.broadcast(&Event{Kind: EventAdminStatus, AdminOnline: snap.AdminOnline})
}

// broadcastDisconnect announces the admin flag as offline before the
// refreshed lists. Clients treat later registration cycles as
// authoritative for admin presence.
func (h *Hub) broadcastDisconnect() {
	snap := h.registry.Snapshot()
	h.broadcast(&Event{Kind: EventAdminStatus, AdminOnline: false})
	h.broadcast(&Event{Kind: EventSellerList, Sellers: snap.Sellers})
	h.broadcast(&Event{Kind: EventCustomerList, Customers: snap.Customers})
}

// broadcast sends an event to every attached connection, registered or
// not.
func (h *Hub) broadcast(event *Event) {
	for c := range h.clients {
		h.send(c, event)
	}
}

func (h *Hub) send(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
