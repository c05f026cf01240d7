package core

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func startHub(t *testing.T) *Hub {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := zerolog.Nop()
	hub := NewHub(&logger)
	go hub.Run(ctx)
	return hub
}

func TestHubRelaysCustomerMessageToSellerOnly(t *testing.T) {
	hub := startHub(t)

	seller := NewClient("hs")
	customer := NewClient("hc")
	bystander := NewClient("hb")
	hub.RegisterClient(seller)
	hub.RegisterClient(customer)
	hub.RegisterClient(bystander)

	seller.Commands <- &Command{Kind: CommandRegisterSeller, ParticipantID: "S1", Profile: Profile{ShopName: "shop"}}
	customer.Commands <- &Command{Kind: CommandRegisterCustomer, ParticipantID: "C1"}

	payload := json.RawMessage(`{"text":"hi"}`)
	customer.Commands <- &Command{Kind: CommandCustomerToSeller, To: "S1", Payload: payload}

	ev := mustEvent(t, seller.Events, EventCustomerMessage)
	if !bytes.Equal(ev.Payload, payload) {
		t.Fatalf("expected payload relayed verbatim, got %s", ev.Payload)
	}
	if ev.FromRole != RoleCustomer {
		t.Fatalf("unexpected sender role: %s", ev.FromRole)
	}

	// Relay is point-to-point: nobody else sees the message.
	expectNoEvent(t, bystander.Events, EventCustomerMessage)
	expectNoEvent(t, customer.Events, EventCustomerMessage)
}

func TestHubDropsMessageToOfflineRecipient(t *testing.T) {
	hub := startHub(t)

	seller := NewClient("hs")
	hub.RegisterClient(seller)
	seller.Commands <- &Command{Kind: CommandRegisterSeller, ParticipantID: "S1"}

	seller.Commands <- &Command{Kind: CommandSellerToCustomer, To: "nobody", Payload: json.RawMessage(`"hi"`)}

	// No delivery, no error event back to the sender.
	expectNoEvent(t, seller.Events, EventSellerMessage)
}

func TestHubSellerToAdminDroppedWhenNoAdmin(t *testing.T) {
	hub := startHub(t)

	seller := NewClient("hs")
	observer := NewClient("ho")
	hub.RegisterClient(seller)
	hub.RegisterClient(observer)

	seller.Commands <- &Command{Kind: CommandRegisterSeller, ParticipantID: "S1"}
	seller.Commands <- &Command{Kind: CommandSellerToAdmin, Payload: json.RawMessage(`"help"`)}

	expectNoEvent(t, seller.Events, EventSupportMessage)
	expectNoEvent(t, observer.Events, EventSupportMessage)
}

func TestHubDuplicateSellerDeliversToFirstConnection(t *testing.T) {
	hub := startHub(t)

	first := NewClient("h1")
	second := NewClient("h2")
	customer := NewClient("hc")
	hub.RegisterClient(first)
	hub.RegisterClient(second)
	hub.RegisterClient(customer)

	first.Commands <- &Command{Kind: CommandRegisterSeller, ParticipantID: "S1"}
	second.Commands <- &Command{Kind: CommandRegisterSeller, ParticipantID: "S1"}
	customer.Commands <- &Command{Kind: CommandRegisterCustomer, ParticipantID: "C1"}

	customer.Commands <- &Command{Kind: CommandCustomerToSeller, To: "S1", Payload: json.RawMessage(`"hi"`)}

	mustEvent(t, first.Events, EventCustomerMessage)
	expectNoEvent(t, second.Events, EventCustomerMessage)
}

func TestHubDisconnectBroadcastOrder(t *testing.T) {
	hub := startHub(t)

	observer := NewClient("ho")
	seller := NewClient("hs")
	hub.RegisterClient(observer)
	hub.RegisterClient(seller)

	seller.Commands <- &Command{Kind: CommandRegisterSeller, ParticipantID: "S1"}

	// Registration cycle: seller list, customer list, admin flag.
	ev := nextEvent(t, observer.Events)
	if ev.Kind != EventSellerList || len(ev.Sellers) != 1 || ev.Sellers[0].ID != "S1" {
		t.Fatalf("unexpected first event: %+v", ev)
	}
	if ev = nextEvent(t, observer.Events); ev.Kind != EventCustomerList {
		t.Fatalf("expected customer list, got %+v", ev)
	}
	if ev = nextEvent(t, observer.Events); ev.Kind != EventAdminStatus || ev.AdminOnline {
		t.Fatalf("expected admin offline flag, got %+v", ev)
	}

	hub.UnregisterClient(seller)
	close(seller.Commands)

	// Disconnect cycle: admin flag first, then the refreshed lists.
	if ev = nextEvent(t, observer.Events); ev.Kind != EventAdminStatus || ev.AdminOnline {
		t.Fatalf("expected admin offline announcement first, got %+v", ev)
	}
	if ev = nextEvent(t, observer.Events); ev.Kind != EventSellerList || len(ev.Sellers) != 0 {
		t.Fatalf("expected empty seller list, got %+v", ev)
	}
	if ev = nextEvent(t, observer.Events); ev.Kind != EventCustomerList {
		t.Fatalf("expected customer list last, got %+v", ev)
	}
}

func TestHubPresenceCycleReflectsMutation(t *testing.T) {
	hub := startHub(t)

	c := NewClient("hc")
	hub.RegisterClient(c)
	c.Commands <- &Command{Kind: CommandRegisterCustomer, ParticipantID: "C1", Profile: Profile{Name: "carol"}}

	ev := nextEvent(t, c.Events)
	if ev.Kind != EventSellerList || len(ev.Sellers) != 0 {
		t.Fatalf("unexpected seller list: %+v", ev)
	}
	ev = nextEvent(t, c.Events)
	if ev.Kind != EventCustomerList || len(ev.Customers) != 1 || ev.Customers[0].Profile.Name != "carol" {
		t.Fatalf("expected post-mutation customer list, got %+v", ev)
	}
	ev = nextEvent(t, c.Events)
	if ev.Kind != EventAdminStatus || ev.AdminOnline {
		t.Fatalf("unexpected admin flag: %+v", ev)
	}
}

func TestHubRelayTrustsDeclaredRole(t *testing.T) {
	hub := startHub(t)

	seller := NewClient("hs")
	stranger := NewClient("hx")
	hub.RegisterClient(seller)
	hub.RegisterClient(stranger)

	seller.Commands <- &Command{Kind: CommandRegisterSeller, ParticipantID: "S1"}

	// A connection that never registered can still relay under any
	// declared role; identities are validated upstream of the socket.
	stranger.Commands <- &Command{Kind: CommandCustomerToSeller, To: "S1", Payload: json.RawMessage(`"hi"`)}

	mustEvent(t, seller.Events, EventCustomerMessage)
}

func TestHubSecondAdminSilentlyDisplacesFirst(t *testing.T) {
	hub := startHub(t)

	admin1 := NewClient("ha1")
	admin2 := NewClient("ha2")
	seller := NewClient("hs")
	hub.RegisterClient(admin1)
	hub.RegisterClient(admin2)
	hub.RegisterClient(seller)

	admin1.Commands <- &Command{Kind: CommandRegisterAdmin, Profile: Profile{Name: "first"}}
	mustEvent(t, admin1.Events, EventAdminStatus)
	admin2.Commands <- &Command{Kind: CommandRegisterAdmin, Profile: Profile{Name: "second"}}

	seller.Commands <- &Command{Kind: CommandRegisterSeller, ParticipantID: "S1"}
	seller.Commands <- &Command{Kind: CommandSellerToAdmin, Payload: json.RawMessage(`"help"`)}

	mustEvent(t, admin2.Events, EventSupportMessage)

	// The displaced admin's connection stays open and keeps receiving
	// broadcasts; it just no longer owns the slot.
	mustEvent(t, admin1.Events, EventSellerList)
	expectNoEvent(t, admin1.Events, EventSupportMessage)
}
