package core

import "encoding/json"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventSellerList carries the ordered seller presence snapshot.
	EventSellerList EventKind = iota
	// EventCustomerList carries the ordered customer presence snapshot.
	EventCustomerList
	// EventAdminStatus reports whether the admin session is online.
	EventAdminStatus
	// EventCustomerMessage delivers a customer's message to a seller.
	EventCustomerMessage
	// EventSellerMessage delivers a seller's message to a customer.
	EventSellerMessage
	// EventAdminMessage delivers the admin's message to a seller.
	EventAdminMessage
	// EventSupportMessage delivers a seller's message to the admin.
	EventSupportMessage
)

// Event is sent to clients to describe what happened. Presence events
// carry snapshot fields; relayed messages carry FromRole and the
// sender's payload, untouched.
type Event struct {
	Kind        EventKind
	Sellers     []Entry
	Customers   []Entry
	AdminOnline bool
	FromRole    Role
	Payload     json.RawMessage
}
