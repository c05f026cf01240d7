package core

import "encoding/json"

// CommandKind describes what a connection wants to do.
type CommandKind int

const (
	// CommandRegisterCustomer declares the connection as a customer.
	CommandRegisterCustomer CommandKind = iota
	// CommandRegisterSeller declares the connection as a seller.
	CommandRegisterSeller
	// CommandRegisterAdmin claims the single admin session.
	CommandRegisterAdmin
	// CommandCustomerToSeller relays a message to one seller.
	CommandCustomerToSeller
	// CommandSellerToCustomer relays a message to one customer.
	CommandSellerToCustomer
	// CommandAdminToSeller relays a message to one seller.
	CommandAdminToSeller
	// CommandSellerToAdmin relays a message to the admin session.
	CommandSellerToAdmin
)

// Command represents an action requested by a connection. Registrations
// carry ParticipantID and Profile; relays carry To and the opaque
// Payload (CommandSellerToAdmin has no To, its recipient is implicit).
type Command struct {
	Kind          CommandKind
	ParticipantID string
	Profile       Profile
	To            string
	Payload       json.RawMessage
}
