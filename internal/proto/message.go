package proto

import "encoding/json"

// Inbound is the envelope for frames coming from a client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeRegisterCustomer = "register_customer"
	InboundTypeRegisterSeller   = "register_seller"
	InboundTypeRegisterAdmin    = "register_admin"
	// InboundTypeCustomerMessage is a customer's message to one seller.
	InboundTypeCustomerMessage = "customer_message"
	// InboundTypeSellerMessage is a seller's message to one customer.
	InboundTypeSellerMessage = "seller_message"
	// InboundTypeAdminMessage is the admin's message to one seller.
	InboundTypeAdminMessage = "admin_message"
	// InboundTypeSupportMessage is a seller's message to the admin; the
	// recipient is implicit.
	InboundTypeSupportMessage = "support_message"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventSellerList   = "seller_list"
	EventCustomerList = "customer_list"
	EventAdminStatus  = "admin_status"
)

// Error codes for protocol-level rejections.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidMessage = "invalid_message"
)

// Profile is the display metadata a client announces at registration.
type Profile struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	ShopName string `json:"shop_name,omitempty"`
}

// RegisterData introduces a participant. ID is the stable account id;
// the admin registers with a profile only.
type RegisterData struct {
	ID      string  `json:"id,omitempty"`
	Profile Profile `json:"profile"`
}

// MessageData carries one relayed message. To names the recipient and
// is empty for support_message. Payload is opaque and relayed verbatim.
type MessageData struct {
	To      string          `json:"to,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// Outbound is the envelope for frames sent to a client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// PresenceEntry is one connected participant in a presence list.
type PresenceEntry struct {
	ID      string  `json:"id"`
	Profile Profile `json:"profile"`
}

// AdminStatus reports whether the admin session is online.
type AdminStatus struct {
	Online bool `json:"online"`
}

// RelayedMessage is a point-to-point message delivered to its single
// recipient.
type RelayedMessage struct {
	FromRole string          `json:"from_role"`
	Payload  json.RawMessage `json:"payload"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
