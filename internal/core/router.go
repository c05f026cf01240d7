package core

// route resolves the single recipient of a relay command against the
// registry and forwards the payload to that one connection. One lookup,
// one point-to-point send; an unresolved recipient means the message is
// dropped without any signal to the sender. The role implied by the
// command kind is taken as declared and not cross-checked against the
// sender's own registration.
func (h *Hub) route(cmd *Command) {
	var (
		entry Entry
		found bool
		kind  EventKind
		from  Role
	)

	switch cmd.Kind {
	case CommandCustomerToSeller:
		entry, found = h.registry.FindSeller(cmd.To)
		kind, from = EventCustomerMessage, RoleCustomer
	case CommandSellerToCustomer:
		entry, found = h.registry.FindCustomer(cmd.To)
		kind, from = EventSellerMessage, RoleSeller
	case CommandAdminToSeller:
		entry, found = h.registry.FindSeller(cmd.To)
		kind, from = EventAdminMessage, RoleAdmin
	case CommandSellerToAdmin:
		entry, found = h.registry.Admin()
		kind, from = EventSupportMessage, RoleSeller
	default:
		return
	}

	if !found {
		h.log.Debug().Str("to", cmd.To).Msg("relay dropped, recipient offline")
		return
	}

	target, connected := h.byHandle[entry.Handle]
	if !connected {
		return
	}

	h.send(target, &Event{Kind: kind, FromRole: from, Payload: cmd.Payload})
}
