package http

import (
	"encoding/json"

	"github.com/marketwire/marketwire-server/internal/core"
	"github.com/marketwire/marketwire-server/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeRegisterCustomer, proto.InboundTypeRegisterSeller:
		var reg proto.RegisterData
		if err := json.Unmarshal(inbound.Data, &reg); err != nil {
			return nil, nil, err
		}
		if reg.ID == "" {
			return nil, &proto.Error{Code: proto.ErrCodeBadRequest, Msg: "id is required"}, nil
		}
		kind := core.CommandRegisterCustomer
		if inbound.Type == proto.InboundTypeRegisterSeller {
			kind = core.CommandRegisterSeller
		}
		return &core.Command{
			Kind:          kind,
			ParticipantID: reg.ID,
			Profile:       profileToCore(reg.Profile),
		}, nil, nil
	case proto.InboundTypeRegisterAdmin:
		var reg proto.RegisterData
		if err := json.Unmarshal(inbound.Data, &reg); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:    core.CommandRegisterAdmin,
			Profile: profileToCore(reg.Profile),
		}, nil, nil
	case proto.InboundTypeCustomerMessage, proto.InboundTypeSellerMessage, proto.InboundTypeAdminMessage:
		var msg proto.MessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.To == "" {
			return nil, &proto.Error{Code: proto.ErrCodeBadRequest, Msg: "to is required"}, nil
		}
		var kind core.CommandKind
		switch inbound.Type {
		case proto.InboundTypeCustomerMessage:
			kind = core.CommandCustomerToSeller
		case proto.InboundTypeSellerMessage:
			kind = core.CommandSellerToCustomer
		default:
			kind = core.CommandAdminToSeller
		}
		return &core.Command{
			Kind:    kind,
			To:      msg.To,
			Payload: msg.Payload,
		}, nil, nil
	case proto.InboundTypeSupportMessage:
		var msg proto.MessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:    core.CommandSellerToAdmin,
			Payload: msg.Payload,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: proto.ErrCodeInvalidMessage, Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventSellerList:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventSellerList,
			Data:  presenceEntries(event.Sellers),
		}
	case core.EventCustomerList:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventCustomerList,
			Data:  presenceEntries(event.Customers),
		}
	case core.EventAdminStatus:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventAdminStatus,
			Data:  proto.AdminStatus{Online: event.AdminOnline},
		}
	case core.EventCustomerMessage, core.EventSellerMessage, core.EventAdminMessage, core.EventSupportMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: relayedEventName(event.Kind),
			Data: proto.RelayedMessage{
				FromRole: string(event.FromRole),
				Payload:  event.Payload,
			},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

// relayedEventName mirrors the inbound type of the message kind, so a
// relayed frame reaches the recipient under the name it was sent with.
func relayedEventName(kind core.EventKind) string {
	switch kind {
	case core.EventCustomerMessage:
		return proto.InboundTypeCustomerMessage
	case core.EventSellerMessage:
		return proto.InboundTypeSellerMessage
	case core.EventAdminMessage:
		return proto.InboundTypeAdminMessage
	default:
		return proto.InboundTypeSupportMessage
	}
}

func presenceEntries(entries []core.Entry) []proto.PresenceEntry {
	out := make([]proto.PresenceEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, proto.PresenceEntry{
			ID:      e.ID,
			Profile: profileFromCore(e.Profile),
		})
	}
	return out
}

func profileToCore(p proto.Profile) core.Profile {
	return core.Profile{
		Name:     p.Name,
		Email:    p.Email,
		Avatar:   p.Avatar,
		ShopName: p.ShopName,
	}
}

func profileFromCore(p core.Profile) proto.Profile {
	return proto.Profile{
		Name:     p.Name,
		Email:    p.Email,
		Avatar:   p.Avatar,
		ShopName: p.ShopName,
	}
}
