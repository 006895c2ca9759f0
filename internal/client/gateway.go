package client

import (
	"logitrack/internal/model"
)

// Local collection keys, carried over from the mini-app's localStorage.
const (
	keyRecipients     = "recipients"
	keyOrders         = "orders"
	keyAddresses      = "deliveryAddresses"
	keyConsolidations = "consolidations"
)

// Gateway bundles the per-entity fallback stores behind one construction
// point. All stores share the injected prober, so a failure observed on one
// entity type degrades every other one as well.
type Gateway struct {
	Recipients     Store[model.Recipient]
	Orders         OrderStore
	Addresses      Store[model.DeliveryAddress]
	Consolidations Store[model.Consolidation]
}

func NewGateway(api *Client, local *LocalDB, prober *Prober) *Gateway {
	return &Gateway{
		Recipients: NewFallbackStore[model.Recipient](
			NewRemoteStore[model.Recipient](api, "/recipients"),
			NewLocalStore[model.Recipient](local, keyRecipients, nil),
			prober,
		),
		Orders: NewFallbackOrderStore(
			NewRemoteOrderStore(api),
			NewLocalOrderStore(local),
			prober,
		),
		Addresses: NewFallbackStore[model.DeliveryAddress](
			NewRemoteStore[model.DeliveryAddress](api, "/delivery-addresses"),
			NewLocalStore[model.DeliveryAddress](local, keyAddresses, nil),
			prober,
		),
		Consolidations: NewFallbackStore[model.Consolidation](
			NewRemoteStore[model.Consolidation](api, "/consolidations"),
			NewLocalStore[model.Consolidation](local, keyConsolidations, nil),
			prober,
		),
	}
}
