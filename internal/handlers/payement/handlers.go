package payement

import (
	"aurelia_back_end/internal/order"
	"aurelia_back_end/internal/pricing"
)

// Dépendances injectées au démarrage par routes.RegisterRoutes.
var (
	orderService *order.Service
	configStore  pricing.ConfigStore
)

func Init(svc *order.Service, cfg pricing.ConfigStore) {
	orderService = svc
	configStore = cfg
}
