package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/openlodge/clubadmin/internal/config"
)

// Module wires the payment processor client for fx.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.PaymentGatewayAddress, p.Logger)
}
