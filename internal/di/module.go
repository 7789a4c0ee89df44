package di

import (
	"go.uber.org/fx"

	"github.com/openlodge/clubadmin/internal/adapter/objectstore"
	"github.com/openlodge/clubadmin/internal/adapter/payment"
	"github.com/openlodge/clubadmin/internal/app"
	"github.com/openlodge/clubadmin/internal/config"
	"github.com/openlodge/clubadmin/internal/logger"
	"github.com/openlodge/clubadmin/internal/pkg/auth"
	"github.com/openlodge/clubadmin/internal/pkg/metrics"
	"github.com/openlodge/clubadmin/internal/server/http/handlers"
	"github.com/openlodge/clubadmin/internal/server/http/router"
	"github.com/openlodge/clubadmin/internal/storage/postgres"
	"github.com/openlodge/clubadmin/internal/usecase"
)

// Module assembles the whole application graph. Extra options are
// appended last so tests can replace any provided component.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		payment.Module,
		objectstore.Module,
		usecase.Module,
		fx.Provide(func(f *app.AdminFacade) handlers.ConsoleFacade { return f }),
		fx.Provide(func(s *postgres.Storage) router.HealthChecker { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
