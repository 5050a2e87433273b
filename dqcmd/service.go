package dqcmd

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/openredfish/dellicius/cache"
	"github.com/openredfish/dellicius/clock"
	"github.com/openredfish/dellicius/config"
	"github.com/openredfish/dellicius/internal/cachestore"
	"github.com/openredfish/dellicius/redfish"
	"github.com/openredfish/dellicius/transport"
)

const serviceRoot = "/redfish/v1"

// buildService assembles the transport, cache, and optional durable
// overlay a CLI run needs from cfg.
func buildService(ctx context.Context, cfg *config.Config) (*redfish.Service, func() error, error) {
	var opts []transport.Option
	if cfg.BearerToken != "" {
		opts = append(opts, transport.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.BearerToken,
			TokenType:   "Bearer",
		})))
	}
	t, err := transport.NewHTTP(cfg.Endpoint, opts...)
	if err != nil {
		return nil, nil, err
	}

	var cacheOpts []cache.Option
	closeDurable := func() error { return nil }
	if cfg.CacheDBPath != "" {
		store, err := cachestore.Open(ctx, cfg.CacheDBPath)
		if err != nil {
			return nil, nil, err
		}
		cacheOpts = append(cacheOpts, cache.WithDurable(store))
		closeDurable = store.Close
	}

	getter := cache.New(t, clock.New(), cfg.CacheMaxAge, cacheOpts...)
	return redfish.NewService(getter, serviceRoot), closeDurable, nil
}
