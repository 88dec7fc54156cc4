package fetcher

import (
	"context"
	"net/http"

	"github.com/backyonatan-alt/hullwatch/backend/internal/adapter"
	"github.com/backyonatan-alt/hullwatch/backend/internal/fallback"
	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

// Ships returns the fleet's ships. An empty list from the backend is treated
// as a failure and answered with the mock list.
func (f *Fetcher) Ships(ctx context.Context) ([]model.Ship, error) {
	res := fetch[model.ShipListV1](ctx, f, request{
		resource: "ships",
		method:   http.MethodGet,
		path:     "/ships/",
	})
	return settle(f, "ships", adapt(res, "ships", adapter.Ships), fallback.Ships)
}
