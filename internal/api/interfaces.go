package api

import (
	"context"

	"github.com/neexbeast/tourist-routes/internal/catalog"
	"github.com/neexbeast/tourist-routes/internal/places"
	"github.com/neexbeast/tourist-routes/internal/route"
)

// RouteRepo defines the storage operations needed by handlers.
type RouteRepo interface {
	CreateRoute(ctx context.Context, rt *route.Route) (*route.Route, error)
	GetRoute(ctx context.Context, id int) (*route.Route, error)
	ListRoutes(ctx context.Context, userID int) ([]*route.Route, error)
	UpdateRoute(ctx context.Context, rt *route.Route) error
	DeleteRoute(ctx context.Context, id int) (bool, error)
}

// SpotCatalog defines the catalog reads needed by handlers.
type SpotCatalog interface {
	Load() []catalog.Spot
}

// PlaceSearcher merges local and external place search.
type PlaceSearcher interface {
	Search(ctx context.Context, query string) []places.Place
}

// PDFRenderer renders a route itinerary document.
type PDFRenderer interface {
	Render(rt *route.Route) ([]byte, error)
}
