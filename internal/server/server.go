package server

// Server bundles the entity-specific HTTP servers behind one route
// registrar.
type Server struct {
	CatalogServer
	ReviewServer
	OrderServer
	AuthServer
}

func NewServer(
	catalogServer CatalogServer,
	reviewServer ReviewServer,
	orderServer OrderServer,
	authServer AuthServer,
) Server {
	return Server{
		CatalogServer: catalogServer,
		ReviewServer:  reviewServer,
		OrderServer:   orderServer,
		AuthServer:    authServer,
	}
}
