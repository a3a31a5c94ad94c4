package handlers

import (
	"GoMFiles/internal/config"
	"GoMFiles/internal/middleware"
	"GoMFiles/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler wires the REST surface of the fake vault. The API is served
// under /REST and /m-files/REST.
func NewHandler(
	userService *service.UserService,
	vaultService *service.VaultService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.TokenSecret))

	authHandler := NewAuthHandler(userService, logger, config)
	vaultHandler := NewVaultHandler(vaultService, logger, config)

	api := func(r chi.Router) {
		r.Post("/server/authenticationtokens", authHandler.Authenticate)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(authHandler.RequireVault)

			r.Get("/structure/objecttypes", vaultHandler.ObjectTypes)
			r.Get("/structure/classes", vaultHandler.Classes)
			r.Get("/structure/classes/{id}", vaultHandler.ClassDetails)
			r.Get("/structure/properties", vaultHandler.Properties)
			r.Get("/valuelists", vaultHandler.ValueLists)
			r.Get("/valuelists/{id}/items", vaultHandler.ValueListItems)

			r.Post("/files", vaultHandler.Stage)

			r.Get("/objects", vaultHandler.Search)
			r.Post("/objects/{type}", vaultHandler.CreateObject)
			r.Get("/objects/{type}/{id}/{version}", vaultHandler.Object)
			r.Delete("/objects/{type}/{id}/{version}", vaultHandler.Destroy)
			r.Put("/objects/{type}/{id}/deleted", vaultHandler.Delete)
			r.Put("/objects/{type}/{id}/{version}/checkedout", vaultHandler.SetCheckout)
			r.Get("/objects/{type}/{id}/{version}/files/{file}/content", vaultHandler.FileContent)
		})
	}
	r.Route("/REST", api)
	r.Route("/m-files/REST", api)

	return &Handler{Router: r}
}
