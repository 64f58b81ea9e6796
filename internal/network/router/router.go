package router

import (
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/config"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/network/handlers"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/network/middleware"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/services"
	"github.com/go-chi/chi/v5"

	"github.com/go-chi/jwtauth/v5"
)

type Router struct {
	Config    config.Config
	Indentity services.IdentityService
	Economy   services.EconomyService
	Engine    handlers.GameEngine
}

func NewRouter(config config.Config, economy services.EconomyService, engine handlers.GameEngine) *Router {
	return &Router{
		Config:    config,
		Indentity: services.NewIdentity(config.Server),
		Economy:   economy,
		Engine:    engine,
	}
}

func (router *Router) HandleRouter() chi.Router {
	ja := router.Indentity.GetTokenAuth()
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LogHandle)
		r.Post("/games", handlers.PlayHandler(router.Engine))
		r.Post("/inputs", handlers.InputHandler(router.Engine))
		r.Get("/leaderboard", handlers.LeaderboardHandler(router.Economy))
		r.Route("/accounts/{"+handlers.URLParamUserID+"}", func(r chi.Router) {
			r.Get("/", handlers.GetAccountHandler(router.Economy))
			r.Post("/work", handlers.WorkHandler(router.Economy))
			r.Post("/buy", handlers.ExchangeHandler(router.Economy, true))
			r.Post("/sell", handlers.ExchangeHandler(router.Economy, false))
			r.Post("/redeem", handlers.RedeemHandler(router.Economy))
		})
		r.Route("/admin", func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(jwtauth.Authenticator(ja))
			r.Use(middleware.RequireRole(services.RoleOwner))
			r.Put("/accounts/{"+handlers.URLParamUserID+"}", handlers.SetBalanceHandler(router.Economy))
			r.Delete("/accounts/{"+handlers.URLParamUserID+"}", handlers.RemoveAccountHandler(router.Economy))
		})
	})
	return r
}
