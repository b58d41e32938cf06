package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// buildRouter creates the HTTP router with all routes and middleware.
//
// The route layout mirrors the management tree of the emulated unit: everything
// lives under /redfish/v1 with Basic auth on reads and session token
// auth on power control and subscription writes.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.StripSlashes)
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/redfish/v1", func(r chi.Router) {
		// Session creation carries credentials in the body, no prior auth.
		r.Post("/SessionService/Sessions", s.handleCreateSession)

		// Token-gated write endpoints
		r.Group(func(r chi.Router) {
			r.Use(s.tokenAuthMiddleware)
			r.Post("/EventService/Subscriptions", s.handleCreateSubscription)
		})

		// Everything else requires Basic credentials.
		r.Group(func(r chi.Router) {
			r.Use(s.basicAuthMiddleware)

			r.Get("/", s.handleServiceRoot)

			r.Route("/SessionService", func(r chi.Router) {
				r.Get("/", s.handleSessionService)
				r.Get("/Sessions", s.handleListSessions)
				r.Get("/Sessions/{sessionID}", s.handleGetSession)
				r.Delete("/Sessions/{sessionID}", s.handleDeleteSession)
			})

			r.Route("/AccountService", func(r chi.Router) {
				r.Get("/", s.handleAccountService)
				r.Get("/Accounts", s.handleListAccounts)
				r.Post("/Accounts", s.handleCreateAccount)
				r.Get("/Accounts/{username}", s.handleGetAccount)
				r.Delete("/Accounts/{username}", s.handleDeleteAccount)
				r.Get("/Roles", s.handleListRoles)
				r.Get("/Roles/{rolename}", s.handleGetRole)
			})

			// Manager facade: the odd nesting matches the emulated unit.
			r.Route("/Managers", func(r chi.Router) {
				r.Get("/", s.handleListManagers)
				r.Get("/manager", s.handleGetManager)
				r.Get("/managers/NetworkProtocol", s.handleNetworkProtocol)
				r.Get("/1/LogServices", s.handleLogServices)
				r.Get("/1/LogServices/Log", s.handleLog)
				r.Get("/1/LogServices/Log/Entries", s.handleLogEntries)
			})

			r.Route("/PowerEquipment", func(r chi.Router) {
				r.Get("/", s.handlePowerEquipment)
				r.Get("/RackPDUs", s.handleListRackPDUs)

				r.Route("/RackPDUs/{pduID}", func(r chi.Router) {
					r.Use(s.pduCheckMiddleware)
					r.Get("/", s.handleGetRackPDU)
					r.Get("/Metrics", s.handleMetrics)
					r.Get("/Branches", s.handleListBranches)
					r.Get("/Branches/{branch}", s.handleGetBranch)
					r.Get("/Outlets", s.handleListOutlets)
					r.Get("/Outlets/{outlet}", s.handleGetOutlet)
					r.Get("/Mains", s.handleListMains)
					r.Get("/Mains/AC1", s.handleGetMainsAC1)
					r.Get("/Sensors", s.handleSensorsRoot)
					r.Get("/Sensors/{sensorID}", s.handleGetSensor)
				})
			})

			r.Route("/EventService", func(r chi.Router) {
				r.Get("/", s.handleEventService)
				r.Get("/Subscriptions", s.handleListSubscriptions)
				r.Get("/Subscriptions/{subID}", s.handleGetSubscription)
				r.Delete("/Subscriptions/{subID}", s.handleDeleteSubscription)
			})
		})

		// Power control sits under its own prefix on real units.
		r.Group(func(r chi.Router) {
			r.Use(s.tokenAuthMiddleware)
			r.Post("/PowerDistribution/{pduID}/PowerControl/Loadsegment/{segment}", s.handleSegmentPowerControl)
		})
	})

	return r
}

// pduCheckMiddleware rejects requests for any unit id other than the
// configured one.
func (s *Server) pduCheckMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "pduID") != s.pdu.ID {
			writeRedfishError(w, http.StatusNotFound, codeResourceMissing, "PDU not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}
