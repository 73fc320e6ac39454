package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gymstack/gymstack/principals"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	s.router.Use(s.LoggingMiddleware)
	s.router.Use(s.RecoverMiddleware)
	s.router.Use(s.FrameSecurityMiddleware)
	s.router.Use(s.AccessGate)

	s.router.Get(RouteHealthz, s.HealthzHandler())
	s.router.Handle(RouteMetrics, promhttp.Handler())
	s.router.Handle(RouteStatic+"/*", http.StripPrefix(RouteStatic+"/", FileServerHandler()))

	s.router.Get(RouteLogin, s.LoginPageHandler())
	s.router.Get(RouteRegister, s.RegisterPageHandler())

	s.router.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", s.LoginHandler())
		r.Post("/register", s.RegisterHandler())
		r.Post("/logout", s.LogoutHandler())
		r.Get("/logout", s.LogoutHandler())
		r.Post("/refresh", s.RefreshHandler())
		r.Get("/me", s.MeHandler())
	})

	s.router.Get(RouteDashboard+"/{role}", s.DashboardHandler())
	s.router.Get(RouteDashboard+"/{role}/*", s.DashboardHandler())

	s.router.Route(RouteEquipment, func(r chi.Router) {
		r.Post("/", s.CreateEquipmentHandler())
		r.Get("/", s.ListEquipmentHandler())
		r.Get("/{id}", s.GetEquipmentHandler())
		r.Put("/{id}", s.UpdateEquipmentHandler())
		r.Delete("/{id}", s.DeleteEquipmentHandler())
	})

	s.router.Route(RouteAppointments, func(r chi.Router) {
		r.Post("/", s.CreateAppointmentHandler())
		r.Get("/", s.ListAppointmentsHandler())
		r.Get("/{id}", s.GetAppointmentHandler())
		r.Put("/{id}", s.UpdateAppointmentHandler())
		r.Delete("/{id}", s.DeleteAppointmentHandler())
	})

	s.router.Route(RouteMembers, func(r chi.Router) {
		r.Post("/", s.CreatePrincipalHandler(principals.RoleMember))
		r.Get("/", s.ListPrincipalsHandler(principals.RoleMember))
		r.Get("/{id}", s.GetPrincipalHandler(principals.RoleMember))
		r.Put("/{id}", s.UpdatePrincipalHandler(principals.RoleMember))
		r.Delete("/{id}", s.DeletePrincipalHandler(principals.RoleMember))
	})

	s.router.Route(RouteTrainers, func(r chi.Router) {
		r.Post("/", s.CreatePrincipalHandler(principals.RoleTrainer))
		r.Get("/", s.ListPrincipalsHandler(principals.RoleTrainer))
		r.Get("/{id}", s.GetPrincipalHandler(principals.RoleTrainer))
		r.Put("/{id}", s.UpdatePrincipalHandler(principals.RoleTrainer))
		r.Delete("/{id}", s.DeletePrincipalHandler(principals.RoleTrainer))
	})

	s.router.Patch(RoutePrincipalStatus, s.UpdatePrincipalStatusHandler())
}
