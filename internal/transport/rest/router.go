package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/jalvarado/incident-management/internal/auth"
	"github.com/jalvarado/incident-management/internal/category"
	"github.com/jalvarado/incident-management/internal/comment"
	"github.com/jalvarado/incident-management/internal/incident"
	"github.com/jalvarado/incident-management/internal/permissions"
	"github.com/jalvarado/incident-management/internal/status"
	"github.com/jalvarado/incident-management/internal/transport/middleware"
	"github.com/jalvarado/incident-management/internal/transport/swagger"
	"github.com/jalvarado/incident-management/internal/user"
)

// Handlers bundles every module handler the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Incident   *incident.Handler
	Comment    *comment.Handler
	Category   *category.Handler
	Status     *status.Handler
	Permission *permissions.Handler
}

// RegisterAllRoutes mounts the whole API. Each endpoint declares its gates
// via a RouteConfig; the pipeline always runs authentication, then the role
// gate, then the policy gate.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// gate builds the middleware chain for one route declaration.
	gate := func(rc permissions.RouteConfig) func(http.Handler) http.Handler {
		return rc.Wrap(h.Auth.AuthMiddleware, logger)
	}
	authOnly := permissions.RouteConfig{RequiresAuth: true}
	adminOnly := permissions.RouteConfig{
		RequiresAuth:  true,
		RequiredRoles: []string{permissions.RoleAdmin},
	}
	authed := func(policies ...permissions.PolicyHandler) permissions.RouteConfig {
		return permissions.RouteConfig{RequiresAuth: true, Policies: policies}
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Lookup tables are readable without credentials.
		r.Get("/categories", h.Category.FindCategories)
		r.Get("/categories/{id}", h.Category.GetCategory)
		r.Get("/statuses", h.Status.FindStatuses)
		r.Get("/statuses/{id}", h.Status.GetStatus)

		r.With(gate(permissions.RouteConfig{
			RequiresAuth:  true,
			RequiredRoles: []string{permissions.RoleAdmin},
			Policies:      []permissions.PolicyHandler{category.ManageCategoryPolicy},
		})).Post("/categories", h.Category.CreateCategory)
		r.With(gate(permissions.RouteConfig{
			RequiresAuth:  true,
			RequiredRoles: []string{permissions.RoleAdmin},
			Policies:      []permissions.PolicyHandler{category.ManageCategoryPolicy},
		})).Put("/categories/{id}", h.Category.UpdateCategory)
		r.With(gate(permissions.RouteConfig{
			RequiresAuth:  true,
			RequiredRoles: []string{permissions.RoleAdmin},
			Policies:      []permissions.PolicyHandler{category.ManageCategoryPolicy},
		})).Delete("/categories/{id}", h.Category.DeleteCategory)

		r.With(gate(permissions.RouteConfig{
			RequiresAuth:  true,
			RequiredRoles: []string{permissions.RoleAdmin},
			Policies:      []permissions.PolicyHandler{status.ManageStatusPolicy},
		})).Post("/statuses", h.Status.CreateStatus)
		r.With(gate(permissions.RouteConfig{
			RequiresAuth:  true,
			RequiredRoles: []string{permissions.RoleAdmin},
			Policies:      []permissions.PolicyHandler{status.ManageStatusPolicy},
		})).Put("/statuses/{id}", h.Status.UpdateStatus)
		r.With(gate(permissions.RouteConfig{
			RequiresAuth:  true,
			RequiredRoles: []string{permissions.RoleAdmin},
			Policies:      []permissions.PolicyHandler{status.ManageStatusPolicy},
		})).Delete("/statuses/{id}", h.Status.DeleteStatus)

		// Users
		r.With(gate(authOnly)).Get("/users/me", h.Auth.Me)
		r.With(gate(authed(user.CreateUserPolicy))).Post("/users", h.User.CreateUser)
		r.With(gate(authed(user.ReadUserPolicy))).Get("/users", h.User.FindUsers)
		r.With(gate(authed(user.ReadUserPolicy))).Get("/users/{id}", h.User.GetUser)
		r.With(gate(authed(user.UpdateUserPolicy))).Patch("/users/{id}", h.User.PatchUser)
		r.With(gate(authed(user.UpdateUserPolicy))).Put("/users/{id}", h.User.PutUser)
		r.With(gate(authed(user.DeleteUserPolicy))).Delete("/users/{id}", h.User.DeleteUser)

		// Incidents
		r.With(gate(authed(incident.CreateIncidentPolicy))).Post("/incidents", h.Incident.CreateIncident)
		r.With(gate(authed(incident.ReadIncidentPolicy))).Get("/incidents", h.Incident.FindIncidents)
		r.With(gate(authed(incident.ReadIncidentPolicy))).Get("/incidents/status-count", h.Incident.StatusCounts)
		r.With(gate(authed(incident.ReadIncidentPolicy))).Get("/incidents/{id}", h.Incident.GetIncident)
		r.With(gate(authed(incident.UpdateIncidentPolicy))).Patch("/incidents/{id}", h.Incident.PatchIncident)
		r.With(gate(authed(incident.UpdateIncidentPolicy))).Put("/incidents/{id}", h.Incident.PutIncident)
		r.With(gate(authed(incident.DeleteIncidentPolicy))).Delete("/incidents/{id}", h.Incident.DeleteIncident)
		r.With(gate(permissions.RouteConfig{
			RequiresAuth:  true,
			RequiredRoles: []string{permissions.RoleAdmin, permissions.RoleTechnician},
			Policies:      []permissions.PolicyHandler{incident.UpdateIncidentPolicy},
		})).Patch("/incidents/{id}/auto-assign", h.Incident.AutoAssignIncident)

		// Comments, nested under their incident
		r.With(gate(authed(comment.CreateCommentPolicy))).Post("/incidents/{id}/comments", h.Comment.CreateComment)
		r.With(gate(authed(comment.ReadCommentPolicy))).Get("/incidents/{id}/comments", h.Comment.FindComments)
		r.With(gate(authed(comment.ReadCommentPolicy))).Get("/incidents/{id}/comments/{commentID}", h.Comment.GetComment)
		r.With(gate(authed(comment.UpdateCommentPolicy))).Patch("/incidents/{id}/comments/{commentID}", h.Comment.PatchComment)
		r.With(gate(authed(comment.DeleteCommentPolicy))).Delete("/incidents/{id}/comments/{commentID}", h.Comment.DeleteComment)

		// Permission catalog administration
		r.Route("/permissions", func(pr chi.Router) {
			pr.With(gate(authOnly)).Get("/users/check-current", h.Permission.CheckCurrentUserPermission)
			pr.With(gate(adminOnly)).Get("/users/check/{id}", h.Permission.CheckUserPermission)
			pr.With(gate(authOnly)).Get("/users", h.Permission.FindUserPermissions)

			pr.With(gate(authed(permissions.CreatePermissionPolicy))).Post("/", h.Permission.CreatePermission)
			pr.With(gate(authed(permissions.ReadPermissionPolicy))).Get("/", h.Permission.FindPermissions)
			pr.With(gate(authed(permissions.ReadPermissionPolicy))).Get("/{id}", h.Permission.GetPermission)
			pr.With(gate(authed(permissions.UpdatePermissionPolicy))).Patch("/{id}", h.Permission.PatchPermission)
			pr.With(gate(authed(permissions.UpdatePermissionPolicy))).Put("/{id}", h.Permission.PutPermission)
			pr.With(gate(authed(permissions.DeletePermissionPolicy))).Delete("/{id}", h.Permission.DeletePermission)
		})

		r.Route("/roles", func(rr chi.Router) {
			rr.With(gate(authed(permissions.CreateRolePolicy))).Post("/", h.Permission.CreateRole)
			rr.With(gate(authed(permissions.ReadRolePolicy))).Get("/", h.Permission.FindRoles)
			rr.With(gate(authed(permissions.ReadRolePolicy))).Get("/{id}", h.Permission.GetRole)
			rr.With(gate(authed(permissions.UpdateRolePolicy))).Patch("/{id}", h.Permission.PatchRole)
			rr.With(gate(authed(permissions.UpdateRolePolicy))).Put("/{id}", h.Permission.PutRole)
			rr.With(gate(authed(permissions.DeleteRolePolicy))).Delete("/{id}", h.Permission.DeleteRole)
		})

		r.Route("/role-permissions", func(gr chi.Router) {
			gr.With(gate(authed(permissions.CreateGrantPolicy))).Post("/", h.Permission.CreateGrant)
			gr.With(gate(authed(permissions.ReadGrantPolicy))).Get("/", h.Permission.FindGrants)
			gr.With(gate(authed(permissions.ReadGrantPolicy))).Get("/{id}", h.Permission.GetGrant)
			gr.With(gate(authed(permissions.DeleteGrantPolicy))).Delete("/{id}", h.Permission.DeleteGrant)
		})
	})
}
