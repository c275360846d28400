package permissions

import (
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/jalvarado/incident-management/internal"
	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
)

var _ = ginkgo.Describe("Gate middleware", func() {
	var (
		logger  *slog.Logger
		okBody  = "reached handler"
		handler http.Handler
	)

	ginkgo.BeforeEach(func() {
		logger = slog.Default()
		handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(okBody))
		})
	})

	// withActor injects an authenticated user the way the auth middleware does.
	withActor := func(r *http.Request, u *userDatamodel.User) *http.Request {
		return r.WithContext(internal.ContextWithActor(r.Context(), u))
	}

	admin := func() *userDatamodel.User {
		return &userDatamodel.User{
			ID: 1,
			Role: &userDatamodel.Role{
				ID:   1,
				Name: RoleAdmin,
				Permissions: []userDatamodel.Permission{
					{Action: "manage", Subject: "all"},
				},
			},
		}
	}
	plainUser := func() *userDatamodel.User {
		return &userDatamodel.User{
			ID: 2,
			Role: &userDatamodel.Role{
				ID:   3,
				Name: RoleUser,
				Permissions: []userDatamodel.Permission{
					{Action: "read", Subject: "incidents"},
				},
			},
		}
	}

	ginkgo.Describe("RequireRoles", func() {
		ginkgo.It("passes a matching role", func() {
			rec := httptest.NewRecorder()
			req := withActor(httptest.NewRequest("GET", "/admin", nil), admin())

			RequireRoles(logger, RoleAdmin)(handler).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Body.String()).To(gomega.Equal(okBody))
		})

		ginkgo.It("rejects a non-listed role with the 403 error envelope", func() {
			rec := httptest.NewRecorder()
			req := withActor(httptest.NewRequest("GET", "/admin", nil), plainUser())

			RequireRoles(logger, RoleAdmin)(handler).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(rec.Header().Get("Content-Type")).To(gomega.Equal("application/json"))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(`"code":"INSUFFICIENT_PERMISSIONS"`))
		})

		ginkgo.It("rejects a missing actor with 401", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/admin", nil)

			RequireRoles(logger, RoleAdmin)(handler).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("passes everyone when no role is listed", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/open", nil)

			RequireRoles(logger)(handler).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})

	ginkgo.Describe("RequirePolicies", func() {
		ginkgo.It("passes when every declared policy holds", func() {
			rec := httptest.NewRecorder()
			req := withActor(httptest.NewRequest("GET", "/incidents", nil), admin())

			gate := RequirePolicies(logger,
				Allow(ActionRead, SubjectName("incidents")),
				Allow(ActionUpdate, SubjectName("incidents")),
			)
			gate(handler).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("denies with 403 when any declared policy fails", func() {
			rec := httptest.NewRecorder()
			req := withActor(httptest.NewRequest("GET", "/incidents", nil), plainUser())

			gate := RequirePolicies(logger,
				Allow(ActionRead, SubjectName("incidents")),
				Allow(ActionUpdate, SubjectName("incidents")),
			)
			gate(handler).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("passes with zero declared policies", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/open", nil)

			RequirePolicies(logger)(handler).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("denies a policy-gated route without an actor", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/incidents", nil)

			gate := RequirePolicies(logger, Allow(ActionRead, SubjectName("incidents")))
			gate(handler).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})
	})

	ginkgo.Describe("RouteConfig.Wrap", func() {
		// fake authenticator that injects a fixed actor, standing in for the
		// JWT middleware
		authAs := func(u *userDatamodel.User) func(http.Handler) http.Handler {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					next.ServeHTTP(w, withActor(r, u))
				})
			}
		}
		rejectAll := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			})
		}

		ginkgo.It("runs authentication before the role and policy gates", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/admin", nil)

			rc := RouteConfig{
				RequiresAuth:  true,
				RequiredRoles: []string{RoleAdmin},
				Policies:      []PolicyHandler{Allow(ActionManage, SubjectName("all"))},
			}
			rc.Wrap(rejectAll, logger)(handler).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("lets a fully authorized request through all three gates", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/admin", nil)

			rc := RouteConfig{
				RequiresAuth:  true,
				RequiredRoles: []string{RoleAdmin},
				Policies:      []PolicyHandler{Allow(ActionManage, SubjectName("all"))},
			}
			rc.Wrap(authAs(admin()), logger)(handler).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Body.String()).To(gomega.Equal(okBody))
		})

		ginkgo.It("stops at the role gate before evaluating policies", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/admin", nil)

			policyRan := false
			rc := RouteConfig{
				RequiresAuth:  true,
				RequiredRoles: []string{RoleAdmin},
				Policies: []PolicyHandler{PolicyFunc(func(ability *Ability) bool {
					policyRan = true
					return true
				})},
			}
			rc.Wrap(authAs(plainUser()), logger)(handler).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(policyRan).To(gomega.BeFalse())
		})

		ginkgo.It("skips authentication for open routes", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/open", nil)

			rc := RouteConfig{RequiresAuth: false}
			rc.Wrap(rejectAll, logger)(handler).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})
})
