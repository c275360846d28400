package internal_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/jalvarado/incident-management/internal"
)

func TestInternal(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Internal Suite")
}

var _ = ginkgo.Describe("AppError", func() {
	ginkgo.Context("constructors", func() {
		ginkgo.It("should carry the type, code and status per category", func() {
			cases := []struct {
				err    *internal.AppError
				typ    internal.ErrorType
				status int
			}{
				{internal.NewValidationError("bad", internal.ErrCodeValidationFailed), internal.ErrorTypeValidation, http.StatusBadRequest},
				{internal.NewNotFoundError("gone", internal.ErrCodeIncidentNotFound), internal.ErrorTypeNotFound, http.StatusNotFound},
				{internal.NewUnauthorizedError("who", internal.ErrCodeInvalidToken), internal.ErrorTypeUnauthorized, http.StatusUnauthorized},
				{internal.NewForbiddenError("no", internal.ErrCodeInsufficientPermissions), internal.ErrorTypeForbidden, http.StatusForbidden},
				{internal.NewConflictError("dup", internal.ErrCodeEmailTaken), internal.ErrorTypeConflict, http.StatusConflict},
			}
			for _, c := range cases {
				gomega.Expect(c.err.Type).To(gomega.Equal(c.typ))
				gomega.Expect(c.err.StatusCode).To(gomega.Equal(c.status))
			}
		})

		ginkgo.It("should unwrap to the cause", func() {
			cause := errors.New("pq: connection refused")
			appErr := internal.NewInternalError("internal server error", cause)
			gomega.Expect(errors.Is(appErr, cause)).To(gomega.BeTrue())
		})
	})

	ginkgo.Context("AppErrorForStatus", func() {
		ginkgo.It("should map common statuses onto the taxonomy", func() {
			gomega.Expect(internal.AppErrorForStatus(http.StatusBadRequest, "m").Type).To(gomega.Equal(internal.ErrorTypeValidation))
			gomega.Expect(internal.AppErrorForStatus(http.StatusUnauthorized, "m").Type).To(gomega.Equal(internal.ErrorTypeUnauthorized))
			gomega.Expect(internal.AppErrorForStatus(http.StatusForbidden, "m").Type).To(gomega.Equal(internal.ErrorTypeForbidden))
			gomega.Expect(internal.AppErrorForStatus(http.StatusNotFound, "m").Type).To(gomega.Equal(internal.ErrorTypeNotFound))
			gomega.Expect(internal.AppErrorForStatus(http.StatusConflict, "m").Type).To(gomega.Equal(internal.ErrorTypeConflict))
			gomega.Expect(internal.AppErrorForStatus(http.StatusInternalServerError, "m").Type).To(gomega.Equal(internal.ErrorTypeInternal))
		})

		ginkgo.It("should preserve the status it was given", func() {
			gomega.Expect(internal.AppErrorForStatus(http.StatusBadGateway, "m").StatusCode).To(gomega.Equal(http.StatusBadGateway))
		})
	})

	ginkgo.Context("WriteHTTP", func() {
		ginkgo.It("should write the typed envelope with the error's status", func() {
			rec := httptest.NewRecorder()
			internal.NewNotFoundError("no user available to assign incident", internal.ErrCodeNoEligibleAssignee).WriteHTTP(rec)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
			gomega.Expect(rec.Header().Get("Content-Type")).To(gomega.Equal("application/json"))

			var body struct {
				Error struct {
					Type    string `json:"type"`
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body.Error.Type).To(gomega.Equal("NOT_FOUND"))
			gomega.Expect(body.Error.Code).To(gomega.Equal("NO_ELIGIBLE_ASSIGNEE"))
			gomega.Expect(body.Error.Message).To(gomega.Equal("no user available to assign incident"))
		})

		ginkgo.It("should never serialize the cause", func() {
			rec := httptest.NewRecorder()
			internal.NewInternalError("internal server error", errors.New("secret dsn in here")).WriteHTTP(rec)
			gomega.Expect(rec.Body.String()).NotTo(gomega.ContainSubstring("secret dsn"))
		})
	})
})
