package permissions

import (
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
)

func TestPermissions(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Permissions Module Suite")
}

func userWithGrants(grants ...[2]string) *userDatamodel.User {
	perms := make([]userDatamodel.Permission, 0, len(grants))
	for i, g := range grants {
		perms = append(perms, userDatamodel.Permission{
			ID:      int64(i + 1),
			Action:  g[0],
			Subject: g[1],
		})
	}
	return &userDatamodel.User{
		ID:    1,
		Email: "someone@example.com",
		Role:  &userDatamodel.Role{ID: 1, Name: "SOME_ROLE", Permissions: perms},
	}
}

var _ = ginkgo.Describe("Ability", func() {
	ginkgo.Describe("wildcards", func() {
		ginkgo.It("manage on all grants every action on every subject", func() {
			ability := NewAbility(userWithGrants([2]string{"manage", "all"}))

			for _, action := range []Action{ActionManage, ActionCreate, ActionRead, ActionUpdate, ActionDelete} {
				for _, subject := range []string{"incidents", "comments", "users", "roles", "permissions"} {
					gomega.Expect(ability.Can(action, SubjectName(subject))).To(gomega.BeTrue(),
						"expected manage/all to allow %s on %s", action, subject)
				}
			}
		})

		ginkgo.It("manage on one subject covers every action on that subject only", func() {
			ability := NewAbility(userWithGrants([2]string{"manage", "incidents"}))

			gomega.Expect(ability.Can(ActionDelete, SubjectName("incidents"))).To(gomega.BeTrue())
			gomega.Expect(ability.Can(ActionRead, SubjectName("incidents"))).To(gomega.BeTrue())
			gomega.Expect(ability.Can(ActionRead, SubjectName("comments"))).To(gomega.BeFalse())
		})

		ginkgo.It("an action on all covers that action on every subject only", func() {
			ability := NewAbility(userWithGrants([2]string{"read", "all"}))

			gomega.Expect(ability.Can(ActionRead, SubjectName("incidents"))).To(gomega.BeTrue())
			gomega.Expect(ability.Can(ActionRead, SubjectName("users"))).To(gomega.BeTrue())
			gomega.Expect(ability.Can(ActionUpdate, SubjectName("incidents"))).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("exact grants", func() {
		ginkgo.It("allows exactly the granted pairs and nothing else", func() {
			ability := NewAbility(userWithGrants(
				[2]string{"create", "incidents"},
				[2]string{"read", "comments"},
			))

			gomega.Expect(ability.Can(ActionCreate, SubjectName("incidents"))).To(gomega.BeTrue())
			gomega.Expect(ability.Can(ActionRead, SubjectName("comments"))).To(gomega.BeTrue())

			gomega.Expect(ability.Can(ActionRead, SubjectName("incidents"))).To(gomega.BeFalse())
			gomega.Expect(ability.Can(ActionCreate, SubjectName("comments"))).To(gomega.BeFalse())
			gomega.Expect(ability.Can(ActionDelete, SubjectName("incidents"))).To(gomega.BeFalse())
		})

		ginkgo.It("resolves entity instances through their subject name", func() {
			ability := NewAbility(userWithGrants([2]string{"update", "users"}))

			gomega.Expect(ability.Can(ActionUpdate, userDatamodel.User{})).To(gomega.BeTrue())
			gomega.Expect(ability.Can(ActionUpdate, userDatamodel.Role{})).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("deny-all cases", func() {
		ginkgo.It("denies everything for a nil user", func() {
			ability := NewAbility(nil)
			gomega.Expect(ability.Can(ActionRead, SubjectName("incidents"))).To(gomega.BeFalse())
		})

		ginkgo.It("denies everything for a user without a role", func() {
			ability := NewAbility(&userDatamodel.User{ID: 1})
			gomega.Expect(ability.Can(ActionRead, SubjectName("incidents"))).To(gomega.BeFalse())
		})

		ginkgo.It("denies everything for a role without permissions", func() {
			ability := NewAbility(&userDatamodel.User{
				ID:   1,
				Role: &userDatamodel.Role{ID: 3, Name: "USER"},
			})
			gomega.Expect(ability.Can(ActionRead, SubjectName("incidents"))).To(gomega.BeFalse())
		})

		ginkgo.It("denies a nil subject", func() {
			ability := NewAbility(userWithGrants([2]string{"manage", "all"}))
			gomega.Expect(ability.Can(ActionRead, nil)).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("grant changes", func() {
		ginkgo.It("takes revocations into account on the next ability build", func() {
			u := userWithGrants([2]string{"create", "incidents"})
			gomega.Expect(NewAbility(u).Can(ActionCreate, SubjectName("incidents"))).To(gomega.BeTrue())

			u.Role.Permissions = nil
			gomega.Expect(NewAbility(u).Can(ActionCreate, SubjectName("incidents"))).To(gomega.BeFalse())
		})
	})
})

var _ = ginkgo.Describe("ParseAction", func() {
	ginkgo.It("accepts the closed action set", func() {
		for _, raw := range []string{"manage", "create", "read", "update", "delete"} {
			action, err := ParseAction(raw)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(string(action)).To(gomega.Equal(raw))
		}
	})

	ginkgo.It("rejects anything else", func() {
		_, err := ParseAction("administer")
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})
