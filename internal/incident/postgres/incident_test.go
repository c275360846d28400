package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	categoryDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/category"
	incidentDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/incident"
	statusDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/status"
	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
	"github.com/jalvarado/incident-management/internal/incident"
	incidentPostgres "github.com/jalvarado/incident-management/internal/incident/postgres"
)

func TestIncidentPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Incident Postgres Suite")
}

var _ = Describe("Incident PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo incident.RepositoryAPI

		technicianRole *userDatamodel.Role
		userRole       *userDatamodel.Role
		owner          *userDatamodel.User
		cat            *categoryDatamodel.Category
		open           *statusDatamodel.Status
	)

	createUser := func(email string, role *userDatamodel.Role, createdAt time.Time) *userDatamodel.User {
		u := &userDatamodel.User{
			Email:     email,
			FirstName: "Test",
			Password:  "irrelevant",
			RoleID:    &role.ID,
			CreatedAt: createdAt,
		}
		Expect(db.Create(u).Error).To(Succeed())
		return u
	}

	createIncident := func(title string, assignedTo *int64) *incidentDatamodel.Incident {
		inc := &incidentDatamodel.Incident{
			Title:      title,
			CategoryID: cat.ID,
			StatusID:   open.ID,
			OwnerID:    owner.ID,
			AssignedTo: assignedTo,
		}
		Expect(repo.Create(inc)).To(Succeed())
		return inc
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&userDatamodel.Permission{},
			&userDatamodel.RoleHasPermission{},
			&userDatamodel.Role{},
			&userDatamodel.User{},
			&categoryDatamodel.Category{},
			&statusDatamodel.Status{},
			&incidentDatamodel.Incident{},
			&incidentDatamodel.Comment{},
		)
		Expect(err).NotTo(HaveOccurred())

		technicianRole = &userDatamodel.Role{Name: "TECHNICIAN"}
		userRole = &userDatamodel.Role{Name: "USER"}
		Expect(db.Create(technicianRole).Error).To(Succeed())
		Expect(db.Create(userRole).Error).To(Succeed())

		cat = &categoryDatamodel.Category{Name: "issue"}
		open = &statusDatamodel.Status{Name: "OPEN"}
		Expect(db.Create(cat).Error).To(Succeed())
		Expect(db.Create(open).Error).To(Succeed())

		repo = incidentPostgres.NewIncidentRepository(db)
		owner = createUser("owner@example.com", userRole, time.Now())
	})

	Describe("IdleTechnicians", func() {
		It("should list only technicians with no assignments, oldest first", func() {
			older := createUser("older@example.com", technicianRole, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
			newer := createUser("newer@example.com", technicianRole, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
			busy := createUser("busy@example.com", technicianRole, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))
			createUser("civilian@example.com", userRole, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
			createIncident("taken", &busy.ID)

			idle, err := repo.IdleTechnicians()
			Expect(err).NotTo(HaveOccurred())
			Expect(idle).To(HaveLen(2))
			Expect(idle[0].ID).To(Equal(older.ID))
			Expect(idle[1].ID).To(Equal(newer.ID))
		})

		It("should treat technicians whose incidents were deleted as idle", func() {
			tech := createUser("tech@example.com", technicianRole, time.Now())
			inc := createIncident("short lived", &tech.ID)
			Expect(repo.Delete(inc.ID)).To(Succeed())

			idle, err := repo.IdleTechnicians()
			Expect(err).NotTo(HaveOccurred())
			Expect(idle).To(HaveLen(1))
			Expect(idle[0].ID).To(Equal(tech.ID))
		})
	})

	Describe("LeastLoadedTechnician", func() {
		It("should pick the technician with the fewest assignments", func() {
			heavy := createUser("heavy@example.com", technicianRole, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
			light := createUser("light@example.com", technicianRole, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
			createIncident("a", &heavy.ID)
			createIncident("b", &heavy.ID)
			createIncident("c", &light.ID)

			tech, err := repo.LeastLoadedTechnician()
			Expect(err).NotTo(HaveOccurred())
			Expect(tech).NotTo(BeNil())
			Expect(tech.ID).To(Equal(light.ID))
		})

		It("should return nil when no technician exists", func() {
			tech, err := repo.LeastLoadedTechnician()
			Expect(err).NotTo(HaveOccurred())
			Expect(tech).To(BeNil())
		})
	})

	Describe("Assign", func() {
		It("should persist the assignee", func() {
			tech := createUser("tech@example.com", technicianRole, time.Now())
			inc := createIncident("unassigned", nil)

			Expect(repo.Assign(inc.ID, tech.ID)).To(Succeed())

			fetched, err := repo.GetByID(inc.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched.AssignedTo).NotTo(BeNil())
			Expect(*fetched.AssignedTo).To(Equal(tech.ID))
		})
	})

	Describe("GetByID", func() {
		It("should report not found for missing incidents", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(Equal(incident.ErrNotFound))
		})

		It("should not return soft-deleted incidents", func() {
			inc := createIncident("to be removed", nil)
			Expect(repo.Delete(inc.ID)).To(Succeed())

			_, err := repo.GetByID(inc.ID)
			Expect(err).To(Equal(incident.ErrNotFound))
		})
	})
})
