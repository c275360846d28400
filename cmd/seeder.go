package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed roles, permissions, grants, statuses, categories and demo users for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"comments", "incidents", "roles_has_permissions", "users", "permissions", "roles", "categories", "status"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedRoles(db)
		seedPermissions(db)
		seedGrants(db)
		seedStatuses(db)
		seedCategories(db)
		seedUsers(db, cfg.Security.BCryptCost)
	},
}

func tableEmpty(db *gorm.DB, table string) bool {
	var count int64
	if err := db.Table(table).Count(&count).Error; err != nil {
		log.Fatalf("failed to count %s: %v", table, err)
	}
	return count == 0
}

func seedRoles(db *gorm.DB) {
	if !tableEmpty(db, "roles") {
		fmt.Println("roles already seeded")
		return
	}
	for _, name := range []string{"ADMIN", "TECHNICIAN", "USER"} {
		if err := db.Exec("INSERT INTO roles (name) VALUES (?)", name).Error; err != nil {
			log.Fatalf("failed to seed role %s: %v", name, err)
		}
	}
	fmt.Println("Seeded roles: ADMIN, TECHNICIAN, USER")
}

func seedPermissions(db *gorm.DB) {
	if !tableEmpty(db, "permissions") {
		fmt.Println("permissions already seeded")
		return
	}
	perms := [][2]string{
		{"manage", "all"},
		{"read", "all"},
		{"create", "comments"},
		{"update", "comments"},
		{"create", "incidents"},
		{"update", "incidents"},
		{"update", "users"},
	}
	for _, p := range perms {
		if err := db.Exec("INSERT INTO permissions (action, subject) VALUES (?, ?)", p[0], p[1]).Error; err != nil {
			log.Fatalf("failed to seed permission %s %s: %v", p[0], p[1], err)
		}
	}
	fmt.Println("Seeded permissions")
}

// roleIDByName resolves a role id at seed time. Ids are never hard-coded:
// after seed --clear the serial sequence keeps counting, so re-seeded roles
// do not get ids 1-3 again.
func roleIDByName(db *gorm.DB, name string) (int64, bool) {
	var id int64
	err := db.Raw("SELECT id FROM roles WHERE name = ?", name).Scan(&id).Error
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func seedGrants(db *gorm.DB) {
	if !tableEmpty(db, "roles_has_permissions") {
		fmt.Println("role grants already seeded")
		return
	}
	grants := []struct {
		action  string
		subject string
		roles   []string
	}{
		{"manage", "all", []string{"ADMIN"}},
		{"read", "all", []string{"TECHNICIAN", "USER"}},
		{"update", "users", []string{"TECHNICIAN", "USER"}},
		{"create", "incidents", []string{"TECHNICIAN", "USER"}},
		{"update", "incidents", []string{"TECHNICIAN", "USER"}},
		{"create", "comments", []string{"TECHNICIAN", "USER"}},
		{"update", "comments", []string{"TECHNICIAN", "USER"}},
	}
	for _, g := range grants {
		var permissionID int64
		err := db.Raw("SELECT id FROM permissions WHERE action = ? AND subject = ?", g.action, g.subject).
			Scan(&permissionID).Error
		if err != nil || permissionID == 0 {
			fmt.Printf("skipping grant for missing permission (%s, %s)\n", g.action, g.subject)
			continue
		}
		for _, roleName := range g.roles {
			roleID, ok := roleIDByName(db, roleName)
			if !ok {
				fmt.Printf("skipping grant (%s, %s) for missing role %s\n", g.action, g.subject, roleName)
				continue
			}
			if err := db.Exec("INSERT INTO roles_has_permissions (role_id, permission_id) VALUES (?, ?)", roleID, permissionID).Error; err != nil {
				log.Fatalf("failed to seed grant (%s, %s) for role %s: %v", g.action, g.subject, roleName, err)
			}
		}
	}
	fmt.Println("Seeded role grants")
}

func seedStatuses(db *gorm.DB) {
	if !tableEmpty(db, "status") {
		fmt.Println("statuses already seeded")
		return
	}
	for _, name := range []string{"OPEN", "IN_PROGRESS", "CLOSED"} {
		if err := db.Exec("INSERT INTO status (name) VALUES (?)", name).Error; err != nil {
			log.Fatalf("failed to seed status %s: %v", name, err)
		}
	}
	fmt.Println("Seeded statuses: OPEN, IN_PROGRESS, CLOSED")
}

func seedCategories(db *gorm.DB) {
	if !tableEmpty(db, "categories") {
		fmt.Println("categories already seeded")
		return
	}
	if err := db.Exec("INSERT INTO categories (name) VALUES (?)", "issue").Error; err != nil {
		log.Fatalf("failed to seed category: %v", err)
	}
	fmt.Println("Seeded categories: issue")
}

func seedUsers(db *gorm.DB, bcryptCost int) {
	if !tableEmpty(db, "users") {
		fmt.Println("users already seeded")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	users := []struct {
		email     string
		firstName string
		lastName  string
		role      string
	}{
		{"admin@example.com", "Ana", "Admin", "ADMIN"},
		{"technician@example.com", "Tomas", "Tecnico", "TECHNICIAN"},
		{"user@example.com", "Ulises", "Usuario", "USER"},
	}
	for _, u := range users {
		roleID, ok := roleIDByName(db, u.role)
		if !ok {
			log.Fatalf("failed to seed user %s: role %s not found", u.email, u.role)
		}
		err := db.Exec(
			"INSERT INTO users (email, first_name, last_name, password, role_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
			u.email, u.firstName, u.lastName, string(hash), roleID,
		).Error
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.email, err)
		}
		fmt.Println("Seeded user:", u.email)
	}
}
