// Bootstrap tool: creates (or resets) a staff account.
// cmd/create-admin/main.go
package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"relocation-api/config"
	"relocation-api/models"
	"relocation-api/utils"
)

func main() {
	email := flag.String("email", "", "staff email address")
	password := flag.String("password", "", "initial password (min 8 characters)")
	firstName := flag.String("first-name", "Admin", "first name")
	lastName := flag.String("last-name", "User", "last name")
	super := flag.Bool("super", false, "grant super admin role")
	flag.Parse()

	if *email == "" || !utils.ValidateEmail(*email) {
		log.Fatal("a valid -email is required")
	}
	if ok, msg := utils.ValidatePassword(*password); !ok {
		log.Fatal(msg)
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	roleID := models.RoleAdmin
	if *super {
		roleID = models.RoleSuperAdmin
	}

	normalized := strings.ToLower(strings.TrimSpace(*email))
	now := time.Now()

	var existing models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", normalized).First(&existing).Error; err == nil {
		existing.Password = string(hashed)
		existing.RoleID = roleID
		existing.UpdateAt = &now
		if err := config.DB.Save(&existing).Error; err != nil {
			log.Fatal("Failed to update staff account:", err)
		}
		log.Printf("Updated staff account %s (role %d)\n", normalized, roleID)
		return
	}

	user := models.User{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     normalized,
		Password:  string(hashed),
		RoleID:    roleID,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		log.Fatal("Failed to create staff account:", err)
	}

	log.Printf("Created staff account %s (role %d)\n", normalized, roleID)
}
