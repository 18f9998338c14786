package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"teecole/internal/domain"
)

// DefaultServices is the catalogue written on first start.
func DefaultServices() []domain.Service {
	return []domain.Service{
		{
			Title:       "Property Redesign And Refurbishment",
			Description: "If you are looking for help with your property for build finishing, renovation, refurbishment or remodelling then Teecole Ltd is the expert you can trust. Our fully-accredited, in-house team is filled with construction experts and project managers, all of whom know how to clearly outline expectations and deliver on them. We can provide a design and build service, making the build process a smoother and stress-free experience for you.",
			Icon:        "HomeRepairService",
			Color:       "#6750A4",
			Features:    datatypes.NewJSONSlice([]string{"Design & Build Service", "Residential & Commercial", "Project Management", "Quality Finish"}),
			ImageURL:    "/assets/refurbishment.jpg",
		},
		{
			Title:       "Property Sales And Management",
			Description: "As a fully independent company, we are able to provide you with the largest volume of UK investment properties with the best returns. Our trained team of surveyors and data analysts ensure we offer the best locations for property investment with the highest returns. We offer full and mortgage purchase options for both resident and foreign investors. We also offer management packages for properties to cover rental collection and facility maintenance.",
			Icon:        "Sell",
			Color:       "#7D5260",
			Features:    datatypes.NewJSONSlice([]string{"Investment Properties", "Best Market Rates", "Mortgage Options", "Management Packages"}),
			ImageURL:    "/assets/property-sales.jpg",
		},
		{
			Title:       "Cleaning Services",
			Description: "Teecole Ltd has become an integral office cleaning and maintenance provider to many companies across London. Our approach is detailed and professional, and we always put our customers' needs first. We can help you keep your office space clean, and make your space work for you. No matter whether you have an industrial, institutional, medical, educational, manufacturing building, serviced apartment or hotel, we will clean it perfectly well.",
			Icon:        "CleaningServices",
			Color:       "#625B71",
			Features:    datatypes.NewJSONSlice([]string{"Commercial Cleaning", "Industrial Spaces", "Medical Facilities", "100% Satisfaction"}),
			ImageURL:    "/assets/cleaning.jpg",
		},
		{
			Title:       "AirBnB Hosting & Management",
			Description: "Maximize your property investment with our comprehensive AirBnB hosting and management service. We handle everything from listing optimization, professional photography, guest communication, to cleaning and maintenance. Our expert team ensures your property achieves maximum occupancy rates and exceptional guest reviews, making your hosting experience completely hands-free.",
			Icon:        "HomeWork",
			Color:       "#FF5A5F",
			Features:    datatypes.NewJSONSlice([]string{"Full Property Management", "Guest Communication", "Professional Photography", "24/7 Support"}),
			ImageURL:    "/assets/airbnb-hosting.jpg",
		},
	}
}

// SeedServices inserts the default catalogue when the table is empty.
func SeedServices(ctx context.Context, db *gorm.DB, log logrus.FieldLogger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Service{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count services: %w", err)
	}
	if count > 0 {
		return nil
	}

	services := DefaultServices()
	if err := db.WithContext(ctx).Create(&services).Error; err != nil {
		return fmt.Errorf("seed services: %w", err)
	}
	log.WithField("count", len(services)).Info("services seeded")
	return nil
}

// SeedAdmin creates the configured admin when no admin exists yet.
func SeedAdmin(ctx context.Context, db *gorm.DB, seed AdminSeed, log logrus.FieldLogger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.AdminUser{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin, err := NewAdminUser(seed)
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.WithField("username", admin.Username).Info("default admin created")
	return nil
}

// AdminSeed is the plain-text identity used to build an admin row.
type AdminSeed struct {
	Username string
	Password string
	Email    string
}

func NewAdminUser(seed AdminSeed) (*domain.AdminUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &domain.AdminUser{
		Username:     seed.Username,
		PasswordHash: string(hash),
		Email:        seed.Email,
		Role:         domain.RoleAdmin,
	}, nil
}
