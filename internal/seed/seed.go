package seed

import (
	"context"
	"errors"
	"fmt"

	autherrors "tidybook/internal/auth/errors"
	authrepo "tidybook/internal/auth/repository"
	catalogrepo "tidybook/internal/catalog/repository"
	"tidybook/pkg/config"
	"tidybook/pkg/model"
	"tidybook/pkg/password"
)

var sampleServices = []*model.Service{
	{
		Name:        "Regular House Cleaning",
		Description: "Weekly, bi-weekly, or monthly cleaning to keep your home spotless. Includes dusting, vacuuming, mopping, and bathroom cleaning.",
		Price:       80,
		Duration:    120,
		Category:    model.CategoryResidential,
		IsActive:    true,
		Features: []string{
			"Dusting all surfaces",
			"Vacuuming carpets and rugs",
			"Mopping hard floors",
			"Kitchen cleaning",
			"Bathroom sanitization",
			"Trash removal",
		},
	},
	{
		Name:        "Deep House Cleaning",
		Description: "Comprehensive cleaning for move-ins, move-outs, or seasonal deep cleans. Includes inside appliances, baseboards, and detailed cleaning.",
		Price:       150,
		Duration:    240,
		Category:    model.CategoryDeepCleaning,
		IsActive:    true,
		Features: []string{
			"Inside appliance cleaning",
			"Baseboards and window sills",
			"Light fixture cleaning",
			"Cabinet interior cleaning",
			"Detailed bathroom scrubbing",
			"Carpet deep cleaning",
		},
	},
	{
		Name:        "Office Cleaning",
		Description: "Professional commercial cleaning services for offices and businesses. Flexible scheduling available.",
		Price:       120,
		Duration:    180,
		Category:    model.CategoryCommercial,
		IsActive:    true,
		Features: []string{
			"Desk and workspace sanitization",
			"Common area cleaning",
			"Restroom maintenance",
			"Floor care",
			"Trash and recycling",
			"Window cleaning",
		},
	},
	{
		Name:        "Post-Construction Cleanup",
		Description: "Specialized cleaning for newly constructed or renovated spaces. Removes construction dust and debris.",
		Price:       200,
		Duration:    300,
		Category:    model.CategoryDeepCleaning,
		IsActive:    true,
		Features: []string{
			"Construction dust removal",
			"Debris cleanup",
			"Window and glass cleaning",
			"Floor preparation",
			"Fixture cleaning",
			"Final inspection",
		},
	},
	{
		Name:        "Maintenance Cleaning",
		Description: "Regular maintenance cleaning to keep your space consistently clean. Perfect for busy professionals.",
		Price:       60,
		Duration:    90,
		Category:    model.CategoryMaintenance,
		IsActive:    true,
		Features: []string{
			"Quick surface cleaning",
			"Bathroom touch-up",
			"Kitchen maintenance",
			"Floor spot cleaning",
			"Trash removal",
			"Basic organization",
		},
	},
	{
		Name:        "Move-In/Move-Out Cleaning",
		Description: "Thorough cleaning for moving situations. Ensures your new home is spotless or your old home is ready for new occupants.",
		Price:       180,
		Duration:    270,
		Category:    model.CategoryDeepCleaning,
		IsActive:    true,
		Features: []string{
			"Complete interior cleaning",
			"Appliance cleaning",
			"Cabinet and drawer cleaning",
			"Closet cleaning",
			"Detailed bathroom cleaning",
			"Floor deep cleaning",
		},
	},
}

// Run populates the catalog and the admin account. It is idempotent: existing
// data is left untouched.
func Run(ctx context.Context, cfg *config.Config) error {
	services := catalogrepo.NewMongoServiceRepository(cfg)
	users := authrepo.NewMongoUserRepository(cfg)
	hasher := password.NewHasher(cfg.BcryptCost)

	if err := seedServices(ctx, cfg, services); err != nil {
		return err
	}

	return seedAdmin(ctx, cfg, users, hasher)
}

func seedServices(ctx context.Context, cfg *config.Config, services catalogrepo.ServiceRepository) error {
	existing, err := services.Count(ctx, catalogrepo.ServiceFilter{})
	if err != nil {
		return fmt.Errorf("failed to count services: %w", err)
	}
	if existing > 0 {
		cfg.Log.Info("Services already exist, skipping catalog seed", "count", existing)
		return nil
	}

	for _, svc := range sampleServices {
		if err := services.Create(ctx, svc); err != nil {
			return fmt.Errorf("failed to seed service %q: %w", svc.Name, err)
		}
	}

	cfg.Log.Info("Seeded catalog", "count", len(sampleServices))
	return nil
}

func seedAdmin(ctx context.Context, cfg *config.Config, users authrepo.UserRepository, hasher *password.Hasher) error {
	_, err := users.FindByEmail(ctx, cfg.SeedAdminEmail)
	if err == nil {
		cfg.Log.Info("Admin user already exists", "email", cfg.SeedAdminEmail)
		return nil
	}
	if !errors.Is(err, autherrors.ErrNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := hasher.Hash(cfg.SeedAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.User{
		FirstName:    "Admin",
		LastName:     "User",
		Email:        cfg.SeedAdminEmail,
		PasswordHash: hash,
		Phone:        "+14155550100",
		Address: model.Address{
			Street:  "1 Operations Way",
			City:    "San Francisco",
			State:   "CA",
			ZipCode: "94105",
		},
		Role:     model.RoleAdmin,
		IsActive: true,
	}

	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	cfg.Log.Info("Seeded admin user", "email", admin.Email)
	return nil
}
