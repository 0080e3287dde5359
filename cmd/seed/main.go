package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"go-fleet/internal/config"
	"go-fleet/internal/database"
	"go-fleet/internal/features/machine"
	"go-fleet/internal/features/organization"
	"go-fleet/internal/features/tank"
	"go-fleet/internal/features/user"
	"go-fleet/internal/logger"
	"go-fleet/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Seed runs the database seeding
func Seed(
	lc fx.Lifecycle,
	userRepo user.UserRepository,
	orgRepo organization.OrganizationRepository,
	machineRepo machine.MachineRepository,
	tankRepo tank.TankRepository,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("🌱 Starting Database Seeding from JSON...")

				readJSON := func(path string, v interface{}) error {
					b, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					return json.Unmarshal(b, v)
				}

				// Data Paths (Assuming running from backend root)
				usersPath := "cmd/seed/data/users.json"
				machinesPath := "cmd/seed/data/machines.json"
				tanksPath := "cmd/seed/data/tanks.json"

				// 0. Seed Organization
				orgName := "Demo Contractors"
				var orgID string

				orgs, err := orgRepo.List(ctx)
				if err != nil {
					logger.Fatal("Failed to list organizations", zap.Error(err))
				}
				for _, o := range orgs {
					if o.Name == orgName {
						orgID = o.ID.Hex()
						break
					}
				}
				if orgID == "" {
					newOrg := organization.Organization{
						Name:       orgName,
						Workplaces: []string{"North Quarry", "South Depot"},
					}
					if err := orgRepo.Create(ctx, &newOrg); err != nil {
						logger.Fatal("Failed to create organization", zap.Error(err))
					}
					logger.Info("Organization created", zap.String("organization", orgName))
					orgID = newOrg.ID.Hex()
				} else {
					logger.Info("Organization exists, skipping", zap.String("organization", orgName))
				}

				// 1. Seed Users
				var usersData []struct {
					Name          string `json:"name"`
					Email         string `json:"email"`
					Password      string `json:"password"`
					Role          string `json:"role"`
					WorkplaceName string `json:"workplaceName"`
					CredentialID  string `json:"credentialId"`
					Organization  bool   `json:"organization"`
				}
				if err := readJSON(usersPath, &usersData); err != nil {
					logger.Fatal("Failed to read users.json", zap.Error(err))
				}

				for _, uData := range usersData {
					existing, err := userRepo.FindByEmail(ctx, uData.Email)
					if err == nil && existing != nil {
						logger.Info("User exists, skipping", zap.String("email", uData.Email))
						continue
					}

					newUser := user.User{
						Name:          uData.Name,
						Email:         uData.Email,
						Password:      user.HashPassword(uData.Password),
						Role:          uData.Role,
						WorkplaceName: uData.WorkplaceName,
						CredentialID:  uData.CredentialID,
						Status:        "active",
						CreatedAt:     time.Now(),
						UpdatedAt:     time.Now(),
					}
					if newUser.Role == "" {
						newUser.Role = utils.RoleUser
					}
					if uData.Organization {
						newUser.OrganizationID = orgID
					}

					if err := userRepo.Create(ctx, &newUser); err != nil {
						logger.Error("Failed to create user", zap.String("email", uData.Email), zap.Error(err))
					} else {
						logger.Info("User created", zap.String("email", uData.Email), zap.String("role", newUser.Role))
					}
				}

				// 2. Seed Machines
				var machinesData []machine.Machine
				if err := readJSON(machinesPath, &machinesData); err != nil {
					logger.Warn("Failed to read machines.json, skipping machine seeding", zap.Error(err))
				} else {
					for i := range machinesData {
						if err := machineRepo.Create(ctx, &machinesData[i]); err != nil {
							logger.Error("Failed to create machine", zap.String("model", machinesData[i].Model), zap.Error(err))
						} else {
							logger.Info("Machine created", zap.String("model", machinesData[i].Model))
						}
					}
				}

				// 3. Seed Tanks
				var tanksData []tank.Tank
				if err := readJSON(tanksPath, &tanksData); err != nil {
					logger.Warn("Failed to read tanks.json, skipping tank seeding", zap.Error(err))
				} else {
					for i := range tanksData {
						if err := tankRepo.Create(ctx, &tanksData[i]); err != nil {
							logger.Error("Failed to create tank", zap.String("name", tanksData[i].Name), zap.Error(err))
						} else {
							logger.Info("Tank created", zap.String("name", tanksData[i].Name))
						}
					}
				}

				logger.Info("✅ Seeding Complete!")
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			user.NewUserRepository,
			organization.NewOrganizationRepository,
			machine.NewMachineRepository,
			tank.NewTankRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}

	<-app.Done()
}
