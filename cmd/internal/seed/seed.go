package seed

import (
	"time"

	"clinicbook/cmd/internal/config"
	"clinicbook/cmd/internal/domain/entity"
	"clinicbook/cmd/internal/schedule"
	"clinicbook/cmd/internal/service"
	"clinicbook/cmd/internal/utils"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	UserRepo service.UserRepository
	SlotRepo service.SlotRepository
}

func NewSeeder(userRepo service.UserRepository, slotRepo service.SlotRepository) *Seeder {
	return &Seeder{UserRepo: userRepo, SlotRepo: slotRepo}
}

// Run seeds the optional staff and patient accounts from the environment and
// lays down the slot grid for the next few days. Every step is idempotent, so
// restarts are safe; failures are logged and skipped rather than fatal.
func (s *Seeder) Run(cfg *config.Config) {
	s.seedUser("Staff", cfg.SeedStaffEmail, cfg.SeedStaffPass, entity.RoleStaff)
	s.seedUser("Patient", cfg.SeedPatientEmail, cfg.SeedPatientPass, entity.RolePatient)
	s.seedGrid()
}

func (s *Seeder) seedUser(name, email, password, role string) {
	if email == "" || password == "" {
		return
	}

	existing, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		log.Errorf("failed to check for seeded %s user: %v", role, err)
		return
	}
	if existing != nil {
		log.Infof("%s already exists: %s", role, email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash seed password for %s: %v", email, err)
		return
	}

	now := utils.NowUTC()
	user := &entity.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.UserRepo.Create(user); err != nil {
		log.Errorf("failed to seed %s user: %v", role, err)
		return
	}
	log.Infof("seeded %s: %s", role, email)
}

func (s *Seeder) seedGrid() {
	for _, r := range schedule.Generate(time.Now().UTC(), service.BackfillDays) {
		if err := s.SlotRepo.FindOrCreate(r.Start.UnixMilli(), r.End.UnixMilli()); err != nil {
			log.Errorf("failed to seed slot at %s: %v", r.Start, err)
			return
		}
	}
	log.Infof("slots seeded for next %d days (UTC)", service.BackfillDays)
}
