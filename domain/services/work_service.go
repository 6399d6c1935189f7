package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tycoon/config"
	"tycoon/domain/entities"
	"tycoon/domain/interfaces"
)

type workService struct {
	profileRepo interfaces.ProfileRepository
	jobRepo     interfaces.JobRepository
	txRepo      interfaces.TransactionRepository
	cooldowns   interfaces.CooldownService
	cfg         *config.Config
}

// NewWorkService creates a new work service.
func NewWorkService(profileRepo interfaces.ProfileRepository, jobRepo interfaces.JobRepository, txRepo interfaces.TransactionRepository, cooldowns interfaces.CooldownService, cfg *config.Config) interfaces.WorkService {
	return &workService{
		profileRepo: profileRepo,
		jobRepo:     jobRepo,
		txRepo:      txRepo,
		cooldowns:   cooldowns,
		cfg:         cfg,
	}
}

func (s *workService) ListJobs(ctx context.Context) ([]*entities.Job, error) {
	return s.jobRepo.List(ctx)
}

func (s *workService) AssignJob(ctx context.Context, discordID, jobID int64) (*entities.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up job %d: %w", jobID, err)
	}
	if job == nil {
		return nil, fmt.Errorf("job %d: %w", jobID, entities.ErrNotFound)
	}

	profile, err := s.profileRepo.GetOrCreate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create profile: %w", err)
	}
	if profile.HasJob() {
		return nil, fmt.Errorf("already employed: %w", entities.ErrInvalidState)
	}

	if err := s.profileRepo.SetJob(ctx, discordID, &job.ID); err != nil {
		return nil, fmt.Errorf("failed to assign job: %w", err)
	}
	return job, nil
}

func (s *workService) Resign(ctx context.Context, discordID int64) error {
	profile, err := s.profileRepo.GetOrCreate(ctx, discordID)
	if err != nil {
		return fmt.Errorf("failed to get or create profile: %w", err)
	}
	if !profile.HasJob() {
		return fmt.Errorf("no job to resign from: %w", entities.ErrInvalidState)
	}
	return s.profileRepo.SetJob(ctx, discordID, nil)
}

func (s *workService) Work(ctx context.Context, discordID int64) (*entities.WorkResult, error) {
	profile, err := s.profileRepo.GetOrCreate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create profile: %w", err)
	}
	if !profile.HasJob() {
		return nil, fmt.Errorf("no job assigned: %w", entities.ErrInvalidState)
	}

	job, err := s.jobRepo.GetByID(ctx, *profile.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up job %d: %w", *profile.JobID, err)
	}
	if job == nil {
		return nil, fmt.Errorf("job %d: %w", *profile.JobID, entities.ErrNotFound)
	}

	status, err := s.cooldowns.CheckAndConsume(ctx, discordID, entities.CooldownWork, job.Cooldown())
	if err != nil {
		return nil, fmt.Errorf("failed to check work cooldown: %w", err)
	}
	if !status.Ready {
		return nil, fmt.Errorf("still on cooldown for %s: %w", status.RetryAfter.Round(time.Second), entities.ErrInvalidState)
	}

	energyLeft, err := s.profileRepo.AdjustEnergy(ctx, discordID, -job.EnergyCost, s.cfg.MaxEnergy)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidState) {
			return nil, fmt.Errorf("too exhausted to work: %w", err)
		}
		return nil, fmt.Errorf("failed to spend energy: %w", err)
	}

	newCash, err := s.profileRepo.AdjustBalance(ctx, discordID, entities.BalanceCash, job.Salary)
	if err != nil {
		return nil, fmt.Errorf("failed to pay salary: %w", err)
	}

	record := &entities.Transaction{
		DiscordID: discordID,
		Type:      entities.TransactionTypeSalary,
		Status:    entities.TransactionStatusCompleted,
		Amount:    job.Salary,
		Metadata:  map[string]any{"job": job.Name},
	}
	if err := s.txRepo.Record(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record salary: %w", err)
	}

	return &entities.WorkResult{
		JobName:    job.Name,
		Salary:     job.Salary,
		NewCash:    newCash,
		EnergyLeft: energyLeft,
	}, nil
}

func (s *workService) Daily(ctx context.Context, discordID int64) (int64, error) {
	status, err := s.cooldowns.CheckAndConsume(ctx, discordID, entities.CooldownDaily, s.cfg.DailyCooldown)
	if err != nil {
		return 0, fmt.Errorf("failed to check daily cooldown: %w", err)
	}
	if !status.Ready {
		return 0, fmt.Errorf("daily already claimed, retry in %s: %w", status.RetryAfter.Round(time.Second), entities.ErrInvalidState)
	}

	newCash, err := s.profileRepo.AdjustBalance(ctx, discordID, entities.BalanceCash, s.cfg.DailyAmount)
	if err != nil {
		return 0, fmt.Errorf("failed to credit daily amount: %w", err)
	}

	record := &entities.Transaction{
		DiscordID: discordID,
		Type:      entities.TransactionTypeDaily,
		Status:    entities.TransactionStatusCompleted,
		Amount:    s.cfg.DailyAmount,
	}
	if err := s.txRepo.Record(ctx, record); err != nil {
		return 0, fmt.Errorf("failed to record daily grant: %w", err)
	}
	return newCash, nil
}

func (s *workService) Hire(ctx context.Context, employerID, employeeID int64) error {
	if employerID == employeeID {
		return fmt.Errorf("cannot hire yourself")
	}

	profile, err := s.profileRepo.GetOrCreate(ctx, employerID)
	if err != nil {
		return fmt.Errorf("failed to get or create profile: %w", err)
	}
	if !profile.HasFreeEmployeeSlot() {
		return fmt.Errorf("all %d employee slots taken: %w", entities.EmployeeSlots, entities.ErrInvalidState)
	}
	if profile.Employs(employeeID) {
		return fmt.Errorf("already employs that user: %w", entities.ErrInvalidState)
	}

	employees := append(profile.Employees, entities.Employee{
		DiscordID: employeeID,
		HiredAt:   time.Now().UTC(),
	})
	return s.profileRepo.SetEmployees(ctx, employerID, employees)
}

func (s *workService) Fire(ctx context.Context, employerID, employeeID int64) error {
	profile, err := s.profileRepo.GetOrCreate(ctx, employerID)
	if err != nil {
		return fmt.Errorf("failed to get or create profile: %w", err)
	}
	if !profile.Employs(employeeID) {
		return fmt.Errorf("that user is not employed here: %w", entities.ErrInvalidState)
	}

	kept := make([]entities.Employee, 0, len(profile.Employees))
	for _, e := range profile.Employees {
		if e.DiscordID != employeeID {
			kept = append(kept, e)
		}
	}
	return s.profileRepo.SetEmployees(ctx, employerID, kept)
}
