package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
	"github.com/stephenrocksolid/shopmgr/internal/shop/repository"
)

// JobService manages shop job tickets.
type JobService struct {
	jobRepo      *repository.JobRepository
	customerRepo *repository.CustomerRepository
	engineRepo   *repository.EngineRepository
	notifier     *NotificationService
}

func NewJobService(
	jobRepo *repository.JobRepository,
	customerRepo *repository.CustomerRepository,
	engineRepo *repository.EngineRepository,
	notifier *NotificationService,
) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		customerRepo: customerRepo,
		engineRepo:   engineRepo,
		notifier:     notifier,
	}
}

type CreateJobRequest struct {
	JobNumber    string  `json:"job_number"`
	CustomerID   *string `json:"customer_id"`
	EngineID     *string `json:"engine_id"`
	Description  string  `json:"description"`
	AssignedTo   string  `json:"assigned_to"`
	PromisedDate string  `json:"promised_date"` // YYYY-MM-DD
	Notes        string  `json:"notes"`
}

// CreateJob opens a job ticket, snapshotting the customer's name and phone
// onto the ticket at creation.
func (s *JobService) CreateJob(ctx context.Context, req *CreateJobRequest) (*entity.Job, error) {
	number := req.JobNumber
	if number == "" {
		n, err := s.jobRepo.GenerateNumber(ctx)
		if err != nil {
			return nil, err
		}
		number = n
	} else {
		exists, err := s.jobRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &entity.ValidationError{Field: "job_number", Message: "already in use"}
		}
	}

	job := &entity.Job{
		ID:          uuid.New().String(),
		JobNumber:   number,
		Status:      entity.JobStatusOpen,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Notes:       req.Notes,
	}

	if req.CustomerID != nil && *req.CustomerID != "" {
		customer, err := s.customerRepo.FindByID(ctx, *req.CustomerID)
		if err != nil {
			return nil, &entity.ValidationError{Field: "customer_id", Message: "customer not found"}
		}
		job.CustomerID = &customer.ID
		job.CustomerName = customer.Name
		job.CustomerPhone = customer.Phone
	}
	if req.EngineID != nil && *req.EngineID != "" {
		engine, err := s.engineRepo.FindByID(ctx, *req.EngineID)
		if err != nil {
			return nil, &entity.ValidationError{Field: "engine_id", Message: "engine not found"}
		}
		job.EngineID = &engine.ID
	}
	if req.PromisedDate != "" {
		t, err := time.Parse("2006-01-02", req.PromisedDate)
		if err != nil {
			return nil, &entity.ValidationError{Field: "promised_date", Message: "expected YYYY-MM-DD"}
		}
		job.PromisedDate = &t
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	job.Progress = job.ProgressPercent()
	return job, nil
}

func (s *JobService) GetJob(ctx context.Context, id string) (*entity.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	job.Progress = job.ProgressPercent()
	return job, nil
}

func (s *JobService) ListJobs(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Job, int64, error) {
	jobs, total, err := s.jobRepo.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}
	for i := range jobs {
		jobs[i].Progress = jobs[i].ProgressPercent()
	}
	return jobs, total, nil
}

// UpdateStagesRequest toggles shop stage flags. Nil fields are untouched.
type UpdateStagesRequest struct {
	Disassembled *bool `json:"disassembled"`
	Cleaned      *bool `json:"cleaned"`
	Inspected    *bool `json:"inspected"`
	Machined     *bool `json:"machined"`
	Assembled    *bool `json:"assembled"`
	Tested       *bool `json:"tested"`
}

// UpdateStages flips stage flags and moves an open job to in_progress once
// any stage is done.
func (s *JobService) UpdateStages(ctx context.Context, id string, req *UpdateStagesRequest) (*entity.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status == entity.JobStatusClosed {
		return nil, &entity.ValidationError{Field: "status", Message: "job is closed"}
	}

	if req.Disassembled != nil {
		job.Disassembled = *req.Disassembled
	}
	if req.Cleaned != nil {
		job.Cleaned = *req.Cleaned
	}
	if req.Inspected != nil {
		job.Inspected = *req.Inspected
	}
	if req.Machined != nil {
		job.Machined = *req.Machined
	}
	if req.Assembled != nil {
		job.Assembled = *req.Assembled
	}
	if req.Tested != nil {
		job.Tested = *req.Tested
	}

	if job.Status == entity.JobStatusOpen && job.ProgressPercent() > 0 {
		job.Status = entity.JobStatusInProgress
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	job.Progress = job.ProgressPercent()
	return job, nil
}

// CompleteJob marks a job complete and notifies the assignee.
func (s *JobService) CompleteJob(ctx context.Context, id string) (*entity.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status == entity.JobStatusClosed || job.Status == entity.JobStatusComplete {
		return nil, &entity.ValidationError{Field: "status", Message: "job is already complete"}
	}

	now := time.Now()
	job.Status = entity.JobStatusComplete
	job.CompletedDate = &now
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, job.AssignedTo, entity.NotifyJobComplete,
			"Job complete",
			"Job "+job.JobNumber+" has been marked complete.",
			"job", job.ID)
	}
	job.Progress = job.ProgressPercent()
	return job, nil
}

// CloseJob closes a completed job.
func (s *JobService) CloseJob(ctx context.Context, id string) (*entity.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != entity.JobStatusComplete {
		return nil, &entity.ValidationError{Field: "status", Message: "only complete jobs can be closed"}
	}
	job.Status = entity.JobStatusClosed
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	job.Progress = job.ProgressPercent()
	return job, nil
}

func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	return s.jobRepo.Delete(ctx, id)
}
