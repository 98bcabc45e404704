package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/repository"
)

// AdminStudentService orchestrates admin student management use cases.
type AdminStudentService interface {
	List(ctx context.Context, req dto.AdminStudentListRequest) (dto.AdminStudentListResponse, error)
	Get(ctx context.Context, id uint) (dto.StudentResponse, error)
	Update(ctx context.Context, id uint, payload dto.AdminStudentUpdateRequest, actor ActivityActor) (dto.StudentResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type adminStudentService struct {
	repo      repository.StudentRepository
	classes   repository.ClassRepository
	stats     StatsInvalidator
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewAdminStudentService constructs the admin student service.
func NewAdminStudentService(repo repository.StudentRepository, classes repository.ClassRepository, stats StatsInvalidator, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) AdminStudentService {
	return &adminStudentService{
		repo:      repo,
		classes:   classes,
		stats:     stats,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "admin_student_service").Logger(),
	}
}

func (s *adminStudentService) List(ctx context.Context, req dto.AdminStudentListRequest) (dto.AdminStudentListResponse, error) {
	filter := repository.StudentFilter{
		Search:   strings.TrimSpace(req.Search),
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.ClassID > 0 {
		filter.ClassID = &req.ClassID
	}

	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AdminStudentListResponse{}, err
	}

	names := s.classNames(ctx)
	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.NewStudentResponse(student, names[student.ClassID]))
	}

	return dto.AdminStudentListResponse{Items: responses, Pagination: paginate(req.Page, req.PageSize, total)}, nil
}

func (s *adminStudentService) Get(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.StudentResponse{}, notFound(err, ErrStudentNotFound)
	}
	return dto.NewStudentResponse(student, s.classNames(ctx)[student.ClassID]), nil
}

func (s *adminStudentService) Update(ctx context.Context, id uint, payload dto.AdminStudentUpdateRequest, actor ActivityActor) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.StudentResponse{}, notFound(err, ErrStudentNotFound)
	}

	changedFields := make([]string, 0)
	track := func(field string, value *string, target *string) {
		if value != nil {
			applyString(target, value)
			changedFields = append(changedFields, field)
		}
	}
	track("name", payload.Name, &student.Name)
	track("school", payload.School, &student.School)
	track("guardianName", payload.GuardianName, &student.GuardianName)
	track("guardianMobileNumber", payload.GuardianMobileNumber, &student.GuardianMobileNumber)

	if payload.Email != nil {
		taken, err := s.repo.EmailExists(ctx, *payload.Email, student.ID)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		if taken {
			return dto.StudentResponse{}, ErrEmailTaken
		}
		student.Email = *payload.Email
		changedFields = append(changedFields, "email")
	}
	if payload.ClassID != nil && *payload.ClassID != student.ClassID {
		if _, err := s.classes.GetByID(ctx, *payload.ClassID); err != nil {
			return dto.StudentResponse{}, missingParent(err, "class", *payload.ClassID)
		}
		student.ClassID = *payload.ClassID
		changedFields = append(changedFields, "classId")
	}
	if payload.Address != nil {
		applyAddressPatch(&student.Address, payload.Address)
		changedFields = append(changedFields, "address")
	}

	if len(changedFields) == 0 {
		return dto.NewStudentResponse(student, s.classNames(ctx)[student.ClassID]), nil
	}
	if err := requireStudentFields(student); err != nil {
		return dto.StudentResponse{}, err
	}

	if err := s.repo.Save(ctx, &student); err != nil {
		if isDuplicateKey(err) {
			return dto.StudentResponse{}, ErrEmailTaken
		}
		return dto.StudentResponse{}, err
	}
	if payload.Address != nil {
		invalidateStats(ctx, s.stats)
	}

	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "student.updated",
		EntityType: "student",
		EntityID:   &student.ID,
		Metadata: map[string]interface{}{
			"student_id": student.ID,
			"fields":     changedFields,
		},
	})

	return dto.NewStudentResponse(student, s.classNames(ctx)[student.ClassID]), nil
}

func (s *adminStudentService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, ErrStudentNotFound)
	}
	invalidateStats(ctx, s.stats)

	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "student.deleted",
		EntityType: "student",
		EntityID:   &id,
		Metadata:   map[string]interface{}{"student_id": id},
	})
	return nil
}

func (s *adminStudentService) classNames(ctx context.Context) map[uint]string {
	names := map[uint]string{}
	classes, err := s.classes.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load class names")
		return names
	}
	for _, class := range classes {
		names[class.ID] = class.Name
	}
	return names
}
