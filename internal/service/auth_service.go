package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/models"
	"github.com/vk-smartminds/practice-platform/internal/repository"
)

// AuthService handles registration, login and session resolution for students
// and admins.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResult, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResult, error)
	ResolveSession(ctx context.Context, token string) (models.Account, error)
	Profile(ctx context.Context, studentID uint) (dto.StudentResponse, error)
	UpdateProfile(ctx context.Context, studentID uint, req dto.ProfileUpdateRequest) (dto.StudentResponse, error)
	CreateAdmin(ctx context.Context, req dto.AdminCreateRequest) (models.Admin, error)
}

type authService struct {
	accounts  repository.AccountRepository
	students  repository.StudentRepository
	classes   repository.ClassRepository
	tokens    *SessionTokens
	stats     StatsInvalidator
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthService constructs the authentication service.
func NewAuthService(accounts repository.AccountRepository, students repository.StudentRepository, classes repository.ClassRepository, tokens *SessionTokens, stats StatsInvalidator, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		accounts:  accounts,
		students:  students,
		classes:   classes,
		tokens:    tokens,
		stats:     stats,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResult, error) {
	if req.Address == nil || !req.Address.ToModel().Complete() {
		return dto.AuthResult{}, ErrIncompleteAddress
	}
	req.Email = models.NormalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return dto.AuthResult{}, err
	}

	taken, err := s.students.EmailExists(ctx, req.Email, 0)
	if err != nil {
		return dto.AuthResult{}, err
	}
	if taken {
		return dto.AuthResult{}, ErrEmailTaken
	}

	class, err := s.classes.GetByID(ctx, req.ClassID)
	if err != nil {
		return dto.AuthResult{}, missingParent(err, "class", req.ClassID)
	}

	address := req.Address.ToModel()
	student := models.Student{
		Name:                 strings.TrimSpace(req.Name),
		Email:                req.Email,
		ClassID:              class.ID,
		School:               strings.TrimSpace(req.School),
		Address:              trimAddress(address),
		GuardianName:         strings.TrimSpace(req.GuardianName),
		GuardianMobileNumber: strings.TrimSpace(req.GuardianMobileNumber),
	}
	student.SetPassword(req.Password)

	if err := s.students.Create(ctx, &student); err != nil {
		if isDuplicateKey(err) {
			return dto.AuthResult{}, ErrEmailTaken
		}
		return dto.AuthResult{}, err
	}

	invalidateStats(ctx, s.stats)

	account := models.StudentAccount(student)
	account.ClassName = class.Name
	s.logger.Info().Uint("student_id", student.ID).Uint("class_id", class.ID).Msg("student registered")
	return s.issue(account)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResult, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return dto.AuthResult{}, ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResult{}, ErrInvalidCredentials
		}
		return dto.AuthResult{}, err
	}
	if !account.CheckPassword(req.Password) {
		return dto.AuthResult{}, ErrInvalidCredentials
	}

	return s.issue(account)
}

func (s *authService) issue(account models.Account) (dto.AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return dto.AuthResult{}, err
	}
	return dto.AuthResult{Account: account, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) ResolveSession(ctx context.Context, token string) (models.Account, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return models.Account{}, err
	}

	account, err := s.accounts.FindByID(ctx, claims.Role, claims.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug().Uint("account_id", claims.ID).Str("role", claims.Role).Msg("session refers to a missing account")
			return models.Account{}, ErrSessionInvalid
		}
		return models.Account{}, err
	}
	return account, nil
}

func (s *authService) Profile(ctx context.Context, studentID uint) (dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return dto.StudentResponse{}, notFound(err, ErrStudentNotFound)
	}
	return dto.NewStudentResponse(student, s.className(ctx, student.ClassID)), nil
}

func (s *authService) UpdateProfile(ctx context.Context, studentID uint, req dto.ProfileUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return dto.StudentResponse{}, notFound(err, ErrStudentNotFound)
	}

	applyString(&student.Name, req.Name)
	applyString(&student.School, req.School)
	applyString(&student.GuardianName, req.GuardianName)
	applyString(&student.GuardianMobileNumber, req.GuardianMobileNumber)
	applyAddressPatch(&student.Address, req.Address)
	if err := requireStudentFields(student); err != nil {
		return dto.StudentResponse{}, err
	}

	if err := s.students.Save(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}
	if req.Address != nil {
		invalidateStats(ctx, s.stats)
	}
	return dto.NewStudentResponse(student, s.className(ctx, student.ClassID)), nil
}

func (s *authService) CreateAdmin(ctx context.Context, req dto.AdminCreateRequest) (models.Admin, error) {
	req.Email = models.NormalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return models.Admin{}, err
	}

	exists, err := s.accounts.AdminEmailExists(ctx, req.Email)
	if err != nil {
		return models.Admin{}, err
	}
	if exists {
		return models.Admin{}, ErrDuplicate
	}

	admin := models.Admin{Name: strings.TrimSpace(req.Name), Email: req.Email}
	admin.SetPassword(req.Password)
	if err := s.accounts.CreateAdmin(ctx, &admin); err != nil {
		if isDuplicateKey(err) {
			return models.Admin{}, ErrDuplicate
		}
		return models.Admin{}, err
	}

	s.logger.Info().Uint("admin_id", admin.ID).Msg("admin created")
	return admin, nil
}

func (s *authService) className(ctx context.Context, classID uint) string {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Err(err).Uint("class_id", classID).Msg("failed to resolve class name")
		}
		return ""
	}
	return class.Name
}

func applyString(target *string, value *string) {
	if value != nil {
		*target = strings.TrimSpace(*value)
	}
}

// applyAddressPatch merges the provided address parts into the stored address.
func applyAddressPatch(address *models.Address, patch *dto.AddressPatch) {
	if patch == nil {
		return
	}
	applyString(&address.City, patch.City)
	applyString(&address.State, patch.State)
	applyString(&address.Pincode, patch.Pincode)
}

// requireStudentFields rejects a merged student whose required fields ended
// up blank after trimming.
func requireStudentFields(student models.Student) error {
	for _, value := range []string{student.Name, student.School, student.GuardianName, student.GuardianMobileNumber} {
		if value == "" {
			return ErrBlankField
		}
	}
	if !student.Address.Complete() {
		return ErrIncompleteAddress
	}
	return nil
}

func trimAddress(address models.Address) models.Address {
	return models.Address{
		City:    strings.TrimSpace(address.City),
		State:   strings.TrimSpace(address.State),
		Pincode: strings.TrimSpace(address.Pincode),
	}
}
