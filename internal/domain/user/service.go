package user

import (
	"context"

	"todoroki/internal/core/apperror"
	corecontext "todoroki/internal/core/context"
	"todoroki/internal/core/entity"
	"todoroki/internal/core/security"
	"todoroki/internal/domain/audit"
	"todoroki/pkg/logger"
)

// Service handles account registration and self lookup.
type Service struct {
	repo              Repository
	auditor           audit.Recorder
	defaultOwnerEmail string
}

// NewService creates a user service. defaultOwnerEmail enables the
// bootstrap-owner path; empty disables it.
func NewService(repo Repository, auditor audit.Recorder, defaultOwnerEmail string) *Service {
	return &Service{
		repo:              repo,
		auditor:           auditor,
		defaultOwnerEmail: defaultOwnerEmail,
	}
}

// Register creates an account for the calling client under its verified
// email. The role is contributor, except for the configured default-owner
// email which registers as owner. The permission engine enforces that only an
// unregistered caller may register, and only itself.
func (s *Service) Register(ctx context.Context, name string) (*entity.User, error) {
	cc, ok := corecontext.GetClient(ctx)
	if !ok {
		return nil, apperror.NewNotVerified()
	}
	email, ok := cc.Email()
	if !ok {
		return nil, apperror.NewNotVerified()
	}

	role := entity.RoleContributor
	if s.defaultOwnerEmail != "" && email == s.defaultOwnerEmail {
		role = entity.RoleOwner
	}

	candidate := entity.NewUser(name, email, role)
	if err := cc.Require(security.CreateUser{Candidate: candidate}); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.NewAlreadyExists(email)
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := s.repo.Create(ctx, candidate); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered",
		"user_id", candidate.ID.String(),
		"role", string(candidate.Role),
	)
	s.auditor.Record(ctx, audit.Entry{
		EntityType: "user",
		EntityID:   candidate.ID,
		Action:     audit.ActionCreate,
		Changes: audit.MarshalChanges(map[string]any{
			"name": candidate.Name,
			"role": string(candidate.Role),
		}),
	})

	return &candidate, nil
}

// Me returns the calling client's account.
func (s *Service) Me(ctx context.Context) (*entity.User, error) {
	cc, ok := corecontext.GetClient(ctx)
	if !ok {
		return nil, apperror.NewNotVerified()
	}
	if u, ok := cc.Client().(entity.ClientUser); ok {
		return &u.User, nil
	}
	return nil, apperror.NewNotVerified()
}
