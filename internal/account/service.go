package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/entity"
	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/repo"
	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/validate"
)

// Messages reported to callers.
const (
	MsgRegistered         = "Registration successful"
	MsgLoggedIn           = "Login successful"
	MsgPasswordsNoMatch   = "Passwords do not match."
	MsgUserExists         = "User already exists."
	MsgInvalidCredentials = "Invalid email or password."
	MsgUserNotFound       = "User not found."
	MsgIncorrectOld       = "Incorrect old password."
	MsgProfileUpdated     = "Profile updated successfully."
	MsgLoggedOut          = "Logout successful."
	MsgPasswordChanged    = "Password changed successfully."
	MsgPasswordReset      = "Password has been reset."
	MsgUserDeleted        = "User deleted."
	MsgInternal           = "Internal server error."
)

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(u *entity.User) (string, error)
}

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginInput is the credentials payload.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service orchestrates the account workflows. Every operation returns a
// Result; unexpected errors are logged here and never leave the service.
type Service struct {
	store  repo.Store
	tokens TokenIssuer
	hasher PasswordHasher
	logger *zap.SugaredLogger
}

func NewService(store repo.Store, tokens TokenIssuer, hasher PasswordHasher, logger *zap.SugaredLogger) *Service {
	if hasher == nil {
		hasher = PlaintextHasher{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{store: store, tokens: tokens, hasher: hasher, logger: logger}
}

// internalError is the single exit for unexpected failures: the cause goes
// to the log, the caller gets an opaque result.
func internalError[T any](logger *zap.SugaredLogger, msg string, err error, kv ...any) Result[T] {
	logger.Errorw(msg, append(kv, "err", err)...)
	return Failure[T](MsgInternal, CodeInternal)
}

// lookup distinguishes a missing user (nil, nil) from a store failure.
func (s *Service) lookup(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func (s *Service) Register(ctx context.Context, in RegisterInput) Result[RegistrationResponse] {
	if v := validate.Registration(in.FirstName, in.LastName, in.Email, in.Password, in.ConfirmPassword); !v.Valid() {
		s.logger.Warnw("registration failed validation", "email", in.Email, "errors", v.Error())
		return Failure[RegistrationResponse](v.Error(), CodeValidation)
	}
	if in.Password != in.ConfirmPassword {
		s.logger.Warnw("registration failed: passwords do not match", "email", in.Email)
		return Failure[RegistrationResponse](MsgPasswordsNoMatch, CodeValidation)
	}

	existing, err := s.lookup(ctx, in.Email)
	if err != nil {
		return internalError[RegistrationResponse](s.logger, "registration lookup failed", err, "email", in.Email)
	}
	if existing != nil {
		s.logger.Warnw("registration failed: email already exists", "email", in.Email)
		return Failure[RegistrationResponse](MsgUserExists, CodeUserExists)
	}

	stored, err := s.hasher.Hash(in.Password)
	if err != nil {
		return internalError[RegistrationResponse](s.logger, "password hashing failed", err, "email", in.Email)
	}
	u := entity.NewUser(in.FirstName, in.LastName, in.Email, stored)
	if err := s.store.Add(ctx, u); err != nil {
		return internalError[RegistrationResponse](s.logger, "error registering user", err, "email", in.Email)
	}
	s.logger.Infow("user registered", "id", u.ID, "email", u.Email)
	return Success(RegistrationResponse{Success: true, Message: MsgRegistered}, MsgRegistered)
}

func (s *Service) Login(ctx context.Context, in LoginInput) Result[LoginResponse] {
	if v := validate.Login(in.Email, in.Password); !v.Valid() {
		s.logger.Warnw("login failed validation", "email", in.Email, "errors", v.Error())
		return Failure[LoginResponse](v.Error(), CodeValidation)
	}

	u, err := s.lookup(ctx, in.Email)
	if err != nil {
		return internalError[LoginResponse](s.logger, "login lookup failed", err, "email", in.Email)
	}
	if u == nil || !s.hasher.Verify(u.Password, in.Password) {
		s.logger.Warnw("login failed: invalid credentials", "email", in.Email)
		return Failure[LoginResponse](MsgInvalidCredentials, CodeInvalidCredentials)
	}

	signed, err := s.tokens.Issue(u)
	if err != nil {
		return internalError[LoginResponse](s.logger, "token generation failed", err, "email", in.Email)
	}
	return Success(LoginResponse{Success: true, Message: MsgLoggedIn, Token: signed}, MsgLoggedIn)
}

// SetupProfile overwrites the first and last name of the user.
func (s *Service) SetupProfile(ctx context.Context, email, firstName, lastName string) Result[None] {
	u, err := s.lookup(ctx, email)
	if err != nil {
		return internalError[None](s.logger, "profile lookup failed", err, "email", email)
	}
	if u == nil {
		s.logger.Warnw("profile update failed: user not found", "email", email)
		return Fail(MsgUserNotFound, CodeUserNotFound)
	}

	u.FirstName = firstName
	u.LastName = lastName
	if err := s.store.Update(ctx, u); err != nil {
		return internalError[None](s.logger, "error updating profile", err, "email", email)
	}
	return OK(MsgProfileUpdated)
}

// Logout has no server-side session to end; issued tokens stay valid
// until they expire.
func (s *Service) Logout(_ context.Context) Result[None] {
	return OK(MsgLoggedOut)
}

func (s *Service) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) Result[None] {
	u, err := s.lookup(ctx, email)
	if err != nil {
		return internalError[None](s.logger, "change password lookup failed", err, "email", email)
	}
	if u == nil {
		s.logger.Warnw("change password failed: user not found", "email", email)
		return Fail(MsgUserNotFound, CodeUserNotFound)
	}
	if !s.hasher.Verify(u.Password, oldPassword) {
		s.logger.Warnw("change password failed: incorrect old password", "email", email)
		return Fail(MsgIncorrectOld, CodeIncorrectPassword)
	}
	if v := validate.Password(newPassword); !v.Valid() {
		s.logger.Warnw("new password failed validation", "email", email, "errors", v.Error())
		return Fail(v.Error(), CodeValidation)
	}
	if err := s.setPassword(ctx, u, newPassword); err != nil {
		return internalError[None](s.logger, "error changing password", err, "email", email)
	}
	return OK(MsgPasswordChanged)
}

// ResetPassword sets a new password for the account without any proof of
// identity beyond the email.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) Result[None] {
	u, err := s.lookup(ctx, email)
	if err != nil {
		return internalError[None](s.logger, "reset password lookup failed", err, "email", email)
	}
	if u == nil {
		s.logger.Warnw("reset password failed: user not found", "email", email)
		return Fail(MsgUserNotFound, CodeUserNotFound)
	}
	if v := validate.Password(newPassword); !v.Valid() {
		s.logger.Warnw("reset password failed validation", "email", email, "errors", v.Error())
		return Fail(v.Error(), CodeValidation)
	}
	if err := s.setPassword(ctx, u, newPassword); err != nil {
		return internalError[None](s.logger, "error resetting password", err, "email", email)
	}
	return OK(MsgPasswordReset)
}

func (s *Service) setPassword(ctx context.Context, u *entity.User, pw string) error {
	stored, err := s.hasher.Hash(pw)
	if err != nil {
		return err
	}
	u.Password = stored
	return s.store.Update(ctx, u)
}

func (s *Service) UserExists(ctx context.Context, email string) Result[bool] {
	ok, err := s.store.Exists(ctx, email)
	if err != nil {
		return internalError[bool](s.logger, "user exists check failed", err, "email", email)
	}
	return Success(ok, "")
}

// DeleteUser removes the account; an unknown id is not an error.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) Result[None] {
	if err := s.store.Delete(ctx, id); err != nil {
		return internalError[None](s.logger, "error deleting user", err, "id", id)
	}
	s.logger.Infow("user deleted", "id", id)
	return OK(MsgUserDeleted)
}
