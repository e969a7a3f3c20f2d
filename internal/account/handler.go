package account

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/entity"
)

const (
	msgInvalidUserData    = "Invalid user data."
	msgInvalidLoginData   = "Invalid login data."
	msgInvalidRequestData = "Invalid request data."
	msgForbidden          = "Forbidden."
)

// Handler exposes HTTP endpoints for the account workflows.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{svc: svc, logger: logger}
}

// ChangePasswordRequest request body for the change-password endpoint.
type ChangePasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ResetPasswordRequest request body for the reset-password endpoint.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// SetupProfileRequest request body for the setup-profile endpoint.
type SetupProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[RegisterInput](r)
	if err != nil || req == nil {
		h.logger.Debugw("invalid register payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, Fail(msgInvalidUserData, CodeValidation))
		return
	}
	res := h.svc.Register(r.Context(), *req)
	if !res.IsSuccess() {
		h.writeJSON(w, http.StatusBadRequest, res)
		return
	}
	h.writeJSON(w, http.StatusOK, res.Data())
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[LoginInput](r)
	if err != nil || req == nil {
		h.logger.Debugw("invalid login payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, Fail(msgInvalidLoginData, CodeValidation))
		return
	}
	res := h.svc.Login(r.Context(), *req)
	if !res.IsSuccess() {
		h.writeJSON(w, http.StatusUnauthorized, res)
		return
	}
	h.writeJSON(w, http.StatusOK, res.Data())
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, h.svc.Logout(r.Context()))
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[ChangePasswordRequest](r)
	if err != nil || req == nil {
		h.logger.Debugw("invalid change password payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, Fail(msgInvalidRequestData, CodeValidation))
		return
	}
	h.writeResult(w, h.svc.ChangePassword(r.Context(), req.Email, req.OldPassword, req.NewPassword))
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[ResetPasswordRequest](r)
	if err != nil || req == nil {
		h.logger.Debugw("invalid reset password payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, Fail(msgInvalidRequestData, CodeValidation))
		return
	}
	h.writeResult(w, h.svc.ResetPassword(r.Context(), req.Email, req.NewPassword))
}

// SetupProfile updates the names of the caller identified by the bearer token.
func (h *Handler) SetupProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, Fail(msgMissingToken, CodeInvalidCredentials))
		return
	}
	req, err := decodeBody[SetupProfileRequest](r)
	if err != nil || req == nil {
		h.logger.Debugw("invalid setup profile payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, Fail(msgInvalidRequestData, CodeValidation))
		return
	}
	h.writeResult(w, h.svc.SetupProfile(r.Context(), claims.Email, req.FirstName, req.LastName))
}

// DeleteUser removes an account. Admins may delete anyone, others only themselves.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, Fail(msgMissingToken, CodeInvalidCredentials))
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, Fail(msgInvalidRequestData, CodeValidation))
		return
	}
	if claims.Role != entity.RoleAdmin.String() && claims.Subject != id.String() {
		h.logger.Warnw("delete user forbidden", "caller", claims.Subject, "target", id)
		h.writeJSON(w, http.StatusForbidden, Fail(msgForbidden, CodeInvalidCredentials))
		return
	}
	h.writeResult(w, h.svc.DeleteUser(r.Context(), id))
}

func (h *Handler) writeResult(w http.ResponseWriter, res Result[None]) {
	if !res.IsSuccess() {
		h.writeJSON(w, http.StatusBadRequest, res)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody returns nil without error for an empty or JSON null body.
func decodeBody[T any](r *http.Request) (*T, error) {
	var v *T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
