package handlers

import (
	"encoding/json"
	"net/http"

	"GoMFiles/internal/config"
	"GoMFiles/internal/middleware"
	"GoMFiles/internal/service"

	"go.uber.org/zap"
)

// AuthHandler issues tokens for vault accounts.
type AuthHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewAuthHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{UserService: userService, Logger: logger, Config: cfg}
}

type authRequest struct {
	Username  string `json:"Username"`
	Password  string `json:"Password"`
	VaultGuid string `json:"VaultGuid"`
}

type authResponse struct {
	Value string `json:"Value"`
}

// Authenticate answers POST server/authenticationtokens.
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	vault := config.NormalizeVault(req.VaultGuid)
	if vault != config.NormalizeVault(h.Config.Vault) {
		h.Logger.Infow("login to unknown vault", "user", req.Username, "vault", req.VaultGuid)
		writeError(w, h.Logger, service.ErrWrongVault)
		return
	}
	user, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.Logger.Infow("login failed", "user", req.Username, "error", err)
		writeError(w, h.Logger, err)
		return
	}
	token, err := middleware.IssueToken(user.ID, user.Login, vault, h.Config.TokenSecret)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	h.Logger.Infow("token issued", "user", user.Login, "vault", vault)
	writeJSON(w, authResponse{Value: token})
}

// RequireVault rejects tokens issued for another vault.
func (h *AuthHandler) RequireVault(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaimsFromContext(r.Context())
		if !ok || claims.Vault != config.NormalizeVault(h.Config.Vault) {
			writeMessage(w, http.StatusUnauthorized, "Login to application failed.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
