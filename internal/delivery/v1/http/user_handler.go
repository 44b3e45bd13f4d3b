package http

import (
	"net/http"

	"github.com/ezstore-dev/go-backend/internal/cfg"
	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/internal/usecase"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/ezstore-dev/go-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userUsecase usecase.UserUC
	cfg         *cfg.AuthCfg
	logger      logger.Logger
}

func NewUserHandler(userUsecase usecase.UserUC, cfg *cfg.AuthCfg, logger logger.Logger) *UserHandler {
	return &UserHandler{userUsecase: userUsecase, cfg: cfg, logger: logger}
}

type registerUserReq struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// register
//
//	@Summary	Регистрация пользователя
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		registerUserReq	true	"Пользователь"
//	@Success	201		{object}	map[string]interface{}
//	@Failure	409		{object}	ErrorResponse	"Имя занято"
//	@Router		/users [post]
func (h *UserHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerUserReq
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.Username == "" || req.Password == "" || req.Role == "" {
		WriteError(w, e.ErrMissingFields)
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		WriteError(w, err)
		return
	}

	ucReq := usecase.NewRegisterUserReq(req.Username, req.Name, req.Surname, req.Password, role)
	if err := h.userUsecase.Register(r.Context(), ucReq); err != nil {
		h.logger.Warnf("register user failed (username: %s): %v", req.Username, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{"username": req.Username})
}

// login
//
//	@Summary		Вход
//	@Description	Открывает сессию и ставит HTTP-only куку
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginReq	true	"Учётные данные"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		401		{object}	ErrorResponse	"Неверные учётные данные"
//	@Router			/sessions [post]
func (h *UserHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	sessionID, err := h.userUsecase.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Warnf("login failed (username: %s): %v", req.Username, err)
		WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"username": req.Username})
}

// logout
//
//	@Summary	Выход
//	@Tags		users
//	@Success	204
//	@Router		/sessions [delete]
func (h *UserHandler) logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cfg.CookieName)
	if err != nil {
		WriteError(w, e.ErrUnauthorized)
		return
	}

	if err := h.userUsecase.Logout(r.Context(), cookie.Value); err != nil {
		h.logger.Warnf("logout failed: %v", err)
		WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	WriteSuccess(w, http.StatusNoContent, nil)
}

// getAll
//
//	@Summary	Список пользователей
//	@Tags		users
//	@Produce	json
//	@Success	200	{array}	UserResponse
//	@Router		/users [get]
func (h *UserHandler) getAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.GetAll(r.Context())
	if err != nil {
		h.logger.Warnf("get users failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewArrUserResponse(users))
}

// getByUsername
//
//	@Summary	Пользователь по имени
//	@Tags		users
//	@Produce	json
//	@Param		username	path		string	true	"Имя пользователя"
//	@Success	200			{object}	UserResponse
//	@Failure	404			{object}	ErrorResponse	"Пользователь не найден"
//	@Router		/users/{username} [get]
func (h *UserHandler) getByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.userUsecase.GetByUsername(r.Context(), username)
	if err != nil {
		h.logger.Warnf("get user failed (username: %s): %v", username, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewUserResponse(user))
}

// deleteUser
//
//	@Summary	Удаление пользователя
//	@Tags		users
//	@Param		username	path	string	true	"Имя пользователя"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse	"Пользователь не найден"
//	@Router		/users/{username} [delete]
func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.userUsecase.Delete(r.Context(), username); err != nil {
		h.logger.Warnf("delete user failed (username: %s): %v", username, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusNoContent, nil)
}
