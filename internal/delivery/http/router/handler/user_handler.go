// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"userhub/config"
	"userhub/internal/delivery/http/response"
	"userhub/internal/domain/constants"
	"userhub/internal/domain/entity"
	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/domain/service"
	"userhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

const errCodeInvalidInput = "INVALID_INPUT"

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc              usecase.UserUsecase
	qrCodeService   service.QRCodeService
	defaultPageSize int
	logger          *slog.Logger
}

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	Usecase       usecase.UserUsecase
	QRCodeService service.QRCodeService
	Config        *config.Config
	Logger        *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	defaultPageSize := constants.DefaultPageSize
	if params.Config != nil && params.Config.Pagination != nil && params.Config.Pagination.DefaultSize > 0 {
		defaultPageSize = params.Config.Pagination.DefaultSize
	}

	return &UserHandler{
		uc:              params.Usecase,
		qrCodeService:   params.QRCodeService,
		defaultPageSize: defaultPageSize,
		logger:          params.Logger,
	}
}

// CreateUser handles POST /api/users.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, errCodeInvalidInput, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.CreateUser(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "user created successfully")
}

// GetUser handles GET /api/users/:id. A missing user is reported with success:false and status 200.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, errCodeInvalidInput, "invalid user id")
	}

	user, err := h.uc.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}
	if user == nil {
		return userMissing(c)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "user retrieved successfully")
}

// GetUserQRCode handles GET /api/users/:id/qrcode and streams a PNG.
func (h *UserHandler) GetUserQRCode(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, errCodeInvalidInput, "invalid user id")
	}

	user, err := h.uc.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}
	if user == nil {
		return userMissing(c)
	}

	png, err := h.qrCodeService.GenerateProfileQR(user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// GetAllUsers handles GET /api/users.
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	users, err := h.uc.GetAllUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponses(users), "users retrieved successfully")
}

// GetUsersPage handles GET /api/users/page. The page and the total are fetched concurrently.
func (h *UserHandler) GetUsersPage(c echo.Context) error {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return response.BadRequest(c, errCodeInvalidInput, "page must be an integer")
	}
	size, err := queryInt(c, "size", h.defaultPageSize)
	if err != nil {
		return response.BadRequest(c, errCodeInvalidInput, "size must be an integer")
	}

	var (
		users []*entity.User
		total int64
	)

	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		users, err = h.uc.GetUsersWithPagination(ctx, page, size)

		return err
	})
	g.Go(func() error {
		var err error
		total, err = h.uc.CountAllUsers(ctx)

		return err
	})
	if err := g.Wait(); err != nil {
		return errors.WithStack(err)
	}

	return response.Paged(c, toUserResponses(users), response.NewPagination(page, size, total), "users retrieved successfully")
}

// SearchByUsername handles GET /api/users/search/username?keyword=.
func (h *UserHandler) SearchByUsername(c echo.Context) error {
	keyword, ok := requiredQuery(c, "keyword")
	if !ok {
		return response.BadRequest(c, errCodeInvalidInput, "keyword is required")
	}

	users, err := h.uc.SearchUsersByUsername(c.Request().Context(), keyword)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponses(users), "users found")
}

// SearchByEmail handles GET /api/users/search/email?keyword=.
func (h *UserHandler) SearchByEmail(c echo.Context) error {
	keyword, ok := requiredQuery(c, "keyword")
	if !ok {
		return response.BadRequest(c, errCodeInvalidInput, "keyword is required")
	}

	users, err := h.uc.SearchUsersByEmail(c.Request().Context(), keyword)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponses(users), "users found")
}

// CountUsers handles GET /api/users/count.
func (h *UserHandler) CountUsers(c echo.Context) error {
	count, err := h.uc.CountAllUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, CountResponse{Count: count}, "user count retrieved successfully")
}

// UpdateUser handles PUT /api/users/:id.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, errCodeInvalidInput, "invalid user id")
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, errCodeInvalidInput, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "user updated successfully")
}

// DeleteUser handles DELETE /api/users/:id.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, errCodeInvalidInput, "invalid user id")
	}

	if err := h.uc.DeleteUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "user deleted successfully")
}

func userMissing(c echo.Context) error {
	return response.Failure(c, domainerrors.ErrUserNotFound.ErrorCode(), domainerrors.ErrUserNotFound.Message())
}

// queryInt reads an optional integer query parameter.
func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	return strconv.Atoi(raw)
}

// requiredQuery reports whether name was sent at all. An empty value counts as present.
func requiredQuery(c echo.Context, name string) (string, bool) {
	values, ok := c.QueryParams()[name]
	if !ok || len(values) == 0 {
		return "", false
	}

	return values[0], true
}
