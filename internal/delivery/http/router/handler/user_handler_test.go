package handler_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"userhub/config"
	deliverycontext "userhub/internal/delivery/context"
	httpdelivery "userhub/internal/delivery/http"
	"userhub/internal/delivery/http/router"
	"userhub/internal/delivery/http/router/handler"
	"userhub/internal/domain/entity"
	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/errors"
	mockSvc "userhub/internal/mocks/service"
	mockUsecase "userhub/internal/mocks/usecase"
	"userhub/internal/usecase"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// envelope mirrors the response body with data left raw for per-test decoding.
type envelope struct {
	Success    bool            `json:"success"`
	Code       int             `json:"code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page       int   `json:"page"`
		Size       int   `json:"size"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"totalPages"`
	} `json:"pagination"`
	Error *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
	Timestamp int64 `json:"timestamp"`
}

type handlerFixtures struct {
	e      *echo.Echo
	uc     *mockUsecase.MockUserUsecase
	qr     *mockSvc.MockQRCodeService
	dbMock sqlmock.Sqlmock
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Pagination: &config.PaginationConfig{DefaultSize: 10, MaxSize: 100},
		Metrics:    &config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"

	return cfg
}

func newTestServer(t *testing.T) handlerFixtures {
	t.Helper()

	cfg := newTestConfig()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	sqlDB, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)

	uc := mockUsecase.NewMockUserUsecase(t)
	qr := mockSvc.NewMockQRCodeService(t)

	e := httpdelivery.NewEcho(cfg, log)
	router.NewRouter(router.RouterParams{
		Config: cfg,
		UserHandler: handler.NewUserHandler(handler.UserHandlerParams{
			Usecase:       uc,
			QRCodeService: qr,
			Config:        cfg,
			Logger:        log,
		}),
		HealthHandler: handler.NewHealthHandler(db, log),
	}).RegisterRoutes(e)

	return handlerFixtures{e: e, uc: uc, qr: qr, dbMock: dbMock}
}

func (f handlerFixtures) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

func sampleUser(username string) *entity.User {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	return &entity.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$10$secrethash",
		Bio:          "hello",
		IsActive:     true,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func TestUserHandler_CreateUser(t *testing.T) {
	f := newTestServer(t)
	user := sampleUser("alice")

	f.uc.EXPECT().CreateUser(mock.Anything, &usecase.CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Str0ng!Pass",
		Bio:      "hello",
	}).Return(user, nil)

	rec := f.do(t, http.MethodPost, "/api/users",
		`{"username":"alice","email":"alice@example.com","password":"Str0ng!Pass","bio":"hello"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "user created successfully", env.Message)
	assert.NotZero(t, env.Timestamp)

	var got handler.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, user.ID.String(), got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.True(t, got.IsActive)
	assert.NotContains(t, rec.Body.String(), "secrethash")
}

func TestUserHandler_CreateUser_ValidationJoinsMessages(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(t, http.MethodPost, "/api/users", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "username is required; email is required; password is required", env.Message)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestUserHandler_CreateUser_InvalidEmailAndShortName(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(t, http.MethodPost, "/api/users", `{"username":"al","email":"nope","password":"x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "username must be at least 3 characters; email must be a valid email", env.Message)
}

func TestUserHandler_CreateUser_MalformedBody(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(t, http.MethodPost, "/api/users", `{"username":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestUserHandler_CreateUser_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "conflict",
			err:         domainerrors.ErrUserAlreadyExists,
			wantStatus:  http.StatusBadRequest,
			wantCode:    "USER_ALREADY_EXISTS",
			wantMessage: "username or email already exists",
		},
		{
			name:        "weak password",
			err:         domainerrors.ErrPasswordStrength.WithDetails("password must contain at least one digit"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "PASSWORD_STRENGTH",
			wantMessage: "password does not meet strength requirements",
		},
		{
			name:        "database failure hides details",
			err:         domainerrors.NewDatabaseExecuteError(errors.New("connection reset"), "failed to create user"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "system error, please try again later",
		},
		{
			name:        "hash failure hides business code",
			err:         domainerrors.ErrPasswordHashFailed.WrapMessage("bcrypt: cost out of range"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "system error, please try again later",
		},
		{
			name:        "unexpected error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "system error, please try again later",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestServer(t)
			f.uc.EXPECT().CreateUser(mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := f.do(t, http.MethodPost, "/api/users",
				`{"username":"alice","email":"alice@example.com","password":"Str0ng!Pass"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantMessage, env.Message)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			if tt.wantStatus >= http.StatusInternalServerError {
				assert.Empty(t, env.Error.Details)
				assert.NotContains(t, rec.Body.String(), "connection reset")
				assert.NotContains(t, rec.Body.String(), "boom")
				assert.NotContains(t, rec.Body.String(), "DATABASE_EXECUTE_FAILED")
				assert.NotContains(t, rec.Body.String(), "PASSWORD_HASH_FAILED")
			}
		})
	}
}

func TestUserHandler_GetUser(t *testing.T) {
	f := newTestServer(t)
	user := sampleUser("bob")
	f.uc.EXPECT().GetUserByID(mock.Anything, user.ID).Return(user, nil)

	rec := f.do(t, http.MethodGet, "/api/users/"+user.ID.String(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "user retrieved successfully", env.Message)
}

func TestUserHandler_GetUser_Missing(t *testing.T) {
	f := newTestServer(t)
	id := uuid.New()
	f.uc.EXPECT().GetUserByID(mock.Anything, id).Return(nil, nil)

	rec := f.do(t, http.MethodGet, "/api/users/"+id.String(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "user does not exist", env.Message)
	require.NotNil(t, env.Error)
	assert.Equal(t, "USER_NOT_FOUND", env.Error.Code)
}

func TestUserHandler_GetUser_MalformedID(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(t, http.MethodGet, "/api/users/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestUserHandler_GetAllUsers(t *testing.T) {
	f := newTestServer(t)
	f.uc.EXPECT().GetAllUsers(mock.Anything).Return([]*entity.User{sampleUser("a1"), sampleUser("a2")}, nil)

	rec := f.do(t, http.MethodGet, "/api/users", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	var got []handler.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 2)
	assert.Equal(t, "users retrieved successfully", env.Message)
}

func TestUserHandler_GetUsersPage(t *testing.T) {
	f := newTestServer(t)
	f.uc.EXPECT().GetUsersWithPagination(mock.Anything, 1, 2).
		Return([]*entity.User{sampleUser("p1"), sampleUser("p2")}, nil)
	f.uc.EXPECT().CountAllUsers(mock.Anything).Return(int64(5), nil)

	rec := f.do(t, http.MethodGet, "/api/users/page?page=1&size=2", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.Page)
	assert.Equal(t, 2, env.Pagination.Size)
	assert.Equal(t, int64(5), env.Pagination.Total)
	assert.Equal(t, int64(3), env.Pagination.TotalPages)
}

func TestUserHandler_GetUsersPage_Defaults(t *testing.T) {
	f := newTestServer(t)
	f.uc.EXPECT().GetUsersWithPagination(mock.Anything, 0, 10).Return([]*entity.User{}, nil)
	f.uc.EXPECT().CountAllUsers(mock.Anything).Return(int64(0), nil)

	rec := f.do(t, http.MethodGet, "/api/users/page", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(0), env.Pagination.TotalPages)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestUserHandler_GetUsersPage_NonIntegerQuery(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(t, http.MethodGet, "/api/users/page?size=ten", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestUserHandler_GetUsersPage_InvalidPagination(t *testing.T) {
	f := newTestServer(t)
	f.uc.EXPECT().GetUsersWithPagination(mock.Anything, -1, 10).Return(nil, domainerrors.ErrInvalidPagination)
	f.uc.EXPECT().CountAllUsers(mock.Anything).Return(int64(0), nil).Maybe()

	rec := f.do(t, http.MethodGet, "/api/users/page?page=-1", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_PAGINATION", env.Error.Code)
}

func TestUserHandler_SearchByUsername(t *testing.T) {
	f := newTestServer(t)
	f.uc.EXPECT().SearchUsersByUsername(mock.Anything, "ali").Return([]*entity.User{sampleUser("alice")}, nil)

	rec := f.do(t, http.MethodGet, "/api/users/search/username?keyword=ali", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "users found", decode(t, rec).Message)
}

func TestUserHandler_SearchByEmail_EmptyKeywordIsAllowed(t *testing.T) {
	f := newTestServer(t)
	f.uc.EXPECT().SearchUsersByEmail(mock.Anything, "").Return([]*entity.User{}, nil)

	rec := f.do(t, http.MethodGet, "/api/users/search/email?keyword=", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserHandler_Search_MissingKeyword(t *testing.T) {
	f := newTestServer(t)

	for _, target := range []string{"/api/users/search/username", "/api/users/search/email"} {
		rec := f.do(t, http.MethodGet, target, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "keyword is required", decode(t, rec).Message, target)
	}
}

func TestUserHandler_CountUsers(t *testing.T) {
	f := newTestServer(t)
	f.uc.EXPECT().CountAllUsers(mock.Anything).Return(int64(42), nil)

	rec := f.do(t, http.MethodGet, "/api/users/count", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.JSONEq(t, `{"count":42}`, string(env.Data))
	assert.Equal(t, "user count retrieved successfully", env.Message)
}

func TestUserHandler_UpdateUser(t *testing.T) {
	f := newTestServer(t)
	user := sampleUser("carol")
	f.uc.EXPECT().UpdateUser(mock.Anything, user.ID, &usecase.UpdateUserInput{
		Username: "carol",
		Email:    "carol@example.com",
		Bio:      "updated",
	}).Return(user, nil)

	rec := f.do(t, http.MethodPut, "/api/users/"+user.ID.String(),
		`{"username":"carol","email":"carol@example.com","bio":"updated"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user updated successfully", decode(t, rec).Message)
}

func TestUserHandler_UpdateUser_NotFound(t *testing.T) {
	f := newTestServer(t)
	id := uuid.New()
	f.uc.EXPECT().UpdateUser(mock.Anything, id, mock.Anything).Return(nil, domainerrors.ErrUserNotFound)

	rec := f.do(t, http.MethodPut, "/api/users/"+id.String(),
		`{"username":"carol","email":"carol@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "user does not exist", env.Message)
	require.NotNil(t, env.Error)
	assert.Equal(t, "USER_NOT_FOUND", env.Error.Code)
}

func TestUserHandler_UpdateUser_Validation(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(t, http.MethodPut, "/api/users/"+uuid.NewString(), `{"username":"carol","email":"bad"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email must be a valid email", decode(t, rec).Message)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	f := newTestServer(t)
	id := uuid.New()
	f.uc.EXPECT().DeleteUser(mock.Anything, id).Return(nil)

	rec := f.do(t, http.MethodDelete, "/api/users/"+id.String(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "user deleted successfully", env.Message)
}

func TestUserHandler_GetUserQRCode(t *testing.T) {
	f := newTestServer(t)
	user := sampleUser("dave")
	png := []byte("\x89PNG\r\n\x1a\nfake")
	f.uc.EXPECT().GetUserByID(mock.Anything, user.ID).Return(user, nil)
	f.qr.EXPECT().GenerateProfileQR(user.ID).Return(png, nil)

	rec := f.do(t, http.MethodGet, "/api/users/"+user.ID.String()+"/qrcode", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, png, rec.Body.Bytes())
}

func TestUserHandler_GetUserQRCode_Missing(t *testing.T) {
	f := newTestServer(t)
	id := uuid.New()
	f.uc.EXPECT().GetUserByID(mock.Anything, id).Return(nil, nil)

	rec := f.do(t, http.MethodGet, "/api/users/"+id.String()+"/qrcode", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode(t, rec).Success)
}

func TestRequestIDHeader(t *testing.T) {
	f := newTestServer(t)
	f.uc.EXPECT().CountAllUsers(mock.Anything).Return(int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/count", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestHealthHandler(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		f := newTestServer(t)
		f.dbMock.ExpectPing()

		rec := f.do(t, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","database":"up"}`, string(decode(t, rec).Data))
		assert.NoError(t, f.dbMock.ExpectationsWereMet())
	})

	t.Run("database unreachable", func(t *testing.T) {
		f := newTestServer(t)
		f.dbMock.ExpectPing().WillReturnError(errors.New("connection refused"))

		rec := f.do(t, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		env := decode(t, rec)
		assert.False(t, env.Success)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestMetricsRoute(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(t, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
