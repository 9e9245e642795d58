package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/limbo/lumin/internal/api"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/internal/repository"
	"github.com/limbo/lumin/internal/service"
	"github.com/limbo/lumin/internal/service/mocks"
	"github.com/limbo/lumin/pkg/entity"
	jwtservice "github.com/limbo/lumin/pkg/jwt_service"
	"github.com/pressly/goose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

var (
	username = "test_name"
	password = "test_password"
	userID   = uuid.New()
	secret   = "test_secret"
)

// envelope mirrors httputil.Envelope with a typed payload.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

func decodeEnvelope[T any](t *testing.T, body io.Reader, data *T) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, sonic.ConfigDefault.NewDecoder(body).Decode(&env))
	if data != nil {
		*data = env.Data
	}
	return env
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	body, err := sonic.ConfigDefault.Marshal(v)
	require.NoError(t, err)
	return body
}

func authed(r *http.Request) *http.Request {
	return r.WithContext(api.WithUserID(r.Context(), userID))
}

func TestRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	uService := mocks.NewMockUserServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		UserService: uService,
	})
	req := service.RegisterRequest{Name: username, Password: password, Timezone: "Europe/Berlin"}
	body := mustJSON(t, req)

	testCases := []struct {
		Desc         string
		ExpectedCode int
		MockPrepFunc func()
		Body         []byte
	}{
		{
			Desc:         "registered",
			ExpectedCode: http.StatusCreated,
			MockPrepFunc: func() {
				uService.EXPECT().Register(gomock.Any(), &req).Return(&entity.User{ID: userID, Name: username}, nil)
			},
			Body: body,
		},
		{
			Desc:         "existed user",
			ExpectedCode: http.StatusConflict,
			MockPrepFunc: func() {
				uService.EXPECT().Register(gomock.Any(), &req).Return(nil, errorvalues.ErrUserExists)
			},
			Body: body,
		},
		{
			Desc:         "validation error",
			ExpectedCode: http.StatusUnprocessableEntity,
			MockPrepFunc: func() {
				uService.EXPECT().Register(gomock.Any(), &req).Return(nil, errors.Join(errorvalues.ErrValidation, errors.New("password too short")))
			},
			Body: body,
		},
		{
			Desc:         "service error",
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				uService.EXPECT().Register(gomock.Any(), &req).Return(nil, errors.New("service error"))
			},
			Body: body,
		},
		{
			Desc:         "invalid body",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
			Body:         []byte("corrupted"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(tc.Body))
			serv.Register(rr, r)
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
			if tc.ExpectedCode == http.StatusCreated {
				var data map[string]string
				env := decodeEnvelope(t, rr.Body, &data)
				assert.True(t, env.Success)
				assert.Equal(t, userID.String(), data["uid"])
			}
		})
	}
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	uService := mocks.NewMockUserServiceI(ctrl)
	jwtService := jwtservice.New(secret, time.Hour, 24*time.Hour)
	serv := api.New(&api.ServicesList{
		UserService: uService,
		JWTService:  jwtService,
	})
	body := mustJSON(t, api.LoginRequest{Name: username, Password: password})

	testCases := []struct {
		Desc         string
		ExpectedCode int
		MockPrepFunc func()
		Body         []byte
	}{
		{
			Desc:         "logged in",
			ExpectedCode: http.StatusOK,
			MockPrepFunc: func() {
				uService.EXPECT().Login(gomock.Any(), username, password).Return(&entity.User{ID: userID, Name: username}, nil)
			},
			Body: body,
		},
		{
			Desc:         "wrong password",
			ExpectedCode: http.StatusForbidden,
			MockPrepFunc: func() {
				uService.EXPECT().Login(gomock.Any(), username, password).Return(nil, errorvalues.ErrWrongCredentials)
			},
			Body: body,
		},
		{
			Desc:         "unknown user",
			ExpectedCode: http.StatusNotFound,
			MockPrepFunc: func() {
				uService.EXPECT().Login(gomock.Any(), username, password).Return(nil, errorvalues.ErrUserNotFound)
			},
			Body: body,
		},
		{
			Desc:         "service error",
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				uService.EXPECT().Login(gomock.Any(), username, password).Return(nil, errors.New("service error"))
			},
			Body: body,
		},
		{
			Desc:         "invalid body",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
			Body:         nil,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(tc.Body))
			serv.Login(rr, r)
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
			if tc.ExpectedCode != http.StatusOK {
				return
			}
			var resp api.LoginResponse
			decodeEnvelope(t, rr.Body, &resp)
			assert.Equal(t, userID.String(), resp.UserID)
			claims, err := jwtService.ParseToken(resp.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, userID.String(), claims.UserID)
			_, err = jwtService.ParseRefreshToken(resp.RefreshToken)
			assert.NoError(t, err)
		})
	}
}

func TestRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	uService := mocks.NewMockUserServiceI(ctrl)
	jwtService := jwtservice.New(secret, time.Hour, 24*time.Hour)
	serv := api.New(&api.ServicesList{
		UserService: uService,
		JWTService:  jwtService,
	})
	user := &entity.User{ID: userID, Name: username}
	pair, err := jwtService.GeneratePair(user)
	require.NoError(t, err)

	testCases := []struct {
		Desc         string
		ExpectedCode int
		MockPrepFunc func()
		Token        string
	}{
		{
			Desc:         "refreshed",
			ExpectedCode: http.StatusOK,
			MockPrepFunc: func() {
				uService.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
			},
			Token: pair.RefreshToken,
		},
		{
			Desc:         "access token is not accepted",
			ExpectedCode: http.StatusUnauthorized,
			MockPrepFunc: func() {},
			Token:        pair.AccessToken,
		},
		{
			Desc:         "garbage token",
			ExpectedCode: http.StatusUnauthorized,
			MockPrepFunc: func() {},
			Token:        "not.a.token",
		},
		{
			Desc:         "deleted user",
			ExpectedCode: http.StatusUnauthorized,
			MockPrepFunc: func() {
				uService.EXPECT().GetByID(gomock.Any(), userID).Return(nil, errorvalues.ErrUserNotFound)
			},
			Token: pair.RefreshToken,
		},
		{
			Desc:         "missing token",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			body := mustJSON(t, api.RefreshRequest{RefreshToken: tc.Token})
			r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(body))
			serv.Refresh(rr, r)
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
			if tc.ExpectedCode == http.StatusOK {
				var resp api.LoginResponse
				decodeEnvelope(t, rr.Body, &resp)
				_, err := jwtService.ParseToken(resp.AccessToken)
				assert.NoError(t, err)
			}
		})
	}
}

func TestUsersMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	uService := mocks.NewMockUserServiceI(ctrl)
	dService := mocks.NewMockDashboardServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		UserService:      uService,
		DashboardService: dService,
	})
	user := &entity.User{ID: userID, Name: username, XP: 120, Level: 2}

	t.Run("profile", func(t *testing.T) {
		dService.EXPECT().Profile(gomock.Any(), userID).Return(&service.Profile{User: user}, nil)
		rr := httptest.NewRecorder()
		serv.GetMe(rr, authed(httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var profile service.Profile
		decodeEnvelope(t, rr.Body, &profile)
		assert.Equal(t, 120, profile.User.XP)
	})
	t.Run("unauthorized", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.GetMe(rr, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("profile updated", func(t *testing.T) {
		req := service.UpdateProfileRequest{Timezone: "Asia/Tokyo"}
		uService.EXPECT().UpdateProfile(gomock.Any(), userID, &req).Return(user, nil)
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/api/v1/users/me", bytes.NewReader(mustJSON(t, req)))
		serv.UpdateMe(rr, authed(r))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})

	deleteCases := []struct {
		Desc         string
		ExpectedCode int
		MockPrepFunc func()
	}{
		{
			Desc:         "deleted",
			ExpectedCode: http.StatusOK,
			MockPrepFunc: func() {
				uService.EXPECT().DeleteAccount(gomock.Any(), userID, password).Return(nil)
			},
		},
		{
			Desc:         "wrong password",
			ExpectedCode: http.StatusForbidden,
			MockPrepFunc: func() {
				uService.EXPECT().DeleteAccount(gomock.Any(), userID, password).Return(errorvalues.ErrWrongCredentials)
			},
		},
		{
			Desc:         "service error",
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				uService.EXPECT().DeleteAccount(gomock.Any(), userID, password).Return(errors.New("service error"))
			},
		},
	}
	for _, tc := range deleteCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodDelete, "/api/v1/users/me", bytes.NewReader(mustJSON(t, api.DeleteAccountRequest{Password: password})))
			serv.DeleteMe(rr, authed(r))
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
		})
	}
}

func TestDashboardHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	dService := mocks.NewMockDashboardServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		DashboardService: dService,
	})
	testCases := []struct {
		Desc         string
		ExpectedCode int
		MockPrepFunc func()
	}{
		{
			Desc:         "built",
			ExpectedCode: http.StatusOK,
			MockPrepFunc: func() {
				dService.EXPECT().Dashboard(gomock.Any(), userID).Return(&service.Dashboard{
					Profile:       service.Profile{User: &entity.User{ID: userID}},
					RecentEntries: []*entity.Entry{},
				}, nil)
			},
		},
		{
			Desc:         "user removed",
			ExpectedCode: http.StatusNotFound,
			MockPrepFunc: func() {
				dService.EXPECT().Dashboard(gomock.Any(), userID).Return(nil, errorvalues.ErrUserNotFound)
			},
		},
		{
			Desc:         "service error",
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				dService.EXPECT().Dashboard(gomock.Any(), userID).Return(nil, errors.New("service error"))
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			serv.Dashboard(rr, authed(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)))
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
		})
	}
}

func TestUsersHandlersIntegrational(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	cfg := setupUsersTestDB(t)
	pool := repository.Connect(cfg)
	t.Cleanup(pool.Close)
	userService := service.NewUserService(repository.NewUsersRepoWithConn(pool))
	serv := api.New(&api.ServicesList{
		UserService: userService,
		JWTService:  jwtservice.New(secret, time.Hour, 24*time.Hour),
	})
	handler := serv.Handler()
	body := mustJSON(t, service.RegisterRequest{Name: username, Password: password})

	var uid string
	t.Run("successfully registered", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body)))
		require.Equal(t, http.StatusCreated, rr.Result().StatusCode)
		var data map[string]string
		decodeEnvelope(t, rr.Body, &data)
		uid = data["uid"]
		assert.NotEmpty(t, uid)
	})
	t.Run("error registering existed user", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body)))
		assert.Equal(t, http.StatusConflict, rr.Result().StatusCode)
	})
	t.Run("successfully logged in", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body)))
		require.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var resp api.LoginResponse
		decodeEnvelope(t, rr.Body, &resp)
		assert.Equal(t, uid, resp.UserID)
	})
	t.Run("error login: wrong password", func(t *testing.T) {
		wrong := mustJSON(t, api.LoginRequest{Name: username, Password: password + "12345"})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(wrong)))
		assert.Equal(t, http.StatusForbidden, rr.Result().StatusCode)
	})
	t.Run("error login: user not found", func(t *testing.T) {
		unknown := mustJSON(t, api.LoginRequest{Name: username + "dasdwdasd", Password: password})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(unknown)))
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
}

type testPGConfig struct {
	connStr string
}

func (cfg *testPGConfig) ConnString() string {
	return cfg.connStr
}

func setupUsersTestDB(t *testing.T) *testPGConfig {
	container, err := postgres.Run(context.Background(), "postgres:17",
		postgres.WithUsername("test_user"),
		postgres.WithDatabase("lumin"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatal("error running test container: " + err.Error())
	}
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})
	connStr, err := container.ConnectionString(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	connStr += "sslmode=disable"
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if err = goose.SetDialect("postgres"); err != nil {
		t.Fatal(err)
	}
	if err = goose.Up(conn, "../../migrations"); err != nil {
		t.Fatal(err)
	}
	return &testPGConfig{
		connStr: connStr,
	}
}
