package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/internal/repository"
	"github.com/limbo/lumin/internal/service"
	"github.com/limbo/lumin/pkg/entity"
	"github.com/pressly/goose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	db := newMemDB()
	us := service.NewUserService(&usersRepoMock{db: db})
	testCases := []struct {
		Desc  string
		Req   service.RegisterRequest
		Error error
	}{
		{
			Desc: "registered",
			Req:  service.RegisterRequest{Name: "test_user", Password: "test_password", Email: "test@example.com", Timezone: "Europe/Berlin"},
		},
		{
			Desc:  "duplicated name",
			Req:   service.RegisterRequest{Name: "test_user", Password: "test_password"},
			Error: errorvalues.ErrUserExists,
		},
		{
			Desc:  "short password",
			Req:   service.RegisterRequest{Name: "other_user", Password: "short"},
			Error: errorvalues.ErrValidation,
		},
		{
			Desc:  "name starting with digit",
			Req:   service.RegisterRequest{Name: "1user", Password: "test_password"},
			Error: errorvalues.ErrValidation,
		},
		{
			Desc:  "unknown timezone",
			Req:   service.RegisterRequest{Name: "third_user", Password: "test_password", Timezone: "Mars/Olympus"},
			Error: errorvalues.ErrValidation,
		},
		{
			Desc:  "invalid email",
			Req:   service.RegisterRequest{Name: "fourth_user", Password: "test_password", Email: "not-an-email"},
			Error: errorvalues.ErrValidation,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			user, err := us.Register(context.Background(), &tc.Req)
			if tc.Error != nil {
				assert.ErrorIs(t, err, tc.Error)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.Equal(t, tc.Req.Timezone, user.Timezone)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tc.Req.Password)))
		})
	}
}

func TestLogin(t *testing.T) {
	db := newMemDB()
	us := service.NewUserService(&usersRepoMock{db: db})
	ctx := context.Background()
	_, err := us.Register(ctx, &service.RegisterRequest{Name: "test_user", Password: "test_password"})
	require.NoError(t, err)
	testCases := []struct {
		Desc     string
		Name     string
		Password string
		Error    error
		DBError  error
	}{
		{Desc: "logged in", Name: "test_user", Password: "test_password"},
		{Desc: "wrong password", Name: "test_user", Password: "wrong_password", Error: errorvalues.ErrWrongCredentials},
		{Desc: "unknown user", Name: "nobody", Password: "test_password", Error: errorvalues.ErrUserNotFound},
		{Desc: "db error", Name: "test_user", Password: "test_password", DBError: errDB},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			if tc.DBError != nil {
				db.fail["users.FindByName"] = tc.DBError
				defer delete(db.fail, "users.FindByName")
			}
			user, err := us.Login(ctx, tc.Name, tc.Password)
			switch {
			case tc.Error != nil:
				assert.ErrorIs(t, err, tc.Error)
			case tc.DBError != nil:
				assert.Error(t, err)
				assert.False(t, errors.Is(err, errorvalues.ErrUserNotFound))
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.Name, user.Name)
			}
		})
	}
}

func TestUpdateProfileAndDelete(t *testing.T) {
	db := newMemDB()
	us := service.NewUserService(&usersRepoMock{db: db})
	ctx := context.Background()
	user, err := us.Register(ctx, &service.RegisterRequest{Name: "test_user", Password: "test_password"})
	require.NoError(t, err)

	t.Run("timezone updated", func(t *testing.T) {
		updated, err := us.UpdateProfile(ctx, user.ID, &service.UpdateProfileRequest{Timezone: "Asia/Tokyo"})
		require.NoError(t, err)
		assert.Equal(t, "Asia/Tokyo", updated.Timezone)
		assert.Equal(t, "Asia/Tokyo", db.users[user.ID].Timezone)
	})
	t.Run("invalid timezone", func(t *testing.T) {
		_, err := us.UpdateProfile(ctx, user.ID, &service.UpdateProfileRequest{Timezone: "Nowhere"})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("wrong password on delete", func(t *testing.T) {
		err := us.DeleteAccount(ctx, user.ID, "wrong_password")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("deleted", func(t *testing.T) {
		require.NoError(t, us.DeleteAccount(ctx, user.ID, "test_password"))
		_, err := us.GetByID(ctx, user.ID)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestUserServiceIntegrational(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dbCfg := setupUsersTestDB(t)
	pool := repository.Connect(dbCfg)
	t.Cleanup(pool.Close)
	repo := repository.NewUsersRepoWithConn(pool)
	us := service.NewUserService(repo)
	ctx := context.Background()
	username := "test_user"
	password := "test_password"
	var user *entity.User
	var err error
	t.Run("registered user", func(t *testing.T) {
		user, err = us.Register(ctx, &service.RegisterRequest{
			Name:     username,
			Password: password,
		})
		require.NoError(t, err)
		assert.Equal(t, username, user.Name)
		assert.Equal(t, 1, user.Level)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)))
	})
	t.Run("error registering already existed user", func(t *testing.T) {
		_, err = us.Register(ctx, &service.RegisterRequest{
			Name:     username,
			Password: password,
		})
		assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	})
	t.Run("login", func(t *testing.T) {
		res, err := us.Login(ctx, username, password)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, res.ID)
	})
	t.Run("error login on unexisted user", func(t *testing.T) {
		_, err := us.Login(ctx, "aaaaaaa", "bbbbb")
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("found by id", func(t *testing.T) {
		res, err := us.GetByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, user.Name, res.Name)
	})
	t.Run("not found by id", func(t *testing.T) {
		_, err := us.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("failed to delete w/ wrong password", func(t *testing.T) {
		err := us.DeleteAccount(ctx, user.ID, "dasdasd")
		assert.Error(t, err)
	})
	t.Run("deleted", func(t *testing.T) {
		err := us.DeleteAccount(ctx, user.ID, password)
		assert.NoError(t, err)
	})
	t.Run("failed to delete unexist user", func(t *testing.T) {
		err := us.DeleteAccount(ctx, user.ID, password)
		assert.Error(t, err)
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
