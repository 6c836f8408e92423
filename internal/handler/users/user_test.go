package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lead-manager/internal/database"
	"lead-manager/internal/middleware"
	"lead-manager/internal/model"
	"lead-manager/internal/service"
	"lead-manager/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func newJSONCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func restore() {
	hashPassword = service.HashPassword
	getUserByEmail = store.GetUserByEmail
	createUser = store.CreateUser
	issueAccessToken = service.IssueAccessToken
}

func notFoundErr() error {
	return fmt.Errorf("GetUserByEmail: %w", pgx.ErrNoRows)
}

func TestCreateUserHandler(t *testing.T) {
	e := echo.New()

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newJSONCtx(e, "{")
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid request payload")
	})

	t.Run("validate error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("v")}
		ctx, rec := newJSONCtx(e, `{"email":"a@b.com","password":"p"}`)
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad email", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newJSONCtx(e, `{"email":"bad","password":"p"}`)
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid email format")
	})

	t.Run("email taken", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(_ context.Context, _ database.DB, _ string) (*model.User, error) {
			return &model.User{ID: 1}, nil
		}
		ctx, rec := newJSONCtx(e, `{"email":"a@b.com","password":"p"}`)
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "email already registered")
	})

	t.Run("lookup error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(_ context.Context, _ database.DB, _ string) (*model.User, error) {
			return nil, errors.New("db down")
		}
		ctx, rec := newJSONCtx(e, `{"email":"a@b.com","password":"p"}`)
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("hash error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(_ context.Context, _ database.DB, _ string) (*model.User, error) {
			return nil, notFoundErr()
		}
		hashPassword = func(string) (string, error) { return "", errors.New("hash") }
		ctx, rec := newJSONCtx(e, `{"email":"a@b.com","password":"p"}`)
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "failed to hash password")
	})

	t.Run("concurrent duplicate", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(_ context.Context, _ database.DB, _ string) (*model.User, error) {
			return nil, notFoundErr()
		}
		hashPassword = func(string) (string, error) { return "h", nil }
		createUser = func(_ context.Context, _ database.DB, _ *model.User) (*model.User, error) {
			return nil, fmt.Errorf("CreateUser: %w", &pgconn.PgError{Code: "23505"})
		}
		ctx, rec := newJSONCtx(e, `{"email":"a@b.com","password":"p"}`)
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "email already registered")
	})

	t.Run("create error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(_ context.Context, _ database.DB, _ string) (*model.User, error) {
			return nil, notFoundErr()
		}
		hashPassword = func(string) (string, error) { return "h", nil }
		createUser = func(_ context.Context, _ database.DB, _ *model.User) (*model.User, error) {
			return nil, errors.New("c")
		}
		ctx, rec := newJSONCtx(e, `{"email":"a@b.com","password":"p"}`)
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("token error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(_ context.Context, _ database.DB, _ string) (*model.User, error) {
			return nil, notFoundErr()
		}
		hashPassword = func(string) (string, error) { return "h", nil }
		createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
			u.ID = 1
			return u, nil
		}
		issueAccessToken = func(_ model.User, _ time.Duration) (string, error) {
			return "", errors.New("issue")
		}
		ctx, rec := newJSONCtx(e, `{"email":"a@b.com","password":"p"}`)
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
			require.Equal(t, "alice@example.com", email)
			return nil, notFoundErr()
		}
		hashPassword = func(p string) (string, error) { require.Equal(t, "p", p); return "h", nil }
		var gotUser *model.User
		createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
			gotUser = u
			u.ID = 1
			return u, nil
		}
		issueAccessToken = func(u model.User, _ time.Duration) (string, error) {
			require.Equal(t, 1, u.ID)
			return "tok", nil
		}
		ctx, rec := newJSONCtx(e, `{"email":"Alice@EXAMPLE.com","password":"p"}`)
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "alice@example.com", gotUser.Email)
		require.Equal(t, "h", gotUser.PasswordHash)
		require.Contains(t, rec.Body.String(), "tok")
		require.Contains(t, rec.Body.String(), "Bearer")
	})
}

func TestGetMyUserHandler(t *testing.T) {
	e := echo.New()

	t.Run("missing user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		require.NoError(t, GetMyUserHandler()(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		ctx.Set(middleware.ContextUserKey, &model.User{ID: 7, Email: "alice@example.com", PasswordHash: "secret"})
		require.NoError(t, GetMyUserHandler()(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"id":7`)
		require.Contains(t, rec.Body.String(), "alice@example.com")
		// 哈希不得出現在回應
		require.NotContains(t, rec.Body.String(), "secret")
	})
}
