package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopapi/internal/domain/model"
	"shopapi/internal/handler"
	"shopapi/internal/repository"
	"shopapi/internal/usecase"
	"shopapi/internal/validator"
)

// 未実装メソッドはnil panicで気付ける（embedで約束だけ満たす）
type stubUserRepo struct {
	repository.UserRepository
	byID    map[int64]model.User
	byEmail map[string]model.User
	created *model.User
}

func (s *stubUserRepo) FindByID(ctx context.Context, id int64) (model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *stubUserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	u.ID = 1
	s.created = &u
	return u, nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *stubUserRepo) FindByAddress(ctx context.Context, address string) (*model.User, error) {
	return nil, nil
}

type stubOrderRepo struct {
	repository.OrderRepository
	idsByUser map[int64][]int64
}

func (s *stubOrderRepo) ListIDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	return s.idsByUser[userID], nil
}

func (s *stubOrderRepo) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	return int64(len(s.idsByUser[userID])), nil
}

func newUserEcho(users *stubUserRepo, orders *stubOrderRepo) *echo.Echo {
	tx := &stubTxManager{repos: &stubTxRepos{users: users, orders: orders}}
	uc := usecase.NewUserUsecase(tx, users, orders, validator.NewUserValidator(users))
	e := echo.New()
	handler.NewUserHandler(uc).RegisterRoutes(e)
	return e
}

func doReq(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	e := newUserEcho(&stubUserRepo{byID: map[int64]model.User{}}, &stubOrderRepo{})

	rec := doReq(e, http.MethodGet, "/users/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "User not found", body["error"])
}

func TestUserHandler_Get_InvalidID(t *testing.T) {
	e := newUserEcho(&stubUserRepo{byID: map[int64]model.User{}}, &stubOrderRepo{})

	rec := doReq(e, http.MethodGet, "/users/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Create_Success(t *testing.T) {
	users := &stubUserRepo{byID: map[int64]model.User{}, byEmail: map[string]model.User{}}
	e := newUserEcho(users, &stubOrderRepo{})

	rec := doReq(e, http.MethodPost, "/users", `{"name":"Ana","email":"ana@x.com"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var out usecase.UserOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "Ana", out.Name)
	assert.Equal(t, "ana@x.com", out.Email)
	assert.Nil(t, out.Address)
}

func TestUserHandler_Create_MissingFields(t *testing.T) {
	users := &stubUserRepo{byID: map[int64]model.User{}, byEmail: map[string]model.User{}}
	e := newUserEcho(users, &stubOrderRepo{})

	rec := doReq(e, http.MethodPost, "/users", `{"name":"Ana"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Error)
	assert.Equal(t, "email is required", body.Fields["email"])
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	users := &stubUserRepo{
		byID:    map[int64]model.User{},
		byEmail: map[string]model.User{"ana@x.com": {ID: 7, Email: "ana@x.com"}},
	}
	e := newUserEcho(users, &stubOrderRepo{})

	rec := doReq(e, http.MethodPost, "/users", `{"name":"Ana","email":"ana@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "email already used", body.Fields["email"])
}

func TestUserHandler_Create_MalformedBody(t *testing.T) {
	users := &stubUserRepo{byID: map[int64]model.User{}, byEmail: map[string]model.User{}}
	e := newUserEcho(users, &stubOrderRepo{})

	rec := doReq(e, http.MethodPost, "/users", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Delete_Success(t *testing.T) {
	users := &stubUserRepo{byID: map[int64]model.User{1: {ID: 1, Name: "Ana"}}}
	e := newUserEcho(users, &stubOrderRepo{})

	rec := doReq(e, http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "User deleted", body["message"])
}
