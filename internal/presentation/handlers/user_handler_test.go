package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"userhub-core/internal/application/dto"
	"userhub-core/internal/application/service"
	"userhub-core/internal/domain/user"
	"userhub-core/internal/presentation/handlers"

	"github.com/gin-gonic/gin"
)

// ---- in-memory collaborators ----

type memRepo struct {
	users  []*user.User
	nextID int
}

func (m *memRepo) Save(ctx context.Context, usr *user.User) error {
	if usr.ID() == 0 {
		if m.nextID == 0 {
			m.nextID = 1
		}
		usr.AssignID(m.nextID)
		m.nextID++
		m.users = append(m.users, usr)
		return nil
	}
	for i, existing := range m.users {
		if existing.ID() == usr.ID() {
			m.users[i] = usr
		}
	}
	return nil
}

func (m *memRepo) FindByID(ctx context.Context, id int) (*user.User, error) {
	for _, usr := range m.users {
		if usr.ID() == id {
			return usr, nil
		}
	}
	return nil, user.ErrUserNotFound(id)
}

func (m *memRepo) FindAll(ctx context.Context) ([]*user.User, error) {
	return append([]*user.User{}, m.users...), nil
}

func (m *memRepo) ExistsByID(ctx context.Context, id int) (bool, error) {
	_, err := m.FindByID(ctx, id)
	return err == nil, nil
}

func (m *memRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, usr := range m.users {
		if usr.Email() == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) DeleteByID(ctx context.Context, id int) error {
	for i, usr := range m.users {
		if usr.ID() == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return nil
}

type memPublisher struct {
	sent int
}

func (m *memPublisher) Send(ctx context.Context, topic, key string, payload any) (*service.DeliveryInfo, error) {
	m.sent++
	return &service.DeliveryInfo{Topic: topic}, nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) WithinReadTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ---- helpers ----

func newTestRouter(repo *memRepo, pub *memPublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)

	now := func() time.Time { return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC) }
	svc := service.NewUserService(repo, pub, passthroughTx{}, now)
	h := handlers.NewUserHandler(svc)

	r := gin.New()
	users := r.Group("/api/users")
	users.POST("", h.CreateUser)
	users.GET("", h.GetAllUsers)
	users.GET("/:id", h.GetUserByID)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
	return r
}

func doRequest(router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func intPtr(v int) *int { return &v }

// ---- tests ----

func TestCreateUserEndpoint(t *testing.T) {
	repo := &memRepo{}
	pub := &memPublisher{}
	router := newTestRouter(repo, pub)

	w := doRequest(router, http.MethodPost, "/api/users", dto.CreateUserRequest{
		Name:  "test",
		Age:   intPtr(20),
		Email: "test@test.com",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/api/users/1" {
		t.Errorf("Location = %q, want %q", loc, "/api/users/1")
	}

	var resp dto.UserResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.ID != 1 || resp.Name != "test" || resp.Age != 20 {
		t.Errorf("response = %+v", resp)
	}
	if resp.CreatedAt == "" {
		t.Error("createdAt is empty")
	}
	if pub.sent != 1 {
		t.Errorf("published %d events, want 1", pub.sent)
	}
}

func TestCreateUserEndpoint_ValidationFailure(t *testing.T) {
	router := newTestRouter(&memRepo{}, &memPublisher{})

	w := doRequest(router, http.MethodPost, "/api/users", dto.CreateUserRequest{
		Name:  "",
		Age:   intPtr(20),
		Email: "test@test.com",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp handlers.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Error != "validation_failed" {
		t.Errorf("error = %q, want %q", resp.Error, "validation_failed")
	}
}

func TestCreateUserEndpoint_DuplicateEmail(t *testing.T) {
	repo := &memRepo{}
	router := newTestRouter(repo, &memPublisher{})

	req := dto.CreateUserRequest{Name: "test", Age: intPtr(20), Email: "test@test.com"}
	if w := doRequest(router, http.MethodPost, "/api/users", req); w.Code != http.StatusCreated {
		t.Fatalf("seed create status = %d", w.Code)
	}

	w := doRequest(router, http.MethodPost, "/api/users", req)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestGetUserEndpoint_NotFound(t *testing.T) {
	router := newTestRouter(&memRepo{}, &memPublisher{})

	w := doRequest(router, http.MethodGet, "/api/users/99", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetUserEndpoint_MalformedID(t *testing.T) {
	router := newTestRouter(&memRepo{}, &memPublisher{})

	w := doRequest(router, http.MethodGet, "/api/users/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetAllUsersEndpoint_Empty(t *testing.T) {
	router := newTestRouter(&memRepo{}, &memPublisher{})

	w := doRequest(router, http.MethodGet, "/api/users", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("body = %s, want an empty JSON array", body)
	}
}

func TestUpdateUserEndpoint(t *testing.T) {
	repo := &memRepo{}
	router := newTestRouter(repo, &memPublisher{})

	doRequest(router, http.MethodPost, "/api/users", dto.CreateUserRequest{
		Name: "test", Age: intPtr(20), Email: "test@test.com",
	})

	name := "renamed"
	w := doRequest(router, http.MethodPut, "/api/users/1", dto.UpdateUserRequest{Name: &name})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var resp dto.UserResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Name != "renamed" || resp.Email != "test@test.com" {
		t.Errorf("response = %+v", resp)
	}
}

func TestDeleteUserEndpoint(t *testing.T) {
	repo := &memRepo{}
	pub := &memPublisher{}
	router := newTestRouter(repo, pub)

	doRequest(router, http.MethodPost, "/api/users", dto.CreateUserRequest{
		Name: "test", Age: intPtr(20), Email: "test@test.com",
	})

	w := doRequest(router, http.MethodDelete, "/api/users/1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if len(repo.users) != 0 {
		t.Errorf("store holds %d records, want 0", len(repo.users))
	}
	if pub.sent != 2 {
		t.Errorf("published %d events total, want 2 (create + delete)", pub.sent)
	}

	w = doRequest(router, http.MethodDelete, "/api/users/1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", w.Code)
	}
}
