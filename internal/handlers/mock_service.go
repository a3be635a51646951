package handlers

import (
	"context"
	"errors"

	"user_management/internal/models"
	"user_management/internal/service"

	"github.com/gin-gonic/gin"
)

// errFake stands in for an infrastructure fault in tests.
var errFake = errors.New("connection reset by storage")

// ---- Service Mocks ----

type mockUsers struct {
	listResp []models.User
	listErr  error

	getResp *models.User
	getErr  error

	registerID  int
	registerErr error

	updateErr error

	deleteOK  bool
	deleteErr error

	searchResp []models.User
	searchErr  error

	lastRegisterName     string
	lastRegisterEmail    string
	lastRegisterPassword string
	lastUpdateID         int
	lastUpdateParams     service.UpdateParams
	lastDeleteID         int
	lastSearchQuery      string
	registerCalls        int
}

func (m *mockUsers) List(ctx context.Context) ([]models.User, error) {
	return m.listResp, m.listErr
}

func (m *mockUsers) GetByID(ctx context.Context, id int) (*models.User, error) {
	return m.getResp, m.getErr
}

func (m *mockUsers) Register(ctx context.Context, name, email, password string) (int, error) {
	m.registerCalls++
	m.lastRegisterName = name
	m.lastRegisterEmail = email
	m.lastRegisterPassword = password
	return m.registerID, m.registerErr
}

func (m *mockUsers) Update(ctx context.Context, id int, p service.UpdateParams) error {
	m.lastUpdateID = id
	m.lastUpdateParams = p
	return m.updateErr
}

func (m *mockUsers) Delete(ctx context.Context, id int) (bool, error) {
	m.lastDeleteID = id
	return m.deleteOK, m.deleteErr
}

func (m *mockUsers) Search(ctx context.Context, nameQuery string) ([]models.User, error) {
	m.lastSearchQuery = nameQuery
	return m.searchResp, m.searchErr
}

type mockAuthz struct {
	authID  int
	authErr error

	lastEmail    string
	lastPassword string
}

func (m *mockAuthz) Authenticate(ctx context.Context, email, password string) (int, error) {
	m.lastEmail = email
	m.lastPassword = password
	return m.authID, m.authErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, false)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
