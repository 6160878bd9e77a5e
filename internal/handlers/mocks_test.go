package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ledger/internal/logger"
	"ledger/internal/models"
	"ledger/internal/services"
	"ledger/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func uintPtr(v uint) *uint { return &v }

// --- mock client service ---

type mockClientService struct {
	createClientFn  func(name, email string) (*models.Client, error)
	getClientByIDFn func(clientID uint) (*models.Client, error)
	updateClientFn  func(clientID uint, name, email string) (*models.Client, error)
	deleteClientFn  func(clientID uint) error
}

func (m *mockClientService) CreateClient(name, email string) (*models.Client, error) {
	if m.createClientFn != nil {
		return m.createClientFn(name, email)
	}
	return &models.Client{}, nil
}

func (m *mockClientService) GetClientByID(clientID uint) (*models.Client, error) {
	if m.getClientByIDFn != nil {
		return m.getClientByIDFn(clientID)
	}
	return &models.Client{}, nil
}

func (m *mockClientService) UpdateClient(clientID uint, name, email string) (*models.Client, error) {
	if m.updateClientFn != nil {
		return m.updateClientFn(clientID, name, email)
	}
	return &models.Client{}, nil
}

func (m *mockClientService) DeleteClient(clientID uint) error {
	if m.deleteClientFn != nil {
		return m.deleteClientFn(clientID)
	}
	return nil
}

var _ services.ClientServicer = (*mockClientService)(nil)

// --- mock account service ---

type mockAccountService struct {
	createAccountFn        func(clientID uint, name string, balance int64) (*models.Account, error)
	getAccountByIDFn       func(accountID uint) (*models.Account, error)
	updateAccountFn        func(accountID uint, name string, balance int64) (*models.Account, error)
	deleteAccountFn        func(accountID uint) error
	updateAccountBalanceFn func(tx *gorm.DB, account *models.Account, balance int64) error
}

func (m *mockAccountService) CreateAccount(clientID uint, name string, balance int64) (*models.Account, error) {
	if m.createAccountFn != nil {
		return m.createAccountFn(clientID, name, balance)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) GetAccountByID(accountID uint) (*models.Account, error) {
	if m.getAccountByIDFn != nil {
		return m.getAccountByIDFn(accountID)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) UpdateAccount(accountID uint, name string, balance int64) (*models.Account, error) {
	if m.updateAccountFn != nil {
		return m.updateAccountFn(accountID, name, balance)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) DeleteAccount(accountID uint) error {
	if m.deleteAccountFn != nil {
		return m.deleteAccountFn(accountID)
	}
	return nil
}

func (m *mockAccountService) UpdateAccountBalance(tx *gorm.DB, account *models.Account, balance int64) error {
	if m.updateAccountBalanceFn != nil {
		return m.updateAccountBalanceFn(tx, account, balance)
	}
	return nil
}

var _ services.AccountServicer = (*mockAccountService)(nil)

// --- mock category service ---

type mockCategoryService struct {
	createCategoryFn   func(name string) (*models.Category, error)
	getAllCategoriesFn func() ([]models.Category, error)
	getCategoryByIDFn  func(categoryID uint) (*models.Category, error)
	updateCategoryFn   func(categoryID uint, name string) (*models.Category, error)
	deleteCategoryFn   func(categoryID uint) error
}

func (m *mockCategoryService) CreateCategory(name string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(name)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) GetAllCategories() ([]models.Category, error) {
	if m.getAllCategoriesFn != nil {
		return m.getAllCategoriesFn()
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(categoryID uint) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(categoryID)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) UpdateCategory(categoryID uint, name string) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(categoryID, name)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) DeleteCategory(categoryID uint) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(categoryID)
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

// --- mock movement service ---

type mockMovementService struct {
	createMovementFn      func(accountID uint, movementType models.MovementType, amount int64, date models.Date) (*models.Movement, error)
	getMovementByIDFn     func(movementID uint) (*models.Movement, error)
	getAccountMovementsFn func(accountID uint) ([]models.Movement, error)
	deleteMovementFn      func(movementID uint) error
}

func (m *mockMovementService) CreateMovement(accountID uint, movementType models.MovementType, amount int64, date models.Date) (*models.Movement, error) {
	if m.createMovementFn != nil {
		return m.createMovementFn(accountID, movementType, amount, date)
	}
	return &models.Movement{}, nil
}

func (m *mockMovementService) GetMovementByID(movementID uint) (*models.Movement, error) {
	if m.getMovementByIDFn != nil {
		return m.getMovementByIDFn(movementID)
	}
	return &models.Movement{}, nil
}

func (m *mockMovementService) GetAccountMovements(accountID uint) ([]models.Movement, error) {
	if m.getAccountMovementsFn != nil {
		return m.getAccountMovementsFn(accountID)
	}
	return []models.Movement{}, nil
}

func (m *mockMovementService) DeleteMovement(movementID uint) error {
	if m.deleteMovementFn != nil {
		return m.deleteMovementFn(movementID)
	}
	return nil
}

var _ services.MovementServicer = (*mockMovementService)(nil)

// --- mock association service ---

type mockAssociationService struct {
	addCategoryToClientFn      func(clientID, categoryID uint) (*models.ClientCategory, error)
	getClientCategoriesFn      func(clientID uint) ([]models.Category, error)
	getCategoryClientsFn       func(categoryID uint) ([]models.Client, error)
	removeCategoryFromClientFn func(clientID, categoryID uint) error
}

func (m *mockAssociationService) AddCategoryToClient(clientID, categoryID uint) (*models.ClientCategory, error) {
	if m.addCategoryToClientFn != nil {
		return m.addCategoryToClientFn(clientID, categoryID)
	}
	return &models.ClientCategory{ClientID: clientID, CategoryID: categoryID}, nil
}

func (m *mockAssociationService) GetClientCategories(clientID uint) ([]models.Category, error) {
	if m.getClientCategoriesFn != nil {
		return m.getClientCategoriesFn(clientID)
	}
	return []models.Category{}, nil
}

func (m *mockAssociationService) GetCategoryClients(categoryID uint) ([]models.Client, error) {
	if m.getCategoryClientsFn != nil {
		return m.getCategoryClientsFn(categoryID)
	}
	return []models.Client{}, nil
}

func (m *mockAssociationService) RemoveCategoryFromClient(clientID, categoryID uint) error {
	if m.removeCategoryFromClientFn != nil {
		return m.removeCategoryFromClientFn(clientID, categoryID)
	}
	return nil
}

var _ services.AssociationServicer = (*mockAssociationService)(nil)

// --- mock valuation and maintenance services ---

type mockValuationService struct {
	getBalanceUSDFn func(ctx context.Context, accountID uint) (*services.BalanceValuation, error)
}

func (m *mockValuationService) GetBalanceUSD(ctx context.Context, accountID uint) (*services.BalanceValuation, error) {
	if m.getBalanceUSDFn != nil {
		return m.getBalanceUSDFn(ctx, accountID)
	}
	return &services.BalanceValuation{AccountID: accountID}, nil
}

var _ services.ValuationServicer = (*mockValuationService)(nil)

type mockMaintenanceService struct {
	resetAllFn func() error
}

func (m *mockMaintenanceService) ResetAll() error {
	if m.resetAllFn != nil {
		return m.resetAllFn()
	}
	return nil
}

var _ services.MaintenanceServicer = (*mockMaintenanceService)(nil)
