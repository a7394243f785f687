package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Test Suite ---
type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_Success() {
	ctx := context.Background()
	expectedCurrency := &domain.Currency{CurrencyCode: "EUR", Symbol: "€", Name: "Euro"}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "EUR").Return(expectedCurrency, nil).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, "EUR")

	suite.Require().NoError(err)
	suite.Equal(expectedCurrency, currency)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NormalizesCase() {
	ctx := context.Background()
	expectedCurrency := &domain.Currency{CurrencyCode: "CNY", Symbol: "¥", Name: "Chinese Yuan"}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "CNY").Return(expectedCurrency, nil).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, "cny")

	suite.Require().NoError(err)
	suite.Equal("CNY", currency.CurrencyCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCurrencyByCode", ctx, "GBP").Return(nil, apperrors.ErrNotFound).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, "GBP")

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_Success() {
	ctx := context.Background()
	expected := []domain.Currency{
		{CurrencyCode: "CAD"},
		{CurrencyCode: "CNY"},
		{CurrencyCode: "EUR"},
		{CurrencyCode: "USD"},
	}

	suite.mockRepo.On("ListCurrencies", ctx).Return(expected, nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, currencies)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
