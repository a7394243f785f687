package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/core/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ExecuteReplenishment(ctx context.Context, walletName string, fromAmount decimal.Decimal, fromCurrencyCode string, toAmount decimal.Decimal, now time.Time) (*domain.Wallet, error) {
	args := m.Called(ctx, walletName, fromAmount, fromCurrencyCode, toAmount, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockLedgerRepository) ExecuteTransfer(ctx context.Context, fromName, toName string, fromAmount decimal.Decimal, fromCurrencyCode string, toAmount decimal.Decimal, now time.Time) ([]domain.Wallet, error) {
	args := m.Called(ctx, fromName, toName, fromAmount, fromCurrencyCode, toAmount, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactions(ctx context.Context, customerName string, fromDate, toDate *time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, customerName, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Mock WalletSvc ---
type MockWalletSvc struct {
	mock.Mock
}

func (m *MockWalletSvc) GetWalletByName(ctx context.Context, name string) (*domain.Wallet, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletSvc) GetWalletsByNames(ctx context.Context, names []string) (map[string]domain.Wallet, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Wallet), args.Error(1)
}

func (m *MockWalletSvc) CreateWallet(ctx context.Context, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

// --- Mock ExchangeRateSvc ---
type MockRateSvc struct {
	mock.Mock
}

func (m *MockRateSvc) GetRate(ctx context.Context, currencyCode string, date *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyCode, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateSvc) Convert(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCode, toCode, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateSvc) SetRate(ctx context.Context, req dto.SetExchangeRateRequest) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockWalletSvc   *MockWalletSvc
	mockRateSvc     *MockRateSvc
	mockCurrencySvc *MockCurrencySvc
	service         portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockWalletSvc = new(MockWalletSvc)
	suite.mockRateSvc = new(MockRateSvc)
	suite.mockCurrencySvc = new(MockCurrencySvc)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockWalletSvc, suite.mockRateSvc, suite.mockCurrencySvc)
}

func eurWallet(name string, balance string) domain.Wallet {
	return domain.Wallet{
		WalletID:     "wallet-" + name,
		Name:         name,
		CurrencyCode: "EUR",
		Balance:      decimal.RequireFromString(balance),
	}
}

// --- Replenish ---

func (suite *LedgerServiceTestSuite) TestReplenish_ConvertsIntoWalletCurrency() {
	ctx := context.Background()
	req := dto.ReplenishmentRequest{
		CustomerName: "Ivan Ivanov",
		Amount:       decimal.RequireFromString("100.00"),
		CurrencyCode: "USD",
	}
	wallet := eurWallet("Ivan Ivanov", "0.00")
	converted := decimal.RequireFromString("90.31")
	refreshed := eurWallet("Ivan Ivanov", "90.31")

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockWalletSvc.On("GetWalletByName", ctx, "Ivan Ivanov").Return(&wallet, nil).Once()
	suite.mockRateSvc.On("Convert", ctx, "USD", "EUR", req.Amount).Return(converted, nil).Once()
	suite.mockLedgerRepo.On("ExecuteReplenishment", ctx, "Ivan Ivanov", req.Amount, "USD", converted, mock.AnythingOfType("time.Time")).Return(&refreshed, nil).Once()

	result, err := suite.service.Replenish(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal("90.31", result.Balance.StringFixed(2))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockRateSvc.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReplenish_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.ReplenishmentRequest{
		CustomerName: "Ivan Ivanov",
		Amount:       decimal.Zero,
		CurrencyCode: "USD",
	}

	result, err := suite.service.Replenish(ctx, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ExecuteReplenishment")
}

func (suite *LedgerServiceTestSuite) TestReplenish_SubCentAmountCoercedHalfEven() {
	ctx := context.Background()
	req := dto.ReplenishmentRequest{
		CustomerName: "Ivan Ivanov",
		Amount:       decimal.RequireFromString("10.005"),
		CurrencyCode: "EUR",
	}
	wallet := eurWallet("Ivan Ivanov", "0.00")
	coerced := decimal.RequireFromString("10.00")
	refreshed := eurWallet("Ivan Ivanov", "10.00")

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()
	suite.mockWalletSvc.On("GetWalletByName", ctx, "Ivan Ivanov").Return(&wallet, nil).Once()
	suite.mockRateSvc.On("Convert", ctx, "EUR", "EUR", mock.MatchedBy(coerced.Equal)).Return(coerced, nil).Once()
	// The repository only ever sees the 2-dp amount, so the refreshed balance
	// it computes matches what the 2-dp column stores.
	suite.mockLedgerRepo.On("ExecuteReplenishment", ctx, "Ivan Ivanov", mock.MatchedBy(coerced.Equal), "EUR", coerced, mock.AnythingOfType("time.Time")).Return(&refreshed, nil).Once()

	result, err := suite.service.Replenish(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("10.00", result.Balance.StringFixed(2))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockRateSvc.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReplenish_AmountRoundsToZeroRejected() {
	ctx := context.Background()
	req := dto.ReplenishmentRequest{
		CustomerName: "Ivan Ivanov",
		Amount:       decimal.RequireFromString("0.004"),
		CurrencyCode: "EUR",
	}

	result, err := suite.service.Replenish(ctx, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ExecuteReplenishment")
}

func (suite *LedgerServiceTestSuite) TestReplenish_ConvertedBelowCentRejected() {
	ctx := context.Background()
	req := dto.ReplenishmentRequest{
		CustomerName: "Sergey Sergeev",
		Amount:       decimal.RequireFromString("0.01"),
		CurrencyCode: "CNY",
	}
	wallet := domain.Wallet{WalletID: "wallet-Sergey Sergeev", Name: "Sergey Sergeev", CurrencyCode: "USD", Balance: decimal.Zero}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "CNY").Return(&domain.Currency{CurrencyCode: "CNY"}, nil).Once()
	suite.mockWalletSvc.On("GetWalletByName", ctx, "Sergey Sergeev").Return(&wallet, nil).Once()
	suite.mockRateSvc.On("Convert", ctx, "CNY", "USD", mock.MatchedBy(req.Amount.Equal)).Return(decimal.RequireFromString("0.00"), nil).Once()

	result, err := suite.service.Replenish(ctx, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ExecuteReplenishment")
}

func (suite *LedgerServiceTestSuite) TestReplenish_MissingRateAbortsBeforeWrite() {
	ctx := context.Background()
	req := dto.ReplenishmentRequest{
		CustomerName: "Ivan Ivanov",
		Amount:       decimal.RequireFromString("100.00"),
		CurrencyCode: "USD",
	}
	wallet := eurWallet("Ivan Ivanov", "0.00")

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockWalletSvc.On("GetWalletByName", ctx, "Ivan Ivanov").Return(&wallet, nil).Once()
	suite.mockRateSvc.On("Convert", ctx, "USD", "EUR", req.Amount).Return(decimal.Zero, fmt.Errorf("%w: no rate for EUR", apperrors.ErrRateUnavailable)).Once()

	result, err := suite.service.Replenish(ctx, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ExecuteReplenishment")
}

// --- Transfer ---

func (suite *LedgerServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromCustomer: "Ivan Ivanov",
		ToCustomer:   "Petr Petrov",
		Amount:       decimal.RequireFromString("40.00"),
	}
	from := eurWallet("Ivan Ivanov", "100.00")
	to := domain.Wallet{WalletID: "wallet-Petr Petrov", Name: "Petr Petrov", CurrencyCode: "CNY", Balance: decimal.Zero}
	converted := decimal.RequireFromString("313.58")
	refreshed := []domain.Wallet{eurWallet("Ivan Ivanov", "60.00"), to}

	suite.mockWalletSvc.On("GetWalletsByNames", ctx, []string{"Ivan Ivanov", "Petr Petrov"}).
		Return(map[string]domain.Wallet{from.Name: from, to.Name: to}, nil).Once()
	suite.mockRateSvc.On("Convert", ctx, "EUR", "CNY", req.Amount).Return(converted, nil).Once()
	suite.mockLedgerRepo.On("ExecuteTransfer", ctx, "Ivan Ivanov", "Petr Petrov", req.Amount, "EUR", converted, mock.AnythingOfType("time.Time")).Return(refreshed, nil).Once()

	result, err := suite.service.Transfer(ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("60.00", result[0].Balance.StringFixed(2))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_SubCentAmountCoercedHalfEven() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromCustomer: "Ivan Ivanov",
		ToCustomer:   "Petr Petrov",
		Amount:       decimal.RequireFromString("10.005"),
	}
	from := eurWallet("Ivan Ivanov", "100.00")
	to := eurWallet("Petr Petrov", "0.00")
	coerced := decimal.RequireFromString("10.00")
	refreshed := []domain.Wallet{eurWallet("Ivan Ivanov", "90.00"), eurWallet("Petr Petrov", "10.00")}

	suite.mockWalletSvc.On("GetWalletsByNames", ctx, []string{"Ivan Ivanov", "Petr Petrov"}).
		Return(map[string]domain.Wallet{from.Name: from, to.Name: to}, nil).Once()
	suite.mockRateSvc.On("Convert", ctx, "EUR", "EUR", mock.MatchedBy(coerced.Equal)).Return(coerced, nil).Once()
	suite.mockLedgerRepo.On("ExecuteTransfer", ctx, "Ivan Ivanov", "Petr Petrov", mock.MatchedBy(coerced.Equal), "EUR", coerced, mock.AnythingOfType("time.Time")).Return(refreshed, nil).Once()

	result, err := suite.service.Transfer(ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("90.00", result[0].Balance.StringFixed(2))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockRateSvc.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_ConvertedBelowCentRejected() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromCustomer: "Petr Petrov",
		ToCustomer:   "Sergey Sergeev",
		Amount:       decimal.RequireFromString("0.01"),
	}
	from := domain.Wallet{WalletID: "wallet-Petr Petrov", Name: "Petr Petrov", CurrencyCode: "CNY", Balance: decimal.RequireFromString("50.00")}
	to := domain.Wallet{WalletID: "wallet-Sergey Sergeev", Name: "Sergey Sergeev", CurrencyCode: "USD", Balance: decimal.Zero}

	suite.mockWalletSvc.On("GetWalletsByNames", ctx, []string{"Petr Petrov", "Sergey Sergeev"}).
		Return(map[string]domain.Wallet{from.Name: from, to.Name: to}, nil).Once()
	suite.mockRateSvc.On("Convert", ctx, "CNY", "USD", mock.MatchedBy(req.Amount.Equal)).Return(decimal.RequireFromString("0.00"), nil).Once()

	result, err := suite.service.Transfer(ctx, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ExecuteTransfer")
}

func (suite *LedgerServiceTestSuite) TestTransfer_SameWalletRejected() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromCustomer: "Ivan Ivanov",
		ToCustomer:   "Ivan Ivanov",
		Amount:       decimal.RequireFromString("10.00"),
	}

	result, err := suite.service.Transfer(ctx, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ExecuteTransfer")
}

func (suite *LedgerServiceTestSuite) TestTransfer_InsufficientFundsBeforeConversion() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromCustomer: "Ivan Ivanov",
		ToCustomer:   "Petr Petrov",
		Amount:       decimal.RequireFromString("150.00"),
	}
	from := eurWallet("Ivan Ivanov", "100.00")
	to := eurWallet("Petr Petrov", "0.00")

	suite.mockWalletSvc.On("GetWalletsByNames", ctx, []string{"Ivan Ivanov", "Petr Petrov"}).
		Return(map[string]domain.Wallet{from.Name: from, to.Name: to}, nil).Once()

	result, err := suite.service.Transfer(ctx, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	// The raw amount is compared against the source balance; no conversion happens.
	suite.mockRateSvc.AssertNotCalled(suite.T(), "Convert")
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ExecuteTransfer")
}

func (suite *LedgerServiceTestSuite) TestTransfer_DestinationMissing() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromCustomer: "Ivan Ivanov",
		ToCustomer:   "Nobody",
		Amount:       decimal.RequireFromString("10.00"),
	}
	from := eurWallet("Ivan Ivanov", "100.00")

	suite.mockWalletSvc.On("GetWalletsByNames", ctx, []string{"Ivan Ivanov", "Nobody"}).
		Return(map[string]domain.Wallet{from.Name: from}, nil).Once()

	result, err := suite.service.Transfer(ctx, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ExecuteTransfer")
}

// --- ListTransactions ---

func (suite *LedgerServiceTestSuite) TestListTransactions_ParsesDateBounds() {
	ctx := context.Background()
	req := dto.ListTransactionsRequest{
		CustomerName: "Ivan Ivanov",
		FromDate:     "2024-03-01",
		ToDate:       "2024-03-15",
	}
	fromDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	suite.mockLedgerRepo.On("ListTransactions", ctx, "Ivan Ivanov", &fromDate, &toDate).
		Return([]domain.Transaction{}, nil).Once()

	transactions, err := suite.service.ListTransactions(ctx, req)

	suite.Require().NoError(err)
	suite.NotNil(transactions)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListTransactions_InvertedRangeRejected() {
	ctx := context.Background()
	req := dto.ListTransactionsRequest{
		CustomerName: "Ivan Ivanov",
		FromDate:     "2024-03-15",
		ToDate:       "2024-03-01",
	}

	transactions, err := suite.service.ListTransactions(ctx, req)

	suite.Require().Error(err)
	suite.Nil(transactions)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListTransactions")
}

// --- Run Suite ---
func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

// --- Concurrency ---

// inMemoryLedger mimics the repository's locking behavior: the funds check
// and the balance updates happen under one lock, like the row locks in a DB
// transaction. It backs both the ledger repository and the wallet service so
// the service-level pre-check reads live balances.
type inMemoryLedger struct {
	mu        sync.Mutex
	wallets   map[string]domain.Wallet
	transfers int
}

func (l *inMemoryLedger) ExecuteReplenishment(ctx context.Context, walletName string, fromAmount decimal.Decimal, fromCurrencyCode string, toAmount decimal.Decimal, now time.Time) (*domain.Wallet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.wallets[walletName]
	w.Balance = w.Balance.Add(toAmount)
	l.wallets[walletName] = w
	return &w, nil
}

func (l *inMemoryLedger) ExecuteTransfer(ctx context.Context, fromName, toName string, fromAmount decimal.Decimal, fromCurrencyCode string, toAmount decimal.Decimal, now time.Time) ([]domain.Wallet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	from := l.wallets[fromName]
	to := l.wallets[toName]
	if from.Balance.LessThan(fromAmount) {
		return nil, fmt.Errorf("%w: wallet %q", apperrors.ErrInsufficientFunds, fromName)
	}
	from.Balance = from.Balance.Sub(fromAmount)
	to.Balance = to.Balance.Add(toAmount)
	l.wallets[fromName] = from
	l.wallets[toName] = to
	l.transfers++
	return []domain.Wallet{from, to}, nil
}

func (l *inMemoryLedger) ListTransactions(ctx context.Context, customerName string, fromDate, toDate *time.Time) ([]domain.Transaction, error) {
	return []domain.Transaction{}, nil
}

func (l *inMemoryLedger) GetWalletByName(ctx context.Context, name string) (*domain.Wallet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.wallets[name]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &w, nil
}

func (l *inMemoryLedger) GetWalletsByNames(ctx context.Context, names []string) (map[string]domain.Wallet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]domain.Wallet, len(names))
	for _, name := range names {
		if w, ok := l.wallets[name]; ok {
			out[name] = w
		}
	}
	return out, nil
}

func (l *inMemoryLedger) CreateWallet(ctx context.Context, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	return nil, errors.New("not supported")
}

// identityRates converts 1:1 between any pair of currencies.
type identityRates struct{}

func (identityRates) GetRate(ctx context.Context, currencyCode string, date *time.Time) (decimal.Decimal, error) {
	return decimal.NewFromInt(1), nil
}

func (identityRates) Convert(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (decimal.Decimal, error) {
	return amount.RoundBank(2), nil
}

func (identityRates) SetRate(ctx context.Context, req dto.SetExchangeRateRequest) (*domain.ExchangeRate, error) {
	return nil, errors.New("not supported")
}

// TestTransfer_ConcurrentDebitsNeverOverdraw hammers one source wallet with
// parallel transfers. The authoritative funds check under the lock must
// admit exactly as many transfers as the balance covers, no matter how the
// goroutines interleave.
func TestTransfer_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	ledger := &inMemoryLedger{
		wallets: map[string]domain.Wallet{
			"Ivan Ivanov": eurWallet("Ivan Ivanov", "100.00"),
			"Petr Petrov": eurWallet("Petr Petrov", "100.00"),
		},
	}
	service := services.NewLedgerService(ledger, ledger, identityRates{}, new(MockCurrencySvc))

	const attempts = 20
	transferAmount := decimal.RequireFromString("10.00")

	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Transfer(context.Background(), dto.TransferRequest{
				FromCustomer: "Ivan Ivanov",
				ToCustomer:   "Petr Petrov",
				Amount:       transferAmount,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != 10 {
		t.Fatalf("expected exactly 10 transfers to fit in the balance, got %d", succeeded)
	}
	if got := ledger.wallets["Ivan Ivanov"].Balance; !got.IsZero() {
		t.Fatalf("source wallet should be drained to zero, got %s", got.StringFixed(2))
	}
	if got := ledger.wallets["Petr Petrov"].Balance; !got.Equal(decimal.RequireFromString("200.00")) {
		t.Fatalf("destination wallet should hold 200.00, got %s", got.StringFixed(2))
	}
	if ledger.transfers != succeeded {
		t.Fatalf("ledger recorded %d transfers, %d succeeded", ledger.transfers, succeeded)
	}
}

// TestTransfer_OpposingConcurrentTransfersPreserveTotal runs transfers between
// the same two wallets in both directions at once. Every attempt must finish
// (no deadlock between the opposing directions) and, with a 1:1 rate, the sum
// of the two balances must come out exactly where it started.
func TestTransfer_OpposingConcurrentTransfersPreserveTotal(t *testing.T) {
	ledger := &inMemoryLedger{
		wallets: map[string]domain.Wallet{
			"Ivan Ivanov": eurWallet("Ivan Ivanov", "100.00"),
			"Petr Petrov": eurWallet("Petr Petrov", "100.00"),
		},
	}
	service := services.NewLedgerService(ledger, ledger, identityRates{}, new(MockCurrencySvc))

	const rounds = 25
	transferAmount := decimal.RequireFromString("3.00")

	var wg sync.WaitGroup
	errs := make(chan error, 2*rounds)
	run := func(fromName, toName string) {
		defer wg.Done()
		_, err := service.Transfer(context.Background(), dto.TransferRequest{
			FromCustomer: fromName,
			ToCustomer:   toName,
			Amount:       transferAmount,
		})
		errs <- err
	}
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go run("Ivan Ivanov", "Petr Petrov")
		go run("Petr Petrov", "Ivan Ivanov")
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("opposing transfers did not all complete")
	}
	close(errs)

	completed := 0
	for err := range errs {
		completed++
		if err != nil && !errors.Is(err, apperrors.ErrInsufficientFunds) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if completed != 2*rounds {
		t.Fatalf("expected %d attempts to finish, got %d", 2*rounds, completed)
	}

	total := ledger.wallets["Ivan Ivanov"].Balance.Add(ledger.wallets["Petr Petrov"].Balance)
	if !total.Equal(decimal.RequireFromString("200.00")) {
		t.Fatalf("combined balance changed: got %s, want 200.00", total.StringFixed(2))
	}
	for name, w := range ledger.wallets {
		if w.Balance.IsNegative() {
			t.Fatalf("wallet %q overdrawn: %s", name, w.Balance.StringFixed(2))
		}
	}
}
