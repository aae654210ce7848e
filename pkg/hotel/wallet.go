package hotel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// DepositRequest credits a wallet.
type DepositRequest struct {
	UserID        UserID
	Amount        PositiveAmount
	Currency      Currency
	PaymentMethod string
	Description   string
}

// WithdrawRequest debits a wallet pending external settlement.
type WithdrawRequest struct {
	UserID           UserID
	Amount           PositiveAmount
	Currency         Currency
	WithdrawalMethod string
	Details          string
	Description      string
}

type withdrawalMetadata struct {
	Details string `json:"details,omitempty"`
}

// OpenAccount returns the user's account, creating an empty one in currency when missing.
// A zero currency selects the service default.
func (service *Service) OpenAccount(ctx context.Context, userID UserID, currency Currency) (Account, error) {
	if currency == "" {
		currency = service.defaultCurrency
	}
	var account Account
	operationError := func() error {
		if userID.IsZero() {
			return fmt.Errorf("%w: empty value", ErrInvalidUserID)
		}
		if _, err := ParseCurrency(currency.String()); err != nil {
			return err
		}
		var err error
		account, err = service.store.GetOrCreateAccount(ctx, userID, currency)
		return err
	}()
	service.logOperation(ctx, OperationLog{
		Operation: operationOpenAccount,
		UserID:    userID,
		Currency:  currency,
		Error:     operationError,
	})
	if operationError != nil {
		return Account{}, operationError
	}
	return account, nil
}

// Deposit records a completed DEPOSIT and credits the balance atomically.
func (service *Service) Deposit(ctx context.Context, request DepositRequest) (Transaction, error) {
	var deposit Transaction
	operationError := service.validateDeposit(request)
	if operationError == nil {
		operationError = service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
			account, err := transactionStore.LockAccount(ctx, request.UserID)
			if err != nil {
				return err
			}
			currency, err := matchAccountCurrency(account, request.Currency)
			if err != nil {
				return err
			}
			createdAt := service.now()
			deposit, err = transactionStore.InsertTransaction(ctx, TransactionInput{
				UserID:        request.UserID,
				Type:          TransactionDeposit,
				Amount:        request.Amount,
				Currency:      currency,
				Status:        TransactionCompleted,
				Description:   descriptionOrDefault(request.Description, TransactionDeposit),
				PaymentMethod: strings.TrimSpace(request.PaymentMethod),
				ExternalID:    service.newExternalID(),
				CreatedAt:     createdAt,
				CompletedAt:   &createdAt,
			})
			if err != nil {
				return err
			}
			return transactionStore.UpdateAccountBalance(ctx, request.UserID, account.Balance.Add(request.Amount.Decimal()), createdAt)
		})
	}
	service.logOperation(ctx, OperationLog{
		Operation:     operationDeposit,
		UserID:        request.UserID,
		TransactionID: deposit.ID,
		Amount:        request.Amount.Decimal(),
		Currency:      deposit.Currency,
		Error:         operationError,
	})
	if operationError != nil {
		return Transaction{}, operationError
	}
	service.notifyTransaction(ctx, EventWalletDeposited, deposit)
	return deposit, nil
}

func (service *Service) validateDeposit(request DepositRequest) error {
	if _, err := NewPositiveAmount(request.Amount.Decimal()); err != nil {
		return err
	}
	if request.Amount.Decimal().GreaterThan(service.limits.MaxDeposit) {
		return fmt.Errorf("%w: deposit %s exceeds maximum %s", ErrAmountOutOfRange, request.Amount, service.limits.MaxDeposit.StringFixed(amountScale))
	}
	if request.Currency != "" {
		if _, err := ParseCurrency(request.Currency.String()); err != nil {
			return err
		}
	}
	return nil
}

// Withdraw records a PENDING WITHDRAWAL and debits the balance immediately.
// Settlement of the withdrawal happens outside this service.
func (service *Service) Withdraw(ctx context.Context, request WithdrawRequest) (Transaction, error) {
	var withdrawal Transaction
	operationError := service.validateWithdrawal(request)
	if operationError == nil {
		var metadata []byte
		metadata, operationError = json.Marshal(withdrawalMetadata{Details: strings.TrimSpace(request.Details)})
		if operationError == nil {
			operationError = service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
				account, err := transactionStore.LockAccount(ctx, request.UserID)
				if err != nil {
					return err
				}
				currency, err := matchAccountCurrency(account, request.Currency)
				if err != nil {
					return err
				}
				if account.Balance.LessThan(request.Amount.Decimal()) {
					return fmt.Errorf("%w: balance %s is below %s", ErrInsufficientFunds, account.Balance.StringFixed(amountScale), request.Amount)
				}
				createdAt := service.now()
				withdrawal, err = transactionStore.InsertTransaction(ctx, TransactionInput{
					UserID:        request.UserID,
					Type:          TransactionWithdrawal,
					Amount:        request.Amount,
					Currency:      currency,
					Status:        TransactionPending,
					Description:   descriptionOrDefault(request.Description, TransactionWithdrawal),
					PaymentMethod: strings.TrimSpace(request.WithdrawalMethod),
					ExternalID:    service.newExternalID(),
					MetadataJSON:  string(metadata),
					CreatedAt:     createdAt,
				})
				if err != nil {
					return err
				}
				return transactionStore.UpdateAccountBalance(ctx, request.UserID, account.Balance.Sub(request.Amount.Decimal()), createdAt)
			})
		}
	}
	service.logOperation(ctx, OperationLog{
		Operation:     operationWithdraw,
		UserID:        request.UserID,
		TransactionID: withdrawal.ID,
		Amount:        request.Amount.Decimal(),
		Currency:      withdrawal.Currency,
		Error:         operationError,
	})
	if operationError != nil {
		return Transaction{}, operationError
	}
	service.notifyTransaction(ctx, EventWalletWithdrawn, withdrawal)
	return withdrawal, nil
}

func (service *Service) validateWithdrawal(request WithdrawRequest) error {
	if _, err := NewPositiveAmount(request.Amount.Decimal()); err != nil {
		return err
	}
	if request.Amount.Decimal().LessThan(service.limits.MinWithdrawal) {
		return fmt.Errorf("%w: withdrawal %s is below minimum %s", ErrAmountOutOfRange, request.Amount, service.limits.MinWithdrawal.StringFixed(amountScale))
	}
	if strings.TrimSpace(request.WithdrawalMethod) == "" {
		return fmt.Errorf("%w: withdrawal method is required", ErrInvalidMethod)
	}
	if request.Currency != "" {
		if _, err := ParseCurrency(request.Currency.String()); err != nil {
			return err
		}
	}
	return nil
}

// Balance returns the current balance and the account currency.
func (service *Service) Balance(ctx context.Context, userID UserID) (Balance, error) {
	account, err := service.store.GetAccount(ctx, userID)
	if err != nil {
		return Balance{}, err
	}
	return Balance{Amount: account.Balance, Currency: account.Currency}, nil
}

// TransactionHistory lists the user's transactions, newest first.
func (service *Service) TransactionHistory(ctx context.Context, userID UserID, page Page) ([]Transaction, error) {
	if _, err := service.store.GetAccount(ctx, userID); err != nil {
		return nil, err
	}
	return service.store.ListTransactions(ctx, userID, page)
}

// Transaction returns one of the user's transactions.
func (service *Service) Transaction(ctx context.Context, userID UserID, transactionID TransactionID) (Transaction, error) {
	transaction, err := service.store.GetTransaction(ctx, transactionID)
	if err != nil {
		return Transaction{}, err
	}
	if transaction.UserID != userID {
		return Transaction{}, fmt.Errorf("%w: transaction %s belongs to another user", ErrForbidden, transactionID)
	}
	return transaction, nil
}

func (service *Service) notifyTransaction(ctx context.Context, name string, transaction Transaction) {
	transactionID := transaction.ID
	service.notify(ctx, Event{
		Name:          name,
		UserID:        transaction.UserID,
		TransactionID: &transactionID,
		BookingID:     transaction.BookingID,
		Amount:        transaction.Amount,
		Currency:      transaction.Currency,
	})
}

// matchAccountCurrency resolves the currency of a wallet movement. Amounts are never
// converted, so a currency other than the account's is rejected.
func matchAccountCurrency(account Account, requested Currency) (Currency, error) {
	if requested == "" || requested == account.Currency {
		return account.Currency, nil
	}
	return "", fmt.Errorf("%w: %s does not match account currency %s", ErrInvalidCurrency, requested, account.Currency)
}

func descriptionOrDefault(description string, transactionType TransactionType) string {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return transactionType.DefaultDescription(nil)
	}
	return trimmed
}
