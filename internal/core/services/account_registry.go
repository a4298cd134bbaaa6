package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/account_movements/internal/apperrors"
	"github.com/SscSPs/account_movements/internal/core/domain"
	portsrepo "github.com/SscSPs/account_movements/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_movements/internal/core/ports/services"
	"github.com/SscSPs/account_movements/internal/dto"
	"github.com/SscSPs/account_movements/internal/utils"
	"github.com/go-playground/validator/v10"
)

// DefaultMaxIDAttempts bounds how many candidate IDs CreateAccount draws
// before giving up with apperrors.ErrDuplicate.
const DefaultMaxIDAttempts = 100

// accountRegistry owns the live accounts and mirrors every movement to a
// movement store. All operations are serialized by mu.
type accountRegistry struct {
	BaseService
	mu            sync.Mutex
	accounts      map[string]domain.Account
	order         []string
	store         portsrepo.MovementRepositoryFacade
	idGen         portssvc.AccountIDGenerator
	validate      *validator.Validate
	clock         func() time.Time
	maxIDAttempts int
}

// RegistryOption is a functional option for configuring the account registry
type RegistryOption func(*accountRegistry)

// WithClock sets the time source used to stamp movements of new accounts.
func WithClock(clock func() time.Time) RegistryOption {
	return func(r *accountRegistry) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithMaxIDAttempts overrides DefaultMaxIDAttempts.
func WithMaxIDAttempts(n int) RegistryOption {
	return func(r *accountRegistry) {
		if n > 0 {
			r.maxIDAttempts = n
		}
	}
}

// NewAccountRegistry creates an empty registry backed by store, drawing
// account identifiers from idGen.
func NewAccountRegistry(store portsrepo.MovementRepositoryFacade, idGen portssvc.AccountIDGenerator, options ...RegistryOption) portssvc.AccountRegistrySvc {
	r := &accountRegistry{
		accounts:      make(map[string]domain.Account),
		order:         []string{},
		store:         store,
		idGen:         idGen,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		clock:         time.Now,
		maxIDAttempts: DefaultMaxIDAttempts,
	}

	for _, option := range options {
		option(r)
	}

	return r
}

// Ensure accountRegistry implements the AccountRegistrySvc interface
var _ portssvc.AccountRegistrySvc = (*accountRegistry)(nil)

func (r *accountRegistry) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (domain.AccountSnapshot, error) {
	if err := r.validate.Struct(req); err != nil {
		r.LogDebug(ctx, "Rejected account creation request", slog.String("error", err.Error()))
		return domain.AccountSnapshot{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	accountID, err := r.nextFreeID()
	if err != nil {
		r.LogError(ctx, err, "Failed to allocate account ID")
		return domain.AccountSnapshot{}, err
	}

	acc := newAccountFromRequest(accountID, req, r.clock)
	r.accounts[accountID] = acc
	r.order = append(r.order, accountID)

	if req.InitialBalance > 0 {
		if m := acc.Deposit(req.InitialBalance); m != nil {
			r.recordMovement(ctx, acc, *m)
		}
	}

	r.LogInfo(ctx, "Account created",
		slog.String("account_id", accountID),
		slog.String("variant", string(acc.Variant())),
		slog.Float64("initial_balance", req.InitialBalance))
	return acc.Snapshot(), nil
}

// nextFreeID must be called with mu held.
func (r *accountRegistry) nextFreeID() (string, error) {
	for i := 0; i < r.maxIDAttempts; i++ {
		id, err := r.idGen.NextAccountID()
		if err != nil {
			return "", fmt.Errorf("failed to generate account ID: %w", err)
		}
		if _, taken := r.accounts[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: no free account ID after %d attempts", apperrors.ErrDuplicate, r.maxIDAttempts)
}

func newAccountFromRequest(accountID string, req dto.CreateAccountRequest, clock func() time.Time) domain.Account {
	opts := []domain.AccountOption{domain.WithClock(clock)}
	switch req.Variant {
	case domain.Savings:
		if req.MonthlyInterestRate != nil {
			opts = append(opts, domain.WithMonthlyInterestRate(*req.MonthlyInterestRate))
		}
		if req.FreeWithdrawalsPerMonth != nil {
			opts = append(opts, domain.WithFreeWithdrawalsPerMonth(*req.FreeWithdrawalsPerMonth))
		}
		return domain.NewSavingsAccount(req.Holder, accountID, opts...)
	case domain.Business:
		if req.WithdrawalLimit != nil {
			opts = append(opts, domain.WithWithdrawalLimit(*req.WithdrawalLimit))
		}
		opts = append(opts, domain.WithManager(req.Manager))
		return domain.NewBusinessAccount(req.Holder, accountID, opts...)
	default:
		if req.WithdrawalFee != nil {
			opts = append(opts, domain.WithWithdrawalFee(*req.WithdrawalFee))
		}
		return domain.NewCheckingAccount(req.Holder, accountID, opts...)
	}
}

func (r *accountRegistry) FindByID(ctx context.Context, accountID string) (domain.AccountSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, err := r.lookup(accountID)
	if err != nil {
		return domain.AccountSnapshot{}, err
	}
	return acc.Snapshot(), nil
}

// lookup must be called with mu held.
func (r *accountRegistry) lookup(accountID string) (domain.Account, error) {
	acc, ok := r.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return acc, nil
}

func (r *accountRegistry) Exists(accountID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.accounts[accountID]
	return ok
}

func (r *accountRegistry) ListAccounts(ctx context.Context) []domain.AccountSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]domain.AccountSnapshot, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.accounts[id].Snapshot())
	}
	return list
}

func (r *accountRegistry) Deposit(ctx context.Context, accountID string, amount float64) (*domain.OperationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, err := r.lookup(accountID)
	if err != nil {
		return nil, err
	}

	m := acc.Deposit(amount)
	if m != nil {
		r.recordMovement(ctx, acc, *m)
	} else {
		r.LogDebug(ctx, "Ignored non-positive deposit",
			slog.String("account_id", accountID),
			slog.Float64("amount", amount))
	}
	return &domain.OperationResult{Account: acc.Snapshot(), Movement: m}, nil
}

func (r *accountRegistry) Withdraw(ctx context.Context, accountID string, amount float64) (*domain.OperationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, err := r.lookup(accountID)
	if err != nil {
		return nil, err
	}

	m, err := acc.Withdraw(amount)
	if err != nil {
		r.LogInfo(ctx, "Withdrawal rejected",
			slog.String("account_id", accountID),
			slog.Float64("amount", amount),
			slog.String("reason", err.Error()),
			slog.String("cause", apperrors.CauseMessage(err)))
		return nil, err
	}
	if m != nil {
		r.recordMovement(ctx, acc, *m)
	}
	return &domain.OperationResult{Account: acc.Snapshot(), Movement: m}, nil
}

// recordMovement appends m to the store. Store failures are logged and
// never undo the in-memory operation.
func (r *accountRegistry) recordMovement(ctx context.Context, acc domain.Account, m domain.Movement) {
	if r.store == nil {
		return
	}
	rec := domain.MovementRecord{
		AccountID:        acc.AccountID(),
		Movement:         m,
		ResultingBalance: acc.Balance(),
	}
	if err := r.store.AppendMovement(ctx, rec); err != nil {
		r.LogError(ctx, err, "Failed to record movement",
			slog.String("account_id", rec.AccountID),
			slog.String("kind", string(m.Kind)),
			slog.Float64("amount", m.Amount))
	}
}

func (r *accountRegistry) AccrueInterestOrFee(ctx context.Context, accountID string) (*domain.AccrualResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, err := r.lookup(accountID)
	if err != nil {
		return nil, err
	}
	adjusted := r.accrue(ctx, acc)
	return &domain.AccrualResult{Adjusted: adjusted, Account: acc.Snapshot()}, nil
}

func (r *accountRegistry) AccrueAll(ctx context.Context) map[string]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	adjustments := make(map[string]float64, len(r.order))
	for _, id := range r.order {
		adjustments[id] = r.accrue(ctx, r.accounts[id])
	}
	return adjustments
}

func (r *accountRegistry) accrue(ctx context.Context, acc domain.Account) float64 {
	adjusted := acc.AccrueInterestOrFee()
	r.LogInfo(ctx, "Accrued interest or fee",
		slog.String("account_id", acc.AccountID()),
		slog.String("variant", string(acc.Variant())),
		slog.Float64("adjusted", adjusted),
		slog.Float64("balance", acc.Balance()))
	return adjusted
}

// MovementHistory reconciles the in-memory movements of an account with the
// ones in the store. A stored movement matching an unmatched in-memory one
// (same amount to the cent, same second) is the same event; anything else is
// added. Accounts not held in memory are answered from the store alone.
func (r *accountRegistry) MovementHistory(ctx context.Context, accountID string) (*domain.MovementHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[accountID]
	if !ok {
		return r.storedHistory(ctx, accountID)
	}

	history := &domain.MovementHistory{
		AccountID:   accountID,
		Deposits:    acc.Deposits(),
		Withdrawals: acc.Withdrawals(),
		InMemory:    true,
	}

	if r.store != nil {
		stored, err := r.loadStored(ctx, accountID)
		if err != nil {
			r.LogWarn(ctx, err, "Movement store unreadable, using in-memory history",
				slog.String("account_id", accountID))
		} else {
			history.Deposits = mergeMovements(history.Deposits, stored[domain.Deposit])
			history.Withdrawals = mergeMovements(history.Withdrawals, stored[domain.Withdrawal])
		}
	}

	domain.SortChronologically(history.Deposits)
	domain.SortChronologically(history.Withdrawals)
	return history, nil
}

func (r *accountRegistry) storedHistory(ctx context.Context, accountID string) (*domain.MovementHistory, error) {
	if r.store == nil {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}

	stored, err := r.loadStored(ctx, accountID)
	if err != nil {
		r.LogError(ctx, err, "Failed to read movement store", slog.String("account_id", accountID))
		return nil, err
	}

	history := &domain.MovementHistory{
		AccountID:   accountID,
		Deposits:    stored[domain.Deposit],
		Withdrawals: stored[domain.Withdrawal],
	}
	if len(history.Deposits) == 0 && len(history.Withdrawals) == 0 {
		return nil, fmt.Errorf("%w: account %s not in memory nor in the movement store", apperrors.ErrNotFound, accountID)
	}

	domain.SortChronologically(history.Deposits)
	domain.SortChronologically(history.Withdrawals)
	return history, nil
}

func (r *accountRegistry) loadStored(ctx context.Context, accountID string) (map[domain.MovementKind][]domain.Movement, error) {
	stored := make(map[domain.MovementKind][]domain.Movement, len(domain.MovementKinds))
	var errs []error
	for _, kind := range domain.MovementKinds {
		movements, err := r.store.LoadMovementsForAccount(ctx, kind, accountID)
		if err != nil {
			errs = append(errs, fmt.Errorf("loading %s movements: %w", kind, err))
			continue
		}
		if movements == nil {
			movements = []domain.Movement{}
		}
		stored[kind] = movements
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return stored, nil
}

type movementKey struct {
	amount string
	second int64
}

func keyOf(m domain.Movement) movementKey {
	return movementKey{amount: utils.FormatAmount(m.Amount), second: m.Timestamp.Unix()}
}

// mergeMovements returns inMemory plus every stored movement that does not
// pair with a not-yet-paired in-memory movement. Neither input is modified.
func mergeMovements(inMemory, stored []domain.Movement) []domain.Movement {
	unmatched := make(map[movementKey]int, len(inMemory))
	for _, m := range inMemory {
		unmatched[keyOf(m)]++
	}

	merged := make([]domain.Movement, 0, len(inMemory)+len(stored))
	merged = append(merged, inMemory...)
	for _, m := range stored {
		k := keyOf(m)
		if unmatched[k] > 0 {
			unmatched[k]--
			continue
		}
		merged = append(merged, m)
	}
	return merged
}
