package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/fsdevblog/castile-money/internal/domain"
	"github.com/fsdevblog/castile-money/internal/repository/repoargs"
	"github.com/fsdevblog/castile-money/pkg/uow"
)

// memoryStore хранилище в памяти с семантикой uow: транзакции сериализуются мьютексом, при ошибке
// состояние откатывается к снимку. Ограничения повторяют CHECK и UNIQUE из миграций.
type memoryStore struct {
	mu     sync.Mutex
	users  map[int64]domain.User
	txs    []domain.Transaction
	refs   map[string]struct{}
	nextID int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users: make(map[int64]domain.User),
		refs:  make(map[string]struct{}),
	}
}

type memorySnapshot struct {
	users  map[int64]domain.User
	txs    []domain.Transaction
	refs   map[string]struct{}
	nextID int64
}

func (m *memoryStore) snapshot() memorySnapshot {
	return memorySnapshot{
		users:  maps.Clone(m.users),
		txs:    slices.Clone(m.txs),
		refs:   maps.Clone(m.refs),
		nextID: m.nextID,
	}
}

func (m *memoryStore) restore(s memorySnapshot) {
	m.users, m.txs, m.refs, m.nextID = s.users, s.txs, s.refs, s.nextID
}

func (m *memoryStore) Register(uow.RepositoryName, uow.RepositoryFactory) error { return nil }

func (m *memoryStore) GetRepository(name uow.RepositoryName) (uow.Repository, error) {
	return m.repository(name, false)
}

func (m *memoryStore) Do(ctx context.Context, fn func(context.Context, uow.TX) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot()
	if err := fn(ctx, &memoryTX{store: m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *memoryStore) repository(name uow.RepositoryName, inTx bool) (uow.Repository, error) {
	switch name {
	case uow.RepositoryName(repoargs.UserRepoName):
		return &memoryUsers{store: m, inTx: inTx}, nil
	case uow.RepositoryName(repoargs.TransactionRepoName):
		return &memoryTxs{store: m, inTx: inTx}, nil
	default:
		return nil, uow.ErrRepositoryNotRegistered
	}
}

// balanceSum сумма всех балансов.
func (m *memoryStore) balanceSum() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum int64
	for _, u := range m.users {
		sum += u.Balance
	}
	return sum
}

// ledgerSum сумма кредитов минус выводы, которые не были отклонены.
func (m *memoryStore) ledgerSum() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum int64
	for _, tx := range m.txs {
		switch {
		case tx.Type != domain.TransactionTypeWithdraw:
			sum += tx.Amount
		case tx.Status != domain.TransactionStatusRejected:
			sum -= tx.Amount
		}
	}
	return sum
}

func (m *memoryStore) balanceOf(id int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id].Balance
}

func (m *memoryStore) transactions() []domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.txs)
}

type memoryTX struct {
	store *memoryStore
}

func (t *memoryTX) Get(name uow.RepositoryName) (uow.Repository, error) {
	return t.store.repository(name, true)
}

// locker захватывает мьютекс хранилища только вне uow.Do: внутри транзакции он уже захвачен.
type locker struct {
	store *memoryStore
	inTx  bool
}

func (l locker) lock() func() {
	if l.inTx {
		return func() {}
	}
	l.store.mu.Lock()
	return l.store.mu.Unlock
}

type memoryUsers struct {
	store *memoryStore
	inTx  bool
}

func (r *memoryUsers) guard() func() { return locker{store: r.store, inTx: r.inTx}.lock() }

func (r *memoryUsers) Upsert(_ context.Context, args repoargs.UpsertUser) (*domain.User, error) {
	defer r.guard()()
	u, ok := r.store.users[args.ID]
	if !ok {
		u = domain.User{ID: args.ID, ReferralCode: args.ReferralCode, JoinedAt: args.Now}
	}
	if args.DisplayName != "" {
		u.DisplayName = args.DisplayName
	}
	u.LastActiveAt = args.Now
	r.store.users[args.ID] = u
	return &u, nil
}

func (r *memoryUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	defer r.guard()()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &u, nil
}

func (r *memoryUsers) FindByIDForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	return r.FindByID(ctx, id)
}

func (r *memoryUsers) FindByReferralCode(_ context.Context, code string) (*domain.User, error) {
	defer r.guard()()
	for _, u := range r.store.users {
		if u.ReferralCode == code {
			return &u, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *memoryUsers) SetReferrer(_ context.Context, userID, referrerID int64) (bool, error) {
	defer r.guard()()
	u, ok := r.store.users[userID]
	if !ok || u.ReferredBy != nil || userID == referrerID {
		return false, nil
	}
	u.ReferredBy = &referrerID
	r.store.users[userID] = u
	return true, nil
}

func (r *memoryUsers) AddBalance(_ context.Context, id int64, delta int64) (*domain.User, error) {
	defer r.guard()()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	if u.Balance+delta < 0 {
		return nil, fmt.Errorf("%w: balance check violated", domain.ErrStorage)
	}
	u.Balance += delta
	r.store.users[id] = u
	return &u, nil
}

func (r *memoryUsers) ResetBalance(_ context.Context, id int64) (*domain.User, error) {
	defer r.guard()()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	u.Balance = 0
	r.store.users[id] = u
	return &u, nil
}

func (r *memoryUsers) Aggregate(_ context.Context, activeSince time.Time) (*repoargs.UserAggregation, error) {
	defer r.guard()()
	var agg repoargs.UserAggregation
	for _, u := range r.store.users {
		agg.TotalUsers++
		agg.TotalBalance += u.Balance
		if !u.LastActiveAt.Before(activeSince) {
			agg.ActiveUsers++
		}
	}
	return &agg, nil
}

func (r *memoryUsers) ListIDs(context.Context) ([]int64, error) {
	defer r.guard()()
	ids := slices.Collect(maps.Keys(r.store.users))
	slices.Sort(ids)
	return ids, nil
}

type memoryTxs struct {
	store *memoryStore
	inTx  bool
}

func (r *memoryTxs) guard() func() { return locker{store: r.store, inTx: r.inTx}.lock() }

func (r *memoryTxs) Create(_ context.Context, args repoargs.TransactionCreate) (*domain.Transaction, error) {
	defer r.guard()()
	if args.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount check violated", domain.ErrStorage)
	}
	if args.Reference != "" {
		if _, dup := r.store.refs[args.Reference]; dup {
			return nil, domain.ErrDuplicateKey
		}
		r.store.refs[args.Reference] = struct{}{}
	}
	r.store.nextID++
	tx := domain.Transaction{
		ID:        r.store.nextID,
		UserID:    args.UserID,
		Amount:    args.Amount,
		Type:      args.Type,
		Status:    args.Status,
		Details:   args.Details,
		CreatedAt: args.CreatedAt,
	}
	r.store.txs = append(r.store.txs, tx)
	return &tx, nil
}

func (r *memoryTxs) FindByIDForUpdate(_ context.Context, id int64) (*domain.Transaction, error) {
	defer r.guard()()
	for _, tx := range r.store.txs {
		if tx.ID == id {
			return &tx, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *memoryTxs) Resolve(_ context.Context, args repoargs.TransactionResolve) (*domain.Transaction, error) {
	defer r.guard()()
	for i, tx := range r.store.txs {
		if tx.ID == args.ID && tx.IsPendingWithdrawal() {
			tx.Status = args.Status
			tx.Details += args.DetailsSuffix
			r.store.txs[i] = tx
			return &tx, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *memoryTxs) Aggregate(context.Context) (*repoargs.TransactionAggregation, error) {
	defer r.guard()()
	var agg repoargs.TransactionAggregation
	for _, tx := range r.store.txs {
		agg.TotalTransactions++
		if tx.Type == domain.TransactionTypeWithdraw && tx.Status == domain.TransactionStatusCompleted {
			agg.CompletedWithdrawals++
			agg.WithdrawnAmount += tx.Amount
		}
	}
	return &agg, nil
}

func (r *memoryTxs) RecentCompletedWithdrawals(_ context.Context, limit uint) ([]repoargs.CompletedWithdrawal, error) {
	defer r.guard()()
	var rows []repoargs.CompletedWithdrawal
	for _, tx := range r.newestFirst() {
		if tx.Type != domain.TransactionTypeWithdraw || tx.Status != domain.TransactionStatusCompleted {
			continue
		}
		rows = append(rows, repoargs.CompletedWithdrawal{
			DisplayName: r.store.users[tx.UserID].DisplayName,
			Amount:      tx.Amount,
			CreatedAt:   tx.CreatedAt,
		})
		if uint(len(rows)) == limit {
			break
		}
	}
	return rows, nil
}

func (r *memoryTxs) GetByUserID(_ context.Context, userID int64, limit uint) ([]domain.Transaction, error) {
	defer r.guard()()
	var result []domain.Transaction
	for _, tx := range r.newestFirst() {
		if tx.UserID == userID {
			result = append(result, tx)
		}
		if uint(len(result)) == limit {
			break
		}
	}
	return result, nil
}

func (r *memoryTxs) GetPendingWithdrawals(_ context.Context, limit uint) ([]domain.Transaction, error) {
	defer r.guard()()
	var result []domain.Transaction
	for _, tx := range r.store.txs {
		if tx.IsPendingWithdrawal() {
			result = append(result, tx)
		}
		if uint(len(result)) == limit {
			break
		}
	}
	return result, nil
}

func (r *memoryTxs) newestFirst() []domain.Transaction {
	txs := slices.Clone(r.store.txs)
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].CreatedAt.Equal(txs[j].CreatedAt) {
			return txs[i].ID > txs[j].ID
		}
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
	return txs
}
