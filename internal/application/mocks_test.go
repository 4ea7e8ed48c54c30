package application

import (
	"context"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
	"github.com/ramah83/ST-System-Bank/internal/domain/repository"
)

type mockUserRepo struct {
	CreateFn     func(ctx context.Context, u *entity.User) error
	GetByIDFn    func(ctx context.Context, id string) (*entity.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*entity.User, error)
	UpdateFn     func(ctx context.Context, u *entity.User) error
	ListFn       func(ctx context.Context) ([]*entity.User, error)
	DeleteFn     func(ctx context.Context, id string) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error { return m.CreateFn(ctx, u) }
func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.GetByEmailFn(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error { return m.UpdateFn(ctx, u) }
func (m *mockUserRepo) List(ctx context.Context) ([]*entity.User, error) { return m.ListFn(ctx) }
func (m *mockUserRepo) Delete(ctx context.Context, id string) error      { return m.DeleteFn(ctx, id) }

type mockAccountRepo struct {
	CreateTypeFn         func(ctx context.Context, t *entity.AccountType) error
	GetTypeFn            func(ctx context.Context, id string) (*entity.AccountType, error)
	ListTypesFn          func(ctx context.Context) ([]*entity.AccountType, error)
	DeleteTypeFn         func(ctx context.Context, id string) error
	CreateFn             func(ctx context.Context, a *entity.Account) error
	GetByIDFn            func(ctx context.Context, id string) (*entity.Account, error)
	GetByUserIDFn        func(ctx context.Context, userID string) (*entity.Account, error)
	ListFn               func(ctx context.Context) ([]*entity.Account, error)
	DeleteFn             func(ctx context.Context, id string) error
	NextAccountNoFn      func(ctx context.Context, start int64) (int64, error)
	DeleteAdminOwnedFn   func(ctx context.Context) (int64, error)
	CreateAddressFn      func(ctx context.Context, a *entity.Address) error
	GetAddressByUserIDFn func(ctx context.Context, userID string) (*entity.Address, error)
}

func (m *mockAccountRepo) CreateType(ctx context.Context, t *entity.AccountType) error {
	return m.CreateTypeFn(ctx, t)
}
func (m *mockAccountRepo) GetType(ctx context.Context, id string) (*entity.AccountType, error) {
	return m.GetTypeFn(ctx, id)
}
func (m *mockAccountRepo) ListTypes(ctx context.Context) ([]*entity.AccountType, error) {
	return m.ListTypesFn(ctx)
}
func (m *mockAccountRepo) DeleteType(ctx context.Context, id string) error {
	return m.DeleteTypeFn(ctx, id)
}
func (m *mockAccountRepo) Create(ctx context.Context, a *entity.Account) error {
	return m.CreateFn(ctx, a)
}
func (m *mockAccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockAccountRepo) GetByUserID(ctx context.Context, userID string) (*entity.Account, error) {
	return m.GetByUserIDFn(ctx, userID)
}
func (m *mockAccountRepo) List(ctx context.Context) ([]*entity.Account, error) { return m.ListFn(ctx) }
func (m *mockAccountRepo) Delete(ctx context.Context, id string) error         { return m.DeleteFn(ctx, id) }
func (m *mockAccountRepo) NextAccountNo(ctx context.Context, start int64) (int64, error) {
	return m.NextAccountNoFn(ctx, start)
}
func (m *mockAccountRepo) DeleteAdminOwned(ctx context.Context) (int64, error) {
	return m.DeleteAdminOwnedFn(ctx)
}
func (m *mockAccountRepo) CreateAddress(ctx context.Context, a *entity.Address) error {
	return m.CreateAddressFn(ctx, a)
}
func (m *mockAccountRepo) GetAddressByUserID(ctx context.Context, userID string) (*entity.Address, error) {
	return m.GetAddressByUserIDFn(ctx, userID)
}

type mockTransactionRepo struct {
	PostFn    func(ctx context.Context, p repository.PostParams) (*entity.Transaction, error)
	GetByIDFn func(ctx context.Context, id string) (*entity.Transaction, error)
	FilterFn  func(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (m *mockTransactionRepo) Post(ctx context.Context, p repository.PostParams) (*entity.Transaction, error) {
	return m.PostFn(ctx, p)
}
func (m *mockTransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockTransactionRepo) Filter(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	return m.FilterFn(ctx, f)
}
func (m *mockTransactionRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

type mockTestRunRepo struct {
	CreateRunFn            func(ctx context.Context, r *entity.TestRun) error
	GetRunFn               func(ctx context.Context, id string) (*entity.TestRun, error)
	ListRunsFn             func(ctx context.Context, limit int) ([]*entity.TestRun, error)
	FinishRunFn            func(ctx context.Context, r *entity.TestRun) error
	AddCasesFn             func(ctx context.Context, cases []*entity.TestCase) error
	ListCasesFn            func(ctx context.Context, runID string) ([]*entity.TestCase, error)
	CreateNotificationFn   func(ctx context.Context, n *entity.TestNotification) error
	MarkNotificationSentFn func(ctx context.Context, id string) error
	StatsFn                func(ctx context.Context) (*repository.RunStats, error)
}

func (m *mockTestRunRepo) CreateRun(ctx context.Context, r *entity.TestRun) error {
	return m.CreateRunFn(ctx, r)
}
func (m *mockTestRunRepo) GetRun(ctx context.Context, id string) (*entity.TestRun, error) {
	return m.GetRunFn(ctx, id)
}
func (m *mockTestRunRepo) ListRuns(ctx context.Context, limit int) ([]*entity.TestRun, error) {
	return m.ListRunsFn(ctx, limit)
}
func (m *mockTestRunRepo) FinishRun(ctx context.Context, r *entity.TestRun) error {
	return m.FinishRunFn(ctx, r)
}
func (m *mockTestRunRepo) AddCases(ctx context.Context, cases []*entity.TestCase) error {
	return m.AddCasesFn(ctx, cases)
}
func (m *mockTestRunRepo) ListCases(ctx context.Context, runID string) ([]*entity.TestCase, error) {
	return m.ListCasesFn(ctx, runID)
}
func (m *mockTestRunRepo) CreateNotification(ctx context.Context, n *entity.TestNotification) error {
	return m.CreateNotificationFn(ctx, n)
}
func (m *mockTestRunRepo) MarkNotificationSent(ctx context.Context, id string) error {
	return m.MarkNotificationSentFn(ctx, id)
}
func (m *mockTestRunRepo) Stats(ctx context.Context) (*repository.RunStats, error) {
	return m.StatsFn(ctx)
}

type mockPublisher struct {
	PublishJSONFn func(ctx context.Context, body any) error
	Published     []any
}

func (m *mockPublisher) PublishJSON(ctx context.Context, body any) error {
	m.Published = append(m.Published, body)
	if m.PublishJSONFn != nil {
		return m.PublishJSONFn(ctx, body)
	}
	return nil
}

type mockMailer struct {
	SendFn func(ctx context.Context, to, subject, text, html string) error
	Sent   []string
}

func (m *mockMailer) Send(ctx context.Context, to, subject, text, html string) error {
	m.Sent = append(m.Sent, subject)
	if m.SendFn != nil {
		return m.SendFn(ctx, to, subject, text, html)
	}
	return nil
}
