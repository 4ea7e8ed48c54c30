package application

import "github.com/ramah83/ST-System-Bank/internal/domain/entity"

// Action is something an actor attempts against a resource kind.
type Action string

const (
	ActionCreate   Action = "create"
	ActionView     Action = "view"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionDeposit  Action = "deposit"
	ActionWithdraw Action = "withdraw"
)

// Resource is a kind of record the policy guards.
type Resource string

const (
	ResourceAccount        Resource = "account"
	ResourceAccountBalance Resource = "account_balance"
	ResourceAccountType    Resource = "account_type"
	ResourceTransaction    Resource = "transaction"
	ResourceUser           Resource = "user"
	ResourceTestRun        Resource = "test_run"
)

type policyKey struct {
	Resource Resource
	Action   Action
}

type predicate func(actor *entity.User) bool

func isCustomer(actor *entity.User) bool  { return actor != nil && !actor.IsAdmin() }
func isStaff(actor *entity.User) bool     { return actor != nil && actor.IsAdmin() }
func isSuperuser(actor *entity.User) bool { return actor != nil && actor.IsSuperuser }
func anyone(actor *entity.User) bool      { return actor != nil }
func nobody(*entity.User) bool            { return false }

// AccessPolicy is a flat table of (resource, action) -> predicate. Staff run
// the bank but may never hold funds or move money; only a superuser may
// remove a ledger row, and nothing may touch a balance outside the
// transaction service.
type AccessPolicy struct {
	rules map[policyKey]predicate
}

func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{rules: map[policyKey]predicate{
		{ResourceAccount, ActionCreate}:   isCustomer,
		{ResourceAccount, ActionView}:     anyone, // owners see their own, staff see all
		{ResourceAccount, ActionUpdate}:   isStaff,
		{ResourceAccount, ActionDelete}:   isSuperuser,
		{ResourceAccount, ActionDeposit}:  isCustomer,
		{ResourceAccount, ActionWithdraw}: isCustomer,

		// balance edits bypass the ledger; no actor gets them
		{ResourceAccountBalance, ActionUpdate}: nobody,

		{ResourceAccountType, ActionCreate}: isStaff,
		{ResourceAccountType, ActionView}:   anyone,
		{ResourceAccountType, ActionDelete}: isStaff, // still blocked while in use

		{ResourceTransaction, ActionCreate}: nobody, // only via the transaction service
		{ResourceTransaction, ActionView}:   anyone,
		{ResourceTransaction, ActionUpdate}: nobody,
		{ResourceTransaction, ActionDelete}: isSuperuser,

		{ResourceUser, ActionView}:   isStaff,
		{ResourceUser, ActionDelete}: isSuperuser,

		{ResourceTestRun, ActionCreate}: isStaff,
		{ResourceTestRun, ActionView}:   isStaff,
	}}
}

// Can reports whether actor may perform action on the resource kind.
// Unknown pairs are denied.
func (p *AccessPolicy) Can(actor *entity.User, action Action, resource Resource) bool {
	pred, ok := p.rules[policyKey{resource, action}]
	if !ok {
		return false
	}
	return pred(actor)
}
