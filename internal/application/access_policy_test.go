package application

import (
	"testing"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
)

func TestAccessPolicy(t *testing.T) {
	policy := NewAccessPolicy()

	cust := &entity.User{ID: "u1"}
	staffUser := &entity.User{ID: "u2", IsStaff: true}
	super := &entity.User{ID: "u3", IsSuperuser: true}

	tests := []struct {
		name     string
		actor    *entity.User
		action   Action
		resource Resource
		want     bool
	}{
		{"customer opens account", cust, ActionCreate, ResourceAccount, true},
		{"staff cannot open account", staffUser, ActionCreate, ResourceAccount, false},
		{"superuser cannot open account", super, ActionCreate, ResourceAccount, false},

		{"customer deposits", cust, ActionDeposit, ResourceAccount, true},
		{"customer withdraws", cust, ActionWithdraw, ResourceAccount, true},
		{"staff cannot deposit", staffUser, ActionDeposit, ResourceAccount, false},
		{"staff cannot withdraw", staffUser, ActionWithdraw, ResourceAccount, false},
		{"superuser cannot deposit", super, ActionDeposit, ResourceAccount, false},

		{"nobody edits balances directly", super, ActionUpdate, ResourceAccountBalance, false},
		{"nobody updates ledger rows", super, ActionUpdate, ResourceTransaction, false},
		{"nobody creates ledger rows outside the service", super, ActionCreate, ResourceTransaction, false},

		{"staff cannot delete transactions", staffUser, ActionDelete, ResourceTransaction, false},
		{"customer cannot delete transactions", cust, ActionDelete, ResourceTransaction, false},
		{"superuser deletes transactions", super, ActionDelete, ResourceTransaction, true},

		{"staff manages account types", staffUser, ActionCreate, ResourceAccountType, true},
		{"customer cannot manage account types", cust, ActionCreate, ResourceAccountType, false},

		{"staff views users", staffUser, ActionView, ResourceUser, true},
		{"customer cannot view users", cust, ActionView, ResourceUser, false},
		{"only superuser deletes users", staffUser, ActionDelete, ResourceUser, false},

		{"staff submits test runs", staffUser, ActionCreate, ResourceTestRun, true},
		{"customer cannot view test runs", cust, ActionView, ResourceTestRun, false},

		{"nil actor denied", nil, ActionView, ResourceAccount, false},
		{"unknown pair denied", super, Action("export"), ResourceAccount, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Can(tt.actor, tt.action, tt.resource); got != tt.want {
				t.Fatalf("Can(%v, %s, %s) = %v, want %v", tt.actor, tt.action, tt.resource, got, tt.want)
			}
		})
	}
}
