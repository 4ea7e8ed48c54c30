package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
	"github.com/ramah83/ST-System-Bank/internal/domain/repository"
)

func TestBuildTransactionQuery(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("empty filter has no where clause", func(t *testing.T) {
		query, args := buildTransactionQuery(repository.TransactionFilter{})
		if strings.Contains(query, "WHERE") {
			t.Fatalf("unexpected WHERE in %q", query)
		}
		if len(args) != 0 {
			t.Fatalf("args = %v, want none", args)
		}
		if !strings.HasSuffix(query, "ORDER BY tr.timestamp DESC") {
			t.Fatalf("missing ordering in %q", query)
		}
	})

	t.Run("all conditions AND-composed in order", func(t *testing.T) {
		query, args := buildTransactionQuery(repository.TransactionFilter{
			AccountID: "acct-1",
			From:      &from,
			To:        &to,
			Type:      entity.TransactionWithdrawal,
			Text:      "150",
		})
		for _, cond := range []string{
			"tr.account_id = $1",
			"tr.timestamp >= $2",
			"tr.timestamp < $3",
			"tr.transaction_type = $4",
			"u.email ILIKE $5",
		} {
			if !strings.Contains(query, cond) {
				t.Errorf("query missing %q: %s", cond, query)
			}
		}
		if got := strings.Count(query, " AND "); got != 4 {
			t.Errorf("AND count = %d, want 4", got)
		}
		if len(args) != 5 {
			t.Fatalf("args = %d, want 5", len(args))
		}
		// the To bound is inclusive on the day
		if bound, ok := args[2].(time.Time); !ok || !bound.Equal(to.AddDate(0, 0, 1)) {
			t.Errorf("upper bound = %v, want %v", args[2], to.AddDate(0, 0, 1))
		}
		if args[4] != "%150%" {
			t.Errorf("text pattern = %v, want %%150%%", args[4])
		}
	})
}
