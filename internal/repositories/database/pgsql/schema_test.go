package pgsql_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
)

// tableDDL extracts one CREATE TABLE block from the schema file.
func tableDDL(t *testing.T, schema, table string) string {
	t.Helper()
	start := strings.Index(schema, "CREATE TABLE "+table+" (")
	require.GreaterOrEqual(t, start, 0, "table %s missing from schema", table)
	end := strings.Index(schema[start:], ");")
	require.GreaterOrEqual(t, end, 0)
	return schema[start : start+end]
}

// The repositories persist domain lifecycle values verbatim, so every constant
// must be accepted by the corresponding CHECK constraint or the insert fails
// at the database instead of in a service.
func TestSchemaAcceptsDomainLifecycleValues(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "000001_init_schema.up.sql"))
	require.NoError(t, err)
	schema := string(raw)

	cases := []struct {
		table  string
		values []string
	}{
		{"tip_groups", []string{
			string(domain.GroupActive),
			string(domain.GroupClosed),
			string(domain.SplitEqual),
			string(domain.SplitRoleWeighted),
		}},
		{"tip_group_memberships", []string{
			string(domain.MemberActive),
			string(domain.MemberPendingApproval),
			string(domain.MemberLeft),
		}},
		{"ledger_entries", []string{
			string(domain.Credit),
			string(domain.Debit),
		}},
		{"tip_transactions", []string{
			string(domain.TipSourceCard),
			string(domain.TipSourceCash),
		}},
		{"payouts", []string{
			string(domain.PayoutCash),
			string(domain.PayoutPayroll),
		}},
	}

	for _, tc := range cases {
		ddl := tableDDL(t, schema, tc.table)
		for _, v := range tc.values {
			require.Contains(t, ddl, "'"+v+"'", "%s does not accept %q", tc.table, v)
		}
	}
}

// The pending-join unique index must guard the status value RequestJoin
// actually writes.
func TestPendingJoinIndexMatchesDomainStatus(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "000001_init_schema.up.sql"))
	require.NoError(t, err)
	schema := string(raw)

	start := strings.Index(schema, "CREATE UNIQUE INDEX uq_memberships_pending_employee_group")
	require.GreaterOrEqual(t, start, 0)
	stmt := schema[start:]
	stmt = stmt[:strings.Index(stmt, ";")]
	require.Contains(t, stmt, "WHERE status = '"+string(domain.MemberPendingApproval)+"'")
}
