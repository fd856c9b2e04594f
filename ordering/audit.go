package ordering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Duplicate is an order value shared by more than one sibling
type Duplicate struct {
	Table string
	Group map[string]any
	Order int
	Count int
}

func (d Duplicate) String() string {
	return fmt.Sprintf("%s %v order=%d count=%d", d.Table, d.Group, d.Order, d.Count)
}

// FindDuplicates scans every registered entity type for sibling groups where
// an order value is used more than once. Concurrent explicit placements and
// legacy rows are the usual sources.
func FindDuplicates(ctx context.Context, db *gorm.DB, registry *Registry) ([]Duplicate, error) {
	var out []Duplicate
	for _, e := range registry.sortedEntries() {
		cols := e.groupColumns()
		selects := append(append([]string{}, cols...), e.column+" AS order_value", "COUNT(*) AS siblings")
		groupBy := append(append([]string{}, cols...), e.column)

		var rows []map[string]any
		err := db.WithContext(ctx).
			Table(e.table).
			Select(strings.Join(selects, ", ")).
			Group(strings.Join(groupBy, ", ")).
			Having("COUNT(*) > ?", 1).
			Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("ordering: duplicate scan on %s: %w", e.table, err)
		}

		for _, row := range rows {
			group := make(map[string]any, len(cols))
			for _, c := range cols {
				group[c] = row[c]
			}
			out = append(out, Duplicate{
				Table: e.table,
				Group: group,
				Order: toInt(row["order_value"]),
				Count: toInt(row["siblings"]),
			})
		}
	}
	return out, nil
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint:
		return int(n)
	case uint32:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	case []byte:
		i, _ := strconv.Atoi(string(n))
		return i
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}
