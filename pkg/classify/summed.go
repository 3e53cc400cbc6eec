package classify

import (
	"fmt"

	"github.com/stratlab/strata/pkg/table"
)

// appendSummed synthesizes one row-sum column per requested group, named
// after its source group and labeled "Sum of <group>". The sums land in the
// [SummedName] bucket; the table is cloned on the first addition.
//
// Groups that are not present and group names that collide with an existing
// column are skipped. Sums are computed over the working table, so
// percentage groups contribute normalized values.
func appendSummed(tbl *table.Table, members map[string][]string, subgroups map[string]string, summed []string) (*table.Table, bool) {
	work := tbl
	added := false

	for _, group := range summed {
		cols, ok := members[group]
		if !ok || len(cols) == 0 {
			continue
		}
		if _, taken := work.Column(group); taken {
			continue
		}

		if !added {
			work = tbl.Clone()
			added = true
		}

		col := table.Column{
			Name:   group,
			Long:   fmt.Sprintf("Sum of %s", group),
			Values: work.RowSum(cols),
		}
		if err := work.AddColumn(col); err != nil {
			continue
		}

		members[SummedName] = append(members[SummedName], group)
		subgroups[group] = SummedName
	}

	return work, added && len(members[SummedName]) > 0
}
