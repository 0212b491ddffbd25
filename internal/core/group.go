package core

import (
	"fmt"
	"strings"
)

// GroupRecords partitions records into email groups. With an empty key each
// record becomes its own singleton group in input order. Otherwise records
// are bucketed by the key's value: bucket order follows first occurrence of
// the value in the input, row order inside a bucket is preserved.
func GroupRecords(records []Record, key string) []*EmailGroup {
	var buckets [][]Record
	if key == "" {
		for _, rec := range records {
			buckets = append(buckets, []Record{rec})
		}
	} else {
		index := make(map[string]int)
		for _, rec := range records {
			val := rec.Get(key)
			i, seen := index[val]
			if !seen {
				i = len(buckets)
				index[val] = i
				buckets = append(buckets, nil)
			}
			buckets[i] = append(buckets[i], rec)
		}
	}

	groups := make([]*EmailGroup, 0, len(buckets))
	for i, rows := range buckets {
		groups = append(groups, &EmailGroup{
			Rows:       rows,
			InfoHeader: groupHeader(i+1, len(rows)),
			InfoMsg:    groupInfo(rows, key),
		})
	}
	return groups
}

func groupHeader(n, size int) string {
	if size > 1 {
		return fmt.Sprintf("#%d: INVOICE GROUP", n)
	}
	return fmt.Sprintf("#%d: SINGLE INVOICE", n)
}

// groupInfo renders the operator review text: the grouping field and value
// for a multi-row group, recipient/reference/amount for a singleton.
func groupInfo(rows []Record, key string) string {
	if len(rows) > 1 {
		return fmt.Sprintf("%s: %s\n", strings.ToUpper(key), rows[0].Get(key))
	}
	rec := rows[0]
	return fmt.Sprintf("EMAIL: %s\nVIITE: %s\nSUMMA: %s\n",
		rec.Get(FieldEmail), rec.Get(FieldRef), rec.Get(FieldAmount))
}
