package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
)

// OrderList is the authoritative sequence of child IDs stored on a parent
type OrderList []string

// Contains reports whether id is in the list
func (l OrderList) Contains(id string) bool {
	return slices.Contains(l, id)
}

// Append returns the list with id added at the end unless already present
func (l OrderList) Append(id string) OrderList {
	if l.Contains(id) {
		return l
	}
	return append(slices.Clone(l), id)
}

// Remove returns the list without id
func (l OrderList) Remove(id string) OrderList {
	out := make(OrderList, 0, len(l))
	for _, existing := range l {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// IsPermutation reports whether ids holds exactly the members of l: same
// cardinality, same members and no duplicates
func (l OrderList) IsPermutation(ids []string) bool {
	if len(ids) != len(l) {
		return false
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return false
		}
		if !l.Contains(id) {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

// Value encodes the list as a JSON array for storage
func (l OrderList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan decodes a JSON array column
func (l *OrderList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = OrderList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported order list type %T", src)
	}
	if len(raw) == 0 {
		*l = OrderList{}
		return nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return fmt.Errorf("failed to decode order list: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	*l = ids
	return nil
}

// NextOrder returns max(orders)+1, or 1 when there are none
func NextOrder(orders []int) int {
	if len(orders) == 0 {
		return 1
	}
	return slices.Max(orders) + 1
}
