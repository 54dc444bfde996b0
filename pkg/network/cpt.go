package network

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// Distribution maps each state of a node to its probability.
type Distribution map[string]float64

// Uniform returns the 50/50 distribution over states.
func Uniform(states [2]string) Distribution {
	return Distribution{states[0]: 0.5, states[1]: 0.5}
}

// Sum returns the total probability mass.
func (d Distribution) Sum() float64 {
	var s float64
	for _, p := range d {
		s += p
	}
	return s
}

// Row is one line of a conditional table: the state of every parent and the
// resulting distribution over the node's own states.
type Row struct {
	Condition    map[string]string `json:"when"`
	Distribution Distribution      `json:"then"`
}

// CPT is the conditional probability table of a node. A node without parents
// has only a Prior; a node with k parents has exactly 2^k Rows and no Prior.
type CPT struct {
	Prior Distribution
	Rows  []Row
}

// MaxTableParents is the largest parent count whose row count 2^k fits in an
// int.
const MaxTableParents = 62

// GenerateCPT builds the table for a node with the given parents.
//
// Rows are produced for x from 2^k-1 down to 0; parent y is in states[0]
// when bit y of x is set and in states[1] otherwise. For parents [P1, P2] the
// conditions are {P1:Yes,P2:Yes}, {P1:No,P2:Yes}, {P1:Yes,P2:No},
// {P1:No,P2:No}.
//
// The row count doubles per parent; callers bound k well below
// [MaxTableParents].
func GenerateCPT(parents []string, states [2]string) CPT {
	if len(parents) == 0 {
		return CPT{Prior: Uniform(states)}
	}

	k := len(parents)
	rows := make([]Row, 0, 1<<k)
	for x := 1<<k - 1; x >= 0; x-- {
		cond := make(map[string]string, k)
		for y, p := range parents {
			if x&(1<<y) != 0 {
				cond[p] = states[0]
			} else {
				cond[p] = states[1]
			}
		}
		rows = append(rows, Row{Condition: cond, Distribution: Uniform(states)})
	}
	return CPT{Rows: rows}
}

// IsPrior reports whether the table is an unconditional distribution.
func (c CPT) IsPrior() bool { return len(c.Rows) == 0 }

// Validate checks the table invariants against the node's parent count: the
// row count is 2^k, conditions are distinct and name every parent, and every
// distribution sums to 1.
func (c CPT) Validate(parents []string) error {
	if len(parents) == 0 {
		if len(c.Rows) != 0 {
			return fmt.Errorf("node without parents has %d rows", len(c.Rows))
		}
		return checkSum(c.Prior)
	}

	if len(parents) > MaxTableParents {
		return fmt.Errorf("%d parents exceed the table limit of %d", len(parents), MaxTableParents)
	}
	if want := 1 << len(parents); len(c.Rows) != want {
		return fmt.Errorf("got %d rows, want %d", len(c.Rows), want)
	}
	seen := make(map[string]bool, len(c.Rows))
	for i, row := range c.Rows {
		key := ""
		for _, p := range parents {
			s, ok := row.Condition[p]
			if !ok {
				return fmt.Errorf("row %d: missing parent %q", i, p)
			}
			key += p + "=" + s + ";"
		}
		if seen[key] {
			return fmt.Errorf("row %d: duplicate condition %s", i, key)
		}
		seen[key] = true
		if err := checkSum(row.Distribution); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

func checkSum(d Distribution) error {
	if s := d.Sum(); s < 1-1e-9 || s > 1+1e-9 {
		return fmt.Errorf("distribution sums to %v", s)
	}
	return nil
}

// MarshalJSON encodes a prior as a flat object and a conditional table as an
// array of rows.
func (c CPT) MarshalJSON() ([]byte, error) {
	if c.IsPrior() {
		if c.Prior == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(c.Prior)
	}
	return json.Marshal(c.Rows)
}

// UnmarshalJSON accepts either encoding produced by MarshalJSON.
func (c *CPT) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var rows []Row
		if err := json.Unmarshal(data, &rows); err != nil {
			return err
		}
		*c = CPT{Rows: rows}
		return nil
	}
	var prior Distribution
	if err := json.Unmarshal(data, &prior); err != nil {
		return err
	}
	*c = CPT{Prior: prior}
	return nil
}

// Clone returns a deep copy of the table.
func (c CPT) Clone() CPT {
	out := CPT{Prior: maps.Clone(c.Prior)}
	if c.Rows != nil {
		out.Rows = make([]Row, len(c.Rows))
		for i, r := range c.Rows {
			out.Rows[i] = Row{Condition: maps.Clone(r.Condition), Distribution: maps.Clone(r.Distribution)}
		}
	}
	return out
}
