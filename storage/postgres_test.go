package storage

import "testing"

func TestCompareMigrations(t *testing.T) {
	for _, tc := range []struct {
		name     string
		wanted   []string
		existing []string
		exp      []string
		expErr   bool
	}{
		{
			name:   "empty",
			wanted: []string{},
			exp:    []string{},
		},
		{
			name:   "all new",
			wanted: []string{"a", "b"},
			exp:    []string{"a", "b"},
		},
		{
			name:     "all applied",
			wanted:   []string{"a", "b"},
			existing: []string{"a", "b"},
			exp:      []string{},
		},
		{
			name:     "partially applied",
			wanted:   []string{"a", "b", "c"},
			existing: []string{"a"},
			exp:      []string{"b", "c"},
		},
		{
			name:     "more applied than known",
			wanted:   []string{"a"},
			existing: []string{"a", "b"},
			expErr:   true,
		},
		{
			name:     "diverged",
			wanted:   []string{"a", "x"},
			existing: []string{"a", "b"},
			expErr:   true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := compareMigrations(tc.wanted, tc.existing)
			if tc.expErr != (err != nil) {
				t.Fatalf("expErr %v, got err %v", tc.expErr, err)
			}
			if tc.expErr {
				return
			}
			if len(got) != len(tc.exp) {
				t.Fatalf("got %v, want %v", got, tc.exp)
			}
			for i := range got {
				if got[i] != tc.exp[i] {
					t.Errorf("got %v, want %v", got, tc.exp)
				}
			}
		})
	}
}
