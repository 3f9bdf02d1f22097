package seq

import "testing"

func TestFind(t *testing.T) {
	tests := []struct {
		name   string
		s      []string
		v      string
		offset int
		want   int
	}{
		{
			name:   "first element",
			s:      []string{"a", "b", "c"},
			v:      "a",
			offset: 0,
			want:   0,
		},
		{
			name:   "later element",
			s:      []string{"a", "b", "c"},
			v:      "c",
			offset: 0,
			want:   2,
		},
		{
			name:   "offset skips earlier match",
			s:      []string{"a", "b", "a"},
			v:      "a",
			offset: 1,
			want:   2,
		},
		{
			name:   "offset at match",
			s:      []string{"a", "b", "a"},
			v:      "a",
			offset: 2,
			want:   2,
		},
		{
			name:   "negative offset treated as zero",
			s:      []string{"a", "b"},
			v:      "b",
			offset: -5,
			want:   1,
		},
		{
			name:   "offset past end",
			s:      []string{"a", "b"},
			v:      "a",
			offset: 10,
			want:   NotFound,
		},
		{
			name:   "absent value",
			s:      []string{"a", "b"},
			v:      "z",
			offset: 0,
			want:   NotFound,
		},
		{
			name:   "empty slice",
			s:      nil,
			v:      "a",
			offset: 0,
			want:   NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Find(tt.s, tt.v, tt.offset)
			if got != tt.want {
				t.Errorf("Find(%v, %q, %d) = %d, want %d", tt.s, tt.v, tt.offset, got, tt.want)
			}
		})
	}
}

func TestFindNilPointer(t *testing.T) {
	a, b := 1, 2
	s := []*int{&a, nil, &b, nil}

	if got := Find(s, nil, 0); got != 1 {
		t.Errorf("Find(nil, 0) = %d, want 1", got)
	}
	if got := Find(s, nil, 2); got != 3 {
		t.Errorf("Find(nil, 2) = %d, want 3", got)
	}
	if got := Find(s, &b, 0); got != 2 {
		t.Errorf("Find(&b, 0) = %d, want 2", got)
	}
}

func TestFindResume(t *testing.T) {
	s := []string{"x", "y", "x", "x", "z"}

	var hits []int
	for i := Find(s, "x", 0); i != NotFound; i = Find(s, "x", i+1) {
		hits = append(hits, i)
	}

	want := []int{0, 2, 3}
	if len(hits) != len(want) {
		t.Fatalf("expected %d hits, got %d (%v)", len(want), len(hits), hits)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Errorf("hit %d: expected index %d, got %d", i, want[i], hits[i])
		}
	}
}

func TestAppend(t *testing.T) {
	orig := []string{"a", "b"}
	got := Append(orig, "c")

	if len(got) != 3 {
		t.Fatalf("expected length 3, got %d", len(got))
	}
	if got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("unexpected contents: %v", got)
	}
	if len(orig) != 2 {
		t.Errorf("input was modified: %v", orig)
	}

	// The result must not alias the input's backing array.
	got[0] = "mutated"
	if orig[0] != "a" {
		t.Errorf("result aliases input: orig = %v", orig)
	}
}

func TestAppendNil(t *testing.T) {
	got := Append(nil, 42)
	if len(got) != 1 || got[0] != 42 {
		t.Errorf("expected [42], got %v", got)
	}
}

func TestRemoveAt(t *testing.T) {
	tests := []struct {
		name string
		s    []string
		i    int
		want []string
	}{
		{
			name: "first",
			s:    []string{"a", "b", "c"},
			i:    0,
			want: []string{"b", "c"},
		},
		{
			name: "middle",
			s:    []string{"a", "b", "c"},
			i:    1,
			want: []string{"a", "c"},
		},
		{
			name: "last",
			s:    []string{"a", "b", "c"},
			i:    2,
			want: []string{"a", "b"},
		},
		{
			name: "single element",
			s:    []string{"a"},
			i:    0,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveAt(tt.s, tt.i)
			if len(got) != len(tt.want) {
				t.Fatalf("expected length %d, got %d (%v)", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestRemoveAtCopies(t *testing.T) {
	orig := []string{"a", "b", "c"}
	got := RemoveAt(orig, 1)

	if len(orig) != 3 || orig[1] != "b" {
		t.Errorf("input was modified: %v", orig)
	}
	got[0] = "mutated"
	if orig[0] != "a" {
		t.Errorf("result aliases input: orig = %v", orig)
	}
}

func TestRemoveAtOutOfRange(t *testing.T) {
	for _, i := range []int{-1, 3} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("RemoveAt(s, %d) did not panic", i)
				}
			}()
			RemoveAt([]string{"a", "b", "c"}, i)
		}()
	}
}
