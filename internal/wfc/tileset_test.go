package wfc

import "testing"

func TestNewTileSetSortsAndDedupes(t *testing.T) {
	s := NewTileSet(5, 1, 3, 1, 5)
	want := TileSet{1, 3, 5}
	if !s.Equal(want) {
		t.Errorf("NewTileSet() = %v, want %v", s, want)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestTileSetContains(t *testing.T) {
	s := NewTileSet(2, 4, 8)
	for _, c := range []TileCode{2, 4, 8} {
		if !s.Contains(c) {
			t.Errorf("Contains(%d) = false, want true", c)
		}
	}
	for _, c := range []TileCode{0, 3, 9} {
		if s.Contains(c) {
			t.Errorf("Contains(%d) = true, want false", c)
		}
	}
	var empty TileSet
	if empty.Contains(0) {
		t.Error("empty set should not contain anything")
	}
}

func TestTileSetWithoutAndIntersect(t *testing.T) {
	tests := []struct {
		name      string
		a, b      TileSet
		without   TileSet
		intersect TileSet
	}{
		{"disjoint", NewTileSet(1, 2), NewTileSet(3, 4), NewTileSet(1, 2), TileSet{}},
		{"overlap", NewTileSet(1, 2, 3), NewTileSet(2, 3, 4), NewTileSet(1), NewTileSet(2, 3)},
		{"subset", NewTileSet(2), NewTileSet(1, 2, 3), TileSet{}, NewTileSet(2)},
		{"empty other", NewTileSet(1, 2), nil, NewTileSet(1, 2), TileSet{}},
		{"empty self", nil, NewTileSet(1), TileSet{}, TileSet{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Without(tt.b); !got.Equal(tt.without) {
				t.Errorf("%v.Without(%v) = %v, want %v", tt.a, tt.b, got, tt.without)
			}
			if got := tt.a.Intersect(tt.b); !got.Equal(tt.intersect) {
				t.Errorf("%v.Intersect(%v) = %v, want %v", tt.a, tt.b, got, tt.intersect)
			}
		})
	}
}

func TestTileSetCloneIsIndependent(t *testing.T) {
	s := NewTileSet(1, 2, 3)
	c := s.Clone()
	c[0] = 9
	if s[0] != 1 {
		t.Error("modifying clone changed the original")
	}
}

func TestTileSetString(t *testing.T) {
	if got := NewTileSet(3, 1).String(); got != "{1,3}" {
		t.Errorf("String() = %q, want %q", got, "{1,3}")
	}
	if got := (TileSet{}).String(); got != "{}" {
		t.Errorf("String() = %q, want %q", got, "{}")
	}
}
