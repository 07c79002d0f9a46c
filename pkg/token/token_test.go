package token

import "testing"

func TestPositionString(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected string
	}{
		{"simple position", Position{Line: 1, Column: 5}, "1:5"},
		{"larger numbers", Position{Line: 123, Column: 456}, "123:456"},
		{"zero position", Position{Line: 0, Column: 0}, "0:0"},
		{"with offset", Position{Line: 10, Column: 20, Offset: 100}, "10:20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.expected {
				t.Errorf("Position.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPositionIsValid(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected bool
	}{
		{"valid position", Position{Line: 1, Column: 1}, true},
		{"valid with offset", Position{Line: 10, Column: 5, Offset: 50}, true},
		{"zero line invalid", Position{Line: 0, Column: 1}, false},
		{"negative line invalid", Position{Line: -1, Column: 1}, false},
		{"zero column invalid", Position{Line: 1, Column: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.expected {
				t.Errorf("Position.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ      Type
		expected string
	}{
		{Keyword, "keyword"},
		{Symbol, "symbol"},
		{IntegerConstant, "integerConstant"},
		{StringConstant, "stringConstant"},
		{Identifier, "identifier"},
		{Invalid, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.expected {
				t.Errorf("Type.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKeywordsAndSymbolsSets(t *testing.T) {
	if len(Keywords) != 21 {
		t.Errorf("len(Keywords) = %d, want 21", len(Keywords))
	}
	if len(Symbols) != 21 {
		t.Errorf("len(Symbols) = %d, want 21", len(Symbols))
	}
	if Keywords["class"] != true || Keywords["notakeyword"] {
		t.Errorf("Keywords membership check failed")
	}
	if !Symbols['{'] || Symbols['z'] {
		t.Errorf("Symbols membership check failed")
	}
}
