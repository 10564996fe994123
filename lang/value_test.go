package lang

import (
	"math"
	"testing"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		value Value
		str   string
		disp  string
	}{
		{Double(1), "1", "1"},
		{Double(2.5), "2.5", "2.5"},
		{Double(-3), "-3", "-3"},
		{Double(0.3), "0.3", "0.3"},
		{Double(1e21), "1000000000000000000000", "1000000000000000000000"},
		{Double(math.Inf(1)), "inf", "inf"},
		{Double(math.Inf(-1)), "-inf", "-inf"},
		{Double(math.NaN()), "NaN", "NaN"},
		{String("a b"), "a b", `"a b"`},
		{Bool(true), "true", "true"},
		{Bool(false), "false", "false"},
		{Nil{}, "nil", "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if got := tt.value.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}

			if got := tt.value.Display(); got != tt.disp {
				t.Errorf("Display() = %q, want %q", got, tt.disp)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		value Value
		want  bool
	}{
		{Nil{}, false},
		{Bool(false), false},
		{Bool(true), true},
		{Double(0), true},
		{Double(math.NaN()), true},
		{String(""), true},
		{String("false"), true},
	}

	for _, tt := range tests {
		if got := Truthy(tt.value); got != tt.want {
			t.Errorf("Truthy(%s) = %v, want %v", tt.value.Display(), got, tt.want)
		}
	}
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		a, b Value
		want bool
	}{
		{Nil{}, Nil{}, true},
		{Nil{}, Bool(false), false},
		{Double(1), Double(1), true},
		{Double(1), String("1"), false},
		{Double(0), Bool(false), false},
		{String("a"), String("a"), true},
		{String("a"), String("A"), false},
		{Bool(true), Bool(true), true},
		{Double(math.NaN()), Double(math.NaN()), false},
	}

	for _, tt := range tests {
		if got := ValuesEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("ValuesEqual(%s, %s) = %v, want %v",
				tt.a.Display(), tt.b.Display(), got, tt.want)
		}

		if got := ValuesEqual(tt.b, tt.a); got != tt.want {
			t.Errorf("ValuesEqual(%s, %s) not symmetric", tt.b.Display(), tt.a.Display())
		}
	}
}

func TestTypeName(t *testing.T) {
	for v, want := range map[Value]string{
		String(""):  "string",
		Double(0):   "number",
		Bool(false): "boolean",
		Nil{}:       "nil",
	} {
		if got := TypeName(v); got != want {
			t.Errorf("TypeName(%#v) = %q, want %q", v, got, want)
		}
	}

	if got := TypeName(nil); got != "undefined" {
		t.Errorf("TypeName(nil) = %q", got)
	}
}
