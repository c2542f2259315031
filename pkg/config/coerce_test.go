package config

import "testing"

func TestCoerceBool(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"true", "True", "TRUE", "1", "yes", "YES"} {
		if !coerceBool(in) {
			t.Errorf("coerceBool(%q) = false, want true", in)
		}
	}
	for _, in := range []string{"false", "0", "", "no", "on", "y"} {
		if coerceBool(in) {
			t.Errorf("coerceBool(%q) = true, want false", in)
		}
	}
}

func TestCoerce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		typ     ParamType
		raw     string
		want    any
		wantErr bool
	}{
		{name: "string kept verbatim", typ: TypeString, raw: " https://x.test ", want: " https://x.test "},
		{name: "int", typ: TypeInt, raw: "42", want: 42},
		{name: "negative int", typ: TypeInt, raw: "-7", want: -7},
		{name: "non numeric int", typ: TypeInt, raw: "4x2", wantErr: true},
		{name: "empty int", typ: TypeInt, raw: "", wantErr: true},
		{name: "bool", typ: TypeBool, raw: "yes", want: true},
		{name: "unknown type", typ: ParamType(99), raw: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := coerce(Param{Name: "p", Type: tt.typ}, tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %#v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	err := &Error{Kind: TypeMismatch, Param: "port", Expected: TypeInt}
	if got := err.Error(); got != "config: parameter port has wrong type, expected int" {
		t.Fatalf("unexpected message %q", got)
	}
	err = &Error{Kind: MissingRequired, Param: "bot_url"}
	if got := err.Error(); got != "config: parameter bot_url is required" {
		t.Fatalf("unexpected message %q", got)
	}
}
