package logger

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeCall(t *testing.T) {
	tests := []struct {
		name       string
		args       []any
		wantMsg    string
		wantFields F
	}{
		{
			name:    "no args",
			args:    nil,
			wantMsg: "",
		},
		{
			name:    "message only",
			args:    []any{"hello"},
			wantMsg: "hello",
		},
		{
			name:       "message and field map",
			args:       []any{"hello", F{"a": 1}},
			wantMsg:    "hello",
			wantFields: F{"a": 1},
		},
		{
			name:       "field map only",
			args:       []any{F{"a": 1}},
			wantMsg:    "",
			wantFields: F{"a": 1},
		},
		{
			name:       "field map then message",
			args:       []any{F{"a": 1}, "hello"},
			wantMsg:    "hello",
			wantFields: F{"a": 1},
		},
		{
			name:       "msg key inside map",
			args:       []any{F{"msg": "hello", "a": 1}},
			wantMsg:    "hello",
			wantFields: F{"a": 1},
		},
		{
			name:       "explicit message beats msg key",
			args:       []any{F{"msg": "inner", "a": 1}, "outer"},
			wantMsg:    "outer",
			wantFields: F{"a": 1},
		},
		{
			name:       "key value pairs",
			args:       []any{"hello", "a", 1, "b", "two"},
			wantMsg:    "hello",
			wantFields: F{"a": 1, "b": "two"},
		},
		{
			name:       "dangling pair value",
			args:       []any{"hello", "a", 1, "orphan"},
			wantMsg:    "hello",
			wantFields: F{"a": 1, "extra": "orphan"},
		},
		{
			name:       "non-string pair key",
			args:       []any{"hello", 42, "v"},
			wantMsg:    "hello",
			wantFields: F{"42": "v"},
		},
		{
			name:       "bare error",
			args:       []any{errors.New("kaput")},
			wantMsg:    "kaput",
			wantFields: F{"error": errors.New("kaput")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, fields := normalizeCall(tt.args)
			if msg != tt.wantMsg {
				t.Errorf("msg = %q, want %q", msg, tt.wantMsg)
			}
			if tt.wantFields == nil {
				if len(fields) != 0 {
					t.Errorf("fields = %v, want none", fields)
				}
				return
			}
			if len(fields) != len(tt.wantFields) {
				t.Fatalf("fields = %v, want %v", fields, tt.wantFields)
			}
			for k, want := range tt.wantFields {
				got := fields[k]
				if err, ok := want.(error); ok {
					gotErr, isErr := got.(error)
					if !isErr || gotErr.Error() != err.Error() {
						t.Errorf("field %q = %v, want error %q", k, got, err)
					}
					continue
				}
				if !reflect.DeepEqual(got, want) {
					t.Errorf("field %q = %v, want %v", k, got, want)
				}
			}
		})
	}
}

func TestNormalizeCall_DoesNotMutateCallerMap(t *testing.T) {
	in := F{"msg": "hello", "a": 1}
	normalizeCall([]any{in})

	if _, ok := in["msg"]; !ok {
		t.Error("caller map was mutated")
	}
}

func TestNormalizeErrors(t *testing.T) {
	fields := normalizeErrors(F{
		"error": errors.New("top"),
		"cause": errors.New("nested"),
		"plain": "ok",
	})

	if fields["error"] != "top" {
		t.Errorf("error = %v, want %q", fields["error"], "top")
	}
	if fields["cause"] != "nested" {
		t.Errorf("cause = %v, want stringified error", fields["cause"])
	}
	if fields["plain"] != "ok" {
		t.Errorf("plain = %v, want untouched", fields["plain"])
	}
}
