package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseCreate,
				Kind:   KindNilPointer,
				Path:   []string{"isolate", "counter"},
				GoType: "wasmbind.Accountant",
				Detail: "accountant required",
			},
			contains: []string{"[create]", "nil_pointer", "isolate.counter", "wasmbind.Accountant", "accountant required"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseResource,
				Kind:  KindNotFound,
			},
			contains: []string{"[resource]", "not_found"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRuntime,
				Kind:   KindInstantiation,
				Detail: "instantiate host module",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[runtime]", "instantiation", "instantiate host module", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseHost,
		Kind:  KindRegistration,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause through Unwrap")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseResource,
		Kind:  KindClosed,
		Path:  []string{"table"},
	}

	if !err.Is(&Error{Phase: PhaseResource, Kind: KindClosed}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseRuntime, Kind: KindClosed}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseResource, Kind: KindNotFound}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseResource, Kind: KindClosed}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseCreate, KindNilPointer).
		Path("isolate", "counter").
		GoType("*main.counter").
		Value(8).
		Cause(cause).
		Detail("expected %s, got %s", "accountant", "nil").
		Build()

	if err.Phase != PhaseCreate {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseCreate)
	}
	if err.Kind != KindNilPointer {
		t.Errorf("Kind = %v, want %v", err.Kind, KindNilPointer)
	}
	if len(err.Path) != 2 || err.Path[0] != "isolate" || err.Path[1] != "counter" {
		t.Errorf("Path = %v, want [isolate counter]", err.Path)
	}
	if err.GoType != "*main.counter" {
		t.Errorf("GoType = %v, want '*main.counter'", err.GoType)
	}
	if err.Value != 8 {
		t.Errorf("Value = %v, want 8", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected accountant, got nil" {
		t.Errorf("Detail = %v, want 'expected accountant, got nil'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NilPointer", func(t *testing.T) {
		err := NilPointer(PhaseCreate, nil, "wasmbind.Accountant")
		if err.Kind != KindNilPointer {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNilPointer)
		}
		if err.GoType != "wasmbind.Accountant" {
			t.Errorf("GoType = %v", err.GoType)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseResource, nil, 1, 2)
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if err.Value != uint32(2) {
			t.Errorf("Value = %v, want 2", err.Value)
		}
	})

	t.Run("NotInitialized", func(t *testing.T) {
		err := NotInitialized(PhaseCreate, "constructor")
		if err.Kind != KindNotInitialized || !strings.Contains(err.Detail, "constructor") {
			t.Errorf("unexpected error %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseResource, "handle", "7")
		if err.Kind != KindNotFound || !strings.Contains(err.Detail, `"7"`) {
			t.Errorf("unexpected error %v", err)
		}
	})

	t.Run("Closed", func(t *testing.T) {
		err := Closed(PhaseRuntime, "isolate")
		if err.Kind != KindClosed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindClosed)
		}
	})

	t.Run("OutstandingBorrow", func(t *testing.T) {
		err := OutstandingBorrow(3, 2)
		if err.Kind != KindOutstandingBorrow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutstandingBorrow)
		}
		if err.Value != uint32(3) {
			t.Errorf("Value = %v, want 3", err.Value)
		}
	})

	t.Run("Registration", func(t *testing.T) {
		cause := errors.New("boom")
		err := Registration(PhaseHost, "wasmbind:host", cause)
		if !errors.Is(err, cause) {
			t.Error("Registration should wrap cause")
		}
		if !strings.Contains(err.Error(), "[host] registration at wasmbind:host") {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(PhaseConfig, KindInvalidInput, cause, "bad limit")
		if err.Kind != KindInvalidInput || !errors.Is(err, cause) {
			t.Errorf("unexpected error %v", err)
		}
	})
}
