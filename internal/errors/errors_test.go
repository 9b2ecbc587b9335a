package errors

import (
	"context"
	"fmt"
	"testing"
)

// TestValidationJoinsAllMessages verifies every violation survives aggregation in order
func TestValidationJoinsAllMessages(t *testing.T) {
	err := Validation([]string{"quantity must be at least 100", "width must be between 10 and 1000 mm"})

	want := "quantity must be at least 100; width must be between 10 and 1000 mm"
	if err.Message != want {
		t.Fatalf("Message = %q, want %q", err.Message, want)
	}
	if !IsType(err, TypeValidation) {
		t.Fatalf("expected %s, got %s", TypeValidation, err.Type)
	}

	got := Violations(err)
	if len(got) != 2 || got[0] != "quantity must be at least 100" {
		t.Errorf("Violations() = %v", got)
	}
}

func TestViolationsReturnsCopy(t *testing.T) {
	err := Validation([]string{"a", "b"})
	got := Violations(err)
	got[0] = "mutated"

	if again := Violations(err); again[0] != "a" {
		t.Errorf("violations were mutated through returned slice: %v", again)
	}
}

func TestIsTypeFollowsWrapping(t *testing.T) {
	base := Validation([]string{"height must be between 10 and 1000 mm"})
	wrapped := fmt.Errorf("quote request 2: %w", base)

	if !IsType(wrapped, TypeValidation) {
		t.Error("IsType should see through fmt.Errorf wrapping")
	}
	if IsType(wrapped, TypeInternal) {
		t.Error("IsType matched the wrong type")
	}
	if Violations(wrapped) == nil {
		t.Error("Violations should see through wrapping")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "plain",
			err:  Input("missing bag type"),
			want: "[INPUT_ERROR] missing bag type",
		},
		{
			name: "with cause",
			err:  Internal("quote aborted", context.Canceled),
			want: "[INTERNAL_ERROR] quote aborted: context canceled",
		},
		{
			name: "pricing",
			err:  Pricing("pouch: quantity must be positive", nil),
			want: "[PRICING_ERROR] pouch: quantity must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestViolationsOnOtherErrors(t *testing.T) {
	if got := Violations(Input("bad")); got != nil {
		t.Errorf("expected nil violations for input error, got %v", got)
	}
	if got := Violations(nil); got != nil {
		t.Errorf("expected nil violations for nil error, got %v", got)
	}
}
