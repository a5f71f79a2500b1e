package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	apperrors "github.com/edgard/birthdaybot/internal/errors"
)

func TestCode(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("disk full")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "validation", err: apperrors.NewValidationError("bad name", nil), want: apperrors.CodeValidation},
		{name: "persistence", err: apperrors.NewPersistenceError("insert failed", cause), want: apperrors.CodePersistence},
		{name: "delivery", err: apperrors.NewDeliveryError("send failed", cause), want: apperrors.CodeDelivery},
		{name: "unexpected", err: apperrors.NewUnexpectedError("panic", nil), want: apperrors.CodeUnexpected},
		{name: "config", err: apperrors.NewConfigError("missing token", nil), want: apperrors.CodeConfig},
		{name: "wrapped", err: fmt.Errorf("tick: %w", apperrors.NewPersistenceError("list", cause)), want: apperrors.CodePersistence},
		{name: "plain error", err: cause, want: apperrors.CodeUnknown},
		{name: "nil", err: nil, want: apperrors.CodeUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := apperrors.Code(tc.err); got != tc.want {
				t.Errorf("Code() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("connection reset")
	err := apperrors.NewDeliveryError("failed to notify owner 7", cause)

	if got, want := err.Error(), "failed to notify owner 7: connection reset"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if !apperrors.HasCode(err, apperrors.CodeDelivery) {
		t.Error("HasCode() should match the delivery code")
	}
	if apperrors.HasCode(nil, apperrors.CodeUnknown) {
		t.Error("HasCode(nil) should be false")
	}

	bare := apperrors.NewValidationError("name too short", nil)
	if got := bare.Error(); got != "name too short" {
		t.Errorf("Error() without cause = %q", got)
	}
}
