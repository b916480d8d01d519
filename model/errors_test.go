package model

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := Errorf(CodeUnknownProduct, "product %q not found", "p9")
	if !errors.Is(err, ErrUnknownProduct) {
		t.Fatal("expected errors.Is to match by code")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("expected different codes not to match")
	}
	wrapped := fmt.Errorf("add to cart: %w", err)
	if CodeOf(wrapped) != CodeUnknownProduct {
		t.Fatalf("expected code through wrapping, got %q", CodeOf(wrapped))
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodePersistenceFailure, "save users", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if err.Error() != "save users: disk full" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestCommitted(t *testing.T) {
	if !Committed(nil) {
		t.Fatal("nil error should count as committed")
	}
	if !Committed(Wrap(CodePersistenceFailure, "save", errors.New("x"))) {
		t.Fatal("persistence failure keeps the in-memory change")
	}
	if Committed(ErrInsufficientFunds) {
		t.Fatal("rejected operation must not count as committed")
	}
}

func TestCodesHaveDistinctMessages(t *testing.T) {
	codes := []Code{
		CodeInvalidInput, CodeDuplicateUser, CodeNotFound, CodeInvalidCredentials,
		CodeUnknownProduct, CodeInvalidAmount, CodeInvalidPin, CodeEmptyCart,
		CodePinNotSet, CodeInvalidPinEntered, CodeInsufficientFunds, CodePersistenceFailure,
		CodeNotLoggedIn, CodeForbidden, CodeCheckoutClosed,
	}
	seen := map[string]Code{}
	for _, c := range codes {
		msg := c.Message()
		if prev, ok := seen[msg]; ok {
			t.Fatalf("codes %s and %s share message %q", prev, c, msg)
		}
		seen[msg] = c
	}
	if CodeInsufficientFunds.HTTPStatus() != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status for insufficient funds")
	}
	if CodePersistenceFailure.HTTPStatus() != http.StatusInternalServerError {
		t.Fatalf("unexpected status for persistence failure")
	}
}
