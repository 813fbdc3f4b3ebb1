package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("record not found")
	err := Wrapf(cause, CodeNotFound, "查询连接 uuid=%s", "C123")

	if !errors.Is(err, cause) {
		t.Fatal("wrapped error should match cause via errors.Is")
	}
	var codeErr *CodeError
	if !errors.As(err, &codeErr) {
		t.Fatal("errors.As should find CodeError")
	}
	if codeErr.Code != CodeNotFound {
		t.Fatalf("code = %d, want %d", codeErr.Code, CodeNotFound)
	}
}

func TestGetCodeDefaultsToServerBusy(t *testing.T) {
	if got := GetCode(errors.New("plain")); got != CodeServerBusy {
		t.Fatalf("GetCode(plain) = %d, want %d", got, CodeServerBusy)
	}
	wrapped := fmt.Errorf("outer: %w", New(CodeForbidden, "无权限"))
	if got := GetCode(wrapped); got != CodeForbidden {
		t.Fatalf("GetCode(wrapped) = %d, want %d", got, CodeForbidden)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code int
		want int
	}{
		{CodeInvalidParam, http.StatusBadRequest},
		{CodeConflict, http.StatusBadRequest}, // Conflict 按设计归入 400
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeUserNotExist, http.StatusNotFound},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeDBError, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.code); got != c.want {
			t.Errorf("HTTPStatus(%d) = %d, want %d", c.code, got, c.want)
		}
	}
}
