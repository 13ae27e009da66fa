package utils

import (
	"testing"
	"time"
)

func TestOTPIssueAndVerify(t *testing.T) {
	store := NewOTPStore(time.Minute)

	code, err := store.Issue("a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("code %q is not 6 digits", code)
	}

	if err := store.Verify("a@b.com", code); err != nil {
		t.Errorf("Verify: %v", err)
	}
	// single use
	if err := store.Verify("a@b.com", code); err == nil {
		t.Error("expected second Verify to fail")
	}
}

func TestOTPWrongCode(t *testing.T) {
	store := NewOTPStore(time.Minute)

	code, _ := store.Issue("a@b.com")
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	if err := store.Verify("a@b.com", wrong); err == nil {
		t.Error("expected wrong code to fail")
	}
	// the right code still works after a wrong attempt
	if err := store.Verify("a@b.com", code); err != nil {
		t.Errorf("Verify after wrong attempt: %v", err)
	}
}

func TestOTPExpiry(t *testing.T) {
	store := NewOTPStore(-time.Second)

	code, _ := store.Issue("a@b.com")
	if err := store.Verify("a@b.com", code); err == nil {
		t.Error("expected expired code to fail")
	}
}

func TestOTPReissueReplaces(t *testing.T) {
	store := NewOTPStore(time.Minute)

	first, _ := store.Issue("a@b.com")
	second, _ := store.Issue("a@b.com")

	if first != second {
		if err := store.Verify("a@b.com", first); err == nil {
			t.Error("stale code must not verify after reissue")
		}
	}
	if err := store.Verify("a@b.com", second); err != nil {
		t.Errorf("Verify latest code: %v", err)
	}
}
