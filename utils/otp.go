package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// OTPStore keeps password-recovery codes in process memory, keyed by email.
// This is non-durable state and only holds up under a single-process
// deployment; Redis would be the next step if that assumption breaks.
type OTPStore struct {
	mu      sync.Mutex
	entries map[string]otpEntry
	ttl     time.Duration
}

type otpEntry struct {
	code    string
	expires time.Time
}

func NewOTPStore(ttl time.Duration) *OTPStore {
	return &OTPStore{
		entries: make(map[string]otpEntry),
		ttl:     ttl,
	}
}

// Issue generates a 6-digit code for the email, replacing any previous one.
func (s *OTPStore) Issue(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)

	s.mu.Lock()
	s.entries[email] = otpEntry{code: code, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	return code, nil
}

// Verify consumes the code for the email. A correct code is single-use; an
// expired entry is removed regardless of the supplied code.
func (s *OTPStore) Verify(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return fmt.Errorf("no OTP requested for this email")
	}
	if time.Now().After(entry.expires) {
		delete(s.entries, email)
		return fmt.Errorf("OTP has expired")
	}
	if entry.code != code {
		return fmt.Errorf("invalid OTP")
	}

	delete(s.entries, email)
	return nil
}
