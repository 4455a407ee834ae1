package offer

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// maxIssueAttempts bounds retries on a token collision. With 256 bits of
// entropy a single retry should never happen in practice.
const maxIssueAttempts = 5

// Issue mints a fresh token for ownerID and stores it. The caller is
// responsible for having authenticated ownerID; issuance itself performs
// no authentication and no I/O beyond the store insert.
func (s *Service) Issue(ownerID string) (string, error) {
	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		token, err := generateToken()
		if err != nil {
			return "", fmt.Errorf("%w: couldn't generate token: %v", ErrInternal, err)
		}

		err = s.store.Put(&Token{
			Token:     token,
			OwnerID:   ownerID,
			CreatedAt: time.Now(),
			Used:      false,
		})
		if errors.Is(err, ErrDuplicateToken) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%w: couldn't store token: %v", ErrInternal, err)
		}

		return token, nil
	}

	return "", fmt.Errorf("%w: token generation kept colliding", ErrInternal)
}

func generateToken() (string, error) {
	randomBytes := make([]byte, 32)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random token bytes: %v", err)
	}
	return hex.EncodeToString(randomBytes), nil
}
