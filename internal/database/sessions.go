package database

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/klingmotionai-bot/klingmotionai/internal/session"
	"golang.org/x/crypto/blake2b"
)

func (s *SQLiteStore) SessionStore() session.Store {
	return s
}

// hashID maps a raw session ID to its at-rest form. Keyed so that rows
// can't be correlated with IDs without the server secret.
func (s *SQLiteStore) hashID(id string) string {
	h, _ := blake2b.New256(s.hashKey[:])
	h.Write([]byte(id))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *SQLiteStore) Insert(sess *session.Session) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions
			(id_hash, user_id, name, email, avatar, provider,
			 offer_completed, created_at, expires_at)
		VALUES (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8, ?9);`,
		s.hashID(sess.ID),
		sess.User.ID,
		sess.User.Name,
		sess.User.Email,
		sess.User.Avatar,
		sess.User.Provider,
		boolToInt(sess.OfferCompleted),
		sess.CreatedAt.Unix(),
		sess.ExpiresAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("couldn't insert into sessions: %v", err)
	}
	return nil
}

func (s *SQLiteStore) Get(
	id string,
	now time.Time,
) (
	*session.Session,
	error,
) {
	row := s.db.QueryRow(`
		SELECT user_id, name, email, avatar, provider,
		       offer_completed, created_at, expires_at
		FROM sessions
		WHERE id_hash=?1;`,
		s.hashID(id),
	)

	var offerCompleted int
	var createdAt, expiresAt int64
	sess := &session.Session{ID: id}
	err := row.Scan(
		&sess.User.ID,
		&sess.User.Name,
		&sess.User.Email,
		&sess.User.Avatar,
		&sess.User.Provider,
		&offerCompleted,
		&createdAt,
		&expiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't scan session: %v", err)
	}

	sess.OfferCompleted = offerCompleted != 0
	sess.CreatedAt = time.Unix(createdAt, 0)
	sess.ExpiresAt = time.Unix(expiresAt, 0)

	if sess.Expired(now) {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

func (s *SQLiteStore) Delete(id string) error {
	_, err := s.db.Exec(`
		DELETE FROM sessions
		WHERE id_hash=?1;`,
		s.hashID(id),
	)
	if err != nil {
		return fmt.Errorf("couldn't delete from sessions: %v", err)
	}
	return nil
}

func (s *SQLiteStore) SetOfferCompleted(id string) error {
	result, err := s.db.Exec(`
		UPDATE sessions
		SET offer_completed=1
		WHERE id_hash=?1;`,
		s.hashID(id),
	)
	if err != nil {
		return fmt.Errorf("couldn't update sessions: %v", err)
	}
	if resultsEmpty(result) {
		return session.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteExpired(now time.Time) (int, error) {
	result, err := s.db.Exec(`
		DELETE FROM sessions
		WHERE expires_at < ?1;`,
		now.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("couldn't delete expired sessions: %v", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(count), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func resultsEmpty(result sql.Result) bool {
	count, err := result.RowsAffected()
	if err != nil {
		return false
	}
	return count == 0
}
