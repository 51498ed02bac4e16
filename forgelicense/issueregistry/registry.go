// Package issueregistry records fabricated licenses so an issuer can
// audit what was handed out, to whom, and when. Implementations exist for
// PostgreSQL and MongoDB; both store only a digest of the token, never
// the token itself.
package issueregistry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Token formats recorded in the registry.
const (
	FormatSealed  = "sealed"
	FormatDerived = "derived"
)

// ErrIssueNotFound is returned by Get when no record matches.
var ErrIssueNotFound = errors.New("issued license not found")

// Issue is one fabricated license record.
type Issue struct {
	ID           string    `json:"id" bson:"_id"`
	Format       string    `json:"format" bson:"format"`
	Product      string    `json:"product" bson:"product"`
	Organisation string    `json:"organisation" bson:"organisation"`
	TokenDigest  string    `json:"token_digest" bson:"token_digest"`
	IssuedAt     time.Time `json:"issued_at" bson:"issued_at"`
}

// Registry persists issued-license records.
type Registry interface {
	// Record stores an issue. A missing ID or IssuedAt is filled in;
	// the stored record is returned.
	Record(ctx context.Context, issue Issue) (*Issue, error)

	// Get returns the record with the given id, or ErrIssueNotFound.
	Get(ctx context.Context, id string) (*Issue, error)

	// List returns all records for an organisation, newest first.
	List(ctx context.Context, organisation string) ([]Issue, error)

	// Count returns the number of records for an organisation.
	Count(ctx context.Context, organisation string) (int, error)

	// Prune removes records issued before now-olderThan and returns the
	// number removed.
	Prune(ctx context.Context, olderThan time.Duration) (int, error)

	// Close releases any resources held by the registry.
	Close(ctx context.Context) error
}

// TokenDigest is the stored fingerprint of a token: SHA-256 hex over the
// wrapped wire form.
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// normalize fills the generated fields of an issue before storage.
func normalize(issue Issue) Issue {
	if issue.ID == "" {
		issue.ID = uuid.NewString()
	}
	if issue.IssuedAt.IsZero() {
		issue.IssuedAt = time.Now()
	}
	return issue
}
