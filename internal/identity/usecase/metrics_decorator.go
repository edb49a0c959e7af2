package usecase

import (
	"context"
	"time"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	"github.com/fs9io/identity/internal/metrics"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for token issuance.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	input *identityDomain.IssueTokenInput,
) (*identityDomain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Issue(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "tokens", "token_issue", status)
	t.metrics.RecordDuration(ctx, "tokens", "token_issue", time.Since(start), status)

	return output, err
}

// Validate records metrics for token validation. An invalid verdict is still a
// "success" here: the check ran to completion and produced an answer. Only
// infrastructure failures count as errors.
func (t *tokenUseCaseWithMetrics) Validate(
	ctx context.Context,
	tokenString string,
) (*identityDomain.TokenVerdict, error) {
	start := time.Now()
	verdict, err := t.next.Validate(ctx, tokenString)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "tokens", "token_validate", status)
	t.metrics.RecordDuration(ctx, "tokens", "token_validate", time.Since(start), status)

	return verdict, err
}

// Refresh records metrics for token refresh.
func (t *tokenUseCaseWithMetrics) Refresh(
	ctx context.Context,
	input *identityDomain.RefreshTokenInput,
) (*identityDomain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Refresh(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "tokens", "token_refresh", status)
	t.metrics.RecordDuration(ctx, "tokens", "token_refresh", time.Since(start), status)

	return output, err
}

// Revoke records metrics for token revocation.
func (t *tokenUseCaseWithMetrics) Revoke(ctx context.Context, tokenString string) error {
	start := time.Now()
	err := t.next.Revoke(ctx, tokenString)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "tokens", "token_revoke", status)
	t.metrics.RecordDuration(ctx, "tokens", "token_revoke", time.Since(start), status)

	return err
}

// CleanupRevocations records metrics for revocation garbage collection.
func (t *tokenUseCaseWithMetrics) CleanupRevocations(
	ctx context.Context,
	days int,
	dryRun bool,
) (int64, error) {
	start := time.Now()
	count, err := t.next.CleanupRevocations(ctx, days, dryRun)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "tokens", "revocation_cleanup", status)
	t.metrics.RecordDuration(ctx, "tokens", "revocation_cleanup", time.Since(start), status)

	return count, err
}
