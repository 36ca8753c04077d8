package job

import (
	"context"

	"billtrack/internal/pkg/timeutil"
	"billtrack/internal/repo"
)

// TokenCleanupJob purges access tokens past their expiry. Expired tokens
// are already rejected at the auth middleware; this keeps the table from
// growing without bound.
type TokenCleanupJob struct {
	tokens *repo.TokenRepo
}

func NewTokenCleanupJob(tokens *repo.TokenRepo) *TokenCleanupJob {
	return &TokenCleanupJob{tokens: tokens}
}

func (j *TokenCleanupJob) Name() string {
	return "token_cleanup"
}

func (j *TokenCleanupJob) Run(ctx context.Context) error {
	_, err := j.tokens.DeleteExpired(ctx, timeutil.NowUnix())
	return err
}
