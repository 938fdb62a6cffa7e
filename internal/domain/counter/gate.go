package counter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Gate allows at most one qualifying action per client per cooldown window.
//
// Clients are identified by an opaque key, normally the remote address. An
// empty key is not special-cased: every keyless request shares one bucket.
// Windows are measured in wall-clock seconds, so a clock stepping backwards
// can release a blocked client early.
type Gate struct {
	repo     Repository
	policies Policies
	logger   *slog.Logger
}

// NewGate creates a gate enforcing the given per-kind cooldowns.
func NewGate(repo Repository, policies Policies, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := make(Policies, len(policies))
	for kind, cooldown := range policies {
		p[kind] = cooldown
	}
	return &Gate{repo: repo, policies: p, logger: logger}
}

// Cooldown returns the configured window for kind.
func (g *Gate) Cooldown(kind ActionKind) (time.Duration, bool) {
	cooldown, ok := g.policies[kind]
	return cooldown, ok
}

// TryConsume decides whether clientKey may perform kind at now and records it
// if so. Blocked attempts mutate nothing.
func (g *Gate) TryConsume(ctx context.Context, clientKey string, kind ActionKind, now time.Time) (Decision, error) {
	cooldown, ok := g.policies[kind]
	if !ok {
		return Blocked, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	recorded, err := g.repo.Consume(ctx, kind, clientKey, now, cooldown)
	if err != nil {
		return Blocked, fmt.Errorf("%w: consuming %s: %w", ErrStorageUnavailable, kind, err)
	}
	if !recorded {
		g.logger.Debug("action blocked", "kind", kind, "client", clientKey)
		return Blocked, nil
	}
	return Allowed, nil
}

// Like consumes a like and reports a blocked attempt as ErrRateLimited.
func (g *Gate) Like(ctx context.Context, clientKey string, now time.Time) error {
	decision, err := g.TryConsume(ctx, clientKey, KindLike, now)
	if err != nil {
		return err
	}
	if decision == Blocked {
		return ErrRateLimited
	}
	return nil
}

// View consumes a page view. A blocked view is not an error.
func (g *Gate) View(ctx context.Context, clientKey string, now time.Time) error {
	_, err := g.TryConsume(ctx, clientKey, KindView, now)
	return err
}
