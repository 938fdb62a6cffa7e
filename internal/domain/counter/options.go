package counter

import "time"

// Default cooldown windows.
const (
	DefaultLikeCooldown = 60 * time.Second
	DefaultViewCooldown = time.Hour
)

// Policies maps each action kind to its cooldown window.
type Policies map[ActionKind]time.Duration

// DefaultPolicies returns the stock like and view cooldowns.
func DefaultPolicies() Policies {
	return Policies{
		KindLike: DefaultLikeCooldown,
		KindView: DefaultViewCooldown,
	}
}
