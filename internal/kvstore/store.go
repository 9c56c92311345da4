// Package kvstore holds the per-session string-keyed blobs the ordering flow
// keeps between screens: the cart, the applied coupon, the session mobile and
// the dine-in booking. Writes overwrite the whole value.
package kvstore

import "context"

// Well-known keys
const (
	KeyCart          = "cart"
	KeyAppliedCoupon = "appliedCoupon"
	KeyUserMobile    = "userMobile"
	KeyDineinBooking = "dineinBooking"
	KeyPreOrderItems = "preOrderItems"
)

// Store is a string-keyed blob store. Get reports ok=false for an absent key.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Scoped namespaces every key under a session id so one backing store can
// serve many sessions
type Scoped struct {
	inner   Store
	session string
}

func NewScoped(inner Store, session string) *Scoped {
	return &Scoped{inner: inner, session: session}
}

func (s *Scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, s.key(key))
}

func (s *Scoped) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.key(key), value)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.key(key))
}

func (s *Scoped) key(k string) string {
	return s.session + ":" + k
}
