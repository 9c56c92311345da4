package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golden-fork/internal/kvstore"
	"golden-fork/internal/logger"
	"golden-fork/internal/models"
	"golden-fork/internal/services/booking"
	"golden-fork/internal/services/cart"
	"golden-fork/internal/services/coupon"
	"golden-fork/internal/services/pricing"
	"golden-fork/internal/validation"
)

type fakeStore struct {
	user      *models.User
	findErr   error
	insertErr error
	inserted  []*models.NewOrder
	onInsert  func()
}

func (f *fakeStore) FindUserByMobile(_ context.Context, mobile string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.user == nil || f.user.Mobile != mobile {
		return nil, models.ErrNotFound
	}
	return f.user, nil
}

func (f *fakeStore) InsertOrder(_ context.Context, o *models.NewOrder) error {
	if f.onInsert != nil {
		f.onInsert()
	}
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, o)
	return nil
}

type fakePublisher struct {
	err  error
	sent []*models.OrderPlacedMessage
}

func (f *fakePublisher) PublishOrderPlaced(_ context.Context, msg *models.OrderPlacedMessage) error {
	f.sent = append(f.sent, msg)
	return f.err
}

// testCoupons is the bundled catalog without expiry dates so the tests do not
// depend on the wall clock
func testCoupons() []models.Coupon {
	cs := coupon.DefaultCatalog()
	for i := range cs {
		cs[i].ExpiryDate = ""
	}
	return cs
}

type fixture struct {
	svc   *Service
	store *fakeStore
	pub   *fakePublisher
	sess  *kvstore.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := &fakeStore{user: &models.User{ID: "u1", Name: "Asha", Mobile: "9876543210", Address: "12 Civil Lines"}}
	pub := &fakePublisher{}
	svc := NewService(store, pub, Options{
		Coupons:    testCoupons(),
		FeePolicy:  pricing.DefaultFeePolicy(),
		BranchName: "Moti Mahal - Sitabuldi",
		Location:   time.UTC,
	}, logger.NewNop())
	svc.newID = func() string { return "order-1" }

	sess := kvstore.NewSessions(kvstore.NewMemory()).Open("s1")
	return &fixture{svc: svc, store: store, pub: pub, sess: sess}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	require.NoError(t, f.sess.Store.Set(context.Background(), kvstore.KeyUserMobile, "9876543210"))
}

func (f *fixture) fillCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	c := cart.ForSession(f.sess, logger.NewNop())
	_, err := c.Add(ctx, models.Product{ID: "a", Name: "Paneer Tikka", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = c.Add(ctx, models.Product{ID: "a", Name: "Paneer Tikka", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = c.Add(ctx, models.Product{ID: "b", Name: "Lassi", Price: decimal.NewFromInt(50)})
	require.NoError(t, err)
}

func (f *fixture) cartLen(t *testing.T) int {
	t.Helper()
	items, err := cart.ForSession(f.sess, logger.NewNop()).Items(context.Background())
	require.NoError(t, err)
	return len(items)
}

func TestPlaceOrder_DeliveryWithCoupon(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t)
	f.fillCart(t)
	_, err := coupon.NewApplier(f.sess.Store, testCoupons(), logger.NewNop()).Apply(ctx, "WELCOME10")
	require.NoError(t, err)

	receipt, err := f.svc.PlaceOrder(ctx, f.sess, models.CheckoutRequest{Mode: models.ModeDelivery, PaymentMethod: "upi"})
	require.NoError(t, err)

	assert.Equal(t, "order-1", receipt.OrderID)
	assert.True(t, receipt.Total.Equal(decimal.NewFromInt(227)), "total %s", receipt.Total)
	assert.Equal(t, "upi", receipt.PaymentMethod)
	assert.Equal(t, "confirmed", receipt.Status)

	require.Len(t, f.store.inserted, 1)
	o := f.store.inserted[0]
	assert.Equal(t, "u1", o.UserID)
	assert.Equal(t, "delivery", o.OrderType)
	assert.Equal(t, "Moti Mahal - Sitabuldi", o.BranchName)
	assert.Equal(t, "12 Civil Lines", o.DeliveryAddress)
	assert.Len(t, o.Items, 2)

	assert.Equal(t, 0, f.cartLen(t))
	cur, err := coupon.NewApplier(f.sess.Store, nil, logger.NewNop()).Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	require.Len(t, f.pub.sent, 1)
	assert.Equal(t, "WELCOME10", f.pub.sent[0].CouponCode)
	assert.Equal(t, "order-1", f.pub.sent[0].OrderID)
}

func TestPlaceOrder_NotLoggedIn(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)

	_, err := f.svc.PlaceOrder(context.Background(), f.sess, models.CheckoutRequest{})
	assert.ErrorIs(t, err, models.ErrNotLoggedIn)
	assert.Equal(t, 2, f.cartLen(t))
}

func TestPlaceOrder_UnknownUser(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sess.Store.Set(context.Background(), kvstore.KeyUserMobile, "1111111111"))
	f.fillCart(t)

	_, err := f.svc.PlaceOrder(context.Background(), f.sess, models.CheckoutRequest{})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPlaceOrder_ValidationLeavesCart(t *testing.T) {
	f := newFixture(t)
	f.store.user = &models.User{ID: "u1", Mobile: "9876543210"}
	f.login(t)
	f.fillCart(t)

	_, err := f.svc.PlaceOrder(context.Background(), f.sess, models.CheckoutRequest{Mode: models.ModeTakeaway})
	var ve validation.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "please enter name and phone", ve.Message)
	assert.Empty(t, f.store.inserted)
	assert.Equal(t, 2, f.cartLen(t))
}

func TestPlaceOrder_BadScheduledTimeIsValidation(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.fillCart(t)

	_, err := f.svc.PlaceOrder(context.Background(), f.sess, models.CheckoutRequest{Mode: models.ModeTakeaway, ScheduledAt: "tomorrow 7pm"})
	var ve validation.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "scheduled", ve.Field)
	assert.False(t, models.IsRemote(err))
	assert.Empty(t, f.store.inserted)
	assert.Equal(t, 2, f.cartLen(t))
}

func TestPlaceOrder_ScheduledTimeStoredInUTC(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.fillCart(t)

	_, err := f.svc.PlaceOrder(context.Background(), f.sess, models.CheckoutRequest{Mode: models.ModeTakeaway, ScheduledAt: "2025-11-19T19:30:00+05:30"})
	require.NoError(t, err)
	require.NotNil(t, f.store.inserted[0].ScheduledAt)
	assert.Equal(t, "2025-11-19T14:00:00Z", *f.store.inserted[0].ScheduledAt)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	_, err := f.svc.PlaceOrder(context.Background(), f.sess, models.CheckoutRequest{})
	var ve validation.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Empty(t, f.store.inserted)
}

func TestPlaceOrder_InsertFailureKeepsCartAndCoupon(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t)
	f.fillCart(t)
	_, err := coupon.NewApplier(f.sess.Store, testCoupons(), logger.NewNop()).Apply(ctx, "SAVE20")
	require.NoError(t, err)
	f.store.insertErr = errors.New("connection reset")

	_, err = f.svc.PlaceOrder(ctx, f.sess, models.CheckoutRequest{})
	require.Error(t, err)
	assert.True(t, models.IsRemote(err))

	assert.Equal(t, 2, f.cartLen(t))
	cur, _ := coupon.NewApplier(f.sess.Store, nil, logger.NewNop()).Current(ctx)
	require.NotNil(t, cur)
	assert.Equal(t, "SAVE20", cur.Code)
	assert.Empty(t, f.pub.sent)
}

func TestPlaceOrder_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.fillCart(t)
	f.pub.err = errors.New("broker down")

	receipt, err := f.svc.PlaceOrder(context.Background(), f.sess, models.CheckoutRequest{Mode: models.ModeTakeaway})
	require.NoError(t, err)
	assert.True(t, receipt.Total.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "cash", receipt.PaymentMethod)
	assert.Len(t, f.store.inserted, 1)
	assert.Equal(t, "takeaway", f.store.inserted[0].OrderType)
	assert.Empty(t, f.store.inserted[0].DeliveryAddress)
}

func TestPlaceOrder_KeepsItemsAddedDuringInsert(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t)
	f.fillCart(t)

	c := cart.ForSession(f.sess, logger.NewNop())
	f.store.onInsert = func() {
		_, err := c.Add(ctx, models.Product{ID: "late", Name: "Gulab Jamun", Price: decimal.NewFromInt(40)})
		require.NoError(t, err)
		_, err = c.Add(ctx, models.Product{ID: "a", Name: "Paneer Tikka", Price: decimal.NewFromInt(100)})
		require.NoError(t, err)
	}

	receipt, err := f.svc.PlaceOrder(ctx, f.sess, models.CheckoutRequest{Mode: models.ModeTakeaway})
	require.NoError(t, err)
	assert.True(t, receipt.Total.Equal(decimal.NewFromInt(250)), "total %s", receipt.Total)
	require.Len(t, f.store.inserted[0].Items, 2)

	left, err := c.Items(ctx)
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, "a", left[0].ID)
	assert.Equal(t, 1, left[0].Quantity)
	assert.Equal(t, "late", left[1].ID)
	assert.Equal(t, 1, left[1].Quantity)
}

func TestPlaceOrder_DineInCarriesBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t)
	f.fillCart(t)

	_, err := booking.NewService(f.sess.Store, time.UTC, logger.NewNop()).Save(ctx,
		models.Booking{Date: "2025-11-19", TimeSlot: "7:30 PM", Guests: 4},
		[]models.LineItem{
			{ID: "b", Name: "Lassi", UnitPrice: decimal.NewFromInt(50), Quantity: 1},
			{ID: "c", Name: "Kulfi", UnitPrice: decimal.NewFromInt(60), Quantity: 2},
		})
	require.NoError(t, err)

	receipt, err := f.svc.PlaceOrder(ctx, f.sess, models.CheckoutRequest{Mode: models.ModeDineIn})
	require.NoError(t, err)
	// 200 + 100 + 120, no delivery fee
	assert.True(t, receipt.Total.Equal(decimal.NewFromInt(420)), "total %s", receipt.Total)

	o := f.store.inserted[0]
	assert.Equal(t, "dinein", o.OrderType)
	require.NotNil(t, o.Guests)
	assert.Equal(t, 4, *o.Guests)
	assert.Equal(t, "7:30 PM", o.TimeSlot)
	require.NotNil(t, o.ScheduledAt)
	assert.Equal(t, "2025-11-19T19:30:00Z", *o.ScheduledAt)
	require.Len(t, o.Items, 3)
	assert.Equal(t, 2, o.Items[1].Quantity)

	b, items, err := booking.NewService(f.sess.Store, time.UTC, logger.NewNop()).Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, b)
	assert.Empty(t, items)
}

func TestMergeItems(t *testing.T) {
	got := mergeItems(
		[]models.LineItem{{ID: "a", Quantity: 1}},
		[]models.LineItem{{ID: "a", Quantity: 2}, {ID: "b", Quantity: 1}},
	)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Quantity)
	assert.Equal(t, "b", got[1].ID)
}
