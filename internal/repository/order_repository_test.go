package repository_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shoppay/internal/domain"
	"github.com/nikolayk812/shoppay/internal/port"
	"github.com/nikolayk812/shoppay/internal/repository"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"golang.org/x/text/currency"
)

type orderRepositorySuite struct {
	suite.Suite

	repo      port.OrderRepository
	pool      *pgxpool.Pool
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(orderRepositorySuite))
}

// before all tests in the suite
func (suite *orderRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo, err = repository.NewOrder(suite.pool)
	suite.Require().NoError(err)
}

// after all tests in the suite
func (suite *orderRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *orderRepositorySuite) TestInsertOrder() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		orderFunc func() domain.Order
		wantError string
	}{
		{
			name:      "valid order with all fields: ok",
			orderFunc: randomOrder,
		},
		{
			name: "valid order, explicit order number: ok",
			orderFunc: func() domain.Order {
				o := randomOrder()
				o.OrderNumber = "ORD-" + gofakeit.DigitN(8)
				return o
			},
		},
		{
			name: "valid order, no provider order yet: ok",
			orderFunc: func() domain.Order {
				o := randomOrder()
				o.ProviderOrderID = nil
				return o
			},
		},
		{
			name: "invalid order, no customer email: fail",
			orderFunc: func() domain.Order {
				o := randomOrder()
				o.CustomerEmail = ""
				return o
			},
			wantError: "customer email is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			ttOrder := tt.orderFunc()

			orderID, err := suite.repo.InsertOrder(ctx, ttOrder)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			actualOrder, err := suite.repo.GetOrder(ctx, orderID)
			require.NoError(t, err)

			expected := ttOrder
			expected.ID = orderID
			expected.Status = domain.OrderStatusPending
			expected.PaymentStatus = domain.PaymentStatusPending

			assertOrder(t, expected, actualOrder)
			assert.NotEmpty(t, actualOrder.OrderNumber)
			if ttOrder.OrderNumber != "" {
				assert.Equal(t, ttOrder.OrderNumber, actualOrder.OrderNumber)
			}
			assert.Nil(t, actualOrder.ConfirmedAt)
		})
	}
}

func (suite *orderRepositorySuite) TestGetOrder() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		orderID   uuid.UUID
		wantError string
	}{
		{
			name:      "non-existing order: not found",
			orderID:   uuid.MustParse(gofakeit.UUID()),
			wantError: "q.GetOrder: order not found",
		},
		{
			name:      "empty order ID: error",
			orderID:   uuid.Nil,
			wantError: "orderID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			_, err := suite.repo.GetOrder(t.Context(), tt.orderID)
			require.EqualError(t, err, tt.wantError)
			if tt.orderID != uuid.Nil {
				assert.ErrorIs(t, err, domain.ErrOrderNotFound)
			}
		})
	}
}

func (suite *orderRepositorySuite) TestConfirmPayment() {
	defer suite.deleteAll()

	tests := []struct {
		name             string
		confirmationFunc func(orderID uuid.UUID, o domain.Order) domain.PaymentConfirmation
		wantError        string
	}{
		{
			name: "matching id pair: ok",
			confirmationFunc: func(orderID uuid.UUID, o domain.Order) domain.PaymentConfirmation {
				return randomConfirmation(orderID, *o.ProviderOrderID)
			},
		},
		{
			name: "provider order id of another order: not found",
			confirmationFunc: func(orderID uuid.UUID, _ domain.Order) domain.PaymentConfirmation {
				return randomConfirmation(orderID, "order_"+gofakeit.LetterN(14))
			},
			wantError: "q.ConfirmPayment: order not found",
		},
		{
			name: "non-existing order id: not found",
			confirmationFunc: func(_ uuid.UUID, o domain.Order) domain.PaymentConfirmation {
				return randomConfirmation(uuid.MustParse(gofakeit.UUID()), *o.ProviderOrderID)
			},
			wantError: "q.ConfirmPayment: order not found",
		},
		{
			name: "empty order id: error",
			confirmationFunc: func(_ uuid.UUID, o domain.Order) domain.PaymentConfirmation {
				return randomConfirmation(uuid.Nil, *o.ProviderOrderID)
			},
			wantError: "orderID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			ttOrder := randomOrder()
			orderID := suite.insertOrders(ttOrder)[0]

			confirmation := tt.confirmationFunc(orderID, ttOrder)

			updated, err := suite.repo.ConfirmPayment(ctx, confirmation)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)

				// no partial state
				stored, err := suite.repo.GetOrder(ctx, orderID)
				require.NoError(t, err)
				assert.Equal(t, domain.PaymentStatusPending, stored.PaymentStatus)
				assert.Equal(t, domain.OrderStatusPending, stored.Status)
				assert.Nil(t, stored.ProviderPaymentID)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, orderID, updated.ID)
			assert.Equal(t, domain.PaymentStatusPaid, updated.PaymentStatus)
			assert.Equal(t, domain.OrderStatusConfirmed, updated.Status)
			assert.Equal(t, confirmation.ProviderPaymentID, lo.FromPtr(updated.ProviderPaymentID))
			assert.Equal(t, confirmation.ProviderSignature, lo.FromPtr(updated.ProviderSignature))
			require.NotNil(t, updated.ConfirmedAt)
		})
	}
}

func (suite *orderRepositorySuite) TestConfirmPaymentKeepsConfirmedAt() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	o := randomOrder()
	orderID := suite.insertOrders(o)[0]
	confirmation := randomConfirmation(orderID, *o.ProviderOrderID)

	first, err := suite.repo.ConfirmPayment(ctx, confirmation)
	require.NoError(t, err)
	require.NotNil(t, first.ConfirmedAt)

	second, err := suite.repo.ConfirmPayment(ctx, confirmation)
	require.NoError(t, err)
	require.NotNil(t, second.ConfirmedAt)

	assert.True(t, first.ConfirmedAt.Equal(*second.ConfirmedAt))
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
}

func (suite *orderRepositorySuite) TestMarkPaymentFailed() {
	defer suite.deleteAll()

	tests := []struct {
		name              string
		prepareFunc       func(orderID uuid.UUID, o domain.Order) error
		wantPaymentStatus domain.PaymentStatus
		wantStatus        domain.OrderStatus
	}{
		{
			name:              "pending payment: failed",
			wantPaymentStatus: domain.PaymentStatusFailed,
			wantStatus:        domain.OrderStatusPending,
		},
		{
			name: "already paid: stays paid",
			prepareFunc: func(orderID uuid.UUID, o domain.Order) error {
				_, err := suite.repo.ConfirmPayment(suite.T().Context(), randomConfirmation(orderID, *o.ProviderOrderID))
				return err
			},
			wantPaymentStatus: domain.PaymentStatusPaid,
			wantStatus:        domain.OrderStatusConfirmed,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			o := randomOrder()
			orderID := suite.insertOrders(o)[0]

			if tt.prepareFunc != nil {
				require.NoError(t, tt.prepareFunc(orderID, o))
			}

			updated, err := suite.repo.MarkPaymentFailed(ctx, orderID)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPaymentStatus, updated.PaymentStatus)
			assert.Equal(t, tt.wantStatus, updated.Status)
		})
	}

	suite.Run("non-existing order: not found", func() {
		_, err := suite.repo.MarkPaymentFailed(suite.T().Context(), uuid.MustParse(gofakeit.UUID()))
		require.EqualError(suite.T(), err, "q.MarkPaymentFailed: order not found")
	})
}

func (suite *orderRepositorySuite) TestMarkPaidByProviderOrder() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	o := randomOrder()
	o.ProviderOrderID = lo.ToPtr("rp_1")
	orderID := suite.insertOrders(o)[0]

	once, err := suite.repo.MarkPaidByProviderOrder(ctx, "rp_1", "pay_9")
	require.NoError(t, err)

	assert.Equal(t, orderID, once.ID)
	assert.Equal(t, domain.PaymentStatusPaid, once.PaymentStatus)
	assert.Equal(t, domain.OrderStatusConfirmed, once.Status)
	assert.Equal(t, "pay_9", lo.FromPtr(once.ProviderPaymentID))
	require.NotNil(t, once.ConfirmedAt)

	// redelivery converges on the same row
	twice, err := suite.repo.MarkPaidByProviderOrder(ctx, "rp_1", "pay_9")
	require.NoError(t, err)

	assertSameRow(t, once, twice)

	_, err = suite.repo.MarkPaidByProviderOrder(ctx, "rp_unknown", "pay_9")
	require.EqualError(t, err, "q.MarkPaidByRazorpayOrder: order not found")

	_, err = suite.repo.MarkPaidByProviderOrder(ctx, "", "pay_9")
	require.EqualError(t, err, "providerOrderID is empty")
}

func (suite *orderRepositorySuite) TestMarkPaidDoesNotRegressFulfillment() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	o := randomOrder()
	orderID := suite.insertOrders(o)[0]

	_, err := suite.repo.MarkPaidByProviderOrder(ctx, *o.ProviderOrderID, "pay_"+gofakeit.LetterN(14))
	require.NoError(t, err)

	_, err = suite.repo.UpdateOrderStatus(ctx, orderID, domain.OrderStatusShipped)
	require.NoError(t, err)

	updated, err := suite.repo.MarkPaidByProviderOrder(ctx, *o.ProviderOrderID, "pay_"+gofakeit.LetterN(14))
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusShipped, updated.Status)
	assert.Equal(t, domain.PaymentStatusPaid, updated.PaymentStatus)
}

func (suite *orderRepositorySuite) TestMarkFailedByProviderOrder() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	pending := randomOrder()
	paid := randomOrder()
	suite.insertOrders(pending, paid)

	_, err := suite.repo.MarkPaidByProviderOrder(ctx, *paid.ProviderOrderID, "pay_"+gofakeit.LetterN(14))
	require.NoError(t, err)

	updated, err := suite.repo.MarkFailedByProviderOrder(ctx, *pending.ProviderOrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, updated.PaymentStatus)

	// a late failure event never overwrites a success
	updated, err = suite.repo.MarkFailedByProviderOrder(ctx, *paid.ProviderOrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, updated.PaymentStatus)

	_, err = suite.repo.MarkFailedByProviderOrder(ctx, "rp_unknown")
	require.EqualError(t, err, "q.MarkFailedByRazorpayOrder: order not found")
}

func (suite *orderRepositorySuite) TestMarkRefundedByProviderPayment() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	o := randomOrder()
	suite.insertOrders(o)

	paymentID := "pay_" + gofakeit.LetterN(14)
	_, err := suite.repo.MarkPaidByProviderOrder(ctx, *o.ProviderOrderID, paymentID)
	require.NoError(t, err)

	once, err := suite.repo.MarkRefundedByProviderPayment(ctx, paymentID, "rfnd_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRefunded, once.PaymentStatus)
	assert.Equal(t, domain.OrderStatusConfirmed, once.Status)
	assert.Equal(t, "rfnd_1", lo.FromPtr(once.ProviderRefundID))

	// refund.processed after refund.created, without a refund id, keeps the linkage
	twice, err := suite.repo.MarkRefundedByProviderPayment(ctx, paymentID, "")
	require.NoError(t, err)
	assertSameRow(t, once, twice)

	// a late failure event never overwrites a refund
	failed, err := suite.repo.MarkFailedByProviderOrder(ctx, *o.ProviderOrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRefunded, failed.PaymentStatus)

	// nor does a redelivered capture
	recaptured, err := suite.repo.MarkPaidByProviderOrder(ctx, *o.ProviderOrderID, paymentID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRefunded, recaptured.PaymentStatus)

	_, err = suite.repo.MarkRefundedByProviderPayment(ctx, "pay_unknown", "rfnd_2")
	require.EqualError(t, err, "q.MarkRefundedByRazorpayPayment: order not found")
}

func (suite *orderRepositorySuite) TestUpdateOrderStatus() {
	defer suite.deleteAll()

	tests := []struct {
		name         string
		newStatus    domain.OrderStatus
		targetIDFunc func() uuid.UUID // which order ID to update, if nil use the inserted one
		wantError    string
	}{
		{
			name:      "update status of existing order: ok",
			newStatus: domain.OrderStatusDelivered,
		},
		{
			name:      "update status of non-existing order: not found",
			newStatus: domain.OrderStatusShipped,
			targetIDFunc: func() uuid.UUID {
				return uuid.MustParse(gofakeit.UUID())
			},
			wantError: "withTx: q.LockOrderStatus: order not found",
		},
		{
			name:      "update status with empty order ID: error",
			newStatus: domain.OrderStatusShipped,
			targetIDFunc: func() uuid.UUID {
				return uuid.Nil
			},
			wantError: "orderID is empty",
		},
		{
			name:      "update status with empty status: error",
			newStatus: "",
			wantError: "status is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			ttOrder := randomOrder()
			orderID := suite.insertOrders(ttOrder)[0]

			targetOrderID := orderID
			if tt.targetIDFunc != nil {
				targetOrderID = tt.targetIDFunc()
			}

			change, err := suite.repo.UpdateOrderStatus(ctx, targetOrderID, tt.newStatus)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, domain.OrderStatusPending, change.Previous)
			assert.Equal(t, tt.newStatus, change.Order.Status)
			assert.True(t, change.BecameDelivered())

			expected := ttOrder
			expected.Status = tt.newStatus
			expected.PaymentStatus = domain.PaymentStatusPending
			assertOrder(t, expected, change.Order)
		})
	}
}

func (suite *orderRepositorySuite) TestUpdateOrderStatusTerminal() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	orderID := suite.insertOrders(randomOrder())[0]

	_, err := suite.repo.UpdateOrderStatus(ctx, orderID, domain.OrderStatusCancelled)
	require.NoError(t, err)

	_, err = suite.repo.UpdateOrderStatus(ctx, orderID, domain.OrderStatusShipped)
	require.ErrorIs(t, err, domain.ErrTerminalStatus)
	require.EqualError(t, err, "withTx: cancelled to shipped: order status is terminal")

	// setting the same terminal status again is a no-op change
	change, err := suite.repo.UpdateOrderStatus(ctx, orderID, domain.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, change.Previous)
	assert.Equal(t, domain.OrderStatusCancelled, change.Order.Status)
}

func (suite *orderRepositorySuite) TestNewOrderWithTx() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	orderID := suite.insertOrders(randomOrder())[0]

	// rolled back: the update never becomes visible
	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	change, err := repository.NewOrderWithTx(tx).UpdateOrderStatus(ctx, orderID, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, change.Order.Status)

	outside, err := suite.repo.GetOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, outside.Status)

	require.NoError(t, tx.Rollback(ctx))

	afterRollback, err := suite.repo.GetOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, afterRollback.Status)

	// committed: the caller owns the transaction boundary
	tx, err = suite.pool.Begin(ctx)
	require.NoError(t, err)

	txRepo := repository.NewOrderWithTx(tx)
	_, err = txRepo.UpdateOrderStatus(ctx, orderID, domain.OrderStatusProcessing)
	require.NoError(t, err)
	_, err = txRepo.UpdateOrderStatus(ctx, orderID, domain.OrderStatusDelivered)
	require.NoError(t, err)

	require.NoError(t, tx.Commit(ctx))

	committed, err := suite.repo.GetOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, committed.Status)
}

func (suite *orderRepositorySuite) TestSearchOrders() {
	defer suite.deleteAll()

	order1 := randomOrder()
	order2 := randomOrder()
	orderIDs := suite.insertOrders(order1, order2)

	_, err := suite.repo.MarkPaidByProviderOrder(suite.T().Context(), *order2.ProviderOrderID, "pay_"+gofakeit.LetterN(14))
	suite.Require().NoError(err)

	order2Paid := order2
	order2Paid.Status = domain.OrderStatusConfirmed
	order2Paid.PaymentStatus = domain.PaymentStatusPaid

	order1Pending := order1
	order1Pending.Status = domain.OrderStatusPending
	order1Pending.PaymentStatus = domain.PaymentStatusPending

	tests := []struct {
		name       string
		filter     domain.OrderFilter
		wantOrders []domain.Order
		wantError  string
	}{
		{
			name:      "empty filter: error",
			filter:    domain.OrderFilter{},
			wantError: "filter.Validate: all fields are empty",
		},
		{
			name:       "search by ids: 1 found",
			filter:     domain.OrderFilter{IDs: []uuid.UUID{orderIDs[0]}},
			wantOrders: []domain.Order{order1Pending},
		},
		{
			name:       "search by ids: 2 found",
			filter:     domain.OrderFilter{IDs: orderIDs},
			wantOrders: []domain.Order{order1Pending, order2Paid},
		},
		{
			name:   "search by ids: not found",
			filter: domain.OrderFilter{IDs: []uuid.UUID{uuid.MustParse(gofakeit.UUID())}},
		},
		{
			name:       "search by customer email: 1 found",
			filter:     domain.OrderFilter{CustomerEmails: []string{order1.CustomerEmail}},
			wantOrders: []domain.Order{order1Pending},
		},
		{
			name:       "search by payment status paid: 1 found",
			filter:     domain.OrderFilter{PaymentStatuses: []domain.PaymentStatus{domain.PaymentStatusPaid}},
			wantOrders: []domain.Order{order2Paid},
		},
		{
			name:   "search by status delivered: not found",
			filter: domain.OrderFilter{Statuses: []domain.OrderStatus{domain.OrderStatusDelivered}},
		},
		{
			name: "search by createdAt after: 2 found",
			filter: domain.OrderFilter{
				CreatedAt: lo.ToPtr(domain.TimeRange{
					After: lo.ToPtr(time.Now().UTC().Add(-1 * time.Minute)),
				}),
			},
			wantOrders: []domain.Order{order1Pending, order2Paid},
		},
		{
			name: "search by createdAt before: not found",
			filter: domain.OrderFilter{
				CreatedAt: lo.ToPtr(domain.TimeRange{
					Before: lo.ToPtr(time.Now().UTC().Add(-1 * time.Minute)),
				}),
			},
		},
		{
			name: "search by createdAt empty: error",
			filter: domain.OrderFilter{
				CreatedAt: lo.ToPtr(domain.TimeRange{}),
			},
			wantError: "filter.Validate: createdAt: both Before and After are nil",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			orders, err := suite.repo.SearchOrders(t.Context(), tt.filter)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assertOrders(t, tt.wantOrders, orders)
		})
	}
}

func (suite *orderRepositorySuite) insertOrders(orders ...domain.Order) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(orders))

	for _, order := range orders {
		id, err := suite.repo.InsertOrder(suite.T().Context(), order)
		suite.Require().NoError(err)
		ids = append(ids, id)
	}

	return ids
}

func (suite *orderRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE orders")
	suite.NoError(err)
}

func randomOrder() domain.Order {
	return domain.Order{
		Total: domain.Money{
			Amount:   decimal.NewFromFloat(gofakeit.Price(1, 5000)).Round(2),
			Currency: currency.INR,
		},
		CustomerName:    gofakeit.Name(),
		CustomerEmail:   gofakeit.Email(),
		ProviderOrderID: lo.ToPtr("order_" + gofakeit.LetterN(14)),
	}
}

func randomConfirmation(orderID uuid.UUID, providerOrderID string) domain.PaymentConfirmation {
	return domain.PaymentConfirmation{
		OrderID:           orderID,
		ProviderOrderID:   providerOrderID,
		ProviderPaymentID: "pay_" + gofakeit.LetterN(14),
		ProviderSignature: gofakeit.LetterN(64),
	}
}

var currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
	return x.String() == y.String()
})

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Order{}, "ID", "OrderNumber", "CreatedAt", "UpdatedAt", "ConfirmedAt",
			"ProviderPaymentID", "ProviderSignature", "ProviderRefundID"),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.False(t, actual.CreatedAt.IsZero())
	assert.False(t, actual.UpdatedAt.IsZero())
	assert.NotEqual(t, uuid.Nil, actual.ID)
}

// assertSameRow compares two reads of one row; only updated_at may move.
func assertSameRow(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	diff := cmp.Diff(expected, actual, cmpopts.IgnoreFields(domain.Order{}, "UpdatedAt"), currencyComparer)
	assert.Empty(t, diff)
}

func assertOrders(t *testing.T, expected, actual []domain.Order) {
	t.Helper()

	require.Equal(t, len(expected), len(actual))

	byEmail := lo.KeyBy(actual, func(o domain.Order) string { return o.CustomerEmail })
	for _, e := range expected {
		a, ok := byEmail[e.CustomerEmail]
		require.True(t, ok, "order for %s not found", e.CustomerEmail)
		assertOrder(t, e, a)
	}
}
