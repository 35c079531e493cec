package request_test

import (
	"testing"
	"time"

	"lifebank/internal/core/domain/model/kernel"
	"lifebank/internal/core/domain/model/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hospital = kernel.MustNewIdentity("hospital-1")

func newPendingRequest(t *testing.T) *request.BloodRequest {
	t.Helper()

	req, err := request.NewBloodRequest(
		1, hospital, request.ONegative, 450, request.Urgent,
		now.Add(48*time.Hour), "Ward 3, City Hospital",
		request.NewMetadata("patient-7", "Hip replacement", ""),
		now,
	)
	require.NoError(t, err)
	return req
}

func TestNewBloodRequest(t *testing.T) {
	t.Run("should create a pending request", func(t *testing.T) {
		req := newPendingRequest(t)

		assert.Equal(t, uint64(1), req.ID())
		assert.True(t, req.RequesterID().IsEqual(hospital))
		assert.Equal(t, request.ONegative, req.BloodType())
		assert.Equal(t, 450, req.QuantityMl())
		assert.Equal(t, request.Urgent, req.Urgency())
		assert.Equal(t, request.Pending, req.Status())
		assert.Equal(t, now, req.CreatedAt())
		assert.Equal(t, now.Add(48*time.Hour), req.RequiredBy())
		assert.Nil(t, req.FulfilledAt())
		assert.Empty(t, req.AssignedUnits())
		assert.NotNil(t, req.AssignedUnits())
		assert.Equal(t, "Ward 3, City Hospital", req.DeliveryAddress())
		assert.Equal(t, "patient-7", req.Metadata().PatientID())
		assert.Equal(t, "Hip replacement", req.Metadata().Procedure())
		require.NoError(t, req.Validate())
	})

	t.Run("should record a created event", func(t *testing.T) {
		req := newPendingRequest(t)

		events := req.DomainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(request.RequestCreated)
		require.True(t, ok)
		assert.Equal(t, request.EventRequestCreated, created.EventName())
		assert.Equal(t, uint64(1), created.AggregateID())
		assert.Equal(t, "hospital-1", created.HospitalID)
		assert.Equal(t, request.ONegative, created.BloodType)
		assert.Equal(t, 450, created.QuantityMl)
		assert.Equal(t, request.Urgent, created.Urgency)
		assert.Equal(t, now.Add(48*time.Hour), created.RequiredBy)
	})

	t.Run("should reject invalid parameters", func(t *testing.T) {
		testCases := map[string]struct {
			quantity   int
			requiredBy time.Time
			address    string
			bloodType  request.BloodType
			urgency    request.Urgency
			expected   error
		}{
			"quantity too small": {49, now.Add(time.Hour), "A", request.APositive, request.Normal, request.ErrInvalidQuantity},
			"quantity too large": {5001, now.Add(time.Hour), "A", request.APositive, request.Normal, request.ErrInvalidQuantity},
			"deadline now":       {450, now, "A", request.APositive, request.Normal, request.ErrInvalidTimestamp},
			"deadline too far":   {450, now.Add(31 * 24 * time.Hour), "A", request.APositive, request.Normal, request.ErrInvalidTimestamp},
			"empty address":      {450, now.Add(time.Hour), "", request.APositive, request.Normal, request.ErrInvalidInput},
			"unknown blood type": {450, now.Add(time.Hour), "A", request.BloodType(42), request.Normal, request.ErrInvalidBloodType},
			"unknown urgency":    {450, now.Add(time.Hour), "A", request.APositive, request.Urgency(0), request.ErrInvalidInput},
		}

		for name, tc := range testCases {
			t.Run(name, func(t *testing.T) {
				req, err := request.NewBloodRequest(
					1, hospital, tc.bloodType, tc.quantity, tc.urgency,
					tc.requiredBy, tc.address, request.Metadata{}, now,
				)

				require.ErrorIs(t, err, tc.expected)
				assert.Nil(t, req)
			})
		}
	})

	t.Run("should reject a zero id or requester", func(t *testing.T) {
		_, err := request.NewBloodRequest(0, hospital, request.APositive, 450, request.Normal,
			now.Add(time.Hour), "A", request.Metadata{}, now)
		require.Error(t, err)

		_, err = request.NewBloodRequest(1, kernel.Identity{}, request.APositive, 450, request.Normal,
			now.Add(time.Hour), "A", request.Metadata{}, now)
		require.ErrorIs(t, err, kernel.ErrIdentityIsNotConstructed)
	})
}

func TestBloodRequest_TransitionTo(t *testing.T) {
	t.Run("should walk the happy path and stamp fulfillment once", func(t *testing.T) {
		req := newPendingRequest(t)
		fulfilledAt := now.Add(time.Hour)

		require.NoError(t, req.TransitionTo(request.Approved, now.Add(time.Minute)))
		assert.Nil(t, req.FulfilledAt())

		require.NoError(t, req.TransitionTo(request.Fulfilled, fulfilledAt))
		require.NotNil(t, req.FulfilledAt())
		assert.Equal(t, fulfilledAt, *req.FulfilledAt())

		require.NoError(t, req.TransitionTo(request.Completed, now.Add(2*time.Hour)))
		assert.Equal(t, request.Completed, req.Status())
		assert.Equal(t, fulfilledAt, *req.FulfilledAt())
	})

	t.Run("should record status changes in order", func(t *testing.T) {
		req := newPendingRequest(t)
		req.ClearDomainEvents()

		require.NoError(t, req.TransitionTo(request.Approved, now))
		require.NoError(t, req.TransitionTo(request.Cancelled, now))

		events := req.DomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, request.RequestStatusChanged{RequestID: 1, OldStatus: request.Pending, NewStatus: request.Approved}, events[0])
		assert.Equal(t, request.RequestStatusChanged{RequestID: 1, OldStatus: request.Approved, NewStatus: request.Cancelled}, events[1])
	})

	t.Run("should reject skipping Approved", func(t *testing.T) {
		req := newPendingRequest(t)
		req.ClearDomainEvents()

		err := req.TransitionTo(request.Fulfilled, now)

		require.ErrorIs(t, err, request.ErrInvalidStatusTransition)
		assert.Equal(t, request.Pending, req.Status())
		assert.Nil(t, req.FulfilledAt())
		assert.Empty(t, req.DomainEvents())
	})

	t.Run("should reject leaving a terminal status", func(t *testing.T) {
		for _, terminal := range []request.Status{request.Rejected, request.Cancelled} {
			req := newPendingRequest(t)
			require.NoError(t, req.TransitionTo(terminal, now))

			for _, next := range request.AllStatuses() {
				require.ErrorIs(t, req.TransitionTo(next, now), request.ErrInvalidStatusTransition)
			}
			assert.Equal(t, terminal, req.Status())
		}
	})

	t.Run("should reject a self transition", func(t *testing.T) {
		req := newPendingRequest(t)

		require.ErrorIs(t, req.TransitionTo(request.Pending, now), request.ErrInvalidStatusTransition)
	})

	t.Run("should fail on a zero value aggregate", func(t *testing.T) {
		req := &request.BloodRequest{}

		require.ErrorIs(t, req.TransitionTo(request.Approved, now), request.ErrBloodRequestIsNotConstructed)
	})
}

func TestBloodRequest_AssignUnits(t *testing.T) {
	t.Run("should replace units wholesale", func(t *testing.T) {
		req := newPendingRequest(t)

		require.NoError(t, req.AssignUnits([]uint64{101, 102}))
		require.NoError(t, req.AssignUnits([]uint64{103}))

		assert.Equal(t, []uint64{103}, req.AssignedUnits())
	})

	t.Run("should accept an empty list and keep status", func(t *testing.T) {
		req := newPendingRequest(t)
		require.NoError(t, req.AssignUnits([]uint64{101}))

		require.NoError(t, req.AssignUnits(nil))

		assert.Empty(t, req.AssignedUnits())
		assert.Equal(t, request.Pending, req.Status())
	})

	t.Run("should keep duplicates as given", func(t *testing.T) {
		req := newPendingRequest(t)

		require.NoError(t, req.AssignUnits([]uint64{7, 7}))

		assert.Equal(t, []uint64{7, 7}, req.AssignedUnits())
	})

	t.Run("should not alias the caller slice", func(t *testing.T) {
		req := newPendingRequest(t)
		units := []uint64{1, 2}

		require.NoError(t, req.AssignUnits(units))
		units[0] = 99

		assert.Equal(t, []uint64{1, 2}, req.AssignedUnits())
	})

	t.Run("should record a units assigned event", func(t *testing.T) {
		req := newPendingRequest(t)
		req.ClearDomainEvents()

		require.NoError(t, req.AssignUnits([]uint64{5}))

		assert.Equal(t, []request.DomainEvent{
			request.UnitsAssigned{RequestID: 1, AssignedUnits: []uint64{5}},
		}, req.DomainEvents())
	})
}

func TestBloodRequest_DeadlineQueries(t *testing.T) {
	t.Run("should report overdue strictly after required_by", func(t *testing.T) {
		req := newPendingRequest(t)
		deadline := req.RequiredBy()

		assert.False(t, req.IsOverdue(deadline))
		assert.True(t, req.IsOverdue(deadline.Add(time.Second)))
		assert.Equal(t, 48*time.Hour, req.TimeRemaining(now))
		assert.Equal(t, -time.Second, req.TimeRemaining(deadline.Add(time.Second)))
	})

	t.Run("should only be fulfillable when approved and on time", func(t *testing.T) {
		req := newPendingRequest(t)
		assert.False(t, req.CanFulfill(now))

		require.NoError(t, req.TransitionTo(request.Approved, now))
		assert.True(t, req.CanFulfill(now))
		assert.True(t, req.CanFulfill(req.RequiredBy()))
		assert.False(t, req.CanFulfill(req.RequiredBy().Add(time.Second)))
	})

	t.Run("should flag SLA breaches for open requests only", func(t *testing.T) {
		req := newPendingRequest(t)

		assert.False(t, req.IsSLABreached(now.Add(6*time.Hour)))
		assert.True(t, req.IsSLABreached(now.Add(6*time.Hour+time.Second)))

		require.NoError(t, req.TransitionTo(request.Cancelled, now))
		assert.False(t, req.IsSLABreached(now.Add(7*time.Hour)))
	})
}

func TestRestoreBloodRequest(t *testing.T) {
	fulfilledAt := now.Add(time.Hour)

	t.Run("should restore a completed request", func(t *testing.T) {
		req, err := request.RestoreBloodRequest(
			9, hospital, request.BPositive, 900, request.Critical, request.Completed,
			now, now.Add(2*time.Hour), &fulfilledAt, []uint64{1, 2}, "ER",
			request.NewMetadata("p", "", "irradiated"),
		)

		require.NoError(t, err)
		assert.Equal(t, uint64(9), req.ID())
		assert.Equal(t, request.Completed, req.Status())
		assert.Equal(t, fulfilledAt, *req.FulfilledAt())
		assert.Equal(t, []uint64{1, 2}, req.AssignedUnits())
		assert.Equal(t, "irradiated", req.Metadata().Notes())
		assert.Empty(t, req.DomainEvents())
	})

	t.Run("should allow an overdue deadline", func(t *testing.T) {
		_, err := request.RestoreBloodRequest(
			9, hospital, request.BPositive, 900, request.Critical, request.Pending,
			now.Add(-2*time.Hour), now.Add(-time.Hour), nil, nil, "ER", request.Metadata{},
		)

		require.NoError(t, err)
	})

	t.Run("should reject a fulfillment time on a pending request", func(t *testing.T) {
		_, err := request.RestoreBloodRequest(
			9, hospital, request.BPositive, 900, request.Critical, request.Pending,
			now, now.Add(2*time.Hour), &fulfilledAt, nil, "ER", request.Metadata{},
		)

		require.Error(t, err)
	})

	t.Run("should reject a fulfilled request without fulfillment time", func(t *testing.T) {
		_, err := request.RestoreBloodRequest(
			9, hospital, request.BPositive, 900, request.Critical, request.Fulfilled,
			now, now.Add(2*time.Hour), nil, nil, "ER", request.Metadata{},
		)

		require.Error(t, err)
	})

	t.Run("should join every structural violation", func(t *testing.T) {
		_, err := request.RestoreBloodRequest(
			9, hospital, request.BloodType(0), 10, request.Critical, request.Status(0),
			now, now, nil, nil, "", request.Metadata{},
		)

		require.ErrorIs(t, err, request.ErrInvalidBloodType)
		require.ErrorIs(t, err, request.ErrInvalidQuantity)
		require.ErrorIs(t, err, request.ErrInvalidStatus)
		require.ErrorIs(t, err, request.ErrInvalidInput)
		require.ErrorIs(t, err, request.ErrInvalidTimestamp)
	})
}
