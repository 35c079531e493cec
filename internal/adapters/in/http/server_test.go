package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lifebank/internal/adapters/in/auth"
	lbhttp "lifebank/internal/adapters/in/http"
	"lifebank/internal/core/application/usecases/commands"
	"lifebank/internal/core/application/usecases/queries"
	"lifebank/internal/core/domain/model/request"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInitializer struct{ mock.Mock }

func (m *MockInitializer) Handle(ctx context.Context, cmd commands.InitializeCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockCreator struct{ mock.Mock }

func (m *MockCreator) Handle(ctx context.Context, cmd commands.CreateRequestCommand) (uint64, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(uint64), args.Error(1)
}

type MockStatusUpdater struct{ mock.Mock }

func (m *MockStatusUpdater) Handle(ctx context.Context, cmd commands.UpdateRequestStatusCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockUnitsAssigner struct{ mock.Mock }

func (m *MockUnitsAssigner) Handle(ctx context.Context, cmd commands.AssignBloodUnitsCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockGetter struct{ mock.Mock }

func (m *MockGetter) Handle(ctx context.Context, query queries.GetRequestQuery) (queries.BloodRequestView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.BloodRequestView), args.Error(1)
}

type MockLister struct{ mock.Mock }

func (m *MockLister) Handle(ctx context.Context, query queries.ListRequestsQuery) ([]queries.BloodRequestView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.BloodRequestView)
	return views, args.Error(1)
}

type MockOverdueLister struct{ mock.Mock }

func (m *MockOverdueLister) Handle(
	ctx context.Context,
	query queries.GetOverdueRequestsQuery,
) ([]queries.OverdueRequestView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.OverdueRequestView)
	return views, args.Error(1)
}

type fixture struct {
	initializer *MockInitializer
	creator     *MockCreator
	updater     *MockStatusUpdater
	assigner    *MockUnitsAssigner
	getter      *MockGetter
	lister      *MockLister
	overdue     *MockOverdueLister
	tokens      *auth.TokenService
	handler     http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		initializer: &MockInitializer{},
		creator:     &MockCreator{},
		updater:     &MockStatusUpdater{},
		assigner:    &MockUnitsAssigner{},
		getter:      &MockGetter{},
		lister:      &MockLister{},
		overdue:     &MockOverdueLister{},
	}

	tokens, err := auth.NewTokenService("key", "lifebank")
	require.NoError(t, err)
	f.tokens = tokens

	server := lbhttp.NewServer(lbhttp.Handlers{
		Initialize:    f.initializer,
		CreateRequest: f.creator,
		UpdateStatus:  f.updater,
		AssignUnits:   f.assigner,
		GetRequest:    f.getter,
		ListRequests:  f.lister,
		ListOverdue:   f.overdue,
	}, auth.NewContextAuthenticator())
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "# metrics")
	})
	f.handler = lbhttp.NewEcho(server, tokens, metricsHandler, slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Cleanup(func() {
		f.initializer.AssertExpectations(t)
		f.creator.AssertExpectations(t)
		f.updater.AssertExpectations(t)
		f.assigner.AssertExpectations(t)
		f.getter.AssertExpectations(t)
		f.lister.AssertExpectations(t)
		f.overdue.AssertExpectations(t)
	})

	return f
}

// do sends a request as caller with a bearer token proving that identity.
func (f *fixture) do(method, target, caller, body string) *httptest.ResponseRecorder {
	token := ""
	if caller != "" {
		issued, err := f.tokens.Issue(caller, time.Minute)
		if err != nil {
			panic(err)
		}
		token = issued
	}
	return f.send(method, target, caller, token, body)
}

// send sends a request that claims caller and carries token verbatim.
func (f *fixture) send(method, target, caller, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != "" {
		req.Header.Set(lbhttp.HeaderCallerID, caller)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) lbhttp.ErrorResponse {
	t.Helper()
	var body lbhttp.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOpsRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())

	rec = f.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics", rec.Body.String())
}

func TestInitialize(t *testing.T) {
	f := newFixture(t)
	f.initializer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.InitializeCommand) bool {
		return cmd.Admin().String() == "admin"
	})).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/admin/initialize", "admin", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestInitialize_AlreadyInitialized(t *testing.T) {
	f := newFixture(t)
	f.initializer.On("Handle", mock.Anything, mock.Anything).Return(request.ErrAlreadyInitialized).Once()

	rec := f.do(http.MethodPost, "/api/v1/admin/initialize", "admin", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeError(t, rec)
	require.NotNil(t, body.Code)
	assert.Equal(t, request.CodeAlreadyInitialized, *body.Code)
}

func TestMissingCallerIsUnauthorized(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/requests", "", `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeError(t, rec)
	require.NotNil(t, body.Code)
	assert.Equal(t, request.CodeUnauthorized, *body.Code)
}

func TestCreateRequest(t *testing.T) {
	f := newFixture(t)
	requiredBy := time.Unix(1_700_100_000, 0).UTC()
	f.creator.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateRequestCommand) bool {
		return cmd.Caller().String() == "admin" &&
			cmd.BloodType() == request.ONegative &&
			cmd.QuantityMl() == 450 &&
			cmd.Urgency() == request.Critical &&
			cmd.RequiredBy().Equal(requiredBy) &&
			cmd.DeliveryAddress() == "Ward 3" &&
			cmd.Metadata().PatientID() == "p-1"
	})).Return(uint64(7), nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/requests", "admin", `{
		"blood_type": "O-",
		"quantity_ml": 450,
		"urgency": "critical",
		"required_by": 1700100000,
		"delivery_address": "Ward 3",
		"patient_id": "p-1"
	}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":7}`, rec.Body.String())
}

func TestCreateRequest_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		handlerErr error
		wantStatus int
		wantCode   request.Code
	}{
		{"unknown blood type", `{"blood_type":"C+","urgency":"Normal"}`, nil, http.StatusBadRequest, request.CodeInvalidBloodType},
		{"unknown urgency", `{"blood_type":"A+","urgency":"whenever"}`, nil, http.StatusBadRequest, request.CodeInvalidInput},
		{"quantity", `{"blood_type":"A+","urgency":"Normal"}`, request.ErrInvalidQuantity, http.StatusBadRequest, request.CodeInvalidQuantity},
		{"not admin", `{"blood_type":"A+","urgency":"Normal"}`, request.ErrNotAuthorizedHospital, http.StatusForbidden, request.CodeNotAuthorizedHospital},
		{"not initialized", `{"blood_type":"A+","urgency":"Normal"}`, request.ErrNotInitialized, http.StatusConflict, request.CodeNotInitialized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.handlerErr != nil {
				f.creator.On("Handle", mock.Anything, mock.Anything).Return(uint64(0), tt.handlerErr).Once()
			}

			rec := f.do(http.MethodPost, "/api/v1/requests", "admin", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			require.NotNil(t, body.Code)
			assert.Equal(t, tt.wantCode, *body.Code)
		})
	}
}

func TestCreateRequest_MalformedBody(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/requests", "admin", `{"quantity_ml":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, decodeError(t, rec).Code)
}

func TestGetRequest(t *testing.T) {
	f := newFixture(t)
	fulfilledAt := time.Unix(1_700_000_600, 0).UTC()
	view := queries.BloodRequestView{
		ID:              3,
		RequesterID:     "admin",
		BloodType:       request.ABPositive,
		QuantityMl:      300,
		Urgency:         request.Urgent,
		Status:          request.Fulfilled,
		CreatedAt:       time.Unix(1_700_000_000, 0).UTC(),
		RequiredBy:      time.Unix(1_700_003_600, 0).UTC(),
		FulfilledAt:     &fulfilledAt,
		AssignedUnits:   []uint64{4, 5},
		DeliveryAddress: "Ward 3",
	}
	f.getter.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetRequestQuery) bool {
		return q.RequestID() == 3
	})).Return(view, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/requests/3", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"id": 3,
		"requester_id": "admin",
		"blood_type": "AB+",
		"quantity_ml": 300,
		"urgency": "Urgent",
		"status": "Fulfilled",
		"created_at": 1700000000,
		"required_by": 1700003600,
		"fulfilled_at": 1700000600,
		"assigned_units": [4, 5],
		"delivery_address": "Ward 3"
	}`, rec.Body.String())
}

func TestGetRequest_NotFoundAndBadID(t *testing.T) {
	f := newFixture(t)
	f.getter.On("Handle", mock.Anything, mock.Anything).
		Return(queries.BloodRequestView{}, request.ErrRequestNotFound).Once()

	rec := f.do(http.MethodGet, "/api/v1/requests/99", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, request.CodeRequestNotFound, *decodeError(t, rec).Code)

	rec = f.do(http.MethodGet, "/api/v1/requests/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestZeroIDIsNotFound(t *testing.T) {
	f := newFixture(t)
	f.getter.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetRequestQuery) bool {
		return q.RequestID() == 0
	})).Return(queries.BloodRequestView{}, request.ErrRequestNotFound).Once()
	f.updater.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateRequestStatusCommand) bool {
		return cmd.RequestID() == 0
	})).Return(request.ErrRequestNotFound).Once()
	f.assigner.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AssignBloodUnitsCommand) bool {
		return cmd.RequestID() == 0
	})).Return(request.ErrRequestNotFound).Once()

	for _, rec := range []*httptest.ResponseRecorder{
		f.do(http.MethodGet, "/api/v1/requests/0", "", ""),
		f.do(http.MethodPut, "/api/v1/requests/0/status", "admin", `{"status":"Cancelled"}`),
		f.do(http.MethodPut, "/api/v1/requests/0/units", "admin", `{"unit_ids":[1]}`),
	} {
		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeError(t, rec)
		require.NotNil(t, body.Code)
		assert.Equal(t, request.CodeRequestNotFound, *body.Code)
	}
}

func TestListRequests(t *testing.T) {
	f := newFixture(t)
	f.lister.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListRequestsQuery) bool {
		filter := q.Filter()
		return q.Limit() == 5 &&
			filter.Requester != nil && filter.Requester.String() == "hospital-1" &&
			filter.BloodType != nil && *filter.BloodType == request.ONegative &&
			filter.Status != nil && *filter.Status == request.Pending &&
			filter.Urgency == nil
	})).Return([]queries.BloodRequestView{{ID: 1, BloodType: request.ONegative, Status: request.Pending}}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/requests?requester=hospital-1&blood_type=O-&status=pending&limit=5", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body []lbhttp.RequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, uint64(1), body[0].ID)
	assert.Equal(t, []uint64{}, body[0].AssignedUnits)
}

func TestListRequests_InvalidParams(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{
		"/api/v1/requests?limit=abc",
		"/api/v1/requests?limit=-1",
		"/api/v1/requests?limit=5000",
		"/api/v1/requests?status=lost",
		"/api/v1/requests?blood_type=Z",
	} {
		rec := f.do(http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestListOverdueRequests(t *testing.T) {
	f := newFixture(t)
	f.overdue.On("Handle", mock.Anything, mock.Anything).Return([]queries.OverdueRequestView{{
		BloodRequestView: queries.BloodRequestView{ID: 2, Status: request.Approved},
		TimeRemaining:    -90 * time.Minute,
		SLABreached:      true,
	}}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/requests/overdue", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body []lbhttp.OverdueRequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, uint64(2), body[0].ID)
	assert.Equal(t, int64(-5400), body[0].TimeRemainingSeconds)
	assert.True(t, body[0].SLABreached)
}

func TestUpdateRequestStatus(t *testing.T) {
	f := newFixture(t)
	f.updater.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateRequestStatusCommand) bool {
		return cmd.RequestID() == 4 && cmd.NewStatus() == request.Approved && cmd.Caller().String() == "admin"
	})).Return(nil).Once()

	rec := f.do(http.MethodPut, "/api/v1/requests/4/status", "admin", `{"status":"Approved"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUpdateRequestStatus_Errors(t *testing.T) {
	f := newFixture(t)
	f.updater.On("Handle", mock.Anything, mock.Anything).Return(request.ErrInvalidStatusTransition).Once()

	rec := f.do(http.MethodPut, "/api/v1/requests/4/status", "admin", `{"status":"Completed"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, request.CodeInvalidStatusTransition, *decodeError(t, rec).Code)

	rec = f.do(http.MethodPut, "/api/v1/requests/4/status", "admin", `{"status":"Shipped"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, request.CodeInvalidStatus, *decodeError(t, rec).Code)
}

func TestAssignBloodUnits(t *testing.T) {
	f := newFixture(t)
	f.assigner.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AssignBloodUnitsCommand) bool {
		return cmd.RequestID() == 4 && assert.ObjectsAreEqual([]uint64{10, 11}, cmd.UnitIDs())
	})).Return(nil).Once()

	rec := f.do(http.MethodPut, "/api/v1/requests/4/units", "admin", `{"unit_ids":[10,11]}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAssignBloodUnits_Forbidden(t *testing.T) {
	f := newFixture(t)
	f.assigner.On("Handle", mock.Anything, mock.Anything).Return(request.ErrNotAuthorizedBloodBank).Once()

	rec := f.do(http.MethodPut, "/api/v1/requests/4/units", "stranger", `{"unit_ids":[]}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, request.CodeNotAuthorizedBloodBank, *decodeError(t, rec).Code)
}

func TestUnexpectedErrorIsHidden(t *testing.T) {
	f := newFixture(t)
	f.getter.On("Handle", mock.Anything, mock.Anything).
		Return(queries.BloodRequestView{}, io.ErrUnexpectedEOF).Once()

	rec := f.do(http.MethodGet, "/api/v1/requests/1", "", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeError(t, rec).Message)
}

func TestAuthenticationPrecedesInputChecks(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"unknown status", http.MethodPut, "/api/v1/requests/1/status", `{"status":"Bogus"}`},
		{"unknown blood type", http.MethodPost, "/api/v1/requests", `{"blood_type":"Z","urgency":"Normal"}`},
		{"malformed id", http.MethodPut, "/api/v1/requests/abc/units", `{"unit_ids":[1]}`},
		{"malformed body", http.MethodPut, "/api/v1/requests/1/units", `{"unit_ids":`},
		{"initialize", http.MethodPost, "/api/v1/admin/initialize", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			adminToken, err := f.tokens.Issue("admin", time.Minute)
			require.NoError(t, err)

			for _, rec := range []*httptest.ResponseRecorder{
				f.send(tt.method, tt.target, "stranger", "", tt.body),
				f.send(tt.method, tt.target, "stranger", adminToken, tt.body),
			} {
				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				body := decodeError(t, rec)
				require.NotNil(t, body.Code)
				assert.Equal(t, request.CodeUnauthorized, *body.Code)
			}
		})
	}
}
