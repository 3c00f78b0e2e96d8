package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outabout/outabout-api/internal/api/middleware"
	"github.com/outabout/outabout-api/internal/domain"
	"github.com/outabout/outabout-api/internal/service"
)

type mockRequestService struct {
	createFn   func(ctx context.Context, userID, activityID uint) (domain.ActivityRequest, error)
	decideFn   func(ctx context.Context, deciderID uint, id string, state domain.ActivityRequestState, reason string) (bool, error)
	getFn      func(ctx context.Context, hostID, activityID uint) ([]domain.ActivityRequest, error)
	withdrawFn func(ctx context.Context, activityID, userID uint) error
	leaveFn    func(ctx context.Context, activityID, userID uint) (bool, error)
}

func (m *mockRequestService) CreateRequest(ctx context.Context, userID, activityID uint) (domain.ActivityRequest, error) {
	return m.createFn(ctx, userID, activityID)
}

func (m *mockRequestService) DecideRequest(ctx context.Context, deciderID uint, id string, state domain.ActivityRequestState, reason string) (bool, error) {
	return m.decideFn(ctx, deciderID, id, state, reason)
}

func (m *mockRequestService) GetRequests(ctx context.Context, hostID, activityID uint) ([]domain.ActivityRequest, error) {
	return m.getFn(ctx, hostID, activityID)
}

func (m *mockRequestService) WithdrawRequest(ctx context.Context, activityID, userID uint) error {
	return m.withdrawFn(ctx, activityID, userID)
}

func (m *mockRequestService) LeaveActivity(ctx context.Context, activityID, userID uint) (bool, error) {
	return m.leaveFn(ctx, activityID, userID)
}

func setupRequestRouter(svc ActivityRequestService, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, userID)
	})

	handler := NewActivityRequestHandler(svc)
	router.POST("/activities/:activityID/requests", handler.HandleCreateRequest)
	router.GET("/activities/:activityID/requests", handler.HandleGetRequests)
	router.DELETE("/activities/:activityID/requests", handler.HandleWithdrawRequest)
	router.DELETE("/activities/:activityID/participation", handler.HandleLeaveActivity)
	router.PATCH("/requests/:requestID", handler.HandleDecideRequest)

	return router
}

func TestHandleCreateRequest(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &mockRequestService{
			createFn: func(_ context.Context, userID, activityID uint) (domain.ActivityRequest, error) {
				return domain.ActivityRequest{
					ID:         "6f1b0a3e-0000-0000-0000-000000000001",
					UserID:     userID,
					ActivityID: activityID,
					State:      domain.RequestStatePending,
				}, nil
			},
		}
		router := setupRequestRouter(svc, 7)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/activities/1/requests", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var body domain.ActivityRequest
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, domain.RequestStatePending, body.State)
		assert.Equal(t, uint(7), body.UserID)
	})

	t.Run("duplicate pending request maps to 409", func(t *testing.T) {
		svc := &mockRequestService{
			createFn: func(context.Context, uint, uint) (domain.ActivityRequest, error) {
				return domain.ActivityRequest{}, service.ErrDuplicateRequest
			},
		}
		router := setupRequestRouter(svc, 7)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/activities/1/requests", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown activity maps to 404", func(t *testing.T) {
		svc := &mockRequestService{
			createFn: func(context.Context, uint, uint) (domain.ActivityRequest, error) {
				return domain.ActivityRequest{}, service.ErrActivityNotFound
			},
		}
		router := setupRequestRouter(svc, 7)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/activities/999/requests", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid activity ID", func(t *testing.T) {
		router := setupRequestRouter(&mockRequestService{}, 7)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/activities/abc/requests", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleDecideRequest(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		var gotState domain.ActivityRequestState
		svc := &mockRequestService{
			decideFn: func(_ context.Context, _ uint, _ string, state domain.ActivityRequestState, _ string) (bool, error) {
				gotState = state

				return true, nil
			},
		}
		router := setupRequestRouter(svc, 100)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/requests/some-id",
			strings.NewReader(`{"state":"accepted"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.RequestStateAccepted, gotState)
	})

	t.Run("rejected with reason", func(t *testing.T) {
		var gotReason string
		svc := &mockRequestService{
			decideFn: func(_ context.Context, _ uint, _ string, _ domain.ActivityRequestState, reason string) (bool, error) {
				gotReason = reason

				return true, nil
			},
		}
		router := setupRequestRouter(svc, 100)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/requests/some-id",
			strings.NewReader(`{"state":"rejected","reason":"activity full"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "activity full", gotReason)
	})

	t.Run("unknown request maps to 404", func(t *testing.T) {
		svc := &mockRequestService{
			decideFn: func(context.Context, uint, string, domain.ActivityRequestState, string) (bool, error) {
				return false, nil
			},
		}
		router := setupRequestRouter(svc, 100)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/requests/missing",
			strings.NewReader(`{"state":"accepted"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid state rejected before the service", func(t *testing.T) {
		called := false
		svc := &mockRequestService{
			decideFn: func(context.Context, uint, string, domain.ActivityRequestState, string) (bool, error) {
				called = true

				return true, nil
			},
		}
		router := setupRequestRouter(svc, 100)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/requests/some-id",
			strings.NewReader(`{"state":"pending"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called)
	})

	t.Run("non-host maps to 403", func(t *testing.T) {
		svc := &mockRequestService{
			decideFn: func(context.Context, uint, string, domain.ActivityRequestState, string) (bool, error) {
				return false, service.ErrNotActivityHost
			},
		}
		router := setupRequestRouter(svc, 7)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/requests/some-id",
			strings.NewReader(`{"state":"accepted"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandleWithdrawRequest(t *testing.T) {
	var gotActivityID, gotUserID uint
	svc := &mockRequestService{
		withdrawFn: func(_ context.Context, activityID, userID uint) error {
			gotActivityID, gotUserID = activityID, userID

			return nil
		},
	}
	router := setupRequestRouter(svc, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/activities/1/requests", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, uint(1), gotActivityID)
	assert.Equal(t, uint(7), gotUserID)
}

func TestHandleLeaveActivity(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		svc := &mockRequestService{
			leaveFn: func(context.Context, uint, uint) (bool, error) {
				return true, nil
			},
		}
		router := setupRequestRouter(svc, 7)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/activities/1/participation", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not a participant maps to 404", func(t *testing.T) {
		svc := &mockRequestService{
			leaveFn: func(context.Context, uint, uint) (bool, error) {
				return false, nil
			},
		}
		router := setupRequestRouter(svc, 7)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/activities/1/participation", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
