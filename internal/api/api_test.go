package api_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/nudge/internal/api"
	"github.com/slok/nudge/internal/app/testnotify"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/notify/notifymock"
	"github.com/slok/nudge/internal/reminder"
	"github.com/slok/nudge/internal/storage/storagemock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTestNotificationHandler(t *testing.T) {
	tests := map[string]struct {
		user      string
		mock      func(mr *storagemock.MockRepository, mp *notifymock.MockPusher)
		expStatus int
		expBody   string
	}{
		"A call without user should be unauthorized.": {
			mock:      func(mr *storagemock.MockRepository, mp *notifymock.MockPusher) {},
			expStatus: http.StatusUnauthorized,
		},

		"A user without token should be not found.": {
			user: "u1",
			mock: func(mr *storagemock.MockRepository, mp *notifymock.MockPusher) {
				mr.On("GetDeliveryToken", mock.Anything, "u1").Once().Return(nil, model.ErrNotFound)
			},
			expStatus: http.StatusNotFound,
		},

		"A failed delivery should be a bad gateway.": {
			user: "u1",
			mock: func(mr *storagemock.MockRepository, mp *notifymock.MockPusher) {
				mr.On("GetDeliveryToken", mock.Anything, "u1").Once().Return(&model.DeliveryToken{UserID: "u1", Token: "tok"}, nil)
				mp.On("Send", mock.Anything, "tok", reminder.TestMessage).Once().Return(errors.New("something"))
			},
			expStatus: http.StatusBadGateway,
		},

		"A delivered notification should succeed.": {
			user: "u1",
			mock: func(mr *storagemock.MockRepository, mp *notifymock.MockPusher) {
				mr.On("GetDeliveryToken", mock.Anything, "u1").Once().Return(&model.DeliveryToken{UserID: "u1", Token: "tok"}, nil)
				mp.On("Send", mock.Anything, "tok", reminder.TestMessage).Once().Return(nil)
			},
			expStatus: http.StatusOK,
			expBody:   `{"success":true}`,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mr := storagemock.NewMockRepository(t)
			mp := notifymock.NewMockPusher(t)
			test.mock(mr, mp)

			svc, err := testnotify.NewService(testnotify.ServiceConfig{Repository: mr, Pusher: mp})
			require.NoError(err)

			h, err := api.NewHandler(api.HandlerConfig{TestNotifier: svc})
			require.NoError(err)

			req := httptest.NewRequest(http.MethodPost, "/v1/notifications/test", nil)
			if test.user != "" {
				req.Header.Set("X-Nudge-User", test.user)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(test.expStatus, w.Code)
			if test.expBody != "" {
				assert.JSONEq(test.expBody, w.Body.String())
			}
		})
	}
}

type fakeNotifier struct{}

func (fakeNotifier) Run(ctx context.Context, req testnotify.Request) (*testnotify.Response, error) {
	return &testnotify.Response{Success: true}, nil
}

func TestHandlerRoutes(t *testing.T) {
	h, err := api.NewHandler(api.HandlerConfig{TestNotifier: fakeNotifier{}})
	require.NoError(t, err)

	tests := map[string]struct {
		method    string
		path      string
		expStatus int
	}{
		"Health check.":       {method: http.MethodGet, path: "/healthz", expStatus: http.StatusOK},
		"Unknown route.":      {method: http.MethodGet, path: "/missing", expStatus: http.StatusNotFound},
		"Wrong method.":       {method: http.MethodGet, path: "/v1/notifications/test", expStatus: http.StatusNotFound},
		"Test notifications.": {method: http.MethodPost, path: "/v1/notifications/test", expStatus: http.StatusOK},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(test.method, test.path, nil))
			assert.Equal(t, test.expStatus, w.Code)
		})
	}
}

func TestServerServeStopsOnCancel(t *testing.T) {
	h, err := api.NewHandler(api.HandlerConfig{TestNotifier: fakeNotifier{}})
	require.NoError(t, err)

	srv, err := api.NewServer(api.ServerConfig{Handler: h})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", ln.Addr()))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}
