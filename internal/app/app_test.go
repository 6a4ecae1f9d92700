package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/polkiloo/klarnapay/internal/config"
	"github.com/polkiloo/klarnapay/internal/domain/model"
	testhelpers "github.com/polkiloo/klarnapay/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})

	assert.Equal(t, ":9999", server.Addr)
	assert.Same(t, router, server.Handler)
}

func TestRegisterLifecycleServesUntilStopped(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	cfg := &config.Config{
		ShutdownTimeout: 100 * time.Millisecond,
		Gateways:        []model.Gateway{*testhelpers.TestGateway("klarna")},
	}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     server,
		Config:     cfg,
	})
	require.Len(t, recorder.Hooks, 1)
	require.NoError(t, recorder.Start(context.Background()))

	done := make(chan error, 1)
	go func() { done <- recorder.Stop(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("server did not stop")
	}
	select {
	case <-shutdowner.Called:
		t.Fatal("graceful stop must not request application shutdown")
	default:
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     &http.Server{Addr: "bad addr"},
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})
	require.NoError(t, recorder.Start(context.Background()))

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = recorder.Stop(context.Background())
}

func TestLifecycleRecorderOrder(t *testing.T) {
	var calls []string
	hookFor := func(name string) fx.Hook {
		return fx.Hook{
			OnStart: func(context.Context) error { calls = append(calls, "start "+name); return nil },
			OnStop:  func(context.Context) error { calls = append(calls, "stop "+name); return nil },
		}
	}
	recorder := &testhelpers.LifecycleRecorder{}
	recorder.Append(hookFor("storage"))
	recorder.Append(hookFor("server"))
	recorder.Append(fx.Hook{OnStop: func(context.Context) error { return errors.New("boom") }})

	require.NoError(t, recorder.Start(context.Background()))
	assert.EqualError(t, recorder.Stop(context.Background()), "boom")
	assert.Equal(t, []string{"start storage", "start server", "stop server", "stop storage"}, calls)
}
