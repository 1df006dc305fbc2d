// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kyc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/zkid-tui/internal/api"
	"github.com/jeranaias/zkid-tui/internal/config"
	"github.com/jeranaias/zkid-tui/internal/credstore"
	"github.com/jeranaias/zkid-tui/internal/session"
)

// kycServer is a scriptable double for the verification endpoints.
type kycServer struct {
	mu       sync.Mutex
	calls    []string
	verified bool

	failLiveness bool
	failComplete bool
}

func (s *kycServer) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, r.Method+" "+r.URL.Path)
		s.mu.Unlock()

		switch {
		case r.URL.Path == "/api/auth/login":
			w.Write([]byte(`{"success":true,"data":{"user":{"id":"u1","kycVerified":false},"token":"acc","refreshToken":"ren"}}`))
		case r.URL.Path == "/api/auth/me":
			if s.verified {
				w.Write([]byte(`{"success":true,"data":{"user":{"id":"u1","kycVerified":true}}}`))
			} else {
				w.Write([]byte(`{"success":true,"data":{"user":{"id":"u1","kycVerified":false}}}`))
			}
		case r.URL.Path == "/api/kyc/session":
			w.Write([]byte(`{"success":true,"data":{"session":{"id":"ks-1","status":"open"}}}`))
		case r.URL.Path == "/api/kyc/session/ks-1/document":
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "passport", r.FormValue("documentType"))
			assert.Equal(t, "DE", r.FormValue("documentCountry"))
			_, _, err := r.FormFile("frontImage")
			assert.NoError(t, err, "upload must carry the front image")
			w.Write([]byte(`{"success":true,"data":{}}`))
		case r.URL.Path == "/api/kyc/session/ks-1/liveness":
			if s.failLiveness {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(`{"success":false,"error":{"message":"liveness provider down"}}`))
				return
			}
			w.Write([]byte(`{"success":true,"data":{}}`))
		case r.URL.Path == "/api/kyc/session/ks-1/complete":
			if s.failComplete {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(`{"success":false,"error":{"message":"finalize failed"}}`))
				return
			}
			s.mu.Lock()
			s.verified = true
			s.mu.Unlock()
			w.Write([]byte(`{"success":true,"data":{}}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
}

func (s *kycServer) called(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == path {
			n++
		}
	}
	return n
}

// newTestFlow builds a signed-in session and a fresh flow against the double.
func newTestFlow(t *testing.T, ks *kycServer) (*Flow, *session.Manager) {
	t.Helper()
	srv := httptest.NewServer(ks.handler(t))
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.API.BaseURL = srv.URL + "/api"
	client := api.New(cfg)

	store, err := credstore.New(t.TempDir())
	require.NoError(t, err)
	sess := session.NewManager(client, store)
	require.True(t, sess.SignIn(context.Background(), "a@b.c", "password1").OK)

	return NewFlow(client, sess), sess
}

// writeTestImage drops a fake captured document image on disk.
func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "front.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0600))
	return path
}

func TestFullVerificationFlow(t *testing.T) {
	ks := &kycServer{}
	flow, sess := newTestFlow(t, ks)
	ctx := context.Background()

	assert.Equal(t, StepStart, flow.Step())

	require.True(t, flow.Begin(ctx).OK)
	assert.Equal(t, StepDocument, flow.Step())

	res := flow.SubmitDocument(ctx, api.DocumentSubmission{
		Type:           "passport",
		Country:        "DE",
		FrontImagePath: writeTestImage(t),
	})
	require.True(t, res.OK, res.Err)
	assert.Equal(t, StepLiveness, flow.Step())

	require.True(t, flow.FinishLiveness(ctx).OK)
	assert.Equal(t, StepComplete, flow.Step())

	// Both completion endpoints ran, and the refreshed user is verified.
	assert.Equal(t, 1, ks.called("POST /api/kyc/session/ks-1/liveness"))
	assert.Equal(t, 1, ks.called("POST /api/kyc/session/ks-1/complete"))
	assert.True(t, sess.KycVerified())
}

func TestBeginShortCircuitsWhenAlreadyVerified(t *testing.T) {
	ks := &kycServer{verified: true}
	flow, sess := newTestFlow(t, ks)
	ctx := context.Background()

	// Pick up the verified flag, then start a flow.
	require.True(t, sess.RefreshUser(ctx).OK)
	require.True(t, sess.KycVerified())

	require.True(t, flow.Begin(ctx).OK)
	assert.Equal(t, StepComplete, flow.Step())
	assert.Zero(t, ks.called("POST /api/kyc/session"), "no session opened for a verified account")
}

func TestMissingImageRejectedLocally(t *testing.T) {
	ks := &kycServer{}
	flow, _ := newTestFlow(t, ks)
	ctx := context.Background()

	require.True(t, flow.Begin(ctx).OK)
	res := flow.SubmitDocument(ctx, api.DocumentSubmission{Type: "passport", Country: "DE"})

	assert.False(t, res.OK)
	assert.Contains(t, res.Err, "image")
	assert.Equal(t, StepDocument, flow.Step())
	assert.Zero(t, ks.called("POST /api/kyc/session/ks-1/document"))
}

func TestStepsNeverRunOutOfOrder(t *testing.T) {
	ks := &kycServer{}
	flow, _ := newTestFlow(t, ks)
	ctx := context.Background()

	res := flow.SubmitDocument(ctx, api.DocumentSubmission{
		Type: "passport", Country: "DE", FrontImagePath: writeTestImage(t),
	})
	assert.False(t, res.OK, "document before begin must fail")

	res = flow.FinishLiveness(ctx)
	assert.False(t, res.OK, "liveness before document must fail")

	require.True(t, flow.Begin(ctx).OK)
	res = flow.Begin(ctx)
	assert.False(t, res.OK, "begin must not repeat")
}

func TestLivenessFailureKeepsFlowIncomplete(t *testing.T) {
	ks := &kycServer{failLiveness: true}
	flow, sess := newTestFlow(t, ks)
	ctx := context.Background()

	require.True(t, flow.Begin(ctx).OK)
	require.True(t, flow.SubmitDocument(ctx, api.DocumentSubmission{
		Type: "passport", Country: "DE", FrontImagePath: writeTestImage(t),
	}).OK)

	res := flow.FinishLiveness(ctx)
	assert.False(t, res.OK)
	assert.Equal(t, "liveness provider down", res.Err)
	assert.NotEqual(t, StepComplete, flow.Step())
	assert.Zero(t, ks.called("POST /api/kyc/session/ks-1/complete"))
	assert.False(t, sess.KycVerified())
}

func TestFinalizeFailureKeepsFlowIncomplete(t *testing.T) {
	ks := &kycServer{failComplete: true}
	flow, sess := newTestFlow(t, ks)
	ctx := context.Background()

	require.True(t, flow.Begin(ctx).OK)
	require.True(t, flow.SubmitDocument(ctx, api.DocumentSubmission{
		Type: "passport", Country: "DE", FrontImagePath: writeTestImage(t),
	}).OK)

	res := flow.FinishLiveness(ctx)
	assert.False(t, res.OK)
	assert.NotEqual(t, StepComplete, flow.Step())
	assert.False(t, sess.KycVerified())
}
