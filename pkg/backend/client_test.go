package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ftth-net.id/dashboard/internal/models"
)

func writeEnvelope(w http.ResponseWriter, status int, state, remark string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"httpCode": status,
		"status":   state,
		"remark":   remark,
		"data":     data,
	})
}

func TestListRoutersSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/routers", r.URL.Path)
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, "success", "Success retrieve data", []models.Router{
			{ID: "r-1", Name: "Core", Status: models.RouterEnabled},
		})
	}))
	defer srv.Close()

	routers, err := New(srv.URL, time.Second).WithToken("tkn").ListRouters(context.Background())
	require.NoError(t, err)
	require.Len(t, routers, 1)
	assert.Equal(t, "Core", routers[0].Name)
}

func TestScanInterfacesAcceptsStringFlags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/interfaces/r-1/interfaces-scan", r.URL.Path)
		writeEnvelope(w, http.StatusOK, "success", "Success", []map[string]string{
			{"name": "ether1", "type": "ether", "disabled": "false", "running": "true"},
			{"name": "wlan1", "type": "wlan", "disabled": "true", "running": "false"},
		})
	}))
	defer srv.Close()

	scanned, err := New(srv.URL, time.Second).ScanInterfaces(context.Background(), "r-1")
	require.NoError(t, err)
	require.Len(t, scanned, 2)
	assert.Equal(t, "ether1", scanned[0].Name)
	assert.True(t, bool(scanned[0].Running))
	assert.False(t, bool(scanned[0].Disabled))
	assert.True(t, bool(scanned[1].Disabled))
	assert.False(t, bool(scanned[1].Running))
}

func TestFailedEnvelopeBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, "failed", "dial tcp 10.0.0.1:8728: i/o timeout", nil)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).TestConnection(context.Background(), models.Router{Address: "10.0.0.1"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "dial tcp 10.0.0.1:8728: i/o timeout", Message(err, "fallback"))
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
}

func TestNonSuccessStatusOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "failed", "", nil)
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).SyncTraffic(context.Background())
	require.Error(t, err)
	assert.Equal(t, "sync failed", Message(err, "sync failed"))
}

func TestNetworkErrorUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).ListPackages(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to load packages", Message(err, "Failed to load packages"))
	assert.Equal(t, http.StatusBadGateway, StatusCode(err))
}

func TestServiceAccountRelogsOnUnauthorized(t *testing.T) {
	var logins int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			n := atomic.AddInt32(&logins, 1)
			token := "stale"
			if n > 1 {
				token = "fresh"
			}
			writeEnvelope(w, http.StatusOK, "success", "login success", map[string]string{"token": token})
		case "/api/interfaces":
			if r.Header.Get("Authorization") != "Bearer fresh" {
				writeEnvelope(w, http.StatusUnauthorized, "failed", "token expired", nil)
				return
			}
			writeEnvelope(w, http.StatusOK, "success", "", []models.Interface{{ID: 7, Name: "ether1"}})
		}
	}))
	defer srv.Close()

	svc := NewServiceAccount(New(srv.URL, time.Second), "svc@ftth.net", "secret")

	var got []models.Interface
	err := svc.Do(context.Background(), func(c *Client) error {
		var err error
		got, err = c.ListInterfaces(context.Background())
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&logins))
	require.Len(t, got, 1)
	assert.Equal(t, "ether1", got[0].Name)
}

func TestServiceAccountRequiresCredentials(t *testing.T) {
	svc := NewServiceAccount(New("http://127.0.0.1:1", time.Second), "", "")
	err := svc.Do(context.Background(), func(c *Client) error { return nil })
	assert.Error(t, err)
}
