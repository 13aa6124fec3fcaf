package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cryptoswap-service/internal/application"
	"cryptoswap-service/internal/bootstrap"
	"cryptoswap-service/internal/config"
	httpserver "cryptoswap-service/internal/infrastructure/http"
	"cryptoswap-service/internal/infrastructure/metrics"
	redisstore "cryptoswap-service/internal/infrastructure/redis"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const (
	swapDelay          = 100 * time.Millisecond
	statusPollTimeout  = 5 * time.Second
	statusPollInterval = 20 * time.Millisecond
	requestContentType = "application/json"
	idempotencyHeader  = "X-Idempotency-Key"
)

type swapResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Message   string `json:"message"`
}

type stack struct {
	url     string
	mr      *miniredis.Miniredis
	session *application.Session
}

// startStack wires the api process in-process against miniredis.
func startStack(t *testing.T) stack {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	t.Setenv("REDIS_ADDR", mr.Addr())
	t.Setenv("SWAP_DELAY", swapDelay.String())
	t.Setenv("TICK_INTERVAL", "20ms")
	t.Setenv("RAND_SEED", "42")
	cfg, err := config.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	services, closeRedis, err := bootstrap.BuildRedis(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(closeRedis)

	m := metrics.New()
	session := bootstrap.BuildSession(cfg, services, m)
	t.Cleanup(session.Stop)
	session.Start(ctx, bootstrap.BuildRateWorker(cfg, session, services, m))

	srv := httpserver.NewServer(session, application.NewCatalog(nil))
	srv.SetMetricsHandler(m.Handler())
	srv.SetReadyCheck(services.Ping)
	ts := httptest.NewServer(httpserver.NewRouter(srv))
	t.Cleanup(ts.Close)
	return stack{url: ts.URL, mr: mr, session: session}
}

func TestE2E_SwapLifecycle(t *testing.T) {
	st := startStack(t)
	client := redis.NewClient(&redis.Options{Addr: st.mr.Addr()})
	defer client.Close()
	sub := client.Subscribe(context.Background(), redisstore.SwapCompletedChan)
	defer sub.Close()
	_, err := sub.Receive(context.Background())
	require.NoError(t, err)

	waitForReady(t, st.url)
	putAmount(t, st.url, "primary", "100")

	sw := postSwap(t, st.url, "e2e-1", http.StatusAccepted)
	require.Equal(t, "pending", sw.Status)
	require.Equal(t, "100", sw.Primary)
	require.NotEmpty(t, sw.Secondary)

	postSwap(t, st.url, "e2e-2", http.StatusConflict)

	done := waitForDone(t, st.url, sw.ID)
	require.Equal(t, "Trade executed successfully!", done.Message)

	msg, err := sub.ReceiveMessage(context.Background())
	require.NoError(t, err)
	require.Contains(t, msg.Payload, sw.ID)

	// same key after completion is still a duplicate
	postSwap(t, st.url, "e2e-1", http.StatusConflict)

	resp, err := http.Get(st.url + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestE2E_RateTicksAndCaches(t *testing.T) {
	st := startStack(t)
	seed := st.session.Rate().Rate

	require.Eventually(t, func() bool {
		return st.session.Rate().Rate != seed
	}, statusPollTimeout, statusPollInterval)
	require.Eventually(t, func() bool {
		return st.mr.Exists(redisstore.RateKey(st.session.Pair()))
	}, statusPollTimeout, statusPollInterval)

	client := redis.NewClient(&redis.Options{Addr: st.mr.Addr()})
	defer client.Close()
	cached, err := redisstore.NewRateCache(client, time.Minute).Latest(context.Background(), st.session.Pair())
	require.NoError(t, err)
	require.Greater(t, cached.Rate, 0.0)
	require.False(t, cached.LastUpdated.IsZero())
}

func waitForReady(t *testing.T, baseURL string) {
	t.Helper()
	require.Eventually(t, func() bool {
		resp, err := http.Get(baseURL + "/readyz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, statusPollTimeout, statusPollInterval)
}

func putAmount(t *testing.T, baseURL, side, value string) {
	t.Helper()
	data, _ := json.Marshal(map[string]string{"value": value})
	req, err := http.NewRequest(http.MethodPut, baseURL+"/amounts/"+side, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", requestContentType)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func postSwap(t *testing.T, baseURL, idem string, want int) swapResponse {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, baseURL+"/swaps", nil)
	require.NoError(t, err)
	req.Header.Set(idempotencyHeader, idem)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, want, resp.StatusCode)
	var out swapResponse
	if want == http.StatusAccepted {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.NotEmpty(t, out.ID)
	}
	return out
}

func waitForDone(t *testing.T, baseURL, id string) swapResponse {
	t.Helper()
	var out swapResponse
	require.Eventually(t, func() bool {
		resp, err := http.Get(baseURL + "/swaps/" + id)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return false
		}
		out = swapResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return false
		}
		return out.Status == "completed"
	}, statusPollTimeout, statusPollInterval)
	return out
}
