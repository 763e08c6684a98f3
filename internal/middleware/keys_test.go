package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nbolat/vidshare/internal/config"
)

func newEchoContext(target, token string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("X-Token", token)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestBuildRateKeyDefaultStrategy(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_action"}
	c := newEchoContext("/api?action=GetVideo&videoid=1", "7,deadbeef")

	key := buildRateKey(cfg, c)
	if !strings.HasPrefix(key, "rl:ip:") {
		t.Fatalf("key = %q, want rl:ip:... prefix", key)
	}
	if !strings.Contains(key, ":user:7:") {
		t.Fatalf("key = %q, want claimed user id segment", key)
	}
	if !strings.HasSuffix(key, ":action:getvideo") {
		t.Fatalf("key = %q, want lowercased action suffix", key)
	}
}

func TestBuildRateKeyAnonymousCaller(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user_action"}

	for _, token := range []string{"", "garbage", "0,deadbeef"} {
		c := newEchoContext("/api?action=search&query=cats", token)
		key := buildRateKey(cfg, c)
		if key != "rl:user:anon:action:search" {
			t.Fatalf("token %q: key = %q, want rl:user:anon:action:search", token, key)
		}
	}
}

func TestCacheKeyVariesWithQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "action_query"}

	k1 := cacheKeyFrom(cfg, newEchoContext("/api?action=getvideo&videoid=1", ""))
	k2 := cacheKeyFrom(cfg, newEchoContext("/api?action=getvideo&videoid=2", ""))
	if k1 == k2 {
		t.Fatalf("distinct queries share cache key %q", k1)
	}
	if !strings.HasPrefix(k1, "cache:") {
		t.Fatalf("key = %q, want cache: prefix", k1)
	}

	again := cacheKeyFrom(cfg, newEchoContext("/api?action=getvideo&videoid=1", ""))
	if k1 != again {
		t.Fatalf("same request produced %q then %q", k1, again)
	}
}

func TestEncodeDecodePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`{"result":true}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(bs)
	if !ok {
		t.Fatal("decode: not ok")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Fatalf("header = %v", gotHdr)
	}
	if string(gotBody) != string(body) {
		t.Fatalf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsTruncatedInput(t *testing.T) {
	if _, _, _, ok := decodePayload([]byte{0, 0, 0}); ok {
		t.Fatal("decode: truncated input accepted")
	}
}
