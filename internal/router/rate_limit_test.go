package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":" Buyer@Example.com "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "10.0.0.9:4321"

	key := KeyByIPAndJSONField("email")(c)
	if key != "buyer@example.com|10.0.0.9" {
		t.Fatalf("key want buyer@example.com|10.0.0.9 got %s", key)
	}

	// 提取字段后请求体必须可重复读取
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Buyer@Example.com") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
	c.Request.RemoteAddr = "10.0.0.9:4321"

	key := KeyByIPAndJSONField("email")(c)
	if key != "10.0.0.9" {
		t.Fatalf("key want 10.0.0.9 got %s", key)
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// 无 Redis 客户端时限流直接放行
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status want 200 got %d", i, w.Code)
		}
	}
}

func TestToInt64(t *testing.T) {
	if v, ok := toInt64(int64(7)); !ok || v != 7 {
		t.Fatalf("int64 conversion failed: %d %v", v, ok)
	}
	if v, ok := toInt64(float64(4.9)); !ok || v != 4 {
		t.Fatalf("float64 conversion failed: %d %v", v, ok)
	}
	if _, ok := toInt64("seven"); ok {
		t.Fatalf("string should not convert")
	}
}
