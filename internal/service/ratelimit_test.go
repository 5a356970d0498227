package service_test

import (
	"testing"

	"github.com/dysobo/niuzi-assistant/internal/service"
)

func TestRateLimiter_AllowsUpToBurst(t *testing.T) {
	l := service.NewRateLimiter(0.001, 3)
	defer l.Close()

	for i := 0; i < 3; i++ {
		if !l.Allow("203.0.113.7") {
			t.Fatalf("request %d should be allowed (bucket not yet empty)", i+1)
		}
	}
	if l.Allow("203.0.113.7") {
		t.Fatal("4th request should be denied (bucket empty)")
	}
}

func TestRateLimiter_DifferentKeysAreIndependent(t *testing.T) {
	l := service.NewRateLimiter(0, 1)
	defer l.Close()

	if !l.Allow("ip-a") {
		t.Fatal("ip-a first request should be allowed")
	}
	if l.Allow("ip-a") {
		t.Fatal("ip-a second request should be denied")
	}
	if !l.Allow("ip-b") {
		t.Fatal("ip-b first request should be allowed (independent bucket)")
	}
}

func TestRateLimiter_ZeroRateNeverRefills(t *testing.T) {
	l := service.NewRateLimiter(0, 2)
	defer l.Close()

	if !l.Allow("k") || !l.Allow("k") {
		t.Fatal("first two requests should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("third request should be denied (no refill)")
	}
}
