//go:build !mobile

package utils

import "testing"

func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("VALENTINE_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}

	t.Setenv("VALENTINE_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should honour VALENTINE_MOBILE_EMULATE")
	}
}
