package common

import "testing"

func TestResolveThreadId(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare token", "2-abcXYZ", "2-abcXYZ"},
		{"wrapped urn tuple", "urn:li:msg_conversation:(urn:li:fsd_profile:999,2-abcXYZ)", "2-abcXYZ"},
		{"fsd conversation urn", "urn:li:fsd_conversation:2-abcXYZ", "2-abcXYZ"},
		{"token with padding", "2-NzY1NDMyMQ==", "2-NzY1NDMyMQ=="},
		{"tuple without token marker", "urn:li:something:(a,b,xyz)", "xyz"},
		{"empty input", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveThreadId(tc.in); got != tc.want {
				t.Errorf("ResolveThreadId(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestResolveThreadId_Deterministic(t *testing.T) {
	encodings := []string{
		"2-abcXYZ",
		"urn:li:msg_conversation:(urn:li:fsd_profile:999,2-abcXYZ)",
		"urn:li:fsd_conversation:2-abcXYZ",
	}
	for _, enc := range encodings {
		if got := ResolveThreadId(enc); got != "2-abcXYZ" {
			t.Errorf("ResolveThreadId(%q) = %q, want %q", enc, got, "2-abcXYZ")
		}
	}
}

func TestDeriveExtensionKey(t *testing.T) {
	k1 := DeriveExtensionKey("default", "secret", 16)
	k2 := DeriveExtensionKey("default", "secret", 16)
	if k1 != k2 {
		t.Errorf("expected deterministic key, got %q and %q", k1, k2)
	}
	if k1 == DeriveExtensionKey("default", "other", 16) {
		t.Error("different secrets must yield different keys")
	}
}
