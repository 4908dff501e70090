package handlers

import (
	"net/http"
	"testing"

	"github.com/ua-parser/uap-go/uaparser"
)

func TestResolveClientIPPrefersForwardedHeader(t *testing.T) {
	headers := http.Header{}
	headers.Set("X-Forwarded-For", "203.0.113.9")
	headers.Set("X-Real-Ip", "198.51.100.2")

	if got := resolveClientIP(headers, "192.0.2.1:54321"); got != "203.0.113.9" {
		t.Fatalf("expected forwarded header to win, got %q", got)
	}
}

func TestResolveClientIPHeaderFallbackOrder(t *testing.T) {
	headers := http.Header{}
	headers.Set("X-Client-Ip", "198.51.100.7")

	if got := resolveClientIP(headers, "192.0.2.1:54321"); got != "198.51.100.7" {
		t.Fatalf("expected x-client-ip fallback, got %q", got)
	}
}

func TestResolveClientIPFallsBackToSocketAddress(t *testing.T) {
	if got := resolveClientIP(http.Header{}, "192.0.2.1:54321"); got != "192.0.2.1" {
		t.Fatalf("expected socket host without port, got %q", got)
	}
	if got := resolveClientIP(http.Header{}, "192.0.2.1"); got != "192.0.2.1" {
		t.Fatalf("expected raw socket address, got %q", got)
	}
}

func TestDeviceLabelPrefersParsedDevice(t *testing.T) {
	client := &uaparser.Client{
		Device: &uaparser.Device{Family: "iPhone"},
		Os:     &uaparser.Os{Family: "iOS"},
	}
	if got := deviceLabel(client); got != "iPhone" {
		t.Fatalf("expected device family, got %q", got)
	}
}

func TestDeviceLabelFallsBackToOS(t *testing.T) {
	client := &uaparser.Client{
		Device: &uaparser.Device{Family: "Other"},
		Os:     &uaparser.Os{Family: "Windows", Major: "10"},
	}
	if got := deviceLabel(client); got != "Windows 10" {
		t.Fatalf("expected OS token fallback, got %q", got)
	}
}

func TestDeviceLabelFallsBackToOther(t *testing.T) {
	client := &uaparser.Client{
		Device: &uaparser.Device{Family: "Other"},
		Os:     &uaparser.Os{Family: "Other"},
	}
	if got := deviceLabel(client); got != "Other" {
		t.Fatalf("expected Other for unknown agent, got %q", got)
	}
}

func TestUsableAgentTokenRejectsSentinels(t *testing.T) {
	for _, token := range []string{"", "Other", "Other 0.0.0"} {
		if usableAgentToken(token) {
			t.Fatalf("expected %q to be rejected", token)
		}
	}
	if !usableAgentToken("Mac OS X 10.15.7") {
		t.Fatal("expected a real OS token to be usable")
	}
}

func TestBrowserLabelUnknownWhenEmpty(t *testing.T) {
	client := &uaparser.Client{UserAgent: &uaparser.UserAgent{}}
	if got := browserLabel(client); got != "Unknown" {
		t.Fatalf("expected Unknown for empty agent, got %q", got)
	}
}

func TestAgentParserRecognizesChrome(t *testing.T) {
	ua := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	client := agentParser.Parse(ua)

	if got := browserLabel(client); got == "Unknown" {
		t.Fatalf("expected a browser token for a Chrome agent, got %q", got)
	}
	if got := deviceLabel(client); got == "" {
		t.Fatal("expected a non-empty device label")
	}
}
