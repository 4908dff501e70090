package handlers

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ua-parser/uap-go/uaparser"

	"backend/internal/models"
)

// agentParser uses the definitions compiled into uap-go.
var agentParser = uaparser.NewFromSaved()

// unknownAgentToken is what the ua-parser family renders for an unrecognized
// device or OS.
const unknownAgentToken = "Other 0.0.0"

// resolveClientIP walks the proxy headers before falling back to the socket
// address.
func resolveClientIP(headers http.Header, remoteAddr string) string {
	for _, header := range []string{"X-Forwarded-For", "X-Real-Ip", "X-Client-Ip"} {
		if value := strings.TrimSpace(headers.Get(header)); value != "" {
			return value
		}
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}

// deviceLabel picks a readable device string: parsed device, then parsed OS,
// then "Other". Empty and unknown-sentinel tokens are skipped.
func deviceLabel(client *uaparser.Client) string {
	if device := client.Device.ToString(); usableAgentToken(device) {
		return device
	}
	if os := client.Os.ToString(); usableAgentToken(os) {
		return os
	}
	return "Other"
}

func browserLabel(client *uaparser.Client) string {
	if browser := client.UserAgent.ToString(); browser != "" {
		return browser
	}
	return "Unknown"
}

func usableAgentToken(token string) bool {
	return token != "" && token != "Other" && token != unknownAgentToken
}

// newLoginRecord captures the request metadata stored with each successful
// login. Location stays "Unknown"; no geolocation service is wired in.
func newLoginRecord(c *gin.Context) models.LoginRecord {
	rawAgent := c.Request.UserAgent()
	client := agentParser.Parse(rawAgent)

	return models.LoginRecord{
		Timestamp: time.Now(),
		IP:        resolveClientIP(c.Request.Header, c.Request.RemoteAddr),
		UserAgent: rawAgent,
		Location:  "Unknown",
		Device:    deviceLabel(client),
		Browser:   browserLabel(client),
	}
}
