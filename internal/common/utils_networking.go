package common

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ParseCidrs parses a list of CIDRs, treating a bare address as a /32;
// entries that fail to parse are skipped and reported as warnings
func ParseCidrs(cidrs []string) (validCidrs []*net.IPNet, warnings []string, err error) {
	parsed := []*net.IPNet{}
	for _, cidr := range cidrs {
		if !strings.Contains(cidr, "/") {
			cidr += "/32"
		}
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("provided cidr[%s] is invalid, it was skipped", cidr))
			continue
		}
		parsed = append(parsed, network)
	}
	if len(parsed) == 0 {
		parsed = nil
	}
	return parsed, warnings, nil
}

// extractRequestIp prefers the first X-Forwarded-For hop over the
// connection's remote address
func extractRequestIp(r *http.Request) (net.IP, error) {
	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		firstHop := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
		if parsed := net.ParseIP(firstHop); parsed != nil {
			return parsed, nil
		}
	}
	remoteIp, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return nil, err
	}
	parsed := net.ParseIP(remoteIp)
	if parsed == nil {
		return nil, errors.New("invalid remote ip")
	}
	return parsed, nil
}

func isIpAllowed(ip net.IP, cidrs []*net.IPNet) bool {
	for _, cidr := range cidrs {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}
