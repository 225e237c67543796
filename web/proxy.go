package web

import (
	"net"
	"strings"

	"github.com/kataras/iris/v12"
)

var trustedProxies = mustParseCIDRs(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
	"fc00::/7",
	"::1/128",
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	out := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, network, err := net.ParseCIDR(c)
		if err != nil {
			panic(err)
		}
		out = append(out, network)
	}
	return out
}

func isPrivateIP(ip net.IP) bool {
	for _, network := range trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// ProxyIPMiddleware records the client address under "client_ip", looking through
// X-Forwarded-For and X-Real-IP only when the peer itself is a private address.
func ProxyIPMiddleware(ctx iris.Context) {
	ctx.Values().Set("client_ip", resolveClientIP(ctx.RemoteAddr(), ctx.GetHeader("X-Forwarded-For"), ctx.GetHeader("X-Real-IP")))
	ctx.Next()
}

func resolveClientIP(remote, forwardedFor, realIP string) string {
	remoteIP := net.ParseIP(remote)
	if remoteIP == nil || !isPrivateIP(remoteIP) {
		return remote
	}

	for _, ip := range strings.Split(forwardedFor, ",") {
		parsed := net.ParseIP(strings.TrimSpace(ip))
		if parsed != nil && !isPrivateIP(parsed) {
			return parsed.String()
		}
	}

	if parsed := net.ParseIP(strings.TrimSpace(realIP)); parsed != nil && !isPrivateIP(parsed) {
		return parsed.String()
	}

	return remote
}

func clientIP(ctx iris.Context) string {
	if v := ctx.Values().GetString("client_ip"); v != "" {
		return v
	}
	return ctx.RemoteAddr()
}
