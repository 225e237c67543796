package web

import (
	"net/http"
	"strings"

	"github.com/kataras/iris/v12"

	"docspot/internal/auth"
)

const claimsKey = "claims"

// GetClaims returns the claims VerifySession stored on the request.
func GetClaims(ctx iris.Context) *auth.Claims {
	c, _ := ctx.Values().Get(claimsKey).(*auth.Claims)
	return c
}

// VerifySession accepts only requests carrying "Authorization: Bearer $token".
func VerifySession(secret string) iris.Handler {
	return func(ctx iris.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.StopWithStatus(http.StatusUnauthorized)
			return
		}
		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			ctx.StopWithStatus(http.StatusUnauthorized)
			return
		}
		ctx.Values().Set(claimsKey, claims)
		ctx.Next()
	}
}
