package web

import (
	"net/http"

	"github.com/kataras/iris/v12"
	log "github.com/sirupsen/logrus"

	"docspot/internal/appointments"
	"docspot/internal/auth"
	"docspot/internal/store"
	"docspot/internal/users"
)

func addRouteAuth(r *Router) []*Route {
	var tempRoutes []*Route

	tempRoutes = append(tempRoutes, &Route{
		Name:    "Login",
		Path:    "/auth/login",
		JWT:     false,
		Limited: true,
		Func: func(ctx iris.Context) error {
			var l auth.Login
			if err := ctx.ReadJSON(&l); err != nil {
				return fail(ctx, http.StatusBadRequest, err)
			}

			u, err := r.Auth.Authenticate(ctx.Request().Context(), l.Email, l.Password)
			if err != nil {
				return fail(ctx, statusFor(err), err)
			}

			t, err := auth.IssueToken(u.ID, r.Options.Secret)
			if err != nil {
				return err
			}
			log.Infof("%s signed in from %s", u.ID, clientIP(ctx))
			return ctx.JSON(iris.Map{"token": t, "data": u})
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name:    "Signup",
		Path:    "/auth/signup",
		JWT:     false,
		Limited: true,
		Func: func(ctx iris.Context) error {
			var reg auth.Register
			if err := ctx.ReadJSON(&reg); err != nil {
				return fail(ctx, http.StatusBadRequest, err)
			}
			if reg.Role == "" {
				reg.Role = users.RolePatient
			}

			u, err := r.Auth.Signup(ctx.Request().Context(), reg.Name, reg.Email, reg.Password, reg.Role)
			if err != nil {
				return fail(ctx, statusFor(err), err)
			}
			ctx.StatusCode(http.StatusCreated)
			return ctx.JSON(iris.Map{"data": u})
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Profile",
		Path: "/auth/profile",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			claims := GetClaims(ctx)
			u, ok, err := r.users.Get(ctx.Request().Context(), claims.UserID)
			if err != nil {
				return err
			}
			if !ok {
				return fail(ctx, http.StatusNotFound, store.ErrNotFound)
			}
			return ctx.JSON(u)
		},
		Type: RouteType_GET,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Update Profile",
		Path: "/auth/profile",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			var patch users.Patch
			if err := ctx.ReadJSON(&patch); err != nil {
				return fail(ctx, http.StatusBadRequest, err)
			}

			u, err := users.UpdateProfile(ctx.Request().Context(), r.users, GetClaims(ctx).UserID, patch)
			if err != nil {
				return fail(ctx, statusFor(err), err)
			}
			return ctx.JSON(u)
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "My Appointments",
		Path: "/auth/appointments",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			list, err := appointments.ForUser(ctx.Request().Context(), r.appointments, GetClaims(ctx).UserID)
			if err != nil {
				return err
			}
			return ctx.JSON(list)
		},
		Type: RouteType_GET,
	})

	return tempRoutes
}
