package web

import (
	"net/http"
	"strings"

	"github.com/kataras/iris/v12"

	"docspot/internal/store"
	"docspot/internal/users"
)

// defaultPasswords are handed to accounts created by staff rather than by signup.
var defaultPasswords = map[users.Role]string{
	users.RolePatient: "patient123",
	users.RoleDoctor:  "doctor123",
	users.RoleAdmin:   "admin123",
}

type newUser struct {
	users.User
	Password string `json:"password,omitempty"`
}

func addRouteUsers(r *Router) []*Route {
	var tempRoutes []*Route

	for _, role := range users.Roles {
		role := role
		path := "/" + string(role) + "s"

		tempRoutes = append(tempRoutes, &Route{
			Name: "List " + string(role) + "s",
			Path: path,
			JWT:  false,
			Func: func(ctx iris.Context) error {
				list, err := users.ByRole(ctx.Request().Context(), r.users, role)
				if err != nil {
					return err
				}
				return ctx.JSON(list)
			},
			Type: RouteType_GET,
		})

		tempRoutes = append(tempRoutes, &Route{
			Name: "Create " + string(role),
			Path: path,
			JWT:  false,
			Func: func(ctx iris.Context) error {
				var req newUser
				if err := ctx.ReadJSON(&req); err != nil {
					return fail(ctx, http.StatusBadRequest, err)
				}
				if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
					return fail(ctx, http.StatusBadRequest, users.ErrMissingIdentity)
				}
				if role == users.RolePatient {
					if err := r.simulateLatency(ctx); err != nil {
						return err
					}
				}

				u := req.User
				base := users.New(string(role), strings.TrimSpace(u.Name), strings.TrimSpace(u.Email), role)
				u.ID, u.Name, u.Email, u.Role, u.CreatedAt = base.ID, base.Name, base.Email, base.Role, base.CreatedAt

				password := req.Password
				if password == "" {
					password = defaultPasswords[role]
				}
				if err := r.Auth.CreateAccount(ctx.Request().Context(), u, password); err != nil {
					return fail(ctx, statusFor(err), err)
				}
				ctx.StatusCode(http.StatusCreated)
				return ctx.JSON(u)
			},
			Type: RouteType_POST,
		})
	}

	tempRoutes = append(tempRoutes, &Route{
		Name: "Search Users",
		Path: "/users",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			all, err := r.users.List(ctx.Request().Context())
			if err != nil {
				return err
			}
			if role := users.Role(ctx.URLParam("role")); role != "" {
				filtered := all[:0]
				for _, u := range all {
					if u.Role == role {
						filtered = append(filtered, u)
					}
				}
				all = filtered
			}
			return ctx.JSON(users.Search(all, ctx.URLParam("q")))
		},
		Type: RouteType_GET,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Delete User",
		Path: "/users/{id}",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			id := ctx.Params().Get("id")
			_, ok, err := r.users.Get(ctx.Request().Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fail(ctx, http.StatusNotFound, store.ErrNotFound)
			}
			if err := r.users.Delete(ctx.Request().Context(), id); err != nil {
				return err
			}
			ctx.StatusCode(http.StatusNoContent)
			return nil
		},
		Type: RouteType_DELETE,
	})

	return tempRoutes
}
