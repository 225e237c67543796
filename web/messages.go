package web

import (
	"net/http"

	"github.com/kataras/iris/v12"

	"docspot/internal/messages"
)

func addRouteMessages(r *Router) []*Route {
	var tempRoutes []*Route

	tempRoutes = append(tempRoutes, &Route{
		Name: "List Messages",
		Path: "/messages",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			receiverID := ctx.URLParam("receiverId")
			unread := ctx.URLParamDefault("unread", "") == "true"
			list, err := r.messages.Filter(ctx.Request().Context(), func(m messages.Message) bool {
				return (receiverID == "" || m.ReceiverID == receiverID) && (!unread || !m.Read)
			})
			if err != nil {
				return err
			}
			return ctx.JSON(list)
		},
		Type: RouteType_GET,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Send Message",
		Path: "/messages",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			var m messages.Message
			if err := ctx.ReadJSON(&m); err != nil {
				return fail(ctx, http.StatusBadRequest, err)
			}
			m, err := messages.Compose(m)
			if err != nil {
				return fail(ctx, http.StatusBadRequest, err)
			}
			if err := r.messages.Add(ctx.Request().Context(), m); err != nil {
				return err
			}
			ctx.StatusCode(http.StatusCreated)
			return ctx.JSON(m)
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Mark Message Read",
		Path: "/messages/{id}/read",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			if err := messages.MarkRead(ctx.Request().Context(), r.messages, ctx.Params().Get("id")); err != nil {
				return err
			}
			ctx.StatusCode(http.StatusNoContent)
			return nil
		},
		Type: RouteType_POST,
	})

	return tempRoutes
}
