package web

import (
	"fmt"
	"net/http"

	"github.com/kataras/iris/v12"

	"docspot/internal/appointments"
	"docspot/internal/messages"
	"docspot/internal/store"
	"docspot/workers"
)

func addRouteAppointments(r *Router) []*Route {
	var tempRoutes []*Route

	tempRoutes = append(tempRoutes, &Route{
		Name: "List Appointments",
		Path: "/appointments",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			patientID, doctorID := ctx.URLParam("patientId"), ctx.URLParam("doctorId")
			list, err := r.appointments.Filter(ctx.Request().Context(), func(a appointments.Appointment) bool {
				return (patientID == "" || a.PatientID == patientID) && (doctorID == "" || a.DoctorID == doctorID)
			})
			if err != nil {
				return err
			}
			return ctx.JSON(list)
		},
		Type: RouteType_GET,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Book Appointment",
		Path: "/appointments",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			var a appointments.Appointment
			if err := ctx.ReadJSON(&a); err != nil {
				return fail(ctx, http.StatusBadRequest, err)
			}
			if err := a.Validate(); err != nil {
				return fail(ctx, http.StatusBadRequest, err)
			}
			if err := r.simulateLatency(ctx); err != nil {
				return err
			}

			r.fillNames(ctx, a.PatientID, a.DoctorID, &a.PatientName, &a.DoctorName)
			a = appointments.Book(a)
			if err := r.appointments.Add(ctx.Request().Context(), a); err != nil {
				return err
			}

			workers.Notify(r.Options.Notifications, messages.Message{
				SenderID:     a.PatientID,
				SenderName:   a.PatientName,
				ReceiverID:   a.DoctorID,
				ReceiverName: a.DoctorName,
				Subject:      "New appointment",
				Content:      fmt.Sprintf("%s booked a %s on %s at %s.", a.PatientName, a.Type, a.Date, a.Time),
			})

			ctx.StatusCode(http.StatusCreated)
			return ctx.JSON(a)
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Get Appointment",
		Path: "/appointments/{id}",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			a, ok, err := r.appointments.Get(ctx.Request().Context(), ctx.Params().Get("id"))
			if err != nil {
				return err
			}
			if !ok {
				return fail(ctx, http.StatusNotFound, store.ErrNotFound)
			}
			return ctx.JSON(a)
		},
		Type: RouteType_GET,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Set Appointment Status",
		Path: "/appointments/{id}/status",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			var req struct {
				Status appointments.Status `json:"status"`
			}
			if err := ctx.ReadJSON(&req); err != nil {
				return fail(ctx, http.StatusBadRequest, err)
			}

			a, err := appointments.SetStatus(ctx.Request().Context(), r.appointments, ctx.Params().Get("id"), req.Status)
			if err != nil {
				return fail(ctx, statusFor(err), err)
			}

			workers.Notify(r.Options.Notifications, messages.Message{
				SenderID:     a.DoctorID,
				SenderName:   a.DoctorName,
				ReceiverID:   a.PatientID,
				ReceiverName: a.PatientName,
				Subject:      "Appointment " + string(a.Status),
				Content:      fmt.Sprintf("Your appointment on %s at %s is now %s.", a.Date, a.Time, a.Status),
			})
			return ctx.JSON(a)
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Delete Appointment",
		Path: "/appointments/{id}",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			if err := r.appointments.Delete(ctx.Request().Context(), ctx.Params().Get("id")); err != nil {
				return err
			}
			ctx.StatusCode(http.StatusNoContent)
			return nil
		},
		Type: RouteType_DELETE,
	})

	return tempRoutes
}
