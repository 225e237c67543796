package web

import (
	"net/http"

	"github.com/kataras/iris/v12"

	"docspot/internal/prescriptions"
)

func addRoutePrescriptions(r *Router) []*Route {
	var tempRoutes []*Route

	tempRoutes = append(tempRoutes, &Route{
		Name: "List Prescriptions",
		Path: "/prescriptions",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			patientID, doctorID := ctx.URLParam("patientId"), ctx.URLParam("doctorId")
			list, err := r.prescriptions.Filter(ctx.Request().Context(), func(p prescriptions.Prescription) bool {
				return (patientID == "" || p.PatientID == patientID) && (doctorID == "" || p.DoctorID == doctorID)
			})
			if err != nil {
				return err
			}
			return ctx.JSON(list)
		},
		Type: RouteType_GET,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Issue Prescription",
		Path: "/prescriptions",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			var p prescriptions.Prescription
			if err := ctx.ReadJSON(&p); err != nil {
				return fail(ctx, http.StatusBadRequest, err)
			}
			p, err := prescriptions.Issue(p)
			if err != nil {
				return fail(ctx, http.StatusBadRequest, err)
			}
			if err := r.simulateLatency(ctx); err != nil {
				return err
			}

			r.fillNames(ctx, p.PatientID, p.DoctorID, &p.PatientName, &p.DoctorName)
			if err := r.prescriptions.Add(ctx.Request().Context(), p); err != nil {
				return err
			}
			ctx.StatusCode(http.StatusCreated)
			return ctx.JSON(p)
		},
		Type: RouteType_POST,
	})

	return tempRoutes
}
