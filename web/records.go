package web

import (
	"net/http"

	"github.com/kataras/iris/v12"

	"docspot/internal/health"
	"docspot/internal/records"
)

// addRouteRecords covers medical records and health metrics, both keyed by patient.
func addRouteRecords(r *Router) []*Route {
	var tempRoutes []*Route

	tempRoutes = append(tempRoutes, &Route{
		Name: "List Records",
		Path: "/records",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			patientID := ctx.URLParam("patientId")
			list, err := r.records.Filter(ctx.Request().Context(), func(m records.MedicalRecord) bool {
				return patientID == "" || m.PatientID == patientID
			})
			if err != nil {
				return err
			}
			return ctx.JSON(list)
		},
		Type: RouteType_GET,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Create Record",
		Path: "/records",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			var m records.MedicalRecord
			if err := ctx.ReadJSON(&m); err != nil {
				return fail(ctx, http.StatusBadRequest, err)
			}
			m, err := records.Create(m)
			if err != nil {
				return fail(ctx, http.StatusBadRequest, err)
			}
			r.fillNames(ctx, m.PatientID, m.DoctorID, &m.PatientName, &m.DoctorName)
			if err := r.records.Add(ctx.Request().Context(), m); err != nil {
				return err
			}
			ctx.StatusCode(http.StatusCreated)
			return ctx.JSON(m)
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "List Health Data",
		Path: "/health",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			patientID := ctx.URLParam("patientId")
			list, err := r.health.Filter(ctx.Request().Context(), func(d health.Data) bool {
				return patientID == "" || d.PatientID == patientID
			})
			if err != nil {
				return err
			}
			return ctx.JSON(list)
		},
		Type: RouteType_GET,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Record Health Data",
		Path: "/health",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			var d health.Data
			if err := ctx.ReadJSON(&d); err != nil {
				return fail(ctx, http.StatusBadRequest, err)
			}
			d, err := health.Record(d)
			if err != nil {
				return fail(ctx, http.StatusBadRequest, err)
			}
			if err := r.health.Add(ctx.Request().Context(), d); err != nil {
				return err
			}
			ctx.StatusCode(http.StatusCreated)
			return ctx.JSON(d)
		},
		Type: RouteType_POST,
	})

	return tempRoutes
}
