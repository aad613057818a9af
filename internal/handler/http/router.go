package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/user"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/handler/http/middleware"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	employeeHandler EmployeeHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timesheet-management"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).
					Post("/check-in", attendanceHandler.CheckIn)
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).
					Post("/check-out", attendanceHandler.CheckOut)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).
					Get("/my", attendanceHandler.GetMyAttendance)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).
					Get("/", attendanceHandler.List)
				r.With(middleware.RequirePermission(user.PermissionAttendanceSweep)).
					Post("/sweep", attendanceHandler.Sweep)
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionTimesheetViewOwn)).
					Get("/weekly", attendanceHandler.WeeklyTimesheet)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).
					Post("/", employeeHandler.Create)
				r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).
					Put("/{id}", employeeHandler.Update)
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).
					Get("/", employeeHandler.List)
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).
					Get("/{id}", employeeHandler.Get)
			})

			r.Route("/rates", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionRateManage))
				r.Post("/", payrollHandler.CreateRatePeriod)
				r.Put("/{id}", payrollHandler.UpdateRatePeriod)
				r.Delete("/{id}", payrollHandler.DeleteRatePeriod)
				r.Get("/employee/{employeeID}", payrollHandler.ListRatePeriods)
				r.Get("/employee/{employeeID}/resolve", payrollHandler.ResolveRate)
			})

			r.Route("/overtime-configs", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionOvertimeManage))
				r.Get("/{employeeID}", payrollHandler.GetOvertimeConfig)
				r.Put("/{employeeID}", payrollHandler.UpdateOvertimeConfig)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionPayrollGenerate)).
					Post("/generate", payrollHandler.Generate)
				r.With(middleware.RequirePermission(user.PermissionPayrollGenerate)).
					Post("/salaried", payrollHandler.CreateSalariedRecord)
				r.With(middleware.RequirePermission(user.PermissionPayrollViewAll)).
					Get("/", payrollHandler.List)
				r.With(middleware.RequirePermission(user.PermissionPayrollViewOwn)).
					Get("/{id}", payrollHandler.Get)
				r.With(middleware.RequirePermission(user.PermissionPayrollApprove)).
					Post("/{id}/approve", payrollHandler.Approve)
				r.With(middleware.RequirePermission(user.PermissionPayrollApprove)).
					Post("/{id}/reject", payrollHandler.Reject)
				r.With(middleware.RequirePermission(user.PermissionPayrollApprove)).
					Post("/{id}/pay", payrollHandler.MarkPaid)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
