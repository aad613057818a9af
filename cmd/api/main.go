package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/config"
	appHTTP "github.com/arhamhameed97/Timesheet-Management-sub000/internal/handler/http"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/cron"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/database"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/jwt"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/repository/postgresql"
	attendanceService "github.com/arhamhameed97/Timesheet-Management-sub000/internal/service/attendance"
	authService "github.com/arhamhameed97/Timesheet-Management-sub000/internal/service/auth"
	employeeService "github.com/arhamhameed97/Timesheet-Management-sub000/internal/service/employee"
	payrollService "github.com/arhamhameed97/Timesheet-Management-sub000/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Pool.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	ratePeriodRepo := postgresql.NewRatePeriodRepository(db)
	overtimeConfigRepo := postgresql.NewOvertimeConfigRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(userRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, overtimeConfigRepo)
	payrollSvc := payrollService.NewPayrollService(
		db,
		payrollRepo,
		ratePeriodRepo,
		overtimeConfigRepo,
		attendanceRepo,
		employeeRepo,
		attendanceSvc,
	)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(jwtService, authHandler, attendanceHandler, payrollHandler, employeeHandler)

	companyIDs := func(ctx context.Context) ([]string, error) {
		rows, err := db.Pool.Query(ctx, `SELECT DISTINCT company_id FROM employees WHERE deleted_at IS NULL`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var ids []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		return ids, rows.Err()
	}

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, employeeRepo, companyIDs).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on :%d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	if err := server.Shutdown(context.Background()); err != nil {
		log.Println("Shutdown error:", err)
	}
}
