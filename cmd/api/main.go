package main

import (
	"fmt"
	"net/http"

	"github.com/kantorhq/hrms-backend-go/internal/config"
	"github.com/kantorhq/hrms-backend-go/internal/domain/leave"
	appHTTP "github.com/kantorhq/hrms-backend-go/internal/handler/http"
	"github.com/kantorhq/hrms-backend-go/internal/pkg/database"
	"github.com/kantorhq/hrms-backend-go/internal/pkg/jwt"
	"github.com/kantorhq/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kantorhq/hrms-backend-go/internal/service/attendance"
	dashboardService "github.com/kantorhq/hrms-backend-go/internal/service/dashboard"
	leaveService "github.com/kantorhq/hrms-backend-go/internal/service/leave"
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

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, cfg.Attendance)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, leave.DefaultQuotaCeilings())
	dashboardSvc := dashboardService.NewDashboardService(attendanceSvc, leaveSvc)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(jwtService, attendanceHandler, leaveHandler, dashboardHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
