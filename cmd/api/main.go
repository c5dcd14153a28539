package main

import (
	"fmt"
	"net/http"

	"github.com/clockwise-hq/timekeep-backend-go/internal/config"
	appHTTP "github.com/clockwise-hq/timekeep-backend-go/internal/handler/http"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/database"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/jwt"
	"github.com/clockwise-hq/timekeep-backend-go/internal/repository/postgresql"
	attendanceService "github.com/clockwise-hq/timekeep-backend-go/internal/service/attendance"
	scheduleService "github.com/clockwise-hq/timekeep-backend-go/internal/service/schedule"
	timesheetService "github.com/clockwise-hq/timekeep-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	eventRepo := postgresql.NewAttendanceEventRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	workRuleRepo := postgresql.NewWorkRuleRepository(db)
	weeklyRuleRepo := postgresql.NewWeeklyRuleRepository(db)
	shiftRepo := postgresql.NewDepartmentShiftRepository(db)
	planRepo := postgresql.NewSchedulePlanRepository(db)
	overrideRepo := postgresql.NewManualOverrideRepository(db)
	laborProfileRepo := postgresql.NewLaborProfileRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	attendanceSvc := attendanceService.NewAttendanceService(eventRepo, employeeRepo, departmentRepo)
	overrideSvc := scheduleService.NewOverrideService(overrideRepo, shiftRepo, planRepo, employeeRepo)
	timesheetSvc := timesheetService.NewTimesheetService(
		employeeRepo,
		departmentRepo,
		eventRepo,
		leaveRepo,
		workRuleRepo,
		weeklyRuleRepo,
		shiftRepo,
		planRepo,
		overrideRepo,
		laborProfileRepo,
		cfg.Attendance.DefaultTimezone,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	overrideHandler := appHTTP.NewOverrideHandler(overrideSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:              cfg.App.Env,
			AllowedOrigins:   cfg.App.AllowedOrigins,
			DeviceAPIKeyHash: cfg.Attendance.DeviceAPIKeyHash,
		},
		JWTService,
		attendanceHandler,
		timesheetHandler,
		overrideHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
