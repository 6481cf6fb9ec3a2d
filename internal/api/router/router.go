package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"student-hub/config"
	"student-hub/internal/api/handler"
	"student-hub/internal/api/middleware"
	"student-hub/pkg/jwt"
	"student-hub/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录接口限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", middleware.RateLimit(rdb, 30, time.Minute), h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 学院模块
			colleges := authorized.Group("/colleges")
			{
				colleges.GET("", h.College.ListColleges)
				colleges.GET("/:id", h.College.GetCollege)
				colleges.POST("", middleware.RoleAuth("admin"), h.College.CreateCollege)
				colleges.PUT("/:id", middleware.RoleAuth("admin"), h.College.UpdateCollege)
				colleges.DELETE("/:id", middleware.RoleAuth("admin"), h.College.DeleteCollege)
			}

			// 系部模块
			departments := authorized.Group("/departments")
			{
				departments.GET("", h.Department.ListDepartments)
				departments.GET("/:id", h.Department.GetDepartment)
				departments.POST("", middleware.RoleAuth("admin"), h.Department.CreateDepartment)
				departments.PUT("/:id", middleware.RoleAuth("admin"), h.Department.UpdateDepartment)
				departments.DELETE("/:id", middleware.RoleAuth("admin"), h.Department.DeleteDepartment)
			}

			// 教室模块
			classrooms := authorized.Group("/classrooms")
			{
				classrooms.GET("", h.Classroom.ListClassrooms)
				classrooms.GET("/:id", h.Classroom.GetClassroom)
				classrooms.POST("", middleware.RoleAuth("admin"), h.Classroom.CreateClassroom)
				classrooms.PUT("/:id", middleware.RoleAuth("admin"), h.Classroom.UpdateClassroom)
				classrooms.DELETE("/:id", middleware.RoleAuth("admin"), h.Classroom.DeleteClassroom)
			}

			// 教师模块
			faculties := authorized.Group("/faculties")
			{
				faculties.GET("", h.Faculty.ListFaculties)
				faculties.GET("/:id", h.Faculty.GetFaculty)
				faculties.POST("", middleware.RoleAuth("admin"), h.Faculty.CreateFaculty)
				faculties.PUT("/:id", middleware.RoleAuth("admin"), h.Faculty.UpdateFaculty)
				faculties.DELETE("/:id", middleware.RoleAuth("admin"), h.Faculty.DeleteFaculty)
			}

			// 课程模块
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.ListSubjects)
				subjects.GET("/:id", h.Subject.GetSubject)
				subjects.POST("", middleware.RoleAuth("admin"), h.Subject.CreateSubject)
				subjects.PUT("/:id", middleware.RoleAuth("admin"), h.Subject.UpdateSubject)
				subjects.DELETE("/:id", middleware.RoleAuth("admin"), h.Subject.DeleteSubject)
			}

			// 课表模块（条目变更限 admin 与 scheduler 角色）
			timetables := authorized.Group("/timetables")
			{
				timetables.GET("", h.Timetable.ListTimetables)
				timetables.GET("/:id", h.Timetable.GetTimetable)
				timetables.POST("", middleware.RoleAuth("admin", "scheduler"), h.Timetable.CreateTimetable)
				timetables.DELETE("/:id", middleware.RoleAuth("admin", "scheduler"), h.Timetable.DeleteTimetable)

				timetables.POST("/:id/entries", middleware.RoleAuth("admin", "scheduler"), h.Timetable.AddEntry)
				timetables.PUT("/:id/entries/:entry_id", middleware.RoleAuth("admin", "scheduler"), h.Timetable.UpdateEntry)
				timetables.DELETE("/:id/entries/:entry_id", middleware.RoleAuth("admin", "scheduler"), h.Timetable.RemoveEntry)

				timetables.GET("/:id/availability", h.Timetable.CheckAvailability)
				timetables.GET("/:id/faculties/:faculty_id/entries", h.Timetable.GetFacultyEntries)
				timetables.GET("/:id/classrooms/:classroom_id/entries", h.Timetable.GetClassroomEntries)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/timetables/:id/excel", h.Export.ExportTimetableExcel)
				export.GET("/timetables/:id/faculties/:faculty_id/ics", h.Export.ExportFacultyICS)
			}
		}
	}

	return r
}
