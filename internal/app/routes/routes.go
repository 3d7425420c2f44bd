package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edutech-cl/platform/internal/app/controllers"
	"github.com/edutech-cl/platform/internal/app/models"
	"github.com/edutech-cl/platform/internal/middleware"
	"github.com/edutech-cl/platform/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	jwtService *auth.JWTService,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/login", authController.Login)
	}

	// --- User routes ---
	users := v1.Group("/users")
	{
		users.POST("", userController.CreateUser)
		users.GET("", userController.GetAllUsers)
		users.GET("/:id", userController.GetUserByID)
		users.GET("/run/:run", userController.GetUserByRun)
		users.PUT("/:id", userController.UpdateUser)
		users.DELETE("/:id", userController.DeleteUser)
	}

	// --- Course routes ---
	courses := v1.Group("/courses")
	{
		// Read access is public
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/:id", courseController.GetCourseByID)

		// Catalog mutations require an authenticated admin
		coursesAdminProtected := courses.Group("")
		coursesAdminProtected.Use(middleware.JWTAuth(jwtService), middleware.RoleRequired(models.RoleAdmin))
		{
			coursesAdminProtected.POST("", courseController.CreateCourse)
			coursesAdminProtected.PUT("/:id", courseController.UpdateCourse)
			coursesAdminProtected.DELETE("/:id", courseController.DeleteCourse)
		}
	}

	// --- Enrollment routes ---
	enrollments := v1.Group("/enrollments")
	{
		enrollments.GET("", enrollmentController.GetAllEnrollments)
		enrollments.GET("/:id", enrollmentController.GetEnrollmentByID)
		enrollments.GET("/user/:userId", enrollmentController.GetEnrollmentsByUser)
		enrollments.POST("", enrollmentController.CreateEnrollment)
		enrollments.PUT("/:id", enrollmentController.UpdateEnrollment)
		enrollments.DELETE("/:id", enrollmentController.DeleteEnrollment)
	}
}
