package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/krushnapatil2025/Task-Manager/handlers"
	"github.com/krushnapatil2025/Task-Manager/logging"
	"github.com/krushnapatil2025/Task-Manager/middleware"
	"github.com/krushnapatil2025/Task-Manager/repositories"
	"github.com/krushnapatil2025/Task-Manager/services"
)

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Task Manager server...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoURI == "" || mongoDBName == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: MONGO_URI and MONGO_DB_NAME must be set in the environment variables.")
	}
	if os.Getenv("JWT_SECRET") == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: JWT_SECRET must be set in the environment variables.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)
	taskRepo := repositories.NewTaskRepo(db.Collection("tasks"))
	userRepo := repositories.NewUserRepo(db.Collection("users"))

	dashboardBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "DashboardQueriesCB",
		MaxRequests: 1,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	taskService := services.NewTaskService(taskRepo, userRepo)
	dashboardService := services.NewDashboardService(taskRepo, dashboardBreaker)
	userService := services.NewUserService(userRepo, taskRepo)
	adminInviteToken := os.Getenv("ADMIN_INVITE_TOKEN")
	if adminInviteToken == "" {
		logging.Logger.Warnf("Event ID: CONFIG_WARNING, Description: ADMIN_INVITE_TOKEN is not set, all registrations will be created as members.")
	}
	authService := services.NewAuthService(userRepo, adminInviteToken)

	taskHandler := handlers.NewTaskHandler(taskService, dashboardService)
	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(authService)

	auth := middleware.NewAuthMiddleware(userRepo)
	protect := func(h http.HandlerFunc) http.Handler {
		return auth.Protect(h)
	}
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return auth.Protect(middleware.AdminOnly(h))
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.Handle("/auth/profile", protect(authHandler.GetProfile)).Methods(http.MethodGet)
	api.Handle("/auth/profile", protect(authHandler.UpdateProfile)).Methods(http.MethodPut)

	api.Handle("/users", adminOnly(userHandler.GetUsers)).Methods(http.MethodGet)
	api.Handle("/users/{id}", protect(userHandler.GetUserByID)).Methods(http.MethodGet)
	api.Handle("/users/{id}", adminOnly(userHandler.DeleteUser)).Methods(http.MethodDelete)

	// Fixed task paths are registered before the {id} routes so the router
	// does not swallow them as IDs.
	api.Handle("/tasks/dashboard-data", adminOnly(taskHandler.GetDashboardData)).Methods(http.MethodGet)
	api.Handle("/tasks/user-dashboard-data", protect(taskHandler.GetUserDashboardData)).Methods(http.MethodGet)
	api.Handle("/tasks", protect(taskHandler.GetTasks)).Methods(http.MethodGet)
	api.Handle("/tasks", adminOnly(taskHandler.CreateTask)).Methods(http.MethodPost)
	api.Handle("/tasks/{id}/status", protect(taskHandler.UpdateTaskStatus)).Methods(http.MethodPut)
	api.Handle("/tasks/{id}/todo", protect(taskHandler.UpdateTaskChecklist)).Methods(http.MethodPut)
	api.Handle("/tasks/{id}", protect(taskHandler.GetTaskByID)).Methods(http.MethodGet)
	api.Handle("/tasks/{id}", adminOnly(taskHandler.UpdateTask)).Methods(http.MethodPut)
	api.Handle("/tasks/{id}", adminOnly(taskHandler.DeleteTask)).Methods(http.MethodDelete)

	corsRouter := middleware.EnableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "5000"
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
