package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-frontdesk/config"
	"github.com/yeremiapane/restaurant-frontdesk/controllers"
	"github.com/yeremiapane/restaurant-frontdesk/floor"
	"github.com/yeremiapane/restaurant-frontdesk/middlewares"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"github.com/yeremiapane/restaurant-frontdesk/services"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Options carries the dependencies of the HTTP layer. Nil fields get defaults.
type Options struct {
	DB        *gorm.DB
	Config    *config.Config
	Sync      *services.Synchronizer
	Notifier  services.Notifier
	Hub       *floor.Hub
	Blacklist utils.TokenBlacklist
}

func SetupRouter(opts Options) *gin.Engine {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	sync := opts.Sync
	if sync == nil {
		sync = services.DefaultSynchronizer()
	}
	hub := opts.Hub
	if hub == nil {
		hub = floor.NewHub()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = hub
	}
	blacklist := opts.Blacklist
	if blacklist == nil {
		blacklist = utils.NewMemoryBlacklist()
	}
	db := opts.DB
	loc := cfg.Location

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares(cfg.Server.CORSOrigin))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.NewRateLimiter(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitRPS).RateLimit())

	// Services
	catalog := services.NewCatalogService(db)
	reservations := services.NewReservationService(db, sync, notifier)
	customers := services.NewCustomerService(db, reservations, notifier)
	orders := services.NewOrderService(db, sync, notifier)
	bills := services.NewBillService(db, sync)
	reports := services.NewReportService(db, loc)

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db, blacklist)
	customerCtrl := controllers.NewCustomerController(customers)
	employeeCtrl := controllers.NewEmployeeController(db, catalog)
	tableCtrl := controllers.NewTableController(db, catalog, notifier)
	menuCtrl := controllers.NewMenuController(db, catalog)
	reservationCtrl := controllers.NewReservationController(reservations, loc)
	orderCtrl := controllers.NewOrderController(orders)
	billCtrl := controllers.NewBillController(bills, loc)
	reportCtrl := controllers.NewReportController(reports)
	floorCtrl := controllers.NewFloorController(hub, cfg.Server.CORSOrigin)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/login", middlewares.NewStrictRateLimiter(cfg.Server.LoginRateLimitPerMin), userCtrl.Login)

	// guests browse the menu and book without an account
	r.GET("/menu-items", menuCtrl.GetAllMenuItems)
	r.POST("/reservations", reservationCtrl.BookReservation)

	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware(blacklist))
	{
		wsGroup.GET("/floor", floorCtrl.FloorHandler)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware(blacklist))

	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/profile", userCtrl.GetProfile)

	admin := auth.Group("/users")
	admin.Use(middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("", userCtrl.GetAllUsers)
		admin.POST("", userCtrl.CreateUser)
	}

	// CUSTOMERS
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.POST("/customers", customerCtrl.CreateCustomer)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	auth.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)
	auth.DELETE("/customers/:customer_id", customerCtrl.DeleteCustomer)

	// EMPLOYEES
	auth.GET("/employees", employeeCtrl.GetAllEmployees)
	auth.POST("/employees", employeeCtrl.CreateEmployee)
	auth.GET("/employees/:employee_id", employeeCtrl.GetEmployeeByID)
	auth.PATCH("/employees/:employee_id", employeeCtrl.UpdateEmployee)
	auth.DELETE("/employees/:employee_id", employeeCtrl.DeleteEmployee)

	// TABLES
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// MENU
	auth.GET("/menu-items", menuCtrl.GetAllMenuItems)
	auth.POST("/menu-items", menuCtrl.CreateMenuItem)
	auth.GET("/menu-items/:menu_item_id", menuCtrl.GetMenuItemByID)
	auth.PATCH("/menu-items/:menu_item_id", menuCtrl.UpdateMenuItem)
	auth.DELETE("/menu-items/:menu_item_id", menuCtrl.DeleteMenuItem)

	// RESERVATIONS
	auth.GET("/reservations", reservationCtrl.GetAllReservations)
	auth.POST("/reservations", reservationCtrl.CreateReservation)
	auth.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
	auth.PATCH("/reservations/:reservation_id", reservationCtrl.UpdateReservation)
	auth.DELETE("/reservations/:reservation_id", reservationCtrl.DeleteReservation)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id", orderCtrl.UpdateOrder)
	auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	auth.PATCH("/orders/:order_id/employee", orderCtrl.AssignEmployee)
	auth.POST("/orders/:order_id/items", orderCtrl.AddOrderItem)
	auth.PATCH("/orders/:order_id/items/:item_id", orderCtrl.UpdateOrderItem)
	auth.DELETE("/orders/:order_id/items/:item_id", orderCtrl.DeleteOrderItem)

	// BILLS
	auth.GET("/bills", billCtrl.GetAllBills)
	auth.POST("/bills", billCtrl.CreateBill)
	auth.GET("/bills/:bill_id", billCtrl.GetBillByID)
	auth.PATCH("/bills/:bill_id", billCtrl.UpdateBill)
	auth.DELETE("/bills/:bill_id", billCtrl.DeleteBill)
	auth.GET("/bills/:bill_id/receipt", middlewares.DocumentLoggerMiddleware("receipt"), billCtrl.GetBillReceipt)

	// REPORTS
	auth.GET("/reports", reportCtrl.GetDailyReport)
	auth.GET("/reports/pdf", middlewares.DocumentLoggerMiddleware("daily report"), reportCtrl.GetDailyReportPDF)
	auth.GET("/reports/top-dishes.png", reportCtrl.GetTopDishesChart)
	auth.GET("/reports/floor", reportCtrl.GetFloorSummary)

	return r
}
