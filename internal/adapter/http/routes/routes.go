package routes

import (
	"log"
	"strconv"

	_ "autopro_rental/docs" // This will be auto-generated
	"autopro_rental/internal/adapter/http/handlers"
	"autopro_rental/internal/adapter/http/middleware"
	repository2 "autopro_rental/internal/adapter/persistence/repository"
	"autopro_rental/internal/infrastructure/database"
	"autopro_rental/internal/infrastructure/email"
	"autopro_rental/internal/infrastructure/pdf"
	"autopro_rental/internal/infrastructure/registry"
	"autopro_rental/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	clientRepo := repository2.NewClientDynamoRepository(ddb)
	vehicleRepo := repository2.NewVehicleDynamoRepository(ddb)
	orderRepo := repository2.NewOrderDynamoRepository(ddb)
	invoiceRepo := repository2.NewInvoiceDynamoRepository(ddb)
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)
	entryRepo := repository2.NewAccountingEntryDynamoRepository(ddb)
	settingsRepo := repository2.NewSettingsDynamoRepository(ddb)
	userRepo := repository2.NewUserDynamoRepository(ddb)

	pdfRenderer := pdf.NewInvoiceRenderer()
	notifier := email.NewMailgunNotifier()
	businessRegistry := registry.NewINSEEClient()

	authUseCase := usecase.NewAuthUseCase(userRepo)
	clientUseCase := usecase.NewClientUseCase(clientRepo, businessRegistry)
	vehicleUseCase := usecase.NewVehicleUseCase(vehicleRepo)
	settingsUseCase := usecase.NewSettingsUseCase(settingsRepo)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, invoiceRepo)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, clientRepo, vehicleRepo, invoiceRepo, entryRepo, settingsRepo)
	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo, clientRepo, vehicleRepo, orderRepo, entryRepo, settingsRepo, paymentUseCase, pdfRenderer, notifier)
	accountingUseCase := usecase.NewAccountingUseCase(entryRepo)

	authHandler := handlers.NewAuthHandler(authUseCase)
	clientHandler := handlers.NewClientHandler(clientUseCase)
	vehicleHandler := handlers.NewVehicleHandler(vehicleUseCase)
	orderHandler := handlers.NewOrderHandler(orderUseCase)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	accountingHandler := handlers.NewAccountingHandler(accountingUseCase)
	settingsHandler := handlers.NewSettingsHandler(settingsUseCase)

	// Public routes: ping and authentication.
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addAuthRoutes(v1, authHandler)

	// Everything else sits behind the bearer token.
	protected := v1.Group("")
	protected.Use(middleware.RequireAuth())
	addRentalRoutes(protected, clientHandler, vehicleHandler, orderHandler)
	addBillingRoutes(protected, invoiceHandler, paymentHandler)
	addBackOfficeRoutes(protected, authHandler, accountingHandler, settingsHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
