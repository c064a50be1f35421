package routes

import (
	"autopro_rental/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathAuth       = "/auth"
	PathClients    = "/clients"
	PathVehicles   = "/vehicles"
	PathOrders     = "/orders"
	PathInvoices   = "/invoices"
	PathPayments   = "/payments"
	PathAccounting = "/accounting"
	PathSettings   = "/settings"
	PathRegistry   = "/registry"
)

func addAuthRoutes(rg *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	auth := rg.Group(PathAuth)
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}
}

func addRentalRoutes(rg *gin.RouterGroup, clientHandler *handlers.ClientHandler, vehicleHandler *handlers.VehicleHandler, orderHandler *handlers.OrderHandler) {
	clients := rg.Group(PathClients)
	{
		clients.POST("", clientHandler.Create)
		clients.GET("", clientHandler.List)
		clients.GET("/:id", clientHandler.GetByID)
		clients.PUT("/:id", clientHandler.Update)
		clients.DELETE("/:id", clientHandler.Deactivate)
	}

	// SIREN/SIRET lookup used to prefill the client form.
	rg.GET(PathRegistry+"/:identifier", clientHandler.LookupCompany)

	vehicles := rg.Group(PathVehicles)
	{
		vehicles.POST("", vehicleHandler.Create)
		vehicles.GET("", vehicleHandler.List)
		vehicles.GET("/:id", vehicleHandler.GetByID)
		vehicles.PUT("/:id", vehicleHandler.Update)
	}

	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.Create)
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.GetByID)
		// Renewal sweep, meant to be hit by a scheduler.
		orders.POST("/renewals/run", orderHandler.RunRenewals)
	}
}

func addBillingRoutes(rg *gin.RouterGroup, invoiceHandler *handlers.InvoiceHandler, paymentHandler *handlers.PaymentHandler) {
	rg.GET("/dashboard", invoiceHandler.Dashboard)

	invoices := rg.Group(PathInvoices)
	{
		invoices.GET("", invoiceHandler.List)
		invoices.GET("/overdue", invoiceHandler.ListOverdue)
		invoices.POST("/mark-overdue", invoiceHandler.MarkOverdue)
		// Reminder sweep, meant to be hit by a scheduler.
		invoices.POST("/reminders/run", invoiceHandler.SendReminders)
		invoices.GET("/:id", invoiceHandler.GetByID)
		invoices.GET("/:id/pdf", invoiceHandler.GetPDF)
		invoices.POST("/:id/email", invoiceHandler.SendByEmail)
		invoices.POST("/:id/mark-paid", invoiceHandler.MarkPaid)
		invoices.POST("/:id/cancel", invoiceHandler.Cancel)
		invoices.POST("/:id/payments", paymentHandler.Create)
		invoices.GET("/:id/payments", paymentHandler.List)
	}

	payments := rg.Group(PathPayments)
	{
		payments.DELETE("/:id", paymentHandler.Delete)
	}
}

func addBackOfficeRoutes(rg *gin.RouterGroup, authHandler *handlers.AuthHandler, accountingHandler *handlers.AccountingHandler, settingsHandler *handlers.SettingsHandler) {
	rg.GET(PathAuth+"/me", authHandler.Me)

	accounting := rg.Group(PathAccounting)
	{
		accounting.GET("/entries", accountingHandler.ListEntries)
		accounting.GET("/summary", accountingHandler.Summary)
		accounting.GET("/export/:format", accountingHandler.Export)
	}

	settings := rg.Group(PathSettings)
	{
		settings.GET("", settingsHandler.Get)
		settings.PUT("", settingsHandler.Update)
	}
}
