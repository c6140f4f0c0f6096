package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"paylock/internal/handler"
	"paylock/internal/service"
)

type Server struct {
	echo           *echo.Echo
	paymentHandler *handler.PaymentHandler
	contentHandler *handler.ContentHandler
	ledgerHandler  *handler.LedgerHandler
	userHandler    *handler.UserHandler
}

func NewServer(
	paymentService service.PaymentService,
	unlockManager *service.UnlockManager,
	contentService service.ContentService,
	ledgerService service.LedgerService,
	userService service.UserService,
	log *logrus.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		paymentHandler: handler.NewPaymentHandler(paymentService, unlockManager, log),
		contentHandler: handler.NewContentHandler(contentService),
		ledgerHandler:  handler.NewLedgerHandler(ledgerService),
		userHandler:    handler.NewUserHandler(userService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	api.POST("/auth/signup", s.userHandler.Signup)
	api.POST("/auth/login", s.userHandler.Login)
	api.GET("/users", s.userHandler.List)

	// -------- content --------
	api.GET("/content", s.contentHandler.List)
	api.GET("/content/:id", s.contentHandler.Get)
	api.POST("/content", s.contentHandler.Create)
	api.DELETE("/content/:id", s.contentHandler.Delete)

	// -------- ledger --------
	api.GET("/transactions", s.ledgerHandler.ListTransactions)
	api.GET("/balance/:creatorId", s.ledgerHandler.GetBalance)
	api.GET("/withdrawals", s.ledgerHandler.ListWithdrawals)
	api.POST("/withdrawals", s.ledgerHandler.CreateWithdrawal)
	api.PUT("/withdrawals/:id/status", s.ledgerHandler.ResolveWithdrawal)

	// -------- payment --------
	payment := api.Group("/payment")
	payment.POST("/initiate", s.paymentHandler.Initiate)
	payment.GET("/status/:token", s.paymentHandler.CheckStatus)
	payment.POST("/sessions", s.paymentHandler.CreateSession)
	payment.GET("/sessions/:id", s.paymentHandler.GetSession)
	payment.DELETE("/sessions/:id", s.paymentHandler.CloseSession)

	// -------- provider callbacks --------
	payment.POST("/webhook", s.paymentHandler.Webhook)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
