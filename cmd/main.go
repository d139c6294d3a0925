package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/spacyk/eshop-recipe/internal/api"
	"github.com/spacyk/eshop-recipe/internal/api/handler"
	"github.com/spacyk/eshop-recipe/internal/api/router"
	"github.com/spacyk/eshop-recipe/internal/appcontext"
	"github.com/spacyk/eshop-recipe/internal/config"
	"github.com/spacyk/eshop-recipe/pkg/metrics"
)

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
		return
	}

	// 初始化 handler
	catalogHandler := handler.NewCatalogHandler(app.CatalogService)
	cartHandler := handler.NewCartHandler(app.CartService)
	checkoutHandler := handler.NewCheckoutHandler(app.CheckoutService, app.PaymentService)

	server := api.NewServer(catalogHandler, cartHandler, checkoutHandler)

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	serverMetrics := metrics.NewServerMetrics("storefront")

	// 設置路由
	r := router.SetupRouter(server, app.AuthVerifier, app.Cf.LoginUrl, serverMetrics, &logger)

	// 設定服務器參數
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler: r,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDownCompleted := make(chan struct{}, 1)
	// 監聽退出訊號
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Printf("Application shutdown error: %v", err)
		}

		shutDownCompleted <- struct{}{}
	}()

	// 啟動服務
	log.Printf("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	<-shutDownCompleted
	log.Println("Server shutdown completed")
}
