package appcontext

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/spacyk/eshop-recipe/internal/config"
	"github.com/spacyk/eshop-recipe/internal/infra/auth"
	"github.com/spacyk/eshop-recipe/internal/infra/payment"
	"github.com/spacyk/eshop-recipe/internal/infra/producer"
	"github.com/spacyk/eshop-recipe/internal/infra/repository/db"
	"github.com/spacyk/eshop-recipe/internal/infra/repository/redis_repo"
	"github.com/spacyk/eshop-recipe/internal/service"
)

// session內的payment intent保留時間
const intentTTL = 24 * time.Hour

type ApplicationContext struct {
	Cf              *config.Config
	DbConn          *gorm.DB
	DbDao           *db.DbDao
	RedisClient     *redis.Client
	EventProducer   *producer.OrderEventProducer
	AuthVerifier    auth.IAuthVerifier
	CatalogService  service.ICatalogService
	CartService     service.ICartService
	CheckoutService service.ICheckoutService
	PaymentService  service.IPaymentService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}

	err := app.Init()
	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpDb()
	if err != nil {
		return err
	}

	app.setUpRedis()
	app.setUpEventProducer()
	app.setUpAuthVerifier()
	app.setUpServices()
	return nil
}

func (app *ApplicationContext) setUpDb() error {
	log.Printf("Start setup db")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}

	app.DbConn = conn
	app.DbDao = db.NewDbDao(conn)

	err = app.DbDao.InitMigrate()
	if err != nil {
		return err
	}
	log.Printf("Finish setup db")
	return nil
}

func (app *ApplicationContext) setUpRedis() {
	app.RedisClient = redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPas,
	})
}

func (app *ApplicationContext) setUpEventProducer() {
	if app.Cf.KafkaBrokers == "" {
		// 沒設kafka就不發事件
		return
	}
	app.EventProducer = producer.NewOrderEventProducer(app.Cf.Brokers(), app.Cf.KafkaTopic, app.Cf.KafkaPartitions)
}

func (app *ApplicationContext) setUpAuthVerifier() {
	app.AuthVerifier = auth.NewAuthCenterVerifier(app.Cf.AuthCenterUrl)
}

func (app *ApplicationContext) setUpServices() {
	itemRepo := db.NewItemRepo(app.DbDao)
	orderRepo := db.NewOrderRepo(app.DbDao)
	addressRepo := db.NewBillingAddressRepo(app.DbDao)
	intentRepo := redis_repo.NewPaymentIntentRepo(app.RedisClient, intentTTL)
	stripeClient := payment.NewStripeClient(app.Cf.StripeSecretKey)

	var eventProducer producer.IOrderEventProducer
	if app.EventProducer != nil {
		eventProducer = app.EventProducer
	}

	app.CatalogService = service.NewCatalogService(itemRepo)
	app.CartService = service.NewCartService(orderRepo, eventProducer)
	app.PaymentService = service.NewPaymentService(stripeClient, intentRepo, app.Cf.PaymentCurrency)
	app.CheckoutService = service.NewCheckoutService(orderRepo, addressRepo, app.PaymentService, eventProducer)
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	if app.EventProducer != nil {
		if err := app.EventProducer.Close(); err != nil {
			log.Printf("close event producer error: %v", err)
		}
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			log.Printf("close redis client error: %v", err)
		}
	}

	if app.DbConn != nil {
		sqlDB, err := app.DbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
