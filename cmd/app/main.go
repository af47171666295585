package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"microblog/configs"
	"microblog/internal/comment"
	"microblog/internal/feed"
	"microblog/internal/follow"
	"microblog/internal/group"
	"microblog/internal/media"
	"microblog/internal/migrate"
	"microblog/internal/post"
	"microblog/internal/render"
	"microblog/internal/shared/cache"
	"microblog/internal/user"
	"microblog/internal/web"
	"microblog/pkg/db"
	"microblog/pkg/kafka"
	"microblog/pkg/redis"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return func(context.Context) error { return nil }
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("microblog"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	ctx := context.Background()
	shutdown := initOTEL(ctx)
	defer func() {
		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	cfg := configs.LoadConfig()

	store := db.NewDb(cfg)
	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := migrate.AutoMigrateAll(store.DB); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	var pageCache cache.Cache
	if cfg.RedisHost != "" {
		pageCache = cache.NewRedis(redis.NewClient(cfg))
	} else {
		pageCache = cache.NewMemory()
	}

	var images media.Store
	if cfg.MinioEndpoint != "" {
		s3, err := media.NewS3(media.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
			Bucket:    cfg.MinioBucket,
		})
		if err != nil {
			log.Fatalf("minio: %v", err)
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Fatalf("minio bucket: %v", err)
		}
		images = s3
	} else {
		log.Println("MINIO_ENDPOINT not set, keeping images in memory")
		images = media.NewMemory()
	}

	var events post.EventPublisher
	if cfg.KafkaBrokerURL != "" {
		producer := kafka.NewProducer(cfg.KafkaBrokerURL, cfg.KafkaTopic)
		defer producer.Close()
		events = producer
	}

	userRepo := user.NewRepository(store.DB)
	groupRepo := group.NewRepository(store.DB)
	postRepo := post.NewRepository(store.DB)
	commentRepo := comment.NewRepository(store.DB)
	followRepo := follow.NewRepository(store.DB)

	userSvc := user.NewService(userRepo)
	followSvc := follow.NewService(followRepo, userRepo)
	postSvc := post.NewService(postRepo, groupRepo, images, pageCache, events)
	commentSvc := comment.NewService(commentRepo)
	feedSvc := feed.NewService(postRepo, groupRepo, userRepo, followSvc, pageCache, cfg.PageSize)

	renderer, err := render.New(cfg.TemplatesGlob)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	handlers := web.NewHandlers(web.Deps{
		Render:       renderer,
		Feeds:        feedSvc,
		Posts:        postRepo,
		PostSvc:      postSvc,
		Groups:       groupRepo,
		Comments:     commentSvc,
		Follows:      followSvc,
		Users:        userSvc,
		Images:       images,
		MaxImageSize: cfg.MaxImageSize,
	})

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(handlers.Router(), "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	log.Printf("microblog listening on %s", cfg.AppPort)
	log.Fatal(srv.ListenAndServe())
}
