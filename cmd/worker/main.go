package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ramah83/ST-System-Bank/config"
	"github.com/ramah83/ST-System-Bank/internal/application"
	pginfra "github.com/ramah83/ST-System-Bank/internal/infrastructure/postgres"
	"github.com/ramah83/ST-System-Bank/pkg/helpers"
	"github.com/ramah83/ST-System-Bank/pkg/mailer"
)

// The worker drains the test-run queue: each job executes a suite, stores
// the results and log artifact, and mails the alert recipient on failure.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-worker", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQRunQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// one run at a time per worker
	if err := ch.Qos(1, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQRunQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQRunQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	svc := application.NewDashboardService(
		pginfra.NewTestRunRepository(pool),
		nil, // worker never enqueues
		application.NewAccessPolicy(),
		logger,
	)

	var gcs *storage.Client
	if cfg.GCSBucket != "" {
		gcs, err = helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("gcs unavailable, log artifacts disabled")
			gcs = nil
		} else {
			defer func() { _ = gcs.Close() }()
		}
	}
	svc.WithArtifacts(gcs, cfg.GCSBucket, alertSender(cfg), cfg.AlertRecipient)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job application.RunJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				logger.WithError(err).Error("bad message")
				_ = msg.Nack(false, false)
				continue
			}
			c, cancel := context.WithTimeout(ctx, 5*time.Minute)
			err := svc.ExecuteRun(c, job)
			cancel()
			if err != nil {
				logger.WithError(err).WithField("run_id", job.RunID).Error("run failed")
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	logger.Infof("worker listening on queue=%s", cfg.RabbitMQRunQueue)
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

func alertSender(cfg *config.Config) application.AlertSender {
	if !cfg.MailSendEnabled || cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		return nil
	}
	return mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
}
