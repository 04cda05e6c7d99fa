package rmqconsumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"file-manager-api/config"
	"file-manager-api/internal/domain/file"
	"file-manager-api/internal/domain/user"
	"file-manager-api/internal/infrastructure/mq"
	"file-manager-api/internal/infrastructure/thumbnail"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

// Consumer drains the work queue: thumbnail jobs for image uploads and
// welcome events for new users. A failed job is logged and dropped,
// there is no retry and no signal back to the original request.
type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery

	files    file.Repository
	users    user.Repository
	thumbs   *thumbnail.Generator
	mCounter *prometheus.CounterVec
}

func New(
	cfg config.MQ,
	logger *zap.Logger,
	conn *amqp091.Connection,
	files file.Repository,
	users user.Repository,
	thumbs *thumbnail.Generator,
	mCounter *prometheus.CounterVec,
) *Consumer {
	return &Consumer{
		cfg:      cfg,
		log:      logger,
		conn:     conn,
		files:    files,
		users:    users,
		thumbs:   thumbs,
		mCounter: mCounter,
	}
}

func (c *Consumer) Connect(dsn string) error {
	var err error
	c.conn, err = amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	c.chConsume, err = c.conn.Channel()
	if err != nil {
		_ = c.conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	var err error
	if err = c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err = c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range mq.Kinds {
		if err = c.chConsume.QueueBind(
			c.cfg.QueueName,
			rk,
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err = c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	c.chDelivery, err = c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg := <-c.chDelivery:
			if err := c.delivery(ctx, msg); err != nil {
				c.log.Error("job failed", zap.String("kind", msg.RoutingKey), zap.Error(err))
			}
		case <-ctx.Done():
			c.chConsume.Close()
			return
		}
	}
}

func (c *Consumer) delivery(ctx context.Context, msg amqp091.Delivery) error {
	switch msg.RoutingKey {
	case mq.KindThumbnail:
		return c.processThumbnail(ctx, msg.Body)
	case mq.KindUserCreated:
		return c.processWelcome(ctx, msg.Body)
	default:
		return fmt.Errorf("unknown routing key %q", msg.RoutingKey)
	}
}

// processThumbnail renders the three width variants next to the
// original. A mid-loop failure leaves already written variants in place
// and fails the job as a whole.
func (c *Consumer) processThumbnail(ctx context.Context, body []byte) error {
	var job mq.Job
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("bad payload: %w", err)
	}
	if job.FileID == "" {
		return errors.New("missing fileId")
	}
	if job.UserID == "" {
		return errors.New("missing userId")
	}

	fileID, err := primitive.ObjectIDFromHex(job.FileID)
	if err != nil {
		return fmt.Errorf("bad fileId: %w", err)
	}
	userID, err := primitive.ObjectIDFromHex(job.UserID)
	if err != nil {
		return fmt.Errorf("bad userId: %w", err)
	}

	f, err := c.files.FetchByIDAndOwner(ctx, fileID, userID)
	if err != nil {
		return err
	}
	if f == nil {
		return errors.New("file not found")
	}

	for _, width := range thumbnail.Widths {
		if err = c.thumbs.Generate(f.LocalPath, width); err != nil {
			c.mCounter.WithLabelValues("thumbnail_failed_total").Inc()
			return fmt.Errorf("width %d: %w", width, err)
		}
	}

	c.mCounter.WithLabelValues("thumbnail_generated_total").Inc()
	c.log.Info("thumbnails generated", zap.String("file_id", job.FileID))

	return nil
}

func (c *Consumer) processWelcome(ctx context.Context, body []byte) error {
	var job mq.Job
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("bad payload: %w", err)
	}
	if job.UserID == "" {
		return errors.New("missing userId")
	}

	userID, err := primitive.ObjectIDFromHex(job.UserID)
	if err != nil {
		return fmt.Errorf("bad userId: %w", err)
	}

	u, err := c.users.FetchByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return errors.New("user not found")
	}

	// a real deployment would hand this to a mail provider
	c.log.Info(fmt.Sprintf("Welcome %s!", u.Email), zap.String("user_id", job.UserID))

	return nil
}
