package consumer

import (
	"context"
	"sync"
	"time"

	"golang-stock-resultstore/internal/results/config"
	"golang-stock-resultstore/internal/results/service"
	"golang-stock-resultstore/pkg/common"
	"golang-stock-resultstore/pkg/logger"
	"golang-stock-resultstore/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RedisConsumer manages the consumption of analysis batches from a Redis
// stream.
type RedisConsumer struct {
	cfg           *config.Config
	redisClient   *redis.Client
	writerService service.WriterService
	logger        *logger.Logger
	stopChan      chan struct{}
	wg            sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(cfg *config.Config, redisClient *redis.Client, writerService service.WriterService, log *logger.Logger) *RedisConsumer {
	return &RedisConsumer{
		cfg:           cfg,
		redisClient:   redisClient,
		writerService: writerService,
		logger:        log,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the consumer's batch processing loop.
func (c *RedisConsumer) Start(ctx context.Context) {
	c.logger.Info("Redis consumer started")
	c.RegisterStreamHandler(ctx, c.writerService.ProcessTask, common.RedisStreamAnalysisResults, c.cfg.Results.RedisStreamAnalysisTimeout)
}

// RegisterStreamHandler runs fn in a loop until the context is canceled or
// the consumer is stopped.
func (c *RedisConsumer) RegisterStreamHandler(ctx context.Context, fn func(ctx context.Context), streamName string, timeout time.Duration) {
	c.logger.Info("Registering stream handler", logger.Field("stream", streamName))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Redis consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Redis consumer stopping")
				return
			default:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			}
		}
	})
}

// Stop signals the processing loops to stop and waits for them to exit.
func (c *RedisConsumer) Stop() {
	close(c.stopChan)
	c.wg.Wait()
}
