package service

import (
	"context"
	"encoding/json"
	"time"

	"golang-stock-resultstore/internal/results/dto"
	"golang-stock-resultstore/internal/results/repository"
	"golang-stock-resultstore/pkg/common"
	"golang-stock-resultstore/pkg/logger"
	"golang-stock-resultstore/pkg/telegram"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// WriterService persists analysis results into the managed database.
type WriterService interface {
	Write(ctx context.Context, record *dto.AnalysisRecord) error
	WriteBatch(ctx context.Context, records []dto.AnalysisRecord) *dto.WriteSummary
	ProcessTask(ctx context.Context)
}

// NewWriterService creates a new WriterService. The limiter and notifier are
// optional; pass nil to disable throttling and Telegram summaries.
func NewWriterService(
	snapshotRepo repository.StockSnapshotRepository,
	log *logger.Logger,
	cache *gocache.Cache,
	limiter *rate.Limiter,
	notifier telegram.Notifier,
	redisClient *redis.Client,
) WriterService {
	return &writerService{
		snapshotRepo: snapshotRepo,
		logger:       log,
		cache:        cache,
		limiter:      limiter,
		notifier:     notifier,
		redisClient:  redisClient,
	}
}

type writerService struct {
	snapshotRepo repository.StockSnapshotRepository
	logger       *logger.Logger
	cache        *gocache.Cache
	limiter      *rate.Limiter
	notifier     telegram.Notifier
	redisClient  *redis.Client
}

// Write maps a single record and replaces its ticker's row set.
func (s *writerService) Write(ctx context.Context, record *dto.AnalysisRecord) error {
	snapshot, err := MapAnalysisRecord(record, time.Now())
	if err != nil {
		s.logger.Error("Failed to map analysis record", logger.ErrorField(err), logger.StringField("ticker", record.Ticker))
		return err
	}

	if err := s.snapshotRepo.Replace(ctx, snapshot); err != nil {
		s.logger.Error("Failed to replace stock row set", logger.ErrorField(err), logger.StringField("ticker", record.Ticker))
		return err
	}

	s.logger.Info("Stock analysis persisted",
		logger.StringField("ticker", record.Ticker),
		logger.IntField("prices", len(snapshot.Prices)),
		logger.IntField("predictions", len(snapshot.Predictions)))
	return nil
}

// WriteBatch drives the per-record persistence over a ranked batch. A failed
// record is counted and skipped; the batch always runs to completion.
func (s *writerService) WriteBatch(ctx context.Context, records []dto.AnalysisRecord) *dto.WriteSummary {
	summary := &dto.WriteSummary{}

	for i := range records {
		record := &records[i]
		if record.Rank == 0 {
			record.Rank = i + 1
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				s.logger.Error("Batch write interrupted", logger.ErrorField(err), logger.StringField("ticker", record.Ticker))
				summary.ErrorCount++
				continue
			}
		}

		if err := s.Write(ctx, record); err != nil {
			summary.ErrorCount++
			continue
		}
		summary.SuccessCount++
	}

	if s.cache != nil {
		s.cache.Flush()
	}

	s.logger.Info("Analysis batch write completed",
		logger.IntField("success_count", summary.SuccessCount),
		logger.IntField("error_count", summary.ErrorCount))

	if s.notifier != nil {
		if err := s.notifier.SendMessage(telegram.FormatWriteSummary(summary, len(records))); err != nil {
			s.logger.Error("Failed to send batch summary notification", logger.ErrorField(err))
		}
	}

	return summary
}

// ProcessTask dequeues and persists a single analysis batch from the Redis
// stream.
func (s *writerService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamAnalysisResults, ">"}, // ">" means only new messages
		Count:    1,
		Block:    2 * time.Second, // Block briefly to allow graceful shutdown
		NoAck:    true,
	}).Result()

	if err != nil {
		// Ignore context cancellation and timeout errors, as they are expected during shutdown or idle periods.
		if err == context.Canceled || err == redis.Nil {
			return
		}
		s.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]

	// The batch is expected to be a JSON string in the 'payload' field.
	payload, ok := message.Values["payload"].(string)
	if !ok {
		s.logger.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", message.ID))
		return
	}

	var batch dto.AnalysisBatch
	if err := json.Unmarshal([]byte(payload), &batch); err != nil {
		s.logger.Error("Failed to unmarshal analysis batch", logger.ErrorField(err), logger.Field("message_id", message.ID))
		// Acknowledge the message to prevent reprocessing of a malformed message.
		if err := s.redisClient.XAck(ctx, common.RedisStreamAnalysisResults, common.RedisStreamGroup, message.ID).Err(); err != nil {
			s.logger.Error("Failed to acknowledge malformed message", logger.ErrorField(err), logger.Field("message_id", message.ID))
		}
		return
	}

	s.logger.Info("Processing analysis batch from stream",
		logger.Field("message_id", message.ID),
		logger.IntField("records", len(batch.Records)))

	s.WriteBatch(ctx, batch.Records)
}
