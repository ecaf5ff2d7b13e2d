package common

const (
	RedisStreamAnalysisResults = "stock.analysis.results"

	RedisStreamGroup    = "resultstore-group"
	RedisStreamConsumer = "resultstore-consumer"
)

const (
	SentimentCategoryNeutral = "Neutral"
)
