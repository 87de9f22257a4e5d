package kafka_client

import "time"

const (
	KAFKA_TOPIC_RAW_CONTENT    = "raw-content"     // texts from upstream sources, pre-cleanup
	KAFKA_TOPIC_AFFECT_REQUEST = "affect-requests" // cleaned, batched texts awaiting analysis
	KAFKA_TOPIC_AFFECT_RESULTS = "affect-results"  // scored affect distributions ready for storage
)

const (
	BATCH_SIZE    = 50
	BATCH_TIMEOUT = 5 * time.Second
	MAX_RETRIES   = 5
	RETRY_DELAY   = 2 * time.Second
)
