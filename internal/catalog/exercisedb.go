package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	oneHour          = 60 * 60
	localCacheExpire = oneHour // freecache expiry is in seconds
	redisCacheExpire = 24 * time.Hour
	catalogCacheKey  = "liftlog::exercisedb::catalog"
	localCacheSize   = 10 * 1024 * 1024
	// freecache rejects entries over 1/1024 of its size
	localChunkSize       = 50
	exerciseDBAPIKeyHdr  = "x-rapidapi-key"
	exerciseDBAPIHostHdr = "x-rapidapi-host"
)

// ExerciseDBClient fetches the generic exercise catalog from ExerciseDB (RapidAPI).
// The catalog is cached in process, and in redis to survive restarts.
type ExerciseDBClient struct {
	apiURL      string
	apiHost     string
	apiKey      string
	httpClient  *http.Client
	redisClient *redis.Client
	cache       *freecache.Cache

	mutex sync.Mutex // guards the fetch
}

// NewExerciseDBClient creates the client. The host is a bare host name, e.g.
// exercisedb.p.rapidapi.com, or a full base URL.
func NewExerciseDBClient(host, apiKey string, httpClient *http.Client, redisClient *redis.Client) *ExerciseDBClient {
	apiURL := "https://" + host
	apiHost := host
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		apiURL = host
		apiHost = host[strings.Index(host, "://")+3:]
	}

	return &ExerciseDBClient{
		apiURL:      strings.TrimSuffix(apiURL, "/"),
		apiHost:     apiHost,
		apiKey:      apiKey,
		httpClient:  httpClient,
		redisClient: redisClient,
		cache:       freecache.NewCache(localCacheSize),
	}
}

// Exercises returns the catalog. Failures are logged and give an empty catalog.
func (c *ExerciseDBClient) Exercises(ctx context.Context) []CatalogExercise {
	ctx, span := tracing.GlobalTracer.Start(ctx, "exercisedb.exercises")
	defer span.End()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if exercises, ok := c.fromLocalCache(); ok {
		span.SetAttributes(attribute.String("source", "local"))
		return exercises
	}

	if exercises, ok := c.fromRedis(ctx); ok {
		span.SetAttributes(attribute.String("source", "redis"))
		return exercises
	}

	if c.apiKey == "" {
		log.Debugln("exercisedb: no api key set, catalog is empty")
		return []CatalogExercise{}
	}

	catalogBytes, exercises, err := c.fetch(ctx)
	if err != nil {
		log.Errorf("exercisedb: failed to fetch exercises: %s", err)
		span.RecordError(err)
		return []CatalogExercise{}
	}
	span.SetAttributes(attribute.String("source", "api"), attribute.Int("exercises", len(exercises)))

	if len(exercises) == 0 {
		return exercises
	}

	c.toLocalCache(exercises)
	if err := c.redisClient.Set(ctx, catalogCacheKey, catalogBytes, redisCacheExpire).Err(); err != nil {
		log.Errorf("exercisedb: failed to set redis cache: %s", err)
	}

	return exercises
}

func localChunkKey(i int) []byte {
	return []byte(catalogCacheKey + "::" + strconv.Itoa(i))
}

// toLocalCache stores the catalog as chunks of localChunkSize exercises, with the
// chunk count under catalogCacheKey. The count is written last.
func (c *ExerciseDBClient) toLocalCache(exercises []CatalogExercise) {
	chunks := 0
	for start := 0; start < len(exercises); start += localChunkSize {
		end := min(start+localChunkSize, len(exercises))
		chunkBytes, err := json.Marshal(exercises[start:end])
		if err != nil {
			log.Errorf("exercisedb: marshal catalog chunk %d: %s", chunks, err)
			return
		}
		if err := c.cache.Set(localChunkKey(chunks), chunkBytes, localCacheExpire); err != nil {
			log.Errorf("exercisedb: failed to set local cache chunk %d: %s", chunks, err)
			return
		}
		chunks++
	}

	if err := c.cache.Set([]byte(catalogCacheKey), []byte(strconv.Itoa(chunks)), localCacheExpire); err != nil {
		log.Errorf("exercisedb: failed to set local cache: %s", err)
	}
}

func (c *ExerciseDBClient) fromLocalCache() ([]CatalogExercise, bool) {
	countBytes, err := c.cache.Get([]byte(catalogCacheKey))
	if err != nil {
		return nil, false
	}
	chunks, err := strconv.Atoi(string(countBytes))
	if err != nil || chunks <= 0 {
		return nil, false
	}

	exercises := make([]CatalogExercise, 0, chunks*localChunkSize)
	for i := 0; i < chunks; i++ {
		// an evicted chunk invalidates the whole local copy
		chunkBytes, err := c.cache.Get(localChunkKey(i))
		if err != nil {
			return nil, false
		}
		var chunk []CatalogExercise
		if err := json.Unmarshal(chunkBytes, &chunk); err != nil {
			log.Errorf("exercisedb: failed to unmarshal locally cached chunk %d: %s", i, err)
			return nil, false
		}
		exercises = append(exercises, chunk...)
	}
	return exercises, true
}

func (c *ExerciseDBClient) fromRedis(ctx context.Context) ([]CatalogExercise, bool) {
	catalogBytes, err := c.redisClient.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("exercisedb: get catalog from redis: %s", err)
		}
		return nil, false
	}

	var exercises []CatalogExercise
	if err := json.Unmarshal(catalogBytes, &exercises); err != nil {
		log.Errorf("exercisedb: failed to unmarshal catalog from redis: %s", err)
		return nil, false
	}

	c.toLocalCache(exercises)
	return exercises, true
}

func (c *ExerciseDBClient) fetch(ctx context.Context) ([]byte, []CatalogExercise, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/exercises?limit=0", nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set(exerciseDBAPIKeyHdr, c.apiKey)
	req.Header.Set(exerciseDBAPIHostHdr, c.apiHost)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("api error %d: %s", resp.StatusCode, respBytes)
	}

	var exercises []CatalogExercise
	if err := json.Unmarshal(respBytes, &exercises); err != nil {
		return nil, nil, fmt.Errorf("unexpected api response format: %w", err)
	}

	// store only what is used, the raw entries carry gif urls and instructions
	catalogBytes, err := json.Marshal(exercises)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal catalog: %w", err)
	}

	return catalogBytes, exercises, nil
}
