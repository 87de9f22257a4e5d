package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"

	"github.com/spacesedan/affectflow/internal/models"
)

const AFFECT_RESULTS_INDEX = "affect-results"

var (
	opensearchInstance Opensearch
	opensearchOnce     sync.Once
)

type Opensearch struct {
	Client *opensearch.Client
}

// GetOpensearchClient connects to OpenSearch: SigV4-signed against the AWS
// domain in prod, basic auth against a local cluster otherwise.
func GetOpensearchClient(ctx context.Context) Opensearch {
	opensearchOnce.Do(func() {
		appEnv := os.Getenv("APP_ENV")

		var cfg opensearch.Config

		if appEnv == "prod" {
			awsCfg, err := config.LoadDefaultConfig(ctx)
			if err != nil {
				log.Fatalf("failed to load AWS config: %v", err)
			}

			signer := v4.NewSigner()
			creds := awsCfg.Credentials
			region := awsCfg.Region

			cfg = opensearch.Config{
				Addresses: []string{os.Getenv("AWS_OPENSEARCH_ENDPOINT")},
				Transport: NewSigV4Transport(creds, signer, region, "es"),
			}
		} else {
			if os.Getenv("OPENSEARCH_ENDPOINT") == "" || os.Getenv("OPENSEARCH_PASSWORD") == "" {
				log.Fatal("Missing credentials for opensearch")
			}
			cfg = opensearch.Config{
				Addresses: []string{os.Getenv("OPENSEARCH_ENDPOINT")},
				Username:  os.Getenv("OPENSEARCH_USERNAME"),
				Password:  os.Getenv("OPENSEARCH_PASSWORD"),
			}
		}

		client, err := opensearch.NewClient(cfg)
		if err != nil {
			log.Fatalf("failed to initialize OpenSearch Client: %v", err.Error())
		}

		opensearchInstance = Opensearch{
			client,
		}
	})
	return opensearchInstance
}

type sigV4Transport struct {
	credentials aws.CredentialsProvider
	signer      *v4.Signer
	region      string
	service     string
	next        http.RoundTripper
}

func NewSigV4Transport(creds aws.CredentialsProvider, signer *v4.Signer, region string, service string) http.RoundTripper {
	return &sigV4Transport{
		credentials: creds,
		signer:      signer,
		region:      region,
		service:     service,
		next:        http.DefaultTransport,
	}
}

func (t *sigV4Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	creds, err := t.credentials.Retrieve(context.Background())
	if err != nil {
		return nil, err
	}

	signedReq := req.Clone(req.Context())

	signedReq.Header.Del("Authorization")

	err = t.signer.SignHTTP(
		context.Background(),
		creds,
		signedReq,
		v4.GetPayloadHash(req.Context()),
		t.service,
		t.region,
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	return t.next.RoundTrip(signedReq)
}

func (o Opensearch) IsHealthy(ctx context.Context) bool {
	req := opensearchapi.ClusterHealthReq{}
	res, err := o.Client.Do(ctx, req, nil)
	if err != nil {
		return false
	}
	defer res.Body.Close()

	if res.IsError() {
		return false
	}

	return res.StatusCode == http.StatusOK
}

// IndexAffectResult indexes a single result keyed by its content ID.
func (o Opensearch) IndexAffectResult(ctx context.Context, result models.AffectAnalysisResult) error {
	slog.Info("[OpenSearchClient] Indexing affect result",
		slog.String("content_id", result.ContentID))

	payload, err := json.Marshal(result)
	if err != nil {
		slog.Error("[OpenSearchClient] failed to marshal affect result",
			slog.String("content_id", result.ContentID),
			slog.String("error", err.Error()))
		return err
	}

	req := opensearchapi.IndexReq{
		Index:      AFFECT_RESULTS_INDEX,
		DocumentID: result.ContentID,
		Body:       bytes.NewReader(payload),
	}

	res, err := o.Client.Do(ctx, req, nil)
	if err != nil {
		slog.Error("[OpenSearchClient] Failed to index affect result",
			slog.String("error", err.Error()))
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		slog.Error("[OpenSearchClient] OpenSearch indexing error",
			slog.String("status", res.Status()))
		return fmt.Errorf("opensearch error: %s", res.Status())
	}

	return nil
}

// BulkIndexAffectResults indexes a batch in one NDJSON bulk request.
func (o Opensearch) BulkIndexAffectResults(ctx context.Context, results []models.AffectAnalysisResult) error {
	if len(results) == 0 {
		return nil
	}

	var body bytes.Buffer
	for _, result := range results {
		action, err := json.Marshal(map[string]map[string]string{
			"index": {
				"_index": AFFECT_RESULTS_INDEX,
				"_id":    result.ContentID,
			},
		})
		if err != nil {
			return err
		}
		doc, err := json.Marshal(result)
		if err != nil {
			slog.Error("[OpenSearchClient] failed to marshal affect result",
				slog.String("content_id", result.ContentID),
				slog.String("error", err.Error()))
			return err
		}
		body.Write(action)
		body.WriteByte('\n')
		body.Write(doc)
		body.WriteByte('\n')
	}

	req := opensearchapi.BulkReq{Body: &body}

	res, err := o.Client.Do(ctx, req, nil)
	if err != nil {
		slog.Error("[OpenSearchClient] Bulk indexing failed",
			slog.String("error", err.Error()))
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		slog.Error("[OpenSearchClient] OpenSearch bulk indexing error",
			slog.String("status", res.Status()))
		return fmt.Errorf("opensearch error: %s", res.Status())
	}

	slog.Info("[OpenSearchClient] Bulk indexed affect results",
		slog.Int("count", len(results)))
	return nil
}
