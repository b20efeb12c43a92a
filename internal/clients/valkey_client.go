package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"
)

const VALKEY_PROCESSED_VIDEOS_KEY = "youtube:processed_videos"

type ValkeyOptions struct {
	Addr     string
	Password string
	UseTLS   bool
}

// ValkeyClient keeps the set of video ids already harvested, so repeated
// crawl runs skip comment fetches they have done before. Losing the cache is
// harmless; the store's natural key still deduplicates.
type ValkeyClient struct {
	Client valkey.Client
}

func NewValkeyClient(opts ValkeyOptions) (*ValkeyClient, error) {
	clientOpts := valkey.ClientOption{
		InitAddress:      []string{opts.Addr},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if opts.UseTLS {
		clientOpts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if resp := client.Do(ctx, client.B().Ping().Build()); resp.Error() != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Valkey: %w", resp.Error())
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey")

	return &ValkeyClient{Client: client}, nil
}

// VideoSeen reports whether a video id was marked by a previous run. Cache
// errors read as "not seen" so a degraded cache never drops data.
func (vc *ValkeyClient) VideoSeen(ctx context.Context, videoID string) bool {
	resp := vc.Client.Do(ctx, vc.Client.B().Sismember().Key(VALKEY_PROCESSED_VIDEOS_KEY).Member(videoID).Build())
	seen, err := resp.AsBool()
	if err != nil {
		slog.Warn("[ValkeyClient] SISMEMBER failed", slog.String("error", err.Error()))
		return false
	}
	return seen
}

func (vc *ValkeyClient) MarkVideoSeen(ctx context.Context, videoID string) {
	resp := vc.Client.Do(ctx, vc.Client.B().Sadd().Key(VALKEY_PROCESSED_VIDEOS_KEY).Member(videoID).Build())
	if err := resp.Error(); err != nil {
		slog.Warn("[ValkeyClient] SADD failed", slog.String("error", err.Error()))
	}
}

func (vc *ValkeyClient) Close() {
	if vc.Client != nil {
		vc.Client.Close()
	}
}
