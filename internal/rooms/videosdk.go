package rooms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultEndpoint = "https://api.videosdk.live"

// VideoSDKClient creates rooms through the VideoSDK REST API.
type VideoSDKClient struct {
	endpoint   string
	tokens     *TokenIssuer
	httpClient *http.Client
}

func NewVideoSDKClient(endpoint string, tokens *TokenIssuer, httpClient *http.Client) *VideoSDKClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &VideoSDKClient{endpoint: strings.TrimRight(endpoint, "/"), tokens: tokens, httpClient: httpClient}
}

type createRoomResponse struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

// CreateRoom allocates a new room and returns its id.
func (c *VideoSDKClient) CreateRoom(ctx context.Context) (string, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v2/rooms", strings.NewReader("{}"))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("videosdk: create room: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("videosdk: read response: %w", err)
	}

	var out createRoomResponse
	_ = json.Unmarshal(body, &out)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := out.Message
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return "", fmt.Errorf("videosdk: create room: status %d: %s", resp.StatusCode, msg)
	}
	if out.RoomID == "" {
		return "", fmt.Errorf("videosdk: create room: response has no roomId")
	}
	return out.RoomID, nil
}
