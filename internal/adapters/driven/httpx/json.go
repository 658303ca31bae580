package httpx

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON fetches url and unmarshals the response body into value.
func (c *Client) GetJSON(ctx context.Context, bucket, url string, header map[string]string, value any) error {
	body, err := c.ReadAll(ctx, bucket, url, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, value); err != nil {
		return fmt.Errorf("unmarshal GET %s: %w", url, err)
	}
	return nil
}
