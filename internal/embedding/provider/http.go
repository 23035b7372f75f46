package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	perrors "embedproxy/pkg/errors"

	"go.uber.org/zap"
)

// postJSON sends payload to url and decodes a 200 response into out.
// Non-200 responses are logged with their body and returned as ErrBackendStatus.
func postJSON(ctx context.Context, client *http.Client, log *zap.SugaredLogger, url string, headers map[string]string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		log.Errorw("error communicating with embedding backend", "url", url, "error", err)
		return fmt.Errorf("%w: %v", perrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", perrors.ErrBackendUnavailable, err)
	}
	log.Debugw("embedding backend response", "status", resp.StatusCode, "body_len", len(respBody))

	if resp.StatusCode != http.StatusOK {
		log.Errorw("embedding backend returned error status", "status", resp.StatusCode, "body", string(respBody))
		return fmt.Errorf("%w: %d: %s", perrors.ErrBackendStatus, resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		log.Errorw("embedding backend returned malformed body", "body", string(respBody), "error", err)
		return fmt.Errorf("%w: %v", perrors.ErrMissingEmbedding, err)
	}
	return nil
}
