package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docstream-pl/bailiff-extract/internal/common"
	"github.com/docstream-pl/bailiff-extract/internal/llm"
)

var _ llm.FieldExtractor = (*Client)(nil)

// ExtractGeneralInfo implements llm.FieldExtractor for the personal/case call.
func (c *Client) ExtractGeneralInfo(ctx context.Context, ocrText string) (llm.GeneralInfo, []byte, error) {
	raw, err := c.extract(ctx, llm.BuildGeneralInfoPrompt(), ocrText, llm.GeneralInfoSchema, false)
	if err != nil {
		return llm.GeneralInfo{}, raw, err
	}
	var out llm.GeneralInfo
	if err := json.Unmarshal(raw, &out); err != nil {
		return llm.GeneralInfo{}, raw, common.NewAppError("LLM_DECODE", "unmarshal general info", common.ErrExtractionMalformed)
	}
	return out, raw, nil
}

// ExtractCostInfo implements llm.FieldExtractor for the cost call.
func (c *Client) ExtractCostInfo(ctx context.Context, ocrText string) (llm.CostInfo, []byte, error) {
	raw, err := c.extract(ctx, llm.BuildCostInfoPrompt(), ocrText, llm.CostInfoSchema, true)
	if err != nil {
		return llm.CostInfo{}, raw, err
	}
	var out llm.CostInfo
	if err := json.Unmarshal(raw, &out); err != nil {
		return llm.CostInfo{}, raw, common.NewAppError("LLM_DECODE", "unmarshal cost info", common.ErrExtractionMalformed)
	}
	return out, raw, nil
}

// extract performs one schema-constrained chat-completions call and returns
// the validated JSON content.
func (c *Client) extract(ctx context.Context, sysPrompt, ocrText string, schema *llm.Schema, sanitizeAmounts bool) ([]byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"schema", schema.Name,
		"text_len", len(ocrText),
	)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"response_format": map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   schema.Name,
				"strict": true,
				"schema": schema.Document,
			},
		},
		"messages": []map[string]any{
			{"role": "system", "content": sysPrompt},
			{"role": "user", "content": ocrText},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.NewAppError("LLM_HTTP", err.Error(), common.ErrUpstreamIO)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
				Refusal string `json:"refusal"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error", "req_id", rid, "error", err, "raw_bytes", len(raw))
		return raw, common.NewAppError("LLM_DECODE", "decode completions response", common.ErrExtractionMalformed)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices", "req_id", rid, "raw_bytes", len(raw))
		return raw, common.NewAppError("LLM_EMPTY", "no choices in response", common.ErrExtractionMalformed)
	}

	msg := cc.Choices[0].Message
	if refusal := strings.TrimSpace(msg.Refusal); refusal != "" {
		c.log.Error("llm.extract.refused", "req_id", rid, "reason", refusal)
		return raw, common.NewAppError("LLM_REFUSED", refusal, common.ErrExtractionRefused)
	}

	content := []byte(strings.TrimSpace(msg.Content))
	if len(content) == 0 {
		return raw, common.NewAppError("LLM_EMPTY", "empty message content", common.ErrExtractionMalformed)
	}

	if sanitizeAmounts {
		cleaned, touched, sErr := llm.SanitizeAmounts(content)
		if sErr != nil {
			c.log.Error("llm.extract.sanitize_failed", "req_id", rid, "error", sErr)
			return content, common.NewAppError("LLM_SANITIZE", sErr.Error(), common.ErrExtractionMalformed)
		}
		if len(touched) > 0 {
			c.log.Warn("llm.extract.sanitize_applied", "req_id", rid, "touched", touched)
		}
		content = cleaned
	}

	if err := schema.Validate(content); err != nil {
		c.log.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err, "content", string(content),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return content, err
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"schema", schema.Name,
		"content_bytes", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.AzureKeyAuth {
		req.Header.Set("api-key", c.cfg.APIKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.log.Warn("llm response body close error", "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("llm status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
